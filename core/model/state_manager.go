// Package model provides state management and interfaces for preprocessing transforms.
package model

import (
	"fmt"
	"sync"
)

// StateManager manages the fitted state of a transformer in a thread-safe manner.
// Transformers hold it by composition and gate Transform calls on it.
type StateManager struct {
	Fitted bool // Public for gob encoding
	mu     sync.RWMutex

	// Optional metadata - Public for gob encoding
	NColumns int
	NRows    int
}

// NewStateManager creates a new StateManager instance.
func NewStateManager() *StateManager {
	return &StateManager{
		Fitted: false,
	}
}

// IsFitted returns whether the transformer has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Fitted
}

// SetFitted marks the transformer as fitted.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = true
}

// Reset resets the fitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = false
	s.NColumns = 0
	s.NRows = 0
}

// SetDimensions sets the number of columns and rows seen during fitting.
func (s *StateManager) SetDimensions(nColumns, nRows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NColumns = nColumns
	s.NRows = nRows
}

// GetDimensions returns the number of columns and rows seen during fitting.
func (s *StateManager) GetDimensions() (nColumns, nRows int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NColumns, s.NRows
}

// RequireFitted returns an error if the transformer has not been fitted.
func (s *StateManager) RequireFitted() error {
	if !s.IsFitted() {
		return fmt.Errorf("transformer has not been fitted yet. Call Fit() first")
	}
	return nil
}
