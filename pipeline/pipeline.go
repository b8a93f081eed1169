// Package pipeline chains table transformers into a single fit/apply unit.
//
// A pipeline fitted on a training table captures the parameters of every
// step; transforming a new table replays those parameters in order without
// observing the new table's statistics.
package pipeline

import (
	"fmt"
	"time"

	"github.com/YuminosukeSato/tabprep/core/model"
	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
	"github.com/YuminosukeSato/tabprep/pkg/log"
)

var globalProvider log.LoggerProvider

// SetLoggerProvider sets the logger provider for all pipelines.
func SetLoggerProvider(provider log.LoggerProvider) {
	globalProvider = provider
}

// Step is a named transformer in the pipeline.
type Step struct {
	Name        string
	Transformer model.TableTransformer
}

// Pipeline chains table transformers. Every step must implement
// model.TableTransformer; steps run in order during Fit/Transform.
type Pipeline struct {
	state  *model.StateManager
	logger log.Logger

	steps      []Step
	namedSteps map[string]model.TableTransformer
}

// New creates a pipeline with the given steps.
func New(steps ...Step) *Pipeline {
	named := make(map[string]model.TableTransformer, len(steps))
	for _, step := range steps {
		named[step.Name] = step.Transformer
	}

	p := &Pipeline{
		steps:      steps,
		namedSteps: named,
		state:      model.NewStateManager(),
	}
	if globalProvider == nil {
		globalProvider = log.NewZerologProvider(log.ToLogLevel("info"))
	}
	p.logger = globalProvider.GetLoggerWithName("Pipeline")
	return p
}

// Make builds a pipeline with auto-generated step names.
func Make(transformers ...model.TableTransformer) *Pipeline {
	steps := make([]Step, len(transformers))
	for i, tr := range transformers {
		steps[i] = Step{Name: fmt.Sprintf("step%d", i+1), Transformer: tr}
	}
	return New(steps...)
}

// Fit fits every step in order, feeding each step the output of the
// previous one.
func (p *Pipeline) Fit(t *table.Table) error {
	_, err := p.fitTransform(t)
	return err
}

// FitTransform fits every step in order and returns the fully
// transformed table.
func (p *Pipeline) FitTransform(t *table.Table) (*table.Table, error) {
	return p.fitTransform(t)
}

func (p *Pipeline) fitTransform(t *table.Table) (*table.Table, error) {
	out := t
	for _, step := range p.steps {
		start := time.Now()
		var transformed *table.Table
		// パニックする変換器もエラーとして回収する
		err := errors.SafeExecute("pipeline step '"+step.Name+"'", func() error {
			var stepErr error
			transformed, stepErr = step.Transformer.FitTransform(out)
			return stepErr
		})
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline: failed to fit step '%s'", step.Name)
		}
		out = transformed
		p.logger.Debug("step fitted",
			log.StepKey, step.Name,
			log.OperationKey, log.OperationFitTransform,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	}
	p.state.SetFitted()
	p.logger.Info("pipeline fitted",
		log.OperationKey, log.OperationFit,
		log.ColumnsKey, out.NumColumns(),
		log.RowsKey, out.NumRows(),
	)
	return out, nil
}

// Transform replays every fitted step in order on a new table.
func (p *Pipeline) Transform(t *table.Table) (*table.Table, error) {
	if !p.state.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "Transform")
	}

	out := t
	for _, step := range p.steps {
		var transformed *table.Table
		err := errors.SafeExecute("pipeline step '"+step.Name+"'", func() error {
			var stepErr error
			transformed, stepErr = step.Transformer.Transform(out)
			return stepErr
		})
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline: failed to transform at step '%s'", step.Name)
		}
		out = transformed
	}
	return out, nil
}

// NamedSteps returns the steps keyed by name.
func (p *Pipeline) NamedSteps() map[string]model.TableTransformer {
	out := make(map[string]model.TableTransformer, len(p.namedSteps))
	for name, tr := range p.namedSteps {
		out[name] = tr
	}
	return out
}

// Steps returns a copy of the step list.
func (p *Pipeline) Steps() []Step {
	steps := make([]Step, len(p.steps))
	copy(steps, p.steps)
	return steps
}
