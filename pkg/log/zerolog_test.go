package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestZerologProviderEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProviderWithWriter(LevelDebug, &buf)
	logger := provider.GetLoggerWithName("Scaler")

	logger.Info("fit completed",
		OperationKey, OperationFit,
		ColumnsKey, 3,
	)

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected log output")
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry["message"] != "fit completed" {
		t.Errorf("message = %v, want 'fit completed'", entry["message"])
	}
	if entry[ComponentKey] != "Scaler" {
		t.Errorf("%s = %v, want Scaler", ComponentKey, entry[ComponentKey])
	}
	if entry[OperationKey] != OperationFit {
		t.Errorf("%s = %v, want %v", OperationKey, entry[OperationKey], OperationFit)
	}
}

func TestZerologProviderLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProviderWithWriter(LevelWarn, &buf)
	logger := provider.GetLogger()

	logger.Debug("should be dropped")
	logger.Info("should be dropped too")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("low-level messages should be filtered, got: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn message missing, got: %s", out)
	}
}

func TestZerologLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProviderWithWriter(LevelInfo, &buf)
	logger := provider.GetLogger().With(TransformKey, "DummyEncoder")

	logger.Info("transform completed")

	if !strings.Contains(buf.String(), "DummyEncoder") {
		t.Errorf("expected pre-populated field in output, got: %s", buf.String())
	}
}

func TestZerologLoggerEnabled(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProviderWithWriter(LevelInfo, &buf)
	logger := provider.GetLogger()

	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("debug should be disabled at info level")
	}
	if !logger.Enabled(context.Background(), LevelError) {
		t.Error("error should be enabled at info level")
	}
}

func TestTestLoggerCapture(t *testing.T) {
	logger, _ := NewTestLogger(LevelDebug)

	logger.Info("fit completed", OperationKey, OperationFit)

	if !logger.ContainsMessage("fit completed") {
		t.Error("expected captured message")
	}
	if !logger.ContainsField(OperationKey, OperationFit) {
		t.Error("expected captured field")
	}

	logger.Clear()
	if logger.ContainsMessage("fit completed") {
		t.Error("expected buffer to be cleared")
	}
}
