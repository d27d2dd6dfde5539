package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func newBufferLogger(buf *bytes.Buffer) *Logger {
	return New(&Config{
		Level:       "debug",
		Format:      "json",
		Output:      buf,
		ServiceName: "test-service",
	})
}

// lastLine decodes the most recent JSON log line in the buffer.
func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) == 0 || lines[0] == "" {
		t.Fatal("no log output captured")
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("failed to decode log line %q: %v", lines[len(lines)-1], err)
	}
	return entry
}

// Fields set on the context must reach every log line emitted through
// FromContext, so a run ID set once tags the whole call chain.
func TestContextCarriesRunScopedFields(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	ctx := l.WithContext(context.Background())
	ctx = SetRunID(ctx, "run-123")
	ctx = SetComponent(ctx, "scheduler")

	FromContext(ctx).Info("processing")

	entry := lastLine(t, &buf)
	if entry[FieldRunID] != "run-123" {
		t.Errorf("run_id = %v, want run-123", entry[FieldRunID])
	}
	if entry[FieldComponent] != "scheduler" {
		t.Errorf("component = %v, want scheduler", entry[FieldComponent])
	}
	if entry["service"] != "test-service" {
		t.Errorf("service = %v, want test-service", entry["service"])
	}
	if entry["message"] != "processing" {
		t.Errorf("message = %v, want processing", entry["message"])
	}

	if got := GetRunID(ctx); got != "run-123" {
		t.Errorf("GetRunID = %q, want run-123", got)
	}
	if got := GetComponent(ctx); got != "scheduler" {
		t.Errorf("GetComponent = %q, want scheduler", got)
	}
}

// The Entry API resolves its logger from the context, so metric fields
// land alongside the context's own fields.
func TestEntryMetricFieldsUseContextLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	ctx := SetRunID(l.WithContext(context.Background()), "run-456")

	With(Fields{FieldStatus: "batch_complete"}).
		WithDuration(42).
		WithCount(3).
		Info(ctx, "finished %d items", 3)

	entry := lastLine(t, &buf)
	if entry[FieldStatus] != "batch_complete" {
		t.Errorf("status = %v, want batch_complete", entry[FieldStatus])
	}
	if entry[FieldDurationMs] != float64(42) {
		t.Errorf("duration_ms = %v, want 42", entry[FieldDurationMs])
	}
	if entry[FieldCount] != float64(3) {
		t.Errorf("count = %v, want 3", entry[FieldCount])
	}
	if entry[FieldRunID] != "run-456" {
		t.Errorf("run_id = %v, want run-456", entry[FieldRunID])
	}
}

// A context without a logger falls back to the default, never nil.
func TestFromContextFallsBack(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext returned nil for a bare context")
	}
	if FromContext(nil) == nil {
		t.Fatal("FromContext returned nil for a nil context")
	}
	if GetRunID(context.Background()) != "" {
		t.Error("GetRunID on a bare context should be empty")
	}
}
