package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_Levels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{Zap: zap.New(core)}

	l.Debug("debug msg")
	l.Info("info msg", zap.String("k", "v"))
	l.Warn("warn msg")
	l.Error("error msg")

	if got := logs.Len(); got != 4 {
		t.Fatalf("expected 4 entries, got %d", got)
	}
	entry := logs.All()[1]
	if entry.Message != "info msg" {
		t.Errorf("unexpected message %q", entry.Message)
	}
	if entry.ContextMap()["k"] != "v" {
		t.Errorf("expected field k=v, got %v", entry.ContextMap())
	}
}

func TestWithTrace_DisabledAddsNothing(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{Zap: zap.New(core), tracingEnabled: false}

	l.InfoWithContext(context.Background(), "no trace")

	entry := logs.All()[0]
	if len(entry.Context) != 0 {
		t.Errorf("expected no fields, got %v", entry.Context)
	}
}

func TestWithTrace_NoSpanInContext(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{Zap: zap.New(core), tracingEnabled: true}

	// A bare context has no valid span, so no trace fields are added.
	l.InfoWithContext(context.Background(), "still no trace")

	entry := logs.All()[0]
	if len(entry.Context) != 0 {
		t.Errorf("expected no fields, got %v", entry.Context)
	}
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Info("discarded")
	l.ErrorWithContext(context.Background(), "also discarded")
}
