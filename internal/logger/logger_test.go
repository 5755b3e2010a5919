package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return Wrap(zap.New(core)), logs
}

func TestComponentField(t *testing.T) {
	l, logs := observed()
	l.Warning(ComponentStore, "read failed")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", e.Level)
	}
	if got := e.ContextMap()["component"]; got != ComponentStore {
		t.Errorf("component = %v, want %s", got, ComponentStore)
	}
}

func TestRequestReceivedLowercasesMethod(t *testing.T) {
	l, logs := observed()
	l.With(zap.String("request_id", "r1")).RequestReceived("PATCH", "/api/pizzas/p1")

	ctx := logs.All()[0].ContextMap()
	if ctx["method"] != "patch" {
		t.Errorf("method = %v", ctx["method"])
	}
	if ctx["request_id"] != "r1" {
		t.Errorf("request_id = %v", ctx["request_id"])
	}
}

func TestRespondWith(t *testing.T) {
	l, logs := observed()
	l.RespondWith(404)

	e := logs.All()[0]
	if e.Message != "Responding with 404" {
		t.Errorf("message = %q", e.Message)
	}
	if e.ContextMap()["status"] != int64(404) {
		t.Errorf("status = %v", e.ContextMap()["status"])
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := New("warn"); err != nil {
		t.Fatalf("warn: %v", err)
	}
}
