package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"info":    LevelInfo,
		"bogus":   LevelInfo,
		"":        LevelInfo,
	}
	for raw, want := range tests {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestLogger_WritesFieldsAndRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONTo(&buf, LevelInfo).Named("usecase.player")

	logger.Debug("hidden")
	logger.Info("player created", "player_id", "p-1", "error", errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry should be filtered at info level: %s", out)
	}
	for _, want := range []string{`"msg":"player created"`, `"player_id":"p-1"`, `"logger":"usecase.player"`, `"error":"boom"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}

func TestLogger_ContextAddsTraceFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONTo(&buf, LevelDebug)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "attendance recorded")

	out := buf.String()
	if !strings.Contains(out, `"trace_id":"4bf92f3577b34da6a3ce929d0e0e4736"`) {
		t.Fatalf("expected trace id in %s", out)
	}
	if !strings.Contains(out, `"span_id":"00f067aa0ba902b7"`) {
		t.Fatalf("expected span id in %s", out)
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("With on nil logger should return a usable logger")
	}
}

func TestLogger_OddArgsAndWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONTo(&buf, LevelInfo).With("service", "voley-club-api")

	logger.Warn("odd args", 42, "x", "dangling")

	out := buf.String()
	for _, want := range []string{`"service":"voley-club-api"`, `"arg":"x"`, `"dangling":null`, `"level":"WARN"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}

func TestSetDefault(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	var buf bytes.Buffer
	SetDefault(NewJSONTo(&buf, LevelInfo))

	var logger *Logger
	logger.Info("through default")
	if !strings.Contains(buf.String(), "through default") {
		t.Fatalf("nil logger should write through the default, got %q", buf.String())
	}

	SetDefault(nil)
	if Default() == nil {
		t.Fatalf("SetDefault(nil) should install a no-op logger")
	}
}
