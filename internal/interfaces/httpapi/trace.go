package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/riskibarqy/voley-club/internal/platform/tracing"
)

var apiSpans = tracing.NewScope("voley-club/internal/interfaces/httpapi")

// startSpan traces handler entry points; encoding and middleware helpers stay
// inside the otelhttp server span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !isHandlerSpan(name) {
		return ctx, noop.Span{}
	}
	return apiSpans.Child(ctx, name)
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
