// Package tracing opens child spans only. Helpers called outside a traced
// request (health checks, startup) get a no-op span instead of a new root.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Scope is one instrumentation scope, usually a package.
type Scope struct {
	name string
}

func NewScope(name string) Scope {
	return Scope{name: name}
}

// Child starts name under the span already in ctx.
func (s Scope) Child(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if name == "" || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noop.Span{}
	}
	return otel.Tracer(s.name).Start(ctx, name, opts...)
}
