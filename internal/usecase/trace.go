package usecase

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/voley-club/internal/platform/tracing"
)

var usecaseSpans = tracing.NewScope("voley-club/internal/usecase")

func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return usecaseSpans.Child(ctx, name)
}
