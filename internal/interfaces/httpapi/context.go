package httpapi

import (
	"context"

	"github.com/riskibarqy/voley-club/internal/domain/auth"
)

type contextKey string

const principalContextKey contextKey = "auth_principal"

func withPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(auth.Principal)
	return p, ok
}
