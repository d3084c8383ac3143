package httpapi

import (
	"context"

	"github.com/riskibarqy/school-games/internal/domain/admin"
)

type contextKey string

const principalContextKey contextKey = "admin_principal"

func withPrincipal(ctx context.Context, p admin.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (admin.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(admin.Principal)
	return p, ok
}
