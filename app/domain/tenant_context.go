package domain

import "context"

// TenantContext is the resolved routing context for a single inbound
// request: which tenant the request belongs to and which backing
// database serves it. It is created fresh per request by the tenant
// resolution middleware and travels only inside that request's
// context.Context. It must never be stored on a long-lived singleton
// shared between requests.
type TenantContext struct {
	Code         string
	DatabaseName string
}

type tenantContextKey struct{}

// WithTenant returns a copy of ctx carrying the resolved tenant context.
func WithTenant(ctx context.Context, tc TenantContext) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, tc)
}

// TenantFrom extracts the resolved tenant context from ctx. The second
// return value is false when the request was never resolved (exempt
// paths, or middleware misordering).
func TenantFrom(ctx context.Context) (TenantContext, bool) {
	tc, ok := ctx.Value(tenantContextKey{}).(TenantContext)
	return tc, ok
}
