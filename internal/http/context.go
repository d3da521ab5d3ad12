package http

import "context"

type tenantContextKey struct{}

// ContextWithTenant returns a derived context carrying the tenant identifier
// extracted by the tenant middleware.
func ContextWithTenant(ctx context.Context, tenantID string) context.Context {
	if ctx == nil || tenantID == "" {
		return ctx
	}
	return context.WithValue(ctx, tenantContextKey{}, tenantID)
}

// TenantFromContext extracts the tenant identifier attached to the context.
func TenantFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	tenantID, _ := ctx.Value(tenantContextKey{}).(string)
	return tenantID
}
