package types

import "context"

// ContextKey is the type used for all values stored on a request context.
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxTenantID  ContextKey = "ctx_tenant_id"
	CtxUserID    ContextKey = "ctx_user_id"
	CtxUserRole  ContextKey = "ctx_user_role"
)

// DefaultTenantID and DefaultUserID are used by scripts and tests that run
// outside a request.
const (
	DefaultTenantID = "00000000-0000-0000-0000-000000000000"
	DefaultUserID   = "00000000-0000-0000-0000-000000000000"
)

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}

func GetRequestID(ctx context.Context) string {
	return ctxString(ctx, CtxRequestID)
}

func SetTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, CtxTenantID, tenantID)
}

func GetTenantID(ctx context.Context) string {
	return ctxString(ctx, CtxTenantID)
}

func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

func GetUserID(ctx context.Context) string {
	return ctxString(ctx, CtxUserID)
}

func SetUserRole(ctx context.Context, role UserRole) context.Context {
	return context.WithValue(ctx, CtxUserRole, role)
}

func GetUserRole(ctx context.Context) UserRole {
	if v, ok := ctx.Value(CtxUserRole).(UserRole); ok {
		return v
	}
	return ""
}

func ctxString(ctx context.Context, key ContextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
