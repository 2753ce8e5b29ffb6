package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID  ctxKey = "user_id"
	CtxKeyEmail   ctxKey = "email"
	CtxKeyIsAdmin ctxKey = "is_admin"
)

// UserIDFromCtx returns the authenticated user's id, or "" when the request
// did not pass through AuthnMiddleware.
func UserIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

func EmailFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyEmail).(string); ok {
		return v
	}
	return ""
}

func IsAdminFromCtx(ctx context.Context) bool {
	if v, ok := ctx.Value(CtxKeyIsAdmin).(bool); ok {
		return v
	}
	return false
}
