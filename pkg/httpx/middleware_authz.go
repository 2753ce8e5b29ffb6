package httpx

import "net/http"

// RequireAdmin rejects callers whose token does not carry the admin flag.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdminFromCtx(r.Context()) {
			WriteError(w, http.StatusForbidden, "admin_required", "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSelfOrAdmin permits the request when the {pathParam} path value
// names the caller's own user id, or when the caller is an admin. Used for
// the self-service warning/restart counter routes.
func RequireSelfOrAdmin(pathParam string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if r.PathValue(pathParam) != UserIDFromCtx(ctx) && !IsAdminFromCtx(ctx) {
				WriteError(w, http.StatusForbidden, "access_denied", "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
