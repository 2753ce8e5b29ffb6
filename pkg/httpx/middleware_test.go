package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wpdevquiz/proctor/pkg/jwtx"
)

func testToken(t *testing.T, h *jwtx.HS256, subject string, admin bool) string {
	t.Helper()
	token, err := h.Sign(jwtx.NewClaims(subject, subject+"@example.com", admin, "proctor", time.Hour, time.Now().UTC()))
	require.NoError(t, err)
	return token
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthnMiddleware(t *testing.T) {
	t.Parallel()

	keys, err := jwtx.NewHS256([]byte("test-secret"), "proctor")
	require.NoError(t, err)

	var gotUserID string
	var gotAdmin bool
	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromCtx(r.Context())
		gotAdmin = IsAdminFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}), AuthnMiddleware(keys))

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid header token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+testToken(t, keys, "user-1", true))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "user-1", gotUserID)
		require.True(t, gotAdmin)
	})

	t.Run("token query fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?token="+testToken(t, keys, "user-2", false), nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "user-2", gotUserID)
		require.False(t, gotAdmin)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	keys, err := jwtx.NewHS256([]byte("test-secret"), "proctor")
	require.NoError(t, err)

	handler := Chain(okHandler(), AuthnMiddleware(keys), RequireAdmin)

	t.Run("non-admin forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+testToken(t, keys, "user-1", false))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+testToken(t, keys, "admin-1", true))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireSelfOrAdmin(t *testing.T) {
	t.Parallel()

	keys, err := jwtx.NewHS256([]byte("test-secret"), "proctor")
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle("GET /users/{id}/warnings",
		Chain(okHandler(), AuthnMiddleware(keys), RequireSelfOrAdmin("id")),
	)

	do := func(t *testing.T, path, subject string, admin bool) int {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+testToken(t, keys, subject, admin))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("self allowed", func(t *testing.T) {
		require.Equal(t, http.StatusOK, do(t, "/users/user-1/warnings", "user-1", false))
	})

	t.Run("other user forbidden", func(t *testing.T) {
		require.Equal(t, http.StatusForbidden, do(t, "/users/user-1/warnings", "user-2", false))
	})

	t.Run("admin allowed for anyone", func(t *testing.T) {
		require.Equal(t, http.StatusOK, do(t, "/users/user-1/warnings", "admin-1", true))
	})
}
