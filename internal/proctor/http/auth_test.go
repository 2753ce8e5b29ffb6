package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wpdevquiz/proctor/pkg/proctorsdk"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	client, _ := newTestServer(t)
	ctx := context.Background()

	sess, err := client.Register(ctx, proctorsdk.RegisterRequest{
		Email:       "Alice@Example.COM",
		Password:    "password123",
		DisplayName: "Alice",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", sess.User.Email)
	require.Equal(t, "Alice", sess.User.DisplayName)
	require.False(t, sess.User.IsAdmin)
	require.NotEmpty(t, sess.Token())

	t.Run("duplicate email", func(t *testing.T) {
		_, err := client.Register(ctx, proctorsdk.RegisterRequest{
			Email:    "alice@example.com",
			Password: "password123",
		})

		var apiErr *proctorsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusConflict, apiErr.StatusCode)
		require.Equal(t, proctorsdk.ErrorCodeEmailTaken, apiErr.Code)
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := client.Register(ctx, proctorsdk.RegisterRequest{
			Email:    "short@example.com",
			Password: "tiny",
		})

		var apiErr *proctorsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Equal(t, proctorsdk.ErrorCodeInvalidRequest, apiErr.Code)
	})

	t.Run("admin key grants admin", func(t *testing.T) {
		sess := registerAdmin(t, client, "boss@example.com")
		require.True(t, sess.User.IsAdmin)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	client, st := newTestServer(t)
	ctx := context.Background()

	registerUser(t, client, "carol@example.com")

	t.Run("success", func(t *testing.T) {
		sess, err := client.Login(ctx, proctorsdk.LoginRequest{
			Email:    "carol@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		require.Equal(t, "carol@example.com", sess.User.Email)
		require.NotEmpty(t, sess.Token())
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := client.Login(ctx, proctorsdk.LoginRequest{
			Email:    "carol@example.com",
			Password: "not-the-password",
		})

		var apiErr *proctorsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		require.Equal(t, proctorsdk.ErrorCodeInvalidCredentials, apiErr.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := client.Login(ctx, proctorsdk.LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})

		var apiErr *proctorsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("blocked account", func(t *testing.T) {
		blocked := registerUser(t, client, "blocked@example.com")
		require.NoError(t, st.Users().Block(ctx, blocked.User.ID, "Quiz restarted 3 times", time.Now()))

		_, err := client.Login(ctx, proctorsdk.LoginRequest{
			Email:    "blocked@example.com",
			Password: "password123",
		})

		var apiErr *proctorsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
		require.True(t, apiErr.IsBlocked())
		require.Equal(t, "Quiz restarted 3 times", apiErr.BlockedReason)
	})
}
