package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wpdevquiz/proctor/pkg/proctorsdk"
)

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	t.Parallel()

	client, _ := newTestServer(t)
	ctx := context.Background()

	sess := registerUser(t, client, "plain@example.com")

	_, err := sess.ListUsers(ctx)
	var apiErr *proctorsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	require.Equal(t, proctorsdk.ErrorCodeAdminRequired, apiErr.Code)

	_, err = sess.Stats(ctx)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	err = sess.BlockUser(ctx, sess.User.ID, "self block attempt")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestAdminDashboard(t *testing.T) {
	t.Parallel()

	client, _ := newTestServer(t)
	ctx := context.Background()

	admin := registerAdmin(t, client, "admin@example.com")
	alice := registerUser(t, client, "alice@example.com")
	bob := registerUser(t, client, "bob@example.com")

	_, err := alice.SubmitQuiz(ctx, validSubmitRequest()) // plugin, 80%
	require.NoError(t, err)

	themed := validSubmitRequest()
	themed.QuizType = "theme"
	_, err = alice.SubmitQuiz(ctx, themed)
	require.NoError(t, err)

	perfect := validSubmitRequest()
	ten := 10
	perfect.Score = &ten
	perfect.CorrectAnswers = 10
	perfect.WrongAnswers = 0
	_, err = bob.SubmitQuiz(ctx, perfect)
	require.NoError(t, err)

	t.Run("list users", func(t *testing.T) {
		resp, err := admin.ListUsers(ctx)
		require.NoError(t, err)
		require.Equal(t, 3, resp.Total)
		require.Len(t, resp.Users, 3)

		byEmail := make(map[string]proctorsdk.AdminUser, len(resp.Users))
		for _, u := range resp.Users {
			byEmail[u.Email] = u
		}

		aliceRow := byEmail["alice@example.com"]
		require.Equal(t, 2, aliceRow.AttemptCount)
		require.NotNil(t, aliceRow.QuizType)
		require.Equal(t, "both", *aliceRow.QuizType)

		adminRow := byEmail["admin@example.com"]
		require.True(t, adminRow.IsAdmin)
		require.Nil(t, adminRow.QuizType)
		require.Nil(t, adminRow.Score)
	})

	t.Run("list results", func(t *testing.T) {
		resp, err := admin.ListResults(ctx)
		require.NoError(t, err)
		require.Equal(t, 3, resp.Total)
		require.Len(t, resp.Results, 3)
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := admin.Stats(ctx)
		require.NoError(t, err)
		require.Equal(t, 3, stats.TotalAttempts)
		require.Equal(t, 2, stats.UniqueUsers)
		require.Equal(t, 87, stats.AverageScore) // (80+80+100)/3 = 86.67 -> 87
		require.Equal(t, 2, stats.PluginAttempts)
		require.Equal(t, 1, stats.ThemeAttempts)
	})

	t.Run("update status", func(t *testing.T) {
		require.NoError(t, admin.UpdateStatus(ctx, alice.User.ID, "selected"))

		history, err := alice.History(ctx)
		require.NoError(t, err)
		for _, r := range history.Results {
			require.Equal(t, "selected", r.Status)
		}
	})

	t.Run("update status rejects unknown value", func(t *testing.T) {
		err := admin.UpdateStatus(ctx, alice.User.ID, "hired")

		var apiErr *proctorsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	})

	t.Run("update status unknown user", func(t *testing.T) {
		err := admin.UpdateStatus(ctx, "01GHOST00000000000000000000", "selected")

		var apiErr *proctorsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		require.Equal(t, proctorsdk.ErrorCodeUserNotFound, apiErr.Code)
	})

	t.Run("delete results", func(t *testing.T) {
		require.NoError(t, admin.DeleteUserResults(ctx, bob.User.ID))

		history, err := bob.History(ctx)
		require.NoError(t, err)
		require.Empty(t, history.Results)
	})
}
