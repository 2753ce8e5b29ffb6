package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wpdevquiz/proctor/internal/proctor/domain"
	"github.com/wpdevquiz/proctor/internal/proctor/store"
	"github.com/wpdevquiz/proctor/internal/proctor/store/drivers/sqlite"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore("file::memory:?_busy_timeout=5000")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())

	t.Cleanup(func() { _ = st.Close() })
	return st
}

// registerTestUser creates a user through the real registration path so
// password hashing and defaults apply.
func registerTestUser(t *testing.T, st store.Store, email, password string) domain.User {
	t.Helper()

	svc := &UserService{Store: st}
	user, err := svc.Register(context.Background(), email, password, "", "")
	require.NoError(t, err)
	return user
}

func intPtr(v int) *int { return &v }
