package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wpdevquiz/proctor/internal/proctor/store"
)

func TestRecordViolationBlocksAtThreshold(t *testing.T) {
	st := newTestStore(t)
	svc := &ModerationService{Store: st}
	ctx := context.Background()

	user := registerTestUser(t, st, "cheater@example.com", "password123")

	state, err := svc.RecordViolation(ctx, user.ID, "tab_switch")
	require.NoError(t, err)
	require.Equal(t, 1, state.Count)
	require.False(t, state.IsBlocked)

	state, err = svc.RecordViolation(ctx, user.ID, "window_blur")
	require.NoError(t, err)
	require.Equal(t, 2, state.Count)
	require.False(t, state.IsBlocked)

	// Third strike blocks, naming the violation that tipped it
	state, err = svc.RecordViolation(ctx, user.ID, "devtools_attempt")
	require.NoError(t, err)
	require.Equal(t, 3, state.Count)
	require.True(t, state.IsBlocked)
	require.Equal(t, "Cheating detected: devtools_attempt (3 warnings reached)", state.BlockedReason)

	stored, err := st.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, stored.IsBlocked)
	require.NotNil(t, stored.BlockedAt)
	require.Equal(t, 3, stored.WarningCount)
	require.Zero(t, stored.RestartCount)
}

func TestRecordViolationAfterBlockKeepsCounting(t *testing.T) {
	st := newTestStore(t)
	svc := &ModerationService{Store: st}
	ctx := context.Background()

	user := registerTestUser(t, st, "persistent@example.com", "password123")
	for i := 0; i < 3; i++ {
		_, err := svc.RecordViolation(ctx, user.ID, "tab_switch")
		require.NoError(t, err)
	}

	// A fourth violation increments but must not rewrite the reason
	state, err := svc.RecordViolation(ctx, user.ID, "copy_paste")
	require.NoError(t, err)
	require.Equal(t, 4, state.Count)
	require.True(t, state.IsBlocked)
	require.Equal(t, "Cheating detected: tab_switch (3 warnings reached)", state.BlockedReason)
}

func TestRecordRestartBlocksAtThreshold(t *testing.T) {
	st := newTestStore(t)
	svc := &ModerationService{Store: st}
	ctx := context.Background()

	user := registerTestUser(t, st, "restarter@example.com", "password123")

	for want := 1; want <= 2; want++ {
		state, err := svc.RecordRestart(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, want, state.Count)
		require.False(t, state.IsBlocked)
	}

	state, err := svc.RecordRestart(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 3, state.Count)
	require.True(t, state.IsBlocked)
	require.Equal(t, "Quiz restarted 3 times", state.BlockedReason)

	// Warning counter untouched
	stored, err := st.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Zero(t, stored.WarningCount)
	require.Equal(t, 3, stored.RestartCount)
}

func TestCountersAreIndependent(t *testing.T) {
	st := newTestStore(t)
	svc := &ModerationService{Store: st}
	ctx := context.Background()

	user := registerTestUser(t, st, "mixed@example.com", "password123")

	_, err := svc.RecordViolation(ctx, user.ID, "tab_switch")
	require.NoError(t, err)
	_, err = svc.RecordRestart(ctx, user.ID)
	require.NoError(t, err)
	_, err = svc.RecordViolation(ctx, user.ID, "window_blur")
	require.NoError(t, err)
	_, err = svc.RecordRestart(ctx, user.ID)
	require.NoError(t, err)

	// 2 + 2 does not block; neither counter reached 3
	warnings, err := svc.Warnings(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 2, warnings.Count)
	require.False(t, warnings.IsBlocked)

	restarts, err := svc.Restarts(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 2, restarts.Count)
	require.False(t, restarts.IsBlocked)
}

func TestManualBlockAndUnblock(t *testing.T) {
	st := newTestStore(t)
	svc := &ModerationService{Store: st}
	ctx := context.Background()

	user := registerTestUser(t, st, "manual@example.com", "password123")

	_, err := svc.RecordViolation(ctx, user.ID, "tab_switch")
	require.NoError(t, err)

	t.Run("block requires a reason", func(t *testing.T) {
		require.ErrorIs(t, svc.Block(ctx, user.ID, "  "), ErrReasonRequired)
	})

	t.Run("manual block leaves counters", func(t *testing.T) {
		require.NoError(t, svc.Block(ctx, user.ID, "Suspicious submission pattern"))

		stored, err := st.Users().GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.True(t, stored.IsBlocked)
		require.Equal(t, "Suspicious submission pattern", *stored.BlockedReason)
		require.Equal(t, 1, stored.WarningCount)
	})

	t.Run("unblock resets both counters", func(t *testing.T) {
		require.NoError(t, svc.Unblock(ctx, user.ID))

		stored, err := st.Users().GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.False(t, stored.IsBlocked)
		require.Nil(t, stored.BlockedReason)
		require.Nil(t, stored.BlockedAt)
		require.Zero(t, stored.WarningCount)
		require.Zero(t, stored.RestartCount)
	})
}

func TestModerationUnknownUser(t *testing.T) {
	st := newTestStore(t)
	svc := &ModerationService{Store: st}
	ctx := context.Background()

	_, err := svc.RecordViolation(ctx, "ghost", "tab_switch")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Warnings(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, svc.Unblock(ctx, "ghost"), store.ErrNotFound)
}
