package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wpdevquiz/proctor/internal/proctor/domain"
	"github.com/wpdevquiz/proctor/internal/proctor/store"
	"github.com/wpdevquiz/proctor/pkg/slogx"
)

var ErrReasonRequired = errors.New("reason_required")

// CounterState is the outcome of a counter read or increment.
type CounterState struct {
	Count         int
	IsBlocked     bool
	BlockedReason string // empty unless blocked
}

// ModerationService implements the violation/blocking policy: two
// independent durable counters on the User row, each compared against a
// fixed threshold of three.
type ModerationService struct {
	Store store.Store
}

// RecordViolation increments the warning counter and blocks the user when
// it reaches the threshold. The reason names the violation that tipped it.
//
// The counter update is a read-then-write without a transaction, so two
// concurrent reports from the same user can under-count (last writer
// wins). Accepted limitation for a single-person quiz session.
func (s *ModerationService) RecordViolation(ctx context.Context, userID, violationType string) (CounterState, error) {
	violationType = strings.TrimSpace(violationType)
	if violationType == "" {
		violationType = "violation"
	}

	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return CounterState{}, err
	}

	count := user.WarningCount + 1
	if err := s.Store.Users().SetWarningCount(ctx, userID, count); err != nil {
		return CounterState{}, err
	}

	state := CounterState{Count: count, IsBlocked: user.IsBlocked}
	if user.BlockedReason != nil {
		state.BlockedReason = *user.BlockedReason
	}

	if count >= domain.BlockThreshold && !user.IsBlocked {
		reason := fmt.Sprintf("Cheating detected: %s (%d warnings reached)",
			violationType, domain.BlockThreshold)
		if err := s.Store.Users().Block(ctx, userID, reason, time.Now().UTC()); err != nil {
			return CounterState{}, err
		}
		state.IsBlocked = true
		state.BlockedReason = reason

		slogx.FromContext(ctx).Warn("user auto-blocked",
			"user_id", userID,
			"violation_type", violationType,
			"warning_count", count,
		)
	}

	return state, nil
}

// RecordRestart increments the restart counter; same threshold policy as
// RecordViolation with a fixed reason.
func (s *ModerationService) RecordRestart(ctx context.Context, userID string) (CounterState, error) {
	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return CounterState{}, err
	}

	count := user.RestartCount + 1
	if err := s.Store.Users().SetRestartCount(ctx, userID, count); err != nil {
		return CounterState{}, err
	}

	state := CounterState{Count: count, IsBlocked: user.IsBlocked}
	if user.BlockedReason != nil {
		state.BlockedReason = *user.BlockedReason
	}

	if count >= domain.BlockThreshold && !user.IsBlocked {
		reason := fmt.Sprintf("Quiz restarted %d times", domain.BlockThreshold)
		if err := s.Store.Users().Block(ctx, userID, reason, time.Now().UTC()); err != nil {
			return CounterState{}, err
		}
		state.IsBlocked = true
		state.BlockedReason = reason

		slogx.FromContext(ctx).Warn("user auto-blocked",
			"user_id", userID,
			"restart_count", count,
		)
	}

	return state, nil
}

// Warnings returns the current warning counter and block state.
func (s *ModerationService) Warnings(ctx context.Context, userID string) (CounterState, error) {
	return s.counterState(ctx, userID, func(u domain.User) int { return u.WarningCount })
}

// Restarts returns the current restart counter and block state.
func (s *ModerationService) Restarts(ctx context.Context, userID string) (CounterState, error) {
	return s.counterState(ctx, userID, func(u domain.User) int { return u.RestartCount })
}

func (s *ModerationService) counterState(ctx context.Context, userID string, pick func(domain.User) int) (CounterState, error) {
	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return CounterState{}, err
	}
	state := CounterState{Count: pick(user), IsBlocked: user.IsBlocked}
	if user.BlockedReason != nil {
		state.BlockedReason = *user.BlockedReason
	}
	return state, nil
}

// Block manually blocks a user with the given reason. Counters are left
// untouched so an unblock later still resets whatever they were.
func (s *ModerationService) Block(ctx context.Context, userID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	if err := s.Store.Users().Block(ctx, userID, reason, time.Now().UTC()); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("user blocked", "user_id", userID, "reason", reason)
	return nil
}

// Unblock clears the block state and resets BOTH counters to zero.
func (s *ModerationService) Unblock(ctx context.Context, userID string) error {
	if err := s.Store.Users().Unblock(ctx, userID); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("user unblocked", "user_id", userID)
	return nil
}
