package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wpdevquiz/proctor/internal/proctor/domain"
	"github.com/wpdevquiz/proctor/internal/proctor/store"
	"github.com/wpdevquiz/proctor/pkg/slogx"
)

var ErrInvalidStatus = errors.New("invalid_status")

// UserOverview is one row of the admin dashboard: the account joined with
// its most recent quiz attempt, if any.
type UserOverview struct {
	ID            string
	Email         string
	DisplayName   string
	IsAdmin       bool
	IsBlocked     bool
	BlockedReason *string
	BlockedAt     *time.Time
	WarningCount  int
	RestartCount  int
	CreatedAt     time.Time

	// Derived from quiz_results. QuizType is "both" when the user has
	// attempted more than one type; nil when they have none.
	QuizType     *string
	AttemptCount int
	LatestScore  *int // rounded percentage
	LatestAt     *time.Time
	LatestQuizID *string
	Status       string // latest result status, "pending" when no attempts
}

// Stats are the dashboard aggregates over all stored results.
type Stats struct {
	TotalAttempts  int
	UniqueUsers    int
	AverageScore   int // rounded mean of per-result percentages
	AverageTime    int // seconds, rounded mean
	TotalCorrect   int
	TotalWrong     int
	PluginAttempts int
	ThemeAttempts  int
}

// AdminService backs the admin dashboard: user overviews, raw results,
// status moderation and aggregate stats.
type AdminService struct {
	Store store.Store
}

// ListUsers joins every account with its attempt summary. Results come
// back newest-first from the store, so the first one seen per user is the
// latest.
func (s *AdminService) ListUsers(ctx context.Context) ([]UserOverview, error) {
	users, err := s.Store.Users().List(ctx)
	if err != nil {
		return nil, err
	}
	results, err := s.Store.QuizResults().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	type summary struct {
		attempts int
		types    map[string]bool
		latest   *domain.QuizResult
	}
	byUser := make(map[string]*summary, len(users))
	for i := range results {
		r := &results[i]
		sum := byUser[r.UserID]
		if sum == nil {
			sum = &summary{types: make(map[string]bool, 2)}
			byUser[r.UserID] = sum
		}
		sum.attempts++
		sum.types[r.QuizType] = true
		if sum.latest == nil {
			sum.latest = r
		}
	}

	overviews := make([]UserOverview, 0, len(users))
	for _, u := range users {
		ov := UserOverview{
			ID:            u.ID,
			Email:         u.Email,
			DisplayName:   u.DisplayName,
			IsAdmin:       u.IsAdmin,
			IsBlocked:     u.IsBlocked,
			BlockedReason: u.BlockedReason,
			BlockedAt:     u.BlockedAt,
			WarningCount:  u.WarningCount,
			RestartCount:  u.RestartCount,
			CreatedAt:     u.CreatedAt,
			Status:        domain.StatusPending,
		}
		if sum := byUser[u.ID]; sum != nil {
			ov.AttemptCount = sum.attempts
			ov.QuizType = quizTypeLabel(sum.types)
			pct := sum.latest.ScorePercent()
			ov.LatestScore = &pct
			at := sum.latest.CompletedAt
			ov.LatestAt = &at
			latestID := sum.latest.ID
			ov.LatestQuizID = &latestID
			ov.Status = sum.latest.Status
		}
		overviews = append(overviews, ov)
	}
	return overviews, nil
}

// ListResults returns every stored attempt, newest first, answers decoded.
func (s *AdminService) ListResults(ctx context.Context) ([]domain.QuizResult, error) {
	return s.Store.QuizResults().ListAll(ctx)
}

// UpdateStatus sets the selection status on ALL of a user's results. The
// dashboard treats selection as a per-candidate decision, not per-attempt.
func (s *AdminService) UpdateStatus(ctx context.Context, userID, status string) error {
	if !domain.ValidStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if _, err := s.Store.Users().GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.Store.QuizResults().UpdateStatusByUser(ctx, userID, status); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("result status updated", "user_id", userID, "status", status)
	return nil
}

// DeleteUserResults removes all of a user's attempts. The account and its
// counters survive.
func (s *AdminService) DeleteUserResults(ctx context.Context, userID string) error {
	if _, err := s.Store.Users().GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.Store.QuizResults().DeleteByUser(ctx, userID); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("quiz results deleted", "user_id", userID)
	return nil
}

// Stats aggregates every result in memory. Fine at quiz-cohort scale;
// revisit with SQL aggregates if result counts ever grow past that.
func (s *AdminService) Stats(ctx context.Context) (Stats, error) {
	results, err := s.Store.QuizResults().ListAll(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{TotalAttempts: len(results)}
	if len(results) == 0 {
		return stats, nil
	}

	users := make(map[string]bool, len(results))
	var scoreSum float64
	var timeSum int
	for i := range results {
		r := &results[i]
		users[r.UserID] = true
		if r.TotalQuestions > 0 {
			scoreSum += float64(r.Score) / float64(r.TotalQuestions) * 100
		}
		timeSum += r.TimeTakenSeconds
		stats.TotalCorrect += r.CorrectAnswers
		stats.TotalWrong += r.WrongAnswers
		switch r.QuizType {
		case domain.QuizTypePlugin:
			stats.PluginAttempts++
		case domain.QuizTypeTheme:
			stats.ThemeAttempts++
		}
	}
	stats.UniqueUsers = len(users)
	stats.AverageScore = int(scoreSum/float64(len(results)) + 0.5)
	stats.AverageTime = roundDiv(timeSum, len(results))
	return stats, nil
}

func quizTypeLabel(types map[string]bool) *string {
	var label string
	switch {
	case len(types) == 0:
		return nil
	case len(types) > 1:
		label = domain.QuizTypeBoth
	default:
		for t := range types {
			label = t
		}
	}
	return &label
}

func roundDiv(sum, n int) int {
	return int(float64(sum)/float64(n) + 0.5)
}
