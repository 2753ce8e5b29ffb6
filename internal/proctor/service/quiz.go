package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wpdevquiz/proctor/internal/proctor/domain"
	"github.com/wpdevquiz/proctor/internal/proctor/store"
	"github.com/wpdevquiz/proctor/pkg/idx"
	"github.com/wpdevquiz/proctor/pkg/slogx"
)

var ErrInvalidSubmission = errors.New("invalid_submission")

// Submission is one finished attempt as reported by the client. Score is a
// pointer so "score: 0" and "score missing" stay distinguishable.
type Submission struct {
	QuizType         string
	Difficulty       string
	Score            *int
	TotalQuestions   int
	CorrectAnswers   int
	WrongAnswers     int
	TimeTakenSeconds int
	Answers          []domain.AnswerRecord
}

// QuizService persists completed attempts and serves a user's history.
// There is no idempotency key: submitting twice stores two rows.
type QuizService struct {
	Store store.Store
}

// Submit validates and stores one attempt, snapshotting the user's current
// email and display name onto the row. Returns the new result id.
func (s *QuizService) Submit(ctx context.Context, userID string, sub Submission) (string, error) {
	if err := validateSubmission(sub); err != nil {
		return "", err
	}

	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	result := domain.QuizResult{
		ID:               idx.New().String(),
		UserID:           user.ID,
		UserEmail:        user.Email,
		UserName:         user.DisplayName,
		QuizType:         sub.QuizType,
		Difficulty:       sub.Difficulty,
		Score:            *sub.Score,
		TotalQuestions:   sub.TotalQuestions,
		CorrectAnswers:   sub.CorrectAnswers,
		WrongAnswers:     sub.WrongAnswers,
		TimeTakenSeconds: sub.TimeTakenSeconds,
		Answers:          sub.Answers,
		Status:           domain.StatusPending,
		CompletedAt:      now,
		CreatedAt:        now,
	}

	if result.UserName == "" {
		result.UserName = emailLocalPart(user.Email)
	}

	if err := s.Store.QuizResults().Create(ctx, result); err != nil {
		return "", err
	}

	slogx.FromContext(ctx).Info("quiz result saved",
		"result_id", result.ID,
		"user_id", user.ID,
		"quiz_type", result.QuizType,
		"score", result.Score,
	)
	return result.ID, nil
}

// History returns the user's attempts, newest first, answers decoded.
func (s *QuizService) History(ctx context.Context, userID string) ([]domain.QuizResult, error) {
	return s.Store.QuizResults().ListByUser(ctx, userID)
}

func validateSubmission(sub Submission) error {
	switch {
	case sub.QuizType == "" || sub.Difficulty == "" || sub.Score == nil || sub.TotalQuestions == 0:
		return fmt.Errorf("%w: missing required quiz data", ErrInvalidSubmission)
	case !domain.ValidQuizType(sub.QuizType):
		return fmt.Errorf("%w: unknown quiz type %q", ErrInvalidSubmission, sub.QuizType)
	case !domain.ValidDifficulty(sub.Difficulty):
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidSubmission, sub.Difficulty)
	case sub.TotalQuestions < 0 || *sub.Score < 0:
		return fmt.Errorf("%w: negative counts", ErrInvalidSubmission)
	case *sub.Score > sub.TotalQuestions:
		return fmt.Errorf("%w: score exceeds total questions", ErrInvalidSubmission)
	case sub.CorrectAnswers+sub.WrongAnswers > sub.TotalQuestions:
		return fmt.Errorf("%w: answer counts exceed total questions", ErrInvalidSubmission)
	}
	return nil
}
