package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wpdevquiz/proctor/internal/proctor/domain"
	"github.com/wpdevquiz/proctor/internal/proctor/store"
)

func validSubmission() Submission {
	sel := 0
	return Submission{
		QuizType:         domain.QuizTypePlugin,
		Difficulty:       domain.DifficultyBeginner,
		Score:            intPtr(8),
		TotalQuestions:   10,
		CorrectAnswers:   8,
		WrongAnswers:     2,
		TimeTakenSeconds: 540,
		Answers: []domain.AnswerRecord{
			{QuestionID: "q1", Question: "Which file registers a plugin?", SelectedOption: &sel, CorrectOption: 0, IsCorrect: true, Options: []string{"plugin.php", "theme.json"}},
		},
	}
}

func TestSubmit(t *testing.T) {
	st := newTestStore(t)
	svc := &QuizService{Store: st}
	ctx := context.Background()

	user := registerTestUser(t, st, "dev@example.com", "password123")

	resultID, err := svc.Submit(ctx, user.ID, validSubmission())
	require.NoError(t, err)
	require.NotEmpty(t, resultID)

	results, err := svc.History(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)

	got := results[0]
	require.Equal(t, resultID, got.ID)
	require.Equal(t, domain.StatusPending, got.Status)
	// Email and name are snapshotted onto the row
	require.Equal(t, "dev@example.com", got.UserEmail)
	require.Equal(t, "dev", got.UserName)
	require.Equal(t, 8, got.Score)
	require.Equal(t, 80, got.ScorePercent())
	require.Len(t, got.Answers, 1)
}

func TestSubmitValidation(t *testing.T) {
	st := newTestStore(t)
	svc := &QuizService{Store: st}
	ctx := context.Background()

	user := registerTestUser(t, st, "dev2@example.com", "password123")

	cases := []struct {
		name   string
		mutate func(*Submission)
	}{
		{"missing quiz type", func(s *Submission) { s.QuizType = "" }},
		{"missing difficulty", func(s *Submission) { s.Difficulty = "" }},
		{"missing score", func(s *Submission) { s.Score = nil }},
		{"zero total questions", func(s *Submission) { s.TotalQuestions = 0 }},
		{"unknown quiz type", func(s *Submission) { s.QuizType = "woocommerce" }},
		{"unknown difficulty", func(s *Submission) { s.Difficulty = "impossible" }},
		{"negative score", func(s *Submission) { s.Score = intPtr(-1) }},
		{"negative total questions", func(s *Submission) { s.TotalQuestions = -1 }},
		{"score above total questions", func(s *Submission) { s.Score = intPtr(11) }},
		{"answer counts above total questions", func(s *Submission) { s.CorrectAnswers = 9; s.WrongAnswers = 2 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := validSubmission()
			tc.mutate(&sub)
			_, err := svc.Submit(ctx, user.ID, sub)
			require.ErrorIs(t, err, ErrInvalidSubmission)
		})
	}
}

func TestSubmitUnknownUser(t *testing.T) {
	st := newTestStore(t)
	svc := &QuizService{Store: st}

	_, err := svc.Submit(context.Background(), "no-such-user", validSubmission())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSubmitDuplicatesAllowed(t *testing.T) {
	st := newTestStore(t)
	svc := &QuizService{Store: st}
	ctx := context.Background()

	user := registerTestUser(t, st, "repeat@example.com", "password123")

	id1, err := svc.Submit(ctx, user.ID, validSubmission())
	require.NoError(t, err)
	id2, err := svc.Submit(ctx, user.ID, validSubmission())
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)

	results, err := svc.History(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, results, 2)
}
