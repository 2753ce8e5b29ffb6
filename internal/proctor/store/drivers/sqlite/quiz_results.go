package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wpdevquiz/proctor/internal/proctor/domain"
)

type quizResultsRepo struct {
	db dbtx
}

const resultColumns = `id, user_id, user_email, user_name, quiz_type, difficulty,
	score, total_questions, correct_answers, wrong_answers, time_taken_seconds,
	detailed_answers, status, completed_at, created_at`

func (r *quizResultsRepo) Create(ctx context.Context, qr domain.QuizResult) error {
	answers, err := json.Marshal(qr.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO quiz_results (
			id, user_id, user_email, user_name, quiz_type, difficulty,
			score, total_questions, correct_answers, wrong_answers,
			time_taken_seconds, detailed_answers, status, completed_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		qr.ID, qr.UserID, qr.UserEmail, qr.UserName, qr.QuizType, qr.Difficulty,
		qr.Score, qr.TotalQuestions, qr.CorrectAnswers, qr.WrongAnswers,
		qr.TimeTakenSeconds, string(answers), qr.Status, qr.CompletedAt, qr.CreatedAt,
	)
	return err
}

func (r *quizResultsRepo) ListByUser(ctx context.Context, userID string) ([]domain.QuizResult, error) {
	return r.list(ctx,
		`SELECT `+resultColumns+` FROM quiz_results
		 WHERE user_id = ?
		 ORDER BY completed_at DESC, id DESC`, userID)
}

func (r *quizResultsRepo) ListAll(ctx context.Context) ([]domain.QuizResult, error) {
	return r.list(ctx,
		`SELECT `+resultColumns+` FROM quiz_results
		 ORDER BY completed_at DESC, id DESC`)
}

func (r *quizResultsRepo) UpdateStatusByUser(ctx context.Context, userID, status string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE quiz_results SET status = ? WHERE user_id = ?`, status, userID)
	return err
}

func (r *quizResultsRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM quiz_results WHERE user_id = ?`, userID)
	return err
}

func (r *quizResultsRepo) list(ctx context.Context, query string, args ...any) ([]domain.QuizResult, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.QuizResult
	for rows.Next() {
		var (
			qr      domain.QuizResult
			answers string
		)
		err := rows.Scan(
			&qr.ID, &qr.UserID, &qr.UserEmail, &qr.UserName, &qr.QuizType,
			&qr.Difficulty, &qr.Score, &qr.TotalQuestions, &qr.CorrectAnswers,
			&qr.WrongAnswers, &qr.TimeTakenSeconds, &answers, &qr.Status,
			&qr.CompletedAt, &qr.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(answers), &qr.Answers); err != nil {
			return nil, fmt.Errorf("decode answers for result %s: %w", qr.ID, err)
		}
		results = append(results, qr)
	}
	return results, rows.Err()
}
