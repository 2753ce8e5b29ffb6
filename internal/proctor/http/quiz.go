package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/wpdevquiz/proctor/internal/proctor/domain"
	"github.com/wpdevquiz/proctor/internal/proctor/service"
	"github.com/wpdevquiz/proctor/internal/proctor/store"
	"github.com/wpdevquiz/proctor/pkg/httpx"
	"github.com/wpdevquiz/proctor/pkg/proctorsdk"
	"github.com/wpdevquiz/proctor/pkg/slogx"
)

// QuizHandler serves attempt submission and the caller's own history.
type QuizHandler struct {
	QuizService *service.QuizService
}

func (h *QuizHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req proctorsdk.SubmitQuizRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resultID, err := h.QuizService.Submit(ctx, httpx.UserIDFromCtx(ctx), service.Submission{
		QuizType:         req.QuizType,
		Difficulty:       req.Difficulty,
		Score:            req.Score,
		TotalQuestions:   req.TotalQuestions,
		CorrectAnswers:   req.CorrectAnswers,
		WrongAnswers:     req.WrongAnswers,
		TimeTakenSeconds: req.TimeTakenSeconds,
		Answers:          answersFromSDK(req.DetailedAnswers),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSubmission):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Missing required quiz data")
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "user_not_found", "User not found")
		default:
			log.Error("failed to save quiz result", "err", err)
			writeServerError(w, "Failed to save quiz result")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, proctorsdk.SubmitQuizResponse{
		Message:  "Quiz results saved successfully",
		ResultID: resultID,
	})
}

func (h *QuizHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	results, err := h.QuizService.History(ctx, httpx.UserIDFromCtx(ctx))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to fetch quiz history", "err", err)
		writeServerError(w, "Failed to fetch quiz history")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, proctorsdk.HistoryResponse{
		Results: resultsToSDK(results),
	})
}

func answersFromSDK(in []proctorsdk.AnswerRecord) []domain.AnswerRecord {
	if in == nil {
		return nil
	}
	out := make([]domain.AnswerRecord, len(in))
	for i, a := range in {
		out[i] = domain.AnswerRecord{
			QuestionID:     a.QuestionID,
			Question:       a.Question,
			SelectedOption: a.SelectedOption,
			CorrectOption:  a.CorrectOption,
			IsCorrect:      a.IsCorrect,
			Options:        a.Options,
		}
	}
	return out
}

func answersToSDK(in []domain.AnswerRecord) []proctorsdk.AnswerRecord {
	out := make([]proctorsdk.AnswerRecord, len(in))
	for i, a := range in {
		out[i] = proctorsdk.AnswerRecord{
			QuestionID:     a.QuestionID,
			Question:       a.Question,
			SelectedOption: a.SelectedOption,
			CorrectOption:  a.CorrectOption,
			IsCorrect:      a.IsCorrect,
			Options:        a.Options,
		}
	}
	return out
}

func resultToSDK(r domain.QuizResult) proctorsdk.QuizResult {
	return proctorsdk.QuizResult{
		ID:               r.ID,
		UserID:           r.UserID,
		UserEmail:        r.UserEmail,
		UserName:         r.UserName,
		QuizType:         r.QuizType,
		Difficulty:       r.Difficulty,
		Score:            r.Score,
		TotalQuestions:   r.TotalQuestions,
		CorrectAnswers:   r.CorrectAnswers,
		WrongAnswers:     r.WrongAnswers,
		TimeTakenSeconds: r.TimeTakenSeconds,
		DetailedAnswers:  answersToSDK(r.Answers),
		Status:           r.Status,
		CompletedAt:      r.CompletedAt.Format(time.RFC3339),
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
	}
}

func resultsToSDK(in []domain.QuizResult) []proctorsdk.QuizResult {
	out := make([]proctorsdk.QuizResult, len(in))
	for i := range in {
		out[i] = resultToSDK(in[i])
	}
	return out
}
