package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/wpdevquiz/proctor/internal/proctor/service"
	"github.com/wpdevquiz/proctor/internal/proctor/store"
	"github.com/wpdevquiz/proctor/pkg/httpx"
	"github.com/wpdevquiz/proctor/pkg/proctorsdk"
	"github.com/wpdevquiz/proctor/pkg/slogx"
)

// AdminHandler serves the dashboard: user overviews, raw results, triage
// status updates, result deletion and aggregate stats.
type AdminHandler struct {
	AdminService *service.AdminService
}

func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	overviews, err := h.AdminService.ListUsers(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list users", "err", err)
		writeServerError(w, "Failed to fetch users")
		return
	}

	users := make([]proctorsdk.AdminUser, len(overviews))
	for i, ov := range overviews {
		users[i] = adminUserToSDK(ov)
	}

	httpx.WriteJSON(w, http.StatusOK, proctorsdk.ListUsersResponse{
		Users: users,
		Total: len(users),
	})
}

func (h *AdminHandler) HandleListResults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	results, err := h.AdminService.ListResults(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list results", "err", err)
		writeServerError(w, "Failed to fetch results")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, proctorsdk.ListResultsResponse{
		Results: resultsToSDK(results),
		Total:   len(results),
	})
}

func (h *AdminHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("id")

	var req proctorsdk.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.AdminService.UpdateStatus(ctx, userID, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
				`Invalid status. Must be "selected" or "pending"`)
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "user_not_found", "User not found")
		default:
			slogx.FromContext(ctx).Error("failed to update status", "err", err)
			writeServerError(w, "Failed to update status")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, proctorsdk.MessageResponse{
		Message: "User status updated to " + req.Status,
	})
}

func (h *AdminHandler) HandleDeleteResults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("id")

	if err := h.AdminService.DeleteUserResults(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "user_not_found", "User not found")
			return
		}
		slogx.FromContext(ctx).Error("failed to delete results", "err", err)
		writeServerError(w, "Failed to delete results")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, proctorsdk.MessageResponse{
		Message: "User quiz results deleted successfully",
	})
}

func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.AdminService.Stats(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to compute stats", "err", err)
		writeServerError(w, "Failed to fetch stats")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, proctorsdk.StatsResponse{
		TotalAttempts:  stats.TotalAttempts,
		UniqueUsers:    stats.UniqueUsers,
		AverageScore:   stats.AverageScore,
		AverageTime:    stats.AverageTime,
		TotalCorrect:   stats.TotalCorrect,
		TotalWrong:     stats.TotalWrong,
		PluginAttempts: stats.PluginAttempts,
		ThemeAttempts:  stats.ThemeAttempts,
	})
}

func adminUserToSDK(ov service.UserOverview) proctorsdk.AdminUser {
	out := proctorsdk.AdminUser{
		ID:            ov.ID,
		Name:          ov.DisplayName,
		Email:         ov.Email,
		Status:        ov.Status,
		QuizType:      ov.QuizType,
		Score:         ov.LatestScore,
		LatestQuizID:  ov.LatestQuizID,
		AttemptCount:  ov.AttemptCount,
		IsAdmin:       ov.IsAdmin,
		IsBlocked:     ov.IsBlocked,
		WarningCount:  ov.WarningCount,
		RestartCount:  ov.RestartCount,
		BlockedReason: ov.BlockedReason,
	}
	if ov.LatestAt != nil {
		s := ov.LatestAt.Format(time.RFC3339)
		out.CompletedAt = &s
	}
	if ov.BlockedAt != nil {
		s := ov.BlockedAt.Format(time.RFC3339)
		out.BlockedAt = &s
	}
	return out
}
