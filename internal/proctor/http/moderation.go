package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/wpdevquiz/proctor/internal/proctor/service"
	"github.com/wpdevquiz/proctor/internal/proctor/store"
	"github.com/wpdevquiz/proctor/pkg/httpx"
	"github.com/wpdevquiz/proctor/pkg/proctorsdk"
	"github.com/wpdevquiz/proctor/pkg/slogx"
)

// ModerationHandler serves the violation counters and the block/unblock
// admin actions. The counter routes are self-or-admin; blocking is
// admin-only (enforced by the router middleware).
type ModerationHandler struct {
	ModerationService *service.ModerationService
}

func (h *ModerationHandler) HandleGetWarnings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.ModerationService.Warnings(ctx, r.PathValue("id"))
	if err != nil {
		h.writeCounterError(w, ctx, err, "fetch warnings")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, proctorsdk.WarningsResponse{
		WarningCount:  state.Count,
		IsBlocked:     state.IsBlocked,
		BlockedReason: state.BlockedReason,
	})
}

// HandleRecordViolation increments the warning counter; the violation type
// from the body ends up in the block reason when the threshold is hit.
func (h *ModerationHandler) HandleRecordViolation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req proctorsdk.RecordViolationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	state, err := h.ModerationService.RecordViolation(ctx, r.PathValue("id"), req.ViolationType)
	if err != nil {
		h.writeCounterError(w, ctx, err, "record violation")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, proctorsdk.WarningsResponse{
		WarningCount:  state.Count,
		IsBlocked:     state.IsBlocked,
		BlockedReason: state.BlockedReason,
	})
}

func (h *ModerationHandler) HandleGetRestarts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.ModerationService.Restarts(ctx, r.PathValue("id"))
	if err != nil {
		h.writeCounterError(w, ctx, err, "fetch restarts")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, proctorsdk.RestartsResponse{
		RestartCount:  state.Count,
		IsBlocked:     state.IsBlocked,
		BlockedReason: state.BlockedReason,
	})
}

func (h *ModerationHandler) HandleRecordRestart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.ModerationService.RecordRestart(ctx, r.PathValue("id"))
	if err != nil {
		h.writeCounterError(w, ctx, err, "record restart")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, proctorsdk.RestartsResponse{
		RestartCount:  state.Count,
		IsBlocked:     state.IsBlocked,
		BlockedReason: state.BlockedReason,
	})
}

func (h *ModerationHandler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req proctorsdk.BlockUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.ModerationService.Block(ctx, r.PathValue("id"), req.Reason); err != nil {
		switch {
		case errors.Is(err, service.ErrReasonRequired):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Block reason is required")
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "user_not_found", "User not found")
		default:
			slogx.FromContext(ctx).Error("failed to block user", "err", err)
			writeServerError(w, "Failed to block user")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, proctorsdk.MessageResponse{
		Message: "User blocked successfully",
	})
}

func (h *ModerationHandler) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.ModerationService.Unblock(ctx, r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "user_not_found", "User not found")
			return
		}
		slogx.FromContext(ctx).Error("failed to unblock user", "err", err)
		writeServerError(w, "Failed to unblock user")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, proctorsdk.MessageResponse{
		Message: "User unblocked successfully",
	})
}

func (h *ModerationHandler) writeCounterError(w http.ResponseWriter, ctx context.Context, err error, action string) {
	if errors.Is(err, store.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "user_not_found", "User not found")
		return
	}
	slogx.FromContext(ctx).Error("moderation action failed", "action", action, "err", err)
	writeServerError(w, "Failed to "+action)
}
