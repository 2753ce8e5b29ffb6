package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/wpdevquiz/proctor/internal/proctor/domain"
	"github.com/wpdevquiz/proctor/internal/proctor/service"
	"github.com/wpdevquiz/proctor/pkg/httpx"
	"github.com/wpdevquiz/proctor/pkg/jwtx"
	"github.com/wpdevquiz/proctor/pkg/proctorsdk"
	"github.com/wpdevquiz/proctor/pkg/slogx"
)

// AuthHandler serves registration and login. Both reply with a signed
// bearer token plus a user summary.
type AuthHandler struct {
	UserService *service.UserService
	Signer      jwtx.Signer
	Issuer      string
	TokenTTL    time.Duration
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req proctorsdk.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.UserService.Register(ctx, req.Email, req.Password, req.DisplayName, req.AdminSecretKey)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			httpx.WriteError(w, http.StatusConflict, "email_taken", "User already exists")
			return
		}
		log.Error("failed to register user", "err", err)
		writeServerError(w, "Failed to register user")
		return
	}

	token, err := h.signToken(user)
	if err != nil {
		log.Error("failed to sign token", "err", err)
		writeServerError(w, "Failed to issue token")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, proctorsdk.AuthResponse{
		Message: "User registered successfully",
		User:    userSummary(user),
		Token:   token,
	})
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req proctorsdk.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.UserService.Login(ctx, req.Email, req.Password, req.AdminSecretKey)
	if err != nil {
		var blocked *service.BlockedError
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
		case errors.As(err, &blocked):
			httpx.WriteJSON(w, http.StatusForbidden, proctorsdk.ErrorResponse{
				Error:         "account_blocked",
				BlockedReason: blocked.Reason,
			})
		default:
			log.Error("failed to log in user", "err", err)
			writeServerError(w, "Failed to log in")
		}
		return
	}

	token, err := h.signToken(user)
	if err != nil {
		log.Error("failed to sign token", "err", err)
		writeServerError(w, "Failed to issue token")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, proctorsdk.AuthResponse{
		Message: "Login successful",
		User:    userSummary(user),
		Token:   token,
	})
}

func (h *AuthHandler) signToken(user domain.User) (string, error) {
	ttl := h.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}
	claims := jwtx.NewClaims(user.ID, user.Email, user.IsAdmin, h.Issuer, ttl, time.Now().UTC())
	return h.Signer.Sign(claims)
}

func userSummary(u domain.User) proctorsdk.UserSummary {
	return proctorsdk.UserSummary{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		IsAdmin:     u.IsAdmin,
	}
}
