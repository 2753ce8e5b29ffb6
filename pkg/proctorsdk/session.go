package proctorsdk

import (
	"context"
	"net/http"
)

// Session is an authenticated client bound to one user's bearer token.
// There is no refresh flow; when the token expires the caller logs in
// again.
type Session struct {
	client *Client
	token  string

	// User is the summary returned at register/login time.
	User UserSummary
}

func newSession(c *Client, auth AuthResponse) *Session {
	return &Session{client: c, token: auth.Token, User: auth.User}
}

// Token returns the raw bearer token, e.g. for the WebSocket query
// parameter.
func (s *Session) Token() string { return s.token }

// ============================================================================
// Quiz
// ============================================================================

// SubmitQuiz stores one completed attempt and returns its identifier.
func (s *Session) SubmitQuiz(ctx context.Context, req SubmitQuizRequest) (SubmitQuizResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/quiz/submit", req)
	if err != nil {
		return SubmitQuizResponse{}, err
	}

	var out SubmitQuizResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return SubmitQuizResponse{}, err
	}
	return out, nil
}

// History returns the caller's attempts, newest first.
func (s *Session) History(ctx context.Context) (HistoryResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/quiz/history", nil)
	if err != nil {
		return HistoryResponse{}, err
	}

	var out HistoryResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return HistoryResponse{}, err
	}
	return out, nil
}

// ============================================================================
// Counters (self-service; admins can target other users)
// ============================================================================

// Warnings returns the warning counter and block state for userID.
func (s *Session) Warnings(ctx context.Context, userID string) (WarningsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/admin/users/"+userID+"/warnings", nil)
	if err != nil {
		return WarningsResponse{}, err
	}

	var out WarningsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return WarningsResponse{}, err
	}
	return out, nil
}

// RecordViolation reports one proctoring violation for userID and returns
// the updated counter and block state.
func (s *Session) RecordViolation(ctx context.Context, userID, violationType string) (WarningsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/admin/users/"+userID+"/warnings",
		RecordViolationRequest{ViolationType: violationType})
	if err != nil {
		return WarningsResponse{}, err
	}

	var out WarningsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return WarningsResponse{}, err
	}
	return out, nil
}

// Restarts returns the restart counter and block state for userID.
func (s *Session) Restarts(ctx context.Context, userID string) (RestartsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/admin/users/"+userID+"/restarts", nil)
	if err != nil {
		return RestartsResponse{}, err
	}

	var out RestartsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return RestartsResponse{}, err
	}
	return out, nil
}

// RecordRestart reports one quiz restart for userID.
func (s *Session) RecordRestart(ctx context.Context, userID string) (RestartsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/admin/users/"+userID+"/restarts", nil)
	if err != nil {
		return RestartsResponse{}, err
	}

	var out RestartsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return RestartsResponse{}, err
	}
	return out, nil
}

// ============================================================================
// Admin
// ============================================================================

// ListUsers returns every account merged with its latest attempt.
func (s *Session) ListUsers(ctx context.Context) (ListUsersResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/admin/users", nil)
	if err != nil {
		return ListUsersResponse{}, err
	}

	var out ListUsersResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return ListUsersResponse{}, err
	}
	return out, nil
}

// ListResults returns every stored attempt, newest first.
func (s *Session) ListResults(ctx context.Context) (ListResultsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/admin/results", nil)
	if err != nil {
		return ListResultsResponse{}, err
	}

	var out ListResultsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return ListResultsResponse{}, err
	}
	return out, nil
}

// Stats returns the dashboard aggregates.
func (s *Session) Stats(ctx context.Context) (StatsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/admin/stats", nil)
	if err != nil {
		return StatsResponse{}, err
	}

	var out StatsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return StatsResponse{}, err
	}
	return out, nil
}

// UpdateStatus overwrites the triage status on all of userID's results.
func (s *Session) UpdateStatus(ctx context.Context, userID, status string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/admin/users/"+userID+"/status",
		UpdateStatusRequest{Status: status})
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// DeleteUserResults removes all of userID's attempts.
func (s *Session) DeleteUserResults(ctx context.Context, userID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/admin/users/"+userID+"/results", nil)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// BlockUser manually blocks an account with the given reason.
func (s *Session) BlockUser(ctx context.Context, userID, reason string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/admin/users/"+userID+"/block",
		BlockUserRequest{Reason: reason})
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// UnblockUser clears an account's block state and resets both counters.
func (s *Session) UnblockUser(ctx context.Context, userID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/admin/users/"+userID+"/unblock", nil)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}
