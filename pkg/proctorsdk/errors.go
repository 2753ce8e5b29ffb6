package proctorsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes the service replies with.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeEmailTaken         = "email_taken"
	ErrorCodeAccountBlocked     = "account_blocked"
	ErrorCodeAdminRequired      = "admin_required"
	ErrorCodeAccessDenied       = "access_denied"
	ErrorCodeUserNotFound       = "user_not_found"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
	ErrorCodeServerError        = "server_error"
)

// APIError is a non-2xx reply from the service.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g., "invalid_request")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description,omitempty"`

	// BlockedReason is only set on blocked-account login failures
	BlockedReason string `json:"blockedReason,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Description)
	}
	return e.Code
}

// IsBlocked reports whether this error is a blocked-account rejection.
func (e *APIError) IsBlocked() bool {
	return e.Code == ErrorCodeAccountBlocked
}

// parseErrorResponse turns a non-2xx body into a typed *APIError. Bodies
// that aren't the standard error shape still produce a usable error with
// the status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = ErrorCodeServerError
		apiErr.Description = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}
	return apiErr
}
