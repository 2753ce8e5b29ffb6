package proctorsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client is a client for the proctored quiz service. It provides the
// unauthenticated operations and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new service client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates an account and returns an authenticated session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	resp, err := c.postJSON(ctx, "/auth/register", req)
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return newSession(c, out), nil
}

// Login authenticates an existing account and returns a session. Blocked
// accounts come back as an *APIError with IsBlocked() true and the stored
// reason attached.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	resp, err := c.postJSON(ctx, "/auth/login", req)
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, out), nil
}

// NewSessionFromToken builds a session from a previously issued token,
// e.g. one the browser kept in local storage.
func (c *Client) NewSessionFromToken(token string, user UserSummary) *Session {
	return &Session{client: c, token: token, User: user}
}

// Health checks service liveness.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return HealthResponse{}, err
	}

	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return HealthResponse{}, err
	}
	return out, nil
}
