package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHS256SignVerify(t *testing.T) {
	t.Parallel()

	h, err := NewHS256([]byte("test-secret"), "proctor")
	require.NoError(t, err)

	claims := NewClaims("user-123", "dev@example.com", true, "proctor", time.Hour, time.Now().UTC())
	token, err := h.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", parsed.Subject)
	require.Equal(t, "dev@example.com", parsed.Email)
	require.True(t, parsed.Admin)
	require.Equal(t, "proctor", parsed.Issuer)
}

func TestHS256RejectsEmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewHS256(nil, "proctor")
	require.Error(t, err)
}

func TestHS256RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	h, err := NewHS256([]byte("test-secret"), "proctor")
	require.NoError(t, err)

	claims := NewClaims("user-123", "dev@example.com", false, "proctor", time.Hour, time.Now().UTC().Add(-2*time.Hour))
	token, err := h.Sign(claims)
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestHS256RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signer, err := NewHS256([]byte("secret-a"), "proctor")
	require.NoError(t, err)
	verifier, err := NewHS256([]byte("secret-b"), "proctor")
	require.NoError(t, err)

	token, err := signer.Sign(NewClaims("user-123", "", false, "proctor", time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestHS256RejectsIssuerMismatch(t *testing.T) {
	t.Parallel()

	signer, err := NewHS256([]byte("test-secret"), "someone-else")
	require.NoError(t, err)
	verifier, err := NewHS256([]byte("test-secret"), "proctor")
	require.NoError(t, err)

	token, err := signer.Sign(NewClaims("user-123", "", false, "someone-else", time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestHS256RejectsMalformedToken(t *testing.T) {
	t.Parallel()

	h, err := NewHS256([]byte("test-secret"), "proctor")
	require.NoError(t, err)

	_, err = h.Verify("not.a.jwt")
	require.Error(t, err)
}
