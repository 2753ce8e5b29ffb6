package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wpdevquiz/proctor/internal/proctor/domain"
	"github.com/wpdevquiz/proctor/internal/proctor/store"
	"github.com/wpdevquiz/proctor/pkg/cryptox"
	"github.com/wpdevquiz/proctor/pkg/idx"
	"github.com/wpdevquiz/proctor/pkg/slogx"
)

var (
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// BlockedError is returned on login when the account is blocked. It carries
// the stored reason so the client can show it verbatim.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("account blocked: %s", e.Reason)
}

// DefaultBlockedReason is shown when a user was blocked without a stored
// reason (legacy rows).
const DefaultBlockedReason = "Your account has been blocked due to violations."

// UserService owns registration, login and the admin-key promotion side
// effect.
type UserService struct {
	Store store.Store

	// AdminKey is the shared admin-promotion secret. When empty, no key
	// ever matches and nobody can self-promote.
	AdminKey string
}

// Register creates a user with a hashed password. The display name
// defaults to the email local part, matching what the quiz UI shows.
func (s *UserService) Register(ctx context.Context, email, password, displayName, adminKey string) (domain.User, error) {
	email = normalizeEmail(email)

	if displayName == "" {
		displayName = emailLocalPart(email)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		IsAdmin:      s.adminKeyMatches(adminKey),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The duplicate check and insert run atomically; the UNIQUE constraint
	// is the backstop for anything that slips between them.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetByEmail(ctx, email)
		if err == nil {
			return ErrEmailTaken
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID, "admin", user.IsAdmin)
	return user, nil
}

// Login authenticates a user. A matching admin key promotes the account as
// a side effect before the caller issues the token.
func (s *UserService) Login(ctx context.Context, email, password, adminKey string) (domain.User, error) {
	email = normalizeEmail(email)

	user, err := s.Store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	if user.IsBlocked {
		reason := DefaultBlockedReason
		if user.BlockedReason != nil && *user.BlockedReason != "" {
			reason = *user.BlockedReason
		}
		return domain.User{}, &BlockedError{Reason: reason}
	}

	if !user.IsAdmin && s.adminKeyMatches(adminKey) {
		if err := s.Store.Users().SetAdmin(ctx, user.ID); err != nil {
			return domain.User{}, err
		}
		user.IsAdmin = true
		slogx.FromContext(ctx).Info("user promoted to admin", "user_id", user.ID)
	}

	return user, nil
}

// GetByID fetches a user by id.
func (s *UserService) GetByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetByID(ctx, userID)
}

func (s *UserService) adminKeyMatches(adminKey string) bool {
	return s.AdminKey != "" && strings.TrimSpace(adminKey) == s.AdminKey
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emailLocalPart(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
