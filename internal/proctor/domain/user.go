package domain

import "time"

// BlockThreshold is the number of warnings or restarts that flips an
// account into the blocked state.
const BlockThreshold = 3

type User struct {
	ID            string
	Email         string
	PasswordHash  string // argon2id encoded
	DisplayName   string
	IsAdmin       bool
	IsBlocked     bool
	WarningCount  int
	RestartCount  int
	BlockedReason *string    // nullable, set when blocked
	BlockedAt     *time.Time // nullable, set when blocked
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
