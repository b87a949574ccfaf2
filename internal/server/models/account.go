// Package models defines server-side data models persisted in the database.
package models

import "time"

// AccountState is the signup lifecycle stage of an Account.
type AccountState int

const (
	// StatePending: a one-time code was issued, no password yet.
	StatePending AccountState = iota
	// StateActive: a password hash is set and the account can log in.
	StateActive
)

func (s AccountState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// Account is the persisted identity record.
type Account struct {
	ID       string
	Username string
	// Email is nil for accounts created through the legacy register path.
	Email *string
	// PasswordHash is nil while the signup is waiting for OTP verification.
	PasswordHash *string
	Role         string
	OTP          *string
	OTPExpiresAt *time.Time
	CreatedAt    time.Time
}

// State derives the lifecycle stage from the password hash.
func (a *Account) State() AccountState {
	if a.PasswordHash != nil {
		return StateActive
	}
	return StatePending
}
