// Package common defines shared constants and sentinel errors used across
// the resumekeeper server layers. Callers should use errors.Is to match
// these values; services wrap them with extra context.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorValidation   = errors.New("validation error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("access denied")

	// Login errors. They are kept distinct on purpose, see DESIGN.md.
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Token errors. The gate treats both as "not authenticated".
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Signup errors.
	ErrUsernameTaken       = errors.New("username already exists")
	ErrEmailTaken          = errors.New("email is already registered")
	ErrNotificationFailure = errors.New("failed to send OTP email, please try again later")

	// OTP verification errors.
	ErrSignupNotFound       = errors.New("no signup request was found for this email")
	ErrOTPExpired           = errors.New("OTP expired, request a new one")
	ErrOTPMismatch          = errors.New("invalid OTP")
	ErrAccountAlreadyActive = errors.New("this account is already active, please log in")

	// Record errors.
	ErrStudentNotFound = errors.New("student not found")
	ErrResumeNotFound  = errors.New("resume not found")
)
