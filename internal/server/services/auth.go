// Package services contains server-side business logic. This file implements
// AuthService: password login, OTP-based signup, the legacy direct
// registration path and admin bootstrap.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/dbx"
	"github.com/dmitrijs2005/resumekeeper/internal/logging"
	"github.com/dmitrijs2005/resumekeeper/internal/server/auth"
	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
	"github.com/dmitrijs2005/resumekeeper/internal/server/notify"
	"github.com/dmitrijs2005/resumekeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/resumekeeper/internal/server/repositories/repomanager"
)

const otpDigits = 6

// PasswordHasher is a slow salted one-way password function.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// AuthService verifies credentials and manages the account lifecycle
// NONE -> PENDING(otp, expiry) -> ACTIVE.
type AuthService struct {
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
	codec       *auth.TokenCodec
	hasher      PasswordHasher
	notifier    notify.Notifier
	otpTTL      time.Duration
	logger      logging.Logger

	now    func() time.Time
	newOTP func() (string, error)
}

// NewAuthService wires the service; otpTTL is the lifetime of signup codes.
func NewAuthService(tx dbx.Transactor, m repomanager.RepositoryManager, codec *auth.TokenCodec,
	hasher PasswordHasher, n notify.Notifier, otpTTL time.Duration, l logging.Logger) *AuthService {
	return &AuthService{
		tx:          tx,
		repomanager: m,
		codec:       codec,
		hasher:      hasher,
		notifier:    n,
		otpTTL:      otpTTL,
		logger:      l.With("module", "auth_service"),
		now:         time.Now,
		newOTP:      func() (string, error) { return common.RandomDigits(otpDigits) },
	}
}

func (s *AuthService) accounts() accounts.Repository {
	return s.repomanager.Accounts(s.tx.Conn())
}

// Login checks username and password and returns a signed token carrying the
// account role. An unknown user is ErrUserNotFound; a wrong password, or an
// account still waiting for OTP verification, is ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	acc, err := s.accounts().FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrUserNotFound
		}
		return "", fmt.Errorf("find account: %w", err)
	}

	if acc.State() != models.StateActive || !s.hasher.Compare(*acc.PasswordHash, password) {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.codec.Mint(acc.Username, acc.Role)
	if err != nil {
		return "", fmt.Errorf("mint token: %w", err)
	}

	s.logger.Info(ctx, "login succeeded", "username", acc.Username, "role", acc.Role)
	return token, nil
}

// RequestSignup reserves username and email and mails a one-time code.
// The code is sent before anything is stored: when delivery fails the call
// returns ErrNotificationFailure and no pending account exists.
func (s *AuthService) RequestSignup(ctx context.Context, username, email string) error {
	if username == "" || email == "" {
		return fmt.Errorf("%w: username and email are required", common.ErrorValidation)
	}

	repo := s.accounts()

	if err := s.ensureAbsent(repo.FindByUsername(ctx, username)); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrUsernameTaken
		}
		return err
	}
	if err := s.ensureAbsent(repo.FindByEmail(ctx, email)); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrEmailTaken
		}
		return err
	}

	code, err := s.newOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	expires := s.now().Add(s.otpTTL)

	if err := s.notifier.SendOTP(ctx, email, code); err != nil {
		s.logger.Error(ctx, "OTP delivery failed", "email", email, "error", err)
		return fmt.Errorf("%w: %w", common.ErrNotificationFailure, err)
	}

	acc := &models.Account{
		Username:     username,
		Email:        &email,
		Role:         common.RoleUser,
		OTP:          &code,
		OTPExpiresAt: &expires,
	}
	if _, err := repo.Save(ctx, acc); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			// a concurrent signup took the username or email after our checks
			s.logger.Warn(ctx, "OTP sent for a signup that was not stored", "username", username, "email", email)
			return s.takenError(ctx, repo, username)
		}
		return fmt.Errorf("save pending account: %w", err)
	}

	s.logger.Info(ctx, "signup pending OTP verification", "username", username, "email", email)
	return nil
}

// takenError tells which of username or email a conflicting save collided
// on. Accounts are unique on both, so a free username means the email.
func (s *AuthService) takenError(ctx context.Context, repo accounts.Repository, username string) error {
	if _, err := repo.FindByUsername(ctx, username); err == nil {
		return common.ErrUsernameTaken
	}
	return common.ErrEmailTaken
}

// ensureAbsent turns the result of a lookup into nil (nothing found),
// ErrorAlreadyExists (found) or the lookup error.
func (s *AuthService) ensureAbsent(_ *models.Account, err error) error {
	switch {
	case err == nil:
		return common.ErrorAlreadyExists
	case errors.Is(err, common.ErrorNotFound):
		return nil
	default:
		return fmt.Errorf("find account: %w", err)
	}
}

// VerifyOTPAndActivate checks the code mailed to email and, when it matches
// and has not expired, sets the password and activates the account.
// Activated accounts are rejected with ErrAccountAlreadyActive.
func (s *AuthService) VerifyOTPAndActivate(ctx context.Context, email, otp, password string) error {
	repo := s.accounts()

	acc, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrSignupNotFound
		}
		return fmt.Errorf("find account: %w", err)
	}

	if acc.State() == models.StateActive {
		return common.ErrAccountAlreadyActive
	}
	if acc.OTP == nil || acc.OTPExpiresAt == nil {
		return common.ErrSignupNotFound
	}

	now := s.now()
	if now.After(*acc.OTPExpiresAt) {
		return common.ErrOTPExpired
	}
	if subtle.ConstantTimeCompare([]byte(otp), []byte(*acc.OTP)) != 1 {
		return common.ErrOTPMismatch
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	acc.PasswordHash = &hash
	acc.OTP = nil
	acc.OTPExpiresAt = &now
	if _, err := repo.Save(ctx, acc); err != nil {
		return fmt.Errorf("activate account: %w", err)
	}

	s.logger.Info(ctx, "account activated", "username", acc.Username)
	return nil
}

// Register creates an active USER account directly, without OTP.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	repo := s.accounts()
	if err := s.ensureAbsent(repo.FindByUsername(ctx, username)); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrUsernameTaken
		}
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	acc := &models.Account{Username: username, PasswordHash: &hash, Role: common.RoleUser}
	if _, err := repo.Save(ctx, acc); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrUsernameTaken
		}
		return fmt.Errorf("save account: %w", err)
	}

	s.logger.Info(ctx, "account registered", "username", username)
	return nil
}

// EnsureAdmin creates an active ADMIN account, or promotes and re-keys an
// existing one. It reports whether a new account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}

	created := false
	err = s.tx.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		acc, err := repo.FindByUsername(ctx, username)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			acc = &models.Account{Username: username}
			created = true
		case err != nil:
			return fmt.Errorf("find account: %w", err)
		}

		acc.Role = common.RoleAdmin
		acc.PasswordHash = &hash
		acc.OTP = nil
		acc.OTPExpiresAt = nil
		_, err = repo.Save(ctx, acc)
		return err
	})
	if err != nil {
		return false, err
	}

	s.logger.Info(ctx, "admin ensured", "username", username, "created", created)
	return created, nil
}
