package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/adminpanel/internal/client/auth"
	"github.com/dmitrijs2005/adminpanel/internal/logging"
)

var (
	ErrOTPFormat        = errors.New("otp must be 6 digits")
	ErrInvalidOTP       = errors.New("otp is incorrect")
	ErrResendTooSoon    = errors.New("otp was sent too recently")
	ErrWeakPassword     = errors.New("password does not meet requirements")
	ErrPasswordMismatch = errors.New("passwords don't match")
)

const (
	otpLength = 6

	// SpecialCharacters is the set a new password must draw at least one
	// character from.
	SpecialCharacters = `!@#$%^&*(),.?":{}|<>`
)

// RecoveryConfig configures the forgot-password flow.
type RecoveryConfig struct {
	// Code is the one accepted OTP.
	Code string
	// Cooldown between two OTP sends.
	Cooldown time.Duration
	// Secret signs reset grants.
	Secret []byte
}

// PasswordChecks is the outcome of each password rule.
type PasswordChecks struct {
	MinLength  bool
	HasUpper   bool
	HasLower   bool
	HasNumber  bool
	HasSpecial bool
}

func (c PasswordChecks) Passed() bool {
	return c.MinLength && c.HasUpper && c.HasLower && c.HasNumber && c.HasSpecial
}

// RecoveryService drives OTP verification and the new-password step.
//
// Contract:
//   - Start: record that an OTP was sent; the resend cooldown starts.
//   - VerifyOTP: ErrOTPFormat unless the code is 6 digits, ErrInvalidOTP
//     unless it is the configured code; otherwise a signed reset grant.
//   - ResendOTP: ErrResendTooSoon while the cooldown runs.
//   - Remaining: time left before a resend is allowed, zero when allowed.
//   - CheckPassword: per-rule result of the password policy.
//   - ResetPassword: accept the new password when the grant verifies, the
//     policy passes and confirmation matches. Nothing is persisted.
type RecoveryService interface {
	Start(ctx context.Context)
	VerifyOTP(ctx context.Context, code string) (string, error)
	ResendOTP(ctx context.Context) error
	Remaining(ctx context.Context) time.Duration
	CheckPassword(pwd string) PasswordChecks
	ResetPassword(ctx context.Context, grant, pwd, confirm string) error
}

type recoveryService struct {
	cfg    RecoveryConfig
	logger logging.Logger
	now    func() time.Time

	mu       sync.Mutex
	lastSent time.Time
}

type RecoveryOption func(*recoveryService)

func WithRecoveryClock(now func() time.Time) RecoveryOption {
	return func(s *recoveryService) { s.now = now }
}

func NewRecoveryService(cfg RecoveryConfig, logger logging.Logger, opts ...RecoveryOption) RecoveryService {
	svc := &recoveryService{
		cfg:    cfg,
		logger: logger.With("service", "recovery"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *recoveryService) Start(ctx context.Context) {
	s.mu.Lock()
	s.lastSent = s.now()
	s.mu.Unlock()
	s.logger.Info(ctx, "otp sent")
}

func (s *recoveryService) VerifyOTP(ctx context.Context, code string) (string, error) {
	if !isOTP(code) {
		return "", ErrOTPFormat
	}
	if code != s.cfg.Code {
		s.logger.Warn(ctx, "otp rejected")
		return "", ErrInvalidOTP
	}

	grant, err := auth.GenerateResetGrant(s.cfg.Secret, s.now())
	if err != nil {
		return "", fmt.Errorf("verify otp: %w", err)
	}
	s.logger.Info(ctx, "otp verified")
	return grant, nil
}

func isOTP(code string) bool {
	if len(code) != otpLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

func (s *recoveryService) ResendOTP(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.remainingLocked() > 0 {
		return ErrResendTooSoon
	}
	s.lastSent = s.now()
	s.logger.Info(ctx, "otp resent")
	return nil
}

func (s *recoveryService) Remaining(context.Context) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remainingLocked()
}

func (s *recoveryService) remainingLocked() time.Duration {
	if s.lastSent.IsZero() {
		return 0
	}
	left := s.cfg.Cooldown - s.now().Sub(s.lastSent)
	if left < 0 {
		return 0
	}
	return left
}

func (s *recoveryService) CheckPassword(pwd string) PasswordChecks {
	return PasswordChecks{
		MinLength:  utf8.RuneCountInString(pwd) >= minPasswordLength,
		HasUpper:   strings.ContainsFunc(pwd, func(r rune) bool { return r >= 'A' && r <= 'Z' }),
		HasLower:   strings.ContainsFunc(pwd, func(r rune) bool { return r >= 'a' && r <= 'z' }),
		HasNumber:  strings.ContainsFunc(pwd, func(r rune) bool { return r >= '0' && r <= '9' }),
		HasSpecial: strings.ContainsAny(pwd, SpecialCharacters),
	}
}

func (s *recoveryService) ResetPassword(ctx context.Context, grant, pwd, confirm string) error {
	if err := auth.VerifyResetGrant(grant, s.cfg.Secret); err != nil {
		return err
	}
	if !s.CheckPassword(pwd).Passed() {
		return ErrWeakPassword
	}
	if pwd != confirm {
		return ErrPasswordMismatch
	}

	s.logger.Info(ctx, "password updated")
	return nil
}
