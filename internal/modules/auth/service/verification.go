package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/domain"
	"github.com/jhandryJ/UIDEportes-backend/internal/platform/security"
)

const (
	codeLength  = 6
	codeTTL     = 15 * time.Minute
	maxAttempts = 3
)

// Status classifies the outcome of a verification operation.
type Status string

const (
	StatusSent        Status = "SENT"
	StatusVerified    Status = "VERIFIED"
	StatusNotFound    Status = "NOT_FOUND"
	StatusExpired     Status = "EXPIRED"
	StatusRateLimited Status = "RATE_LIMITED"
	StatusMismatch    Status = "MISMATCH"
)

// Result is always returned to the caller; failures are data, not errors.
// An error return is reserved for the store itself breaking.
type Result struct {
	OK      bool
	Status  Status
	Message string
}

// Sender delivers a code to an email address. Delivery is best-effort: a
// failing Sender does not fail Issue.
type Sender interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}

// Verification issues and validates one-time email codes. It holds no state
// of its own; the per-email record lives in the CodeRepo.
type Verification struct {
	codes  domain.CodeRepo
	mailer Sender
	now    func() time.Time
}

func NewVerification(codes domain.CodeRepo, mailer Sender) *Verification {
	return &Verification{codes: codes, mailer: mailer, now: time.Now}
}

// WithClock overrides the time source. Tests use it to advance past expiry.
func (s *Verification) WithClock(now func() time.Time) *Verification {
	s.now = now
	return s
}

// Issue generates a fresh 6-digit code for email, replacing any pending one
// outright, and mails it. A mail failure is logged and the operation still
// succeeds: the code is persisted and can be read out through an operational
// channel, which beats blocking registration on a flaky SMTP relay.
func (s *Verification) Issue(ctx context.Context, email string) (Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	code, err := security.RandomDigits(codeLength)
	if err != nil {
		return Result{}, fmt.Errorf("generate code: %w", err)
	}

	now := s.now()
	rec := domain.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(codeTTL),
		Attempts:  0,
		CreatedAt: now,
	}
	if err := s.codes.Upsert(rec); err != nil {
		return Result{}, fmt.Errorf("store code: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendVerificationCode(ctx, email, code); err != nil {
			log.Printf("verification: mail to %s failed: %v", email, err)
			return Result{OK: true, Status: StatusSent,
				Message: "Código generado (revisar consola del servidor si no llegó el correo)"}, nil
		}
	}
	return Result{OK: true, Status: StatusSent, Message: "Código enviado a tu correo"}, nil
}

// Validate checks a submitted code against the pending record for email.
// The attempt limit is enforced before the comparison: after the third
// recorded failure even the right code is rejected until re-issuance. On a
// match the record is deleted, so a success cannot be replayed.
func (s *Verification) Validate(ctx context.Context, email, submitted string) (Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	rec, err := s.codes.GetByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Result{Status: StatusNotFound,
				Message: "No se encontró una solicitud de verificación para este correo"}, nil
		}
		return Result{}, fmt.Errorf("load code: %w", err)
	}

	if s.now().After(rec.ExpiresAt) {
		// The stale record stays; the next Issue replaces it anyway.
		return Result{Status: StatusExpired,
			Message: "El código ha expirado. Solicita uno nuevo."}, nil
	}

	if rec.Attempts >= maxAttempts {
		return Result{Status: StatusRateLimited,
			Message: "Demasiados intentos fallidos. Solicita un nuevo código."}, nil
	}

	if rec.Code != submitted {
		if err := s.codes.IncrementAttempts(email); err != nil {
			return Result{}, fmt.Errorf("record failed attempt: %w", err)
		}
		return Result{Status: StatusMismatch, Message: "Código incorrecto"}, nil
	}

	if err := s.codes.Delete(email); err != nil {
		return Result{}, fmt.Errorf("consume code: %w", err)
	}
	return Result{OK: true, Status: StatusVerified, Message: "Código verificado correctamente"}, nil
}
