package domain

import "time"

// VerificationCode is the single pending code for an email address. Issuing
// a new code replaces the record wholesale; there is no history.
type VerificationCode struct {
	Email     string
	Code      string
	ExpiresAt time.Time
	Attempts  int
	CreatedAt time.Time
}

type CodeRepo interface {
	// Upsert creates the record for c.Email or replaces it entirely.
	Upsert(c VerificationCode) error
	GetByEmail(email string) (*VerificationCode, error)
	// IncrementAttempts bumps the failure counter by one, atomically with
	// respect to concurrent validations of the same email.
	IncrementAttempts(email string) error
	Delete(email string) error
}
