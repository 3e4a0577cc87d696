package pg

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/domain"
)

type CodeRepo struct{ db *pgxpool.Pool }

func NewCodeRepo(db *pgxpool.Pool) *CodeRepo { return &CodeRepo{db: db} }

// Upsert replaces the pending code for the email in one statement, resetting
// the attempt counter.
func (r *CodeRepo) Upsert(c domain.VerificationCode) error {
	_, err := r.db.Exec(context.Background(), `
INSERT INTO codigos_verificacion (email, codigo, expires_at, intentos, created_at)
VALUES (LOWER($1), $2, $3, $4, $5)
ON CONFLICT (email) DO UPDATE
SET codigo = EXCLUDED.codigo,
    expires_at = EXCLUDED.expires_at,
    intentos = EXCLUDED.intentos,
    created_at = EXCLUDED.created_at`,
		c.Email, c.Code, c.ExpiresAt, c.Attempts, c.CreatedAt)
	return err
}

func (r *CodeRepo) GetByEmail(email string) (*domain.VerificationCode, error) {
	var c domain.VerificationCode
	err := r.db.QueryRow(context.Background(), `
SELECT email, codigo, expires_at, intentos, created_at
FROM codigos_verificacion WHERE email = LOWER($1)`,
		strings.ToLower(email)).
		Scan(&c.Email, &c.Code, &c.ExpiresAt, &c.Attempts, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// IncrementAttempts is a single conditional update, so two concurrent
// failed validations cannot skip a count.
func (r *CodeRepo) IncrementAttempts(email string) error {
	tag, err := r.db.Exec(context.Background(),
		`UPDATE codigos_verificacion SET intentos = intentos + 1 WHERE email = LOWER($1)`,
		email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CodeRepo) Delete(email string) error {
	_, err := r.db.Exec(context.Background(),
		`DELETE FROM codigos_verificacion WHERE email = LOWER($1)`, email)
	return err
}
