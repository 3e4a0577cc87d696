package pg

import (
	"context"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/domain"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const userCols = "id, cedula, nombres, apellidos, email, facultad, carrera, rol, password_hash, email_confirmed, created_at, updated_at"

type UserRepo struct{ db *pgxpool.Pool }

func NewUserRepo(db *pgxpool.Pool) *UserRepo { return &UserRepo{db: db} }

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var rol string
	if err := row.Scan(&u.ID, &u.Cedula, &u.Nombres, &u.Apellidos, &u.Email,
		&u.Facultad, &u.Carrera, &rol, &u.PasswordHash, &u.EmailConfirmed,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	u.Rol = domain.Role(rol)
	return &u, nil
}

func (r *UserRepo) Create(p domain.CreateUserParams) (*domain.User, error) {
	ctx := context.Background()
	sql, args, err := qb.Insert("usuarios").
		Columns("cedula", "nombres", "apellidos", "email", "facultad", "carrera", "rol", "password_hash").
		Values(p.Cedula, p.Nombres, p.Apellidos, strings.ToLower(p.Email), p.Facultad, p.Carrera, string(p.Rol), p.PasswordHash).
		Suffix("RETURNING " + userCols).
		ToSql()
	if err != nil {
		return nil, err
	}
	u, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicate
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) GetByID(id int64) (*domain.User, error) {
	sql, args, err := qb.Select(userCols).From("usuarios").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.db.QueryRow(context.Background(), sql, args...))
}

func (r *UserRepo) GetByEmail(email string) (*domain.User, error) {
	sql, args, err := qb.Select(userCols).From("usuarios").
		Where(sq.Eq{"email": strings.ToLower(email)}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.db.QueryRow(context.Background(), sql, args...))
}

func (r *UserRepo) ExistsByEmail(email string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM usuarios WHERE email = LOWER($1))`, email).Scan(&ok)
	return ok, err
}

func (r *UserRepo) ConfirmEmail(id int64) error {
	sql, args, err := qb.Update("usuarios").
		Set("email_confirmed", true).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(context.Background(), sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
