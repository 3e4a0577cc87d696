package pg

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/teams/domain"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type TeamRepo struct{ db *pgxpool.Pool }

func NewTeamRepo(db *pgxpool.Pool) *TeamRepo { return &TeamRepo{db: db} }

const teamSelect = `
SELECT e.id, e.nombre, e.logo_url, e.facultad, e.capitan_id, e.created_at,
       COALESCE(array_agg(m.usuario_id) FILTER (WHERE m.usuario_id IS NOT NULL), '{}')
FROM equipos e
LEFT JOIN miembros_equipo m ON m.equipo_id = e.id`

func scanTeam(row pgx.Row) (*domain.Team, error) {
	var t domain.Team
	var members []int64
	if err := row.Scan(&t.ID, &t.Nombre, &t.LogoURL, &t.Facultad, &t.CapitanID,
		&t.CreatedAt, &members); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	t.Miembros = make(map[int64]struct{}, len(members))
	for _, id := range members {
		t.Miembros[id] = struct{}{}
	}
	return &t, nil
}

// Create inserts the team and its captain's membership row in one
// transaction. The unique index on capitan_id enforces the one-team-per-
// captain rule at the store level too.
func (r *TeamRepo) Create(p domain.CreateTeamParams) (*domain.Team, error) {
	ctx := context.Background()
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var t domain.Team
	err = tx.QueryRow(ctx, `
INSERT INTO equipos (nombre, logo_url, facultad, capitan_id)
VALUES ($1, $2, $3, $4)
RETURNING id, nombre, logo_url, facultad, capitan_id, created_at`,
		p.Nombre, p.LogoURL, p.Facultad, p.CapitanID).
		Scan(&t.ID, &t.Nombre, &t.LogoURL, &t.Facultad, &t.CapitanID, &t.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "equipos_capitan_id_key" {
				return nil, domain.ErrAlreadyCaptain
			}
			return nil, domain.ErrDuplicateName
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO miembros_equipo (equipo_id, usuario_id) VALUES ($1, $2)`,
		t.ID, p.CapitanID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	t.Miembros = map[int64]struct{}{p.CapitanID: {}}
	return &t, nil
}

func (r *TeamRepo) GetByID(id int64) (*domain.Team, error) {
	row := r.db.QueryRow(context.Background(),
		teamSelect+` WHERE e.id = $1 GROUP BY e.id`, id)
	return scanTeam(row)
}

func (r *TeamRepo) Update(id int64, p domain.UpdateTeamParams) (*domain.Team, error) {
	b := qb.Update("equipos").Where(sq.Eq{"id": id})
	set := false
	if p.Nombre != nil {
		b = b.Set("nombre", *p.Nombre)
		set = true
	}
	if p.LogoURL != nil {
		b = b.Set("logo_url", *p.LogoURL)
		set = true
	}
	if p.Facultad != nil {
		b = b.Set("facultad", *p.Facultad)
		set = true
	}
	if set {
		sql, args, err := b.ToSql()
		if err != nil {
			return nil, err
		}
		tag, err := r.db.Exec(context.Background(), sql, args...)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return nil, domain.ErrDuplicateName
			}
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, domain.ErrNotFound
		}
	}
	return r.GetByID(id)
}

// ListWhere loads every team with its member set and applies the caller's
// scoping predicate in process.
func (r *TeamRepo) ListWhere(pred func(domain.Team) bool) ([]domain.Team, error) {
	rows, err := r.db.Query(context.Background(),
		teamSelect+` GROUP BY e.id ORDER BY e.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Team{}
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		if pred == nil || pred(*t) {
			out = append(out, *t)
		}
	}
	return out, rows.Err()
}

func (r *TeamRepo) AddMember(teamID, userID int64) error {
	tag, err := r.db.Exec(context.Background(), `
INSERT INTO miembros_equipo (equipo_id, usuario_id)
VALUES ($1, $2) ON CONFLICT DO NOTHING`, teamID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domain.ErrNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyMember
	}
	return nil
}

func (r *TeamRepo) GetMembership(userID int64) (domain.Membership, error) {
	ctx := context.Background()
	m := domain.Membership{MemberOf: map[int64]struct{}{}}

	var captainOf *int64
	err := r.db.QueryRow(ctx,
		`SELECT id FROM equipos WHERE capitan_id = $1`, userID).Scan(&captainOf)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return domain.Membership{}, err
	}
	m.CaptainOf = captainOf

	rows, err := r.db.Query(ctx,
		`SELECT equipo_id FROM miembros_equipo WHERE usuario_id = $1`, userID)
	if err != nil {
		return domain.Membership{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return domain.Membership{}, err
		}
		m.MemberOf[id] = struct{}{}
	}
	return m, rows.Err()
}
