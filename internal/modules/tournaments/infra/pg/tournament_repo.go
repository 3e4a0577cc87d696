package pg

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/tournaments/domain"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type CampeonatoRepo struct{ db *pgxpool.Pool }

func NewCampeonatoRepo(db *pgxpool.Pool) *CampeonatoRepo { return &CampeonatoRepo{db: db} }

func (r *CampeonatoRepo) Create(p domain.CreateCampeonatoParams) (*domain.Campeonato, error) {
	var c domain.Campeonato
	err := r.db.QueryRow(context.Background(), `
INSERT INTO campeonatos (nombre, anio) VALUES ($1, $2)
RETURNING id, nombre, anio`, p.Nombre, p.Anio).
		Scan(&c.ID, &c.Nombre, &c.Anio)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampeonatoRepo) List() ([]domain.Campeonato, error) {
	sql, args, err := qb.Select("id", "nombre", "anio").
		From("campeonatos").OrderBy("anio DESC", "id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Campeonato{}
	for rows.Next() {
		var c domain.Campeonato
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Anio); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type TorneoRepo struct{ db *pgxpool.Pool }

func NewTorneoRepo(db *pgxpool.Pool) *TorneoRepo { return &TorneoRepo{db: db} }

const torneoSelect = `
SELECT t.id, t.campeonato_id, t.disciplina, t.categoria,
       COALESCE(array_agg(i.equipo_id) FILTER (WHERE i.equipo_id IS NOT NULL), '{}')
FROM torneos t
LEFT JOIN inscripciones i ON i.torneo_id = t.id`

func scanTorneo(row pgx.Row) (*domain.Torneo, error) {
	var t domain.Torneo
	var teams []int64
	if err := row.Scan(&t.ID, &t.CampeonatoID, &t.Disciplina, &t.Categoria, &teams); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	t.EquiposInscritos = make(map[int64]struct{}, len(teams))
	for _, id := range teams {
		t.EquiposInscritos[id] = struct{}{}
	}
	return &t, nil
}

func (r *TorneoRepo) Create(p domain.CreateTorneoParams) (*domain.Torneo, error) {
	var t domain.Torneo
	err := r.db.QueryRow(context.Background(), `
INSERT INTO torneos (campeonato_id, disciplina, categoria)
VALUES ($1, $2, $3)
RETURNING id, campeonato_id, disciplina, categoria`,
		p.CampeonatoID, p.Disciplina, p.Categoria).
		Scan(&t.ID, &t.CampeonatoID, &t.Disciplina, &t.Categoria)
	if err != nil {
		return nil, err
	}
	t.EquiposInscritos = map[int64]struct{}{}
	return &t, nil
}

func (r *TorneoRepo) GetByID(id int64) (*domain.Torneo, error) {
	row := r.db.QueryRow(context.Background(),
		torneoSelect+` WHERE t.id = $1 GROUP BY t.id`, id)
	return scanTorneo(row)
}

func (r *TorneoRepo) ListWhere(pred func(domain.Torneo) bool) ([]domain.Torneo, error) {
	rows, err := r.db.Query(context.Background(),
		torneoSelect+` GROUP BY t.id ORDER BY t.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Torneo{}
	for rows.Next() {
		t, err := scanTorneo(rows)
		if err != nil {
			return nil, err
		}
		if pred == nil || pred(*t) {
			out = append(out, *t)
		}
	}
	return out, rows.Err()
}

func (r *TorneoRepo) Enroll(torneoID, teamID int64) error {
	tag, err := r.db.Exec(context.Background(), `
INSERT INTO inscripciones (torneo_id, equipo_id)
VALUES ($1, $2) ON CONFLICT DO NOTHING`, torneoID, teamID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domain.ErrNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyEnrolled
	}
	return nil
}

type PartidoRepo struct{ db *pgxpool.Pool }

func NewPartidoRepo(db *pgxpool.Pool) *PartidoRepo { return &PartidoRepo{db: db} }

const partidoCols = "id, torneo_id, equipo_local_id, equipo_visitante_id, fecha_hora, cancha, estado, marcador_local, marcador_visitante"

func scanPartido(row pgx.Row) (*domain.Partido, error) {
	var p domain.Partido
	var estado string
	if err := row.Scan(&p.ID, &p.TorneoID, &p.EquipoLocalID, &p.EquipoVisitanteID,
		&p.FechaHora, &p.Cancha, &estado, &p.MarcadorLocal, &p.MarcadorVisitante); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.Estado = domain.EstadoPartido(estado)
	return &p, nil
}

func (r *PartidoRepo) Create(p domain.CreatePartidoParams) (*domain.Partido, error) {
	row := r.db.QueryRow(context.Background(), `
INSERT INTO partidos (torneo_id, equipo_local_id, equipo_visitante_id, fecha_hora, cancha, estado)
VALUES ($1, $2, $3, $4, $5, 'PROGRAMADO')
RETURNING `+partidoCols,
		p.TorneoID, p.EquipoLocalID, p.EquipoVisitanteID, p.FechaHora, p.Cancha)
	return scanPartido(row)
}

func (r *PartidoRepo) ListWhere(pred func(domain.Partido) bool) ([]domain.Partido, error) {
	sql, args, err := qb.Select(partidoCols).From("partidos").
		OrderBy("fecha_hora ASC NULLS LAST", "id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Partido{}
	for rows.Next() {
		p, err := scanPartido(rows)
		if err != nil {
			return nil, err
		}
		if pred == nil || pred(*p) {
			out = append(out, *p)
		}
	}
	return out, rows.Err()
}
