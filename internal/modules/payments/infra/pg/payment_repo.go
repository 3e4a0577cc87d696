package pg

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/payments/domain"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type PagoRepo struct{ db *pgxpool.Pool }

func NewPagoRepo(db *pgxpool.Pool) *PagoRepo { return &PagoRepo{db: db} }

const pagoCols = "id, equipo_id, usuario_pago_id, monto, comprobante_url, observacion, estado, validado_por_id, fecha_subida"

func scanPago(row pgx.Row) (*domain.Pago, error) {
	var p domain.Pago
	var estado string
	if err := row.Scan(&p.ID, &p.EquipoID, &p.UsuarioPagoID, &p.Monto,
		&p.ComprobanteURL, &p.Observacion, &estado, &p.ValidadoPorID, &p.FechaSubida); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.Estado = domain.EstadoPago(estado)
	return &p, nil
}

func (r *PagoRepo) Create(p domain.CreatePagoParams) (*domain.Pago, error) {
	row := r.db.QueryRow(context.Background(), `
INSERT INTO validaciones_pago (equipo_id, usuario_pago_id, monto, comprobante_url, observacion, estado)
VALUES ($1, $2, $3, $4, $5, 'PENDIENTE')
RETURNING `+pagoCols,
		p.EquipoID, p.UsuarioPagoID, p.Monto, p.ComprobanteURL, p.Observacion)
	pago, err := scanPago(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return pago, nil
}

func (r *PagoRepo) GetByID(id int64) (*domain.Pago, error) {
	sql, args, err := qb.Select(pagoCols).From("validaciones_pago").
		Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanPago(r.db.QueryRow(context.Background(), sql, args...))
}

func (r *PagoRepo) ListWhere(pred func(domain.Pago) bool) ([]domain.Pago, error) {
	sql, args, err := qb.Select(pagoCols).From("validaciones_pago").
		OrderBy("fecha_subida DESC").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Pago{}
	for rows.Next() {
		p, err := scanPago(rows)
		if err != nil {
			return nil, err
		}
		if pred == nil || pred(*p) {
			out = append(out, *p)
		}
	}
	return out, rows.Err()
}

// Resolve flips a PENDIENTE payment in one conditional update, so a payment
// can only ever be decided once even under concurrent admins.
func (r *PagoRepo) Resolve(id int64, estado domain.EstadoPago, observacion *string, adminID int64) (*domain.Pago, error) {
	b := qb.Update("validaciones_pago").
		Set("estado", string(estado)).
		Set("validado_por_id", adminID).
		Where(sq.Eq{"id": id, "estado": string(domain.PagoPendiente)}).
		Suffix("RETURNING " + pagoCols)
	if observacion != nil {
		b = b.Set("observacion", *observacion)
	}
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	pago, err := scanPago(r.db.QueryRow(context.Background(), sql, args...))
	if err == nil {
		return pago, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	// Distinguish a missing row from an already-decided one.
	if _, getErr := r.GetByID(id); getErr != nil {
		return nil, getErr
	}
	return nil, domain.ErrAlreadyResolved
}
