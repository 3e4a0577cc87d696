package infra

import (
	"sync"
	"time"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/payments/domain"
)

type memPagoRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]*domain.Pago
}

func NewMemPagoRepo() domain.PagoRepo {
	return &memPagoRepo{nextID: 1, items: make(map[int64]*domain.Pago)}
}

func (r *memPagoRepo) Create(p domain.CreatePagoParams) (*domain.Pago, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pg := &domain.Pago{
		ID: r.nextID, EquipoID: p.EquipoID, UsuarioPagoID: p.UsuarioPagoID,
		Monto: p.Monto, ComprobanteURL: p.ComprobanteURL, Observacion: p.Observacion,
		Estado: domain.PagoPendiente, FechaSubida: time.Now().UTC(),
	}
	r.nextID++
	r.items[pg.ID] = pg
	cp := *pg
	return &cp, nil
}

func (r *memPagoRepo) GetByID(id int64) (*domain.Pago, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pg, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *pg
	return &cp, nil
}

func (r *memPagoRepo) ListWhere(pred func(domain.Pago) bool) ([]domain.Pago, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Pago{}
	for _, pg := range r.items {
		if pred == nil || pred(*pg) {
			out = append(out, *pg)
		}
	}
	return out, nil
}

func (r *memPagoRepo) Resolve(id int64, estado domain.EstadoPago, observacion *string, adminID int64) (*domain.Pago, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pg, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if pg.Estado != domain.PagoPendiente {
		return nil, domain.ErrAlreadyResolved
	}
	pg.Estado = estado
	if observacion != nil {
		pg.Observacion = observacion
	}
	pg.ValidadoPorID = &adminID
	cp := *pg
	return &cp, nil
}
