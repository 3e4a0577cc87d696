package infra

import (
	"sync"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/tournaments/domain"
)

type memCampeonatoRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.Campeonato
}

func NewMemCampeonatoRepo() domain.CampeonatoRepo {
	return &memCampeonatoRepo{nextID: 1, items: make(map[int64]domain.Campeonato)}
}

func (r *memCampeonatoRepo) Create(p domain.CreateCampeonatoParams) (*domain.Campeonato, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := domain.Campeonato{ID: r.nextID, Nombre: p.Nombre, Anio: p.Anio}
	r.nextID++
	r.items[c.ID] = c
	return &c, nil
}

func (r *memCampeonatoRepo) List() ([]domain.Campeonato, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Campeonato{}
	for _, c := range r.items {
		out = append(out, c)
	}
	return out, nil
}

type memTorneoRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]*domain.Torneo
}

func NewMemTorneoRepo() domain.TorneoRepo {
	return &memTorneoRepo{nextID: 1, items: make(map[int64]*domain.Torneo)}
}

func (r *memTorneoRepo) Create(p domain.CreateTorneoParams) (*domain.Torneo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := &domain.Torneo{
		ID: r.nextID, CampeonatoID: p.CampeonatoID,
		Disciplina: p.Disciplina, Categoria: p.Categoria,
		EquiposInscritos: map[int64]struct{}{},
	}
	r.nextID++
	r.items[t.ID] = t
	return copyTorneo(t), nil
}

func (r *memTorneoRepo) GetByID(id int64) (*domain.Torneo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyTorneo(t), nil
}

func (r *memTorneoRepo) ListWhere(pred func(domain.Torneo) bool) ([]domain.Torneo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Torneo{}
	for _, t := range r.items {
		cp := *copyTorneo(t)
		if pred == nil || pred(cp) {
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *memTorneoRepo) Enroll(torneoID, teamID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[torneoID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := t.EquiposInscritos[teamID]; ok {
		return domain.ErrAlreadyEnrolled
	}
	t.EquiposInscritos[teamID] = struct{}{}
	return nil
}

func copyTorneo(t *domain.Torneo) *domain.Torneo {
	cp := *t
	cp.EquiposInscritos = make(map[int64]struct{}, len(t.EquiposInscritos))
	for id := range t.EquiposInscritos {
		cp.EquiposInscritos[id] = struct{}{}
	}
	return &cp
}

type memPartidoRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.Partido
}

func NewMemPartidoRepo() domain.PartidoRepo {
	return &memPartidoRepo{nextID: 1, items: make(map[int64]domain.Partido)}
}

func (r *memPartidoRepo) Create(p domain.CreatePartidoParams) (*domain.Partido, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := domain.Partido{
		ID: r.nextID, TorneoID: p.TorneoID,
		EquipoLocalID: p.EquipoLocalID, EquipoVisitanteID: p.EquipoVisitanteID,
		FechaHora: p.FechaHora, Cancha: p.Cancha,
		Estado: domain.PartidoProgramado,
	}
	r.nextID++
	r.items[m.ID] = m
	return &m, nil
}

func (r *memPartidoRepo) ListWhere(pred func(domain.Partido) bool) ([]domain.Partido, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Partido{}
	for _, m := range r.items {
		if pred == nil || pred(m) {
			out = append(out, m)
		}
	}
	return out, nil
}
