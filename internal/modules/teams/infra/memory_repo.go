package infra

import (
	"sync"
	"time"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/teams/domain"
)

type memTeamRepo struct {
	mu     sync.RWMutex
	nextID int64
	teams  map[int64]*domain.Team
	byName map[string]int64
}

func NewMemTeamRepo() domain.TeamRepo {
	return &memTeamRepo{
		nextID: 1,
		teams:  make(map[int64]*domain.Team),
		byName: make(map[string]int64),
	}
}

func (r *memTeamRepo) Create(p domain.CreateTeamParams) (*domain.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teams {
		if t.CapitanID == p.CapitanID {
			return nil, domain.ErrAlreadyCaptain
		}
	}
	if _, ok := r.byName[p.Nombre]; ok {
		return nil, domain.ErrDuplicateName
	}
	t := &domain.Team{
		ID: r.nextID, Nombre: p.Nombre, LogoURL: p.LogoURL, Facultad: p.Facultad,
		CapitanID: p.CapitanID,
		Miembros:  map[int64]struct{}{p.CapitanID: {}},
		CreatedAt: time.Now().UTC(),
	}
	r.nextID++
	r.teams[t.ID] = t
	r.byName[t.Nombre] = t.ID
	return copyTeam(t), nil
}

func (r *memTeamRepo) GetByID(id int64) (*domain.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.teams[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyTeam(t), nil
}

func (r *memTeamRepo) Update(id int64, p domain.UpdateTeamParams) (*domain.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if p.Nombre != nil && *p.Nombre != t.Nombre {
		if _, taken := r.byName[*p.Nombre]; taken {
			return nil, domain.ErrDuplicateName
		}
		delete(r.byName, t.Nombre)
		t.Nombre = *p.Nombre
		r.byName[t.Nombre] = t.ID
	}
	if p.LogoURL != nil {
		t.LogoURL = p.LogoURL
	}
	if p.Facultad != nil {
		t.Facultad = p.Facultad
	}
	return copyTeam(t), nil
}

func (r *memTeamRepo) ListWhere(pred func(domain.Team) bool) ([]domain.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Team{}
	for _, t := range r.teams {
		cp := *copyTeam(t)
		if pred == nil || pred(cp) {
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *memTeamRepo) AddMember(teamID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[teamID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := t.Miembros[userID]; ok {
		return domain.ErrAlreadyMember
	}
	t.Miembros[userID] = struct{}{}
	return nil
}

func (r *memTeamRepo) GetMembership(userID int64) (domain.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m := domain.Membership{MemberOf: map[int64]struct{}{}}
	for _, t := range r.teams {
		if t.CapitanID == userID {
			id := t.ID
			m.CaptainOf = &id
		}
		if _, ok := t.Miembros[userID]; ok {
			m.MemberOf[t.ID] = struct{}{}
		}
	}
	return m, nil
}

func copyTeam(t *domain.Team) *domain.Team {
	cp := *t
	cp.Miembros = make(map[int64]struct{}, len(t.Miembros))
	for id := range t.Miembros {
		cp.Miembros[id] = struct{}{}
	}
	return &cp
}
