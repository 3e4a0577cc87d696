// Package policy derives row-visibility predicates and mutation checks from
// an actor's role, so every read path scopes rows the same way instead of
// each handler re-implementing the rules.
package policy

import (
	"fmt"

	authdom "github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/domain"
	paydom "github.com/jhandryJ/UIDEportes-backend/internal/modules/payments/domain"
	teamdom "github.com/jhandryJ/UIDEportes-backend/internal/modules/teams/domain"
	tourdom "github.com/jhandryJ/UIDEportes-backend/internal/modules/tournaments/domain"
)

// ErrInvalidRole signals a role value outside the closed set. It means a
// broken token or a programming error upstream, not a user mistake.
var ErrInvalidRole = authdom.ErrInvalidRole

// MembershipStore resolves an actor's team affiliations. The engine reads
// through it once per derived predicate and never writes.
type MembershipStore interface {
	GetMembership(userID int64) (teamdom.Membership, error)
}

type Engine struct {
	store MembershipStore
}

func New(store MembershipStore) *Engine {
	return &Engine{store: store}
}

// TeamFilter returns the predicate scoping team rows for the actor. ADMIN
// sees everything; everyone else sees only teams they captain or belong to.
// A predicate matching nothing is a normal empty result, not an error.
func (e *Engine) TeamFilter(actor authdom.Actor) (func(teamdom.Team) bool, error) {
	switch actor.Role {
	case authdom.RoleAdmin:
		return func(teamdom.Team) bool { return true }, nil
	case authdom.RoleCapitan, authdom.RoleEstudiante:
		m, err := e.store.GetMembership(actor.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve membership: %w", err)
		}
		return func(t teamdom.Team) bool { return m.BelongsTo(t.ID) }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidRole, actor.Role)
}

// TournamentFilter scopes tournaments to those with at least one registered
// team the actor belongs to.
func (e *Engine) TournamentFilter(actor authdom.Actor) (func(tourdom.Torneo) bool, error) {
	switch actor.Role {
	case authdom.RoleAdmin:
		return func(tourdom.Torneo) bool { return true }, nil
	case authdom.RoleCapitan, authdom.RoleEstudiante:
		m, err := e.store.GetMembership(actor.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve membership: %w", err)
		}
		return func(t tourdom.Torneo) bool {
			if m.CaptainOf != nil && t.HasTeam(*m.CaptainOf) {
				return true
			}
			for teamID := range m.MemberOf {
				if t.HasTeam(teamID) {
					return true
				}
			}
			return false
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidRole, actor.Role)
}

// MatchFilter scopes matches to those where one of the actor's teams plays
// home or away.
func (e *Engine) MatchFilter(actor authdom.Actor) (func(tourdom.Partido) bool, error) {
	switch actor.Role {
	case authdom.RoleAdmin:
		return func(tourdom.Partido) bool { return true }, nil
	case authdom.RoleCapitan, authdom.RoleEstudiante:
		m, err := e.store.GetMembership(actor.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve membership: %w", err)
		}
		return func(p tourdom.Partido) bool {
			if p.EquipoLocalID != nil && m.BelongsTo(*p.EquipoLocalID) {
				return true
			}
			if p.EquipoVisitanteID != nil && m.BelongsTo(*p.EquipoVisitanteID) {
				return true
			}
			return false
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidRole, actor.Role)
}

// PaymentFilter scopes payments. A captain sees only payments of the team
// they captain; a student sees payments of every team they belong to, as
// read-only visibility.
func (e *Engine) PaymentFilter(actor authdom.Actor) (func(paydom.Pago) bool, error) {
	switch actor.Role {
	case authdom.RoleAdmin:
		return func(paydom.Pago) bool { return true }, nil
	case authdom.RoleCapitan:
		m, err := e.store.GetMembership(actor.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve membership: %w", err)
		}
		return func(p paydom.Pago) bool {
			return m.CaptainOf != nil && *m.CaptainOf == p.EquipoID
		}, nil
	case authdom.RoleEstudiante:
		m, err := e.store.GetMembership(actor.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve membership: %w", err)
		}
		return func(p paydom.Pago) bool { return m.BelongsTo(p.EquipoID) }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidRole, actor.Role)
}

// CanModifyTeam authorizes mutations of a team's data. ADMIN passes
// unconditionally; otherwise only the team's captain does. "Not allowed" is
// a false return, never an error.
func (e *Engine) CanModifyTeam(actorID int64, role authdom.Role, teamID int64) (bool, error) {
	switch role {
	case authdom.RoleAdmin:
		return true, nil
	case authdom.RoleCapitan, authdom.RoleEstudiante:
		m, err := e.store.GetMembership(actorID)
		if err != nil {
			return false, fmt.Errorf("resolve membership: %w", err)
		}
		return m.CaptainOf != nil && *m.CaptainOf == teamID, nil
	}
	return false, fmt.Errorf("%w: %q", ErrInvalidRole, role)
}
