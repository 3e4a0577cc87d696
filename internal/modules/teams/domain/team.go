package domain

import (
	"errors"
	"time"
)

type Team struct {
	ID        int64
	Nombre    string
	LogoURL   *string
	Facultad  *string
	CapitanID int64
	// Miembros holds the user ids of every member, captain included.
	Miembros  map[int64]struct{}
	CreatedAt time.Time
}

// HasMember reports whether userID is the captain or a member of the team.
func (t Team) HasMember(userID int64) bool {
	if t.CapitanID == userID {
		return true
	}
	_, ok := t.Miembros[userID]
	return ok
}

// Membership is a user's team affiliations, resolved once so that access
// predicates do not re-query per row.
type Membership struct {
	// CaptainOf is the id of the team the user captains, or nil. A user
	// captains at most one team.
	CaptainOf *int64
	// MemberOf includes the captained team.
	MemberOf map[int64]struct{}
}

// BelongsTo reports whether the user is captain or member of the team.
func (m Membership) BelongsTo(teamID int64) bool {
	if m.CaptainOf != nil && *m.CaptainOf == teamID {
		return true
	}
	_, ok := m.MemberOf[teamID]
	return ok
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrAlreadyCaptain = errors.New("already_captain")
	ErrDuplicateName  = errors.New("duplicate_name")
	ErrAlreadyMember  = errors.New("already_member")
)

type CreateTeamParams struct {
	Nombre    string
	LogoURL   *string
	Facultad  *string
	CapitanID int64
}

type UpdateTeamParams struct {
	Nombre   *string
	LogoURL  *string
	Facultad *string
}

type TeamRepo interface {
	// Create fails with ErrAlreadyCaptain when the captain already has a
	// team and ErrDuplicateName on a name conflict. The captain is stored
	// as a member as well.
	Create(p CreateTeamParams) (*Team, error)
	GetByID(id int64) (*Team, error)
	Update(id int64, p UpdateTeamParams) (*Team, error)
	ListWhere(pred func(Team) bool) ([]Team, error)
	AddMember(teamID, userID int64) error
	// GetMembership resolves the user's affiliations across all teams.
	GetMembership(userID int64) (Membership, error)
}
