package domain

import (
	"errors"
	"time"
)

// Role is the closed set of platform roles. Anything else is rejected
// instead of falling through to some default access level.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleCapitan    Role = "CAPITAN"
	RoleEstudiante Role = "ESTUDIANTE"
)

var ErrInvalidRole = errors.New("invalid_role")

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCapitan, RoleEstudiante:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// Actor is the authenticated identity attached to a request by the JWT
// middleware. It is trusted as-is once resolved.
type Actor struct {
	ID   int64
	Role Role
}

type User struct {
	ID             int64
	Cedula         string
	Nombres        string
	Apellidos      string
	Email          string
	Facultad       *string
	Carrera        *string
	Rol            Role
	PasswordHash   string
	EmailConfirmed bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CreateUserParams struct {
	Cedula       string
	Nombres      string
	Apellidos    string
	Email        string
	Facultad     *string
	Carrera      *string
	Rol          Role
	PasswordHash string
}

var (
	ErrNotFound  = errors.New("not_found")
	ErrDuplicate = errors.New("duplicate")
)

type UserRepo interface {
	Create(p CreateUserParams) (*User, error)
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	ExistsByEmail(email string) (bool, error)
	ConfirmEmail(id int64) error
}
