package domain

import (
	"errors"
	"time"
)

type Campeonato struct {
	ID     int64
	Nombre string
	Anio   int
}

type Torneo struct {
	ID           int64
	CampeonatoID int64
	Disciplina   string
	Categoria    string
	// EquiposInscritos are the team ids registered in the tournament.
	EquiposInscritos map[int64]struct{}
}

// HasTeam reports whether teamID is registered in the tournament.
func (t Torneo) HasTeam(teamID int64) bool {
	_, ok := t.EquiposInscritos[teamID]
	return ok
}

type EstadoPartido string

const (
	PartidoProgramado EstadoPartido = "PROGRAMADO"
	PartidoEnJuego    EstadoPartido = "EN_JUEGO"
	PartidoFinalizado EstadoPartido = "FINALIZADO"
)

// Partido may have either side unassigned while a bracket is incomplete.
type Partido struct {
	ID                int64
	TorneoID          int64
	EquipoLocalID     *int64
	EquipoVisitanteID *int64
	FechaHora         *time.Time
	Cancha            *string
	Estado            EstadoPartido
	MarcadorLocal     *int
	MarcadorVisitante *int
}

var (
	ErrNotFound        = errors.New("not_found")
	ErrAlreadyEnrolled = errors.New("already_enrolled")
)

type CreateCampeonatoParams struct {
	Nombre string
	Anio   int
}

type CreateTorneoParams struct {
	CampeonatoID int64
	Disciplina   string
	Categoria    string
}

type CreatePartidoParams struct {
	TorneoID          int64
	EquipoLocalID     *int64
	EquipoVisitanteID *int64
	FechaHora         *time.Time
	Cancha            *string
}

type CampeonatoRepo interface {
	Create(p CreateCampeonatoParams) (*Campeonato, error)
	List() ([]Campeonato, error)
}

type TorneoRepo interface {
	Create(p CreateTorneoParams) (*Torneo, error)
	GetByID(id int64) (*Torneo, error)
	ListWhere(pred func(Torneo) bool) ([]Torneo, error)
	// Enroll registers a team; ErrAlreadyEnrolled when it already is.
	Enroll(torneoID, teamID int64) error
}

type PartidoRepo interface {
	Create(p CreatePartidoParams) (*Partido, error)
	ListWhere(pred func(Partido) bool) ([]Partido, error)
}
