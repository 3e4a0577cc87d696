package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/tournaments/domain"
	"github.com/jhandryJ/UIDEportes-backend/internal/modules/tournaments/infra"
	pg "github.com/jhandryJ/UIDEportes-backend/internal/modules/tournaments/infra/pg"
	plathttp "github.com/jhandryJ/UIDEportes-backend/internal/platform/http"
	"github.com/jhandryJ/UIDEportes-backend/internal/policy"
)

type Module struct {
	campeonatos domain.CampeonatoRepo
	torneos     domain.TorneoRepo
	partidos    domain.PartidoRepo
	engine      *policy.Engine
	jwtSecret   []byte
}

func NewModule(memberships policy.MembershipStore, jwtSecret string) *Module {
	return &Module{
		campeonatos: infra.NewMemCampeonatoRepo(),
		torneos:     infra.NewMemTorneoRepo(),
		partidos:    infra.NewMemPartidoRepo(),
		engine:      policy.New(memberships),
		jwtSecret:   []byte(jwtSecret),
	}
}

func NewModulePG(db *pgxpool.Pool, memberships policy.MembershipStore, jwtSecret string) *Module {
	return &Module{
		campeonatos: pg.NewCampeonatoRepo(db),
		torneos:     pg.NewTorneoRepo(db),
		partidos:    pg.NewPartidoRepo(db),
		engine:      policy.New(memberships),
		jwtSecret:   []byte(jwtSecret),
	}
}

func (m *Module) Register(r fiber.Router) {
	// championship listing is the one public read
	r.Get("/campeonatos", ListCampeonatosHandler(m.campeonatos))

	protected := r.Group("", plathttp.JWTAuth(m.jwtSecret))
	protected.Post("/campeonatos", CreateCampeonatoHandler(m.campeonatos))
	protected.Get("/torneos", ListTorneosHandler(m.torneos, m.engine))
	protected.Post("/torneos", CreateTorneoHandler(m.torneos))
	protected.Post("/torneos/:id/inscripciones", EnrollTeamHandler(m.torneos, m.engine))
	protected.Get("/partidos", ListPartidosHandler(m.partidos, m.engine))
	protected.Post("/partidos", CreatePartidoHandler(m.partidos))
}
