package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/teams/domain"
	"github.com/jhandryJ/UIDEportes-backend/internal/modules/teams/infra"
	pg "github.com/jhandryJ/UIDEportes-backend/internal/modules/teams/infra/pg"
	plathttp "github.com/jhandryJ/UIDEportes-backend/internal/platform/http"
	"github.com/jhandryJ/UIDEportes-backend/internal/policy"
)

type Module struct {
	teams     domain.TeamRepo
	engine    *policy.Engine
	jwtSecret []byte
}

func NewModule(jwtSecret string) *Module {
	teams := infra.NewMemTeamRepo()
	return &Module{teams: teams, engine: policy.New(teams), jwtSecret: []byte(jwtSecret)}
}

func NewModulePG(db *pgxpool.Pool, jwtSecret string) *Module {
	teams := pg.NewTeamRepo(db)
	return &Module{teams: teams, engine: policy.New(teams), jwtSecret: []byte(jwtSecret)}
}

// Repo exposes the team store so sibling modules can share the same
// membership source for their policy engines.
func (m *Module) Repo() domain.TeamRepo { return m.teams }

func (m *Module) Register(r fiber.Router) {
	protected := r.Group("", plathttp.JWTAuth(m.jwtSecret))
	protected.Get("/equipos", ListTeamsHandler(m.teams, m.engine))
	protected.Get("/equipos/:id", GetTeamHandler(m.teams, m.engine))
	protected.Post("/equipos", CreateTeamHandler(m.teams))
	protected.Put("/equipos/:id", UpdateTeamHandler(m.teams, m.engine))
	protected.Post("/equipos/:id/miembros", AddMemberHandler(m.teams, m.engine))
}
