package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/payments/domain"
	"github.com/jhandryJ/UIDEportes-backend/internal/modules/payments/infra"
	pg "github.com/jhandryJ/UIDEportes-backend/internal/modules/payments/infra/pg"
	plathttp "github.com/jhandryJ/UIDEportes-backend/internal/platform/http"
	"github.com/jhandryJ/UIDEportes-backend/internal/policy"
)

type Module struct {
	pagos     domain.PagoRepo
	engine    *policy.Engine
	jwtSecret []byte
}

func NewModule(memberships policy.MembershipStore, jwtSecret string) *Module {
	return &Module{
		pagos:     infra.NewMemPagoRepo(),
		engine:    policy.New(memberships),
		jwtSecret: []byte(jwtSecret),
	}
}

func NewModulePG(db *pgxpool.Pool, memberships policy.MembershipStore, jwtSecret string) *Module {
	return &Module{
		pagos:     pg.NewPagoRepo(db),
		engine:    policy.New(memberships),
		jwtSecret: []byte(jwtSecret),
	}
}

func (m *Module) Register(r fiber.Router) {
	protected := r.Group("", plathttp.JWTAuth(m.jwtSecret))
	protected.Get("/pagos", ListPagosHandler(m.pagos, m.engine))
	protected.Get("/pagos/:id", GetPagoHandler(m.pagos, m.engine))
	protected.Post("/pagos", CreatePagoHandler(m.pagos, m.engine))
	protected.Put("/pagos/:id/validar", ValidatePagoHandler(m.pagos))
}
