package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/domain"
	"github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/infra"
	pg "github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/infra/pg"
	"github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/service"
	"github.com/jhandryJ/UIDEportes-backend/internal/platform/security"
)

// Module wires up dependencies for the auth HTTP module.
type Module struct {
	userRepo  domain.UserRepo
	codeRepo  domain.CodeRepo
	verifier  *service.Verification
	jwtSecret string
	accessTTL time.Duration
}

func NewModule(mailer service.Sender) *Module {
	codeRepo := infra.NewMemCodeRepo()
	return &Module{
		userRepo:  infra.NewMemUserRepo(),
		codeRepo:  codeRepo,
		verifier:  service.NewVerification(codeRepo, mailer),
		jwtSecret: "supersecret",
		accessTTL: time.Hour,
	}
}

// NewModulePG creates PG-based repos.
func NewModulePG(db *pgxpool.Pool, jwtSecret string, accessTTL time.Duration, mailer service.Sender) *Module {
	if accessTTL == 0 {
		accessTTL = time.Hour
	}
	codeRepo := pg.NewCodeRepo(db)
	return &Module{
		userRepo:  pg.NewUserRepo(db),
		codeRepo:  codeRepo,
		verifier:  service.NewVerification(codeRepo, mailer),
		jwtSecret: jwtSecret,
		accessTTL: accessTTL,
	}
}

func (m *Module) Register(r fiber.Router) {
	jwtMgr := security.NewJWTManager(m.jwtSecret, m.accessTTL)

	auth := r.Group("/auth")
	auth.Post("/register", RegisterHandler(m.userRepo))
	auth.Post("/login", LoginHandler(m.userRepo, jwtMgr))
	auth.Post("/verify/request", VerifyRequestHandler(m.verifier))
	auth.Post("/verify/confirm", VerifyConfirmHandler(m.verifier, m.userRepo))
}
