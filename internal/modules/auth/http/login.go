package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/domain"
	"github.com/jhandryJ/UIDEportes-backend/internal/platform/security"
)

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResp struct {
	AccessToken string    `json:"accessToken"`
	User        loginUser `json:"user"`
}

type loginUser struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Nombres string `json:"nombres"`
	Rol     string `json:"rol"`
}

func LoginHandler(userRepo domain.UserRepo, jwtMgr *security.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Datos inválidos",
			})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "VALIDATION_ERROR",
				"message":    err.Error(),
			})
		}

		u, err := userRepo.GetByEmail(strings.ToLower(req.Email))
		if err != nil {
			return invalidCredentials(c)
		}
		ok, err := security.CheckPassword(u.PasswordHash, req.Password)
		if err != nil || !ok {
			return invalidCredentials(c)
		}

		token, _, err := jwtMgr.IssueAccess(u.ID, string(u.Rol), u.Email)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "No se pudo generar el token",
			})
		}

		return c.JSON(loginResp{
			AccessToken: token,
			User:        loginUser{ID: u.ID, Email: u.Email, Nombres: u.Nombres, Rol: string(u.Rol)},
		})
	}
}

func invalidCredentials(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error_code": "INVALID_CREDENTIALS",
		"message":    "Email o contraseña incorrectos",
	})
}
