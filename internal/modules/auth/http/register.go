package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/domain"
	"github.com/jhandryJ/UIDEportes-backend/internal/platform/security"
)

var validate = validator.New()

type registerReq struct {
	Cedula    string  `json:"cedula" validate:"required,len=10,numeric"`
	Nombres   string  `json:"nombres" validate:"required,min=2"`
	Apellidos string  `json:"apellidos" validate:"required,min=2"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6"`
	Facultad  *string `json:"facultad"`
	Carrera   *string `json:"carrera"`
	Rol       string  `json:"rol" validate:"omitempty,oneof=ADMIN CAPITAN ESTUDIANTE"`
}

type registerResp struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Nombres string `json:"nombres"`
	Rol     string `json:"rol"`
}

func RegisterHandler(userRepo domain.UserRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerReq
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
		if req.Rol == "" {
			req.Rol = string(domain.RoleEstudiante)
		}

		pwHash, err := security.HashPassword(req.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "No se pudo procesar la contraseña",
			})
		}

		u, err := userRepo.Create(domain.CreateUserParams{
			Cedula:       req.Cedula,
			Nombres:      req.Nombres,
			Apellidos:    req.Apellidos,
			Email:        strings.ToLower(req.Email),
			Facultad:     req.Facultad,
			Carrera:      req.Carrera,
			Rol:          domain.Role(req.Rol),
			PasswordHash: pwHash,
		})
		if err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error_code": "DUPLICATE",
					"message":    "Ya existe un usuario con ese email o cédula",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "No se pudo registrar el usuario",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(registerResp{
			ID: u.ID, Email: u.Email, Nombres: u.Nombres, Rol: string(u.Rol),
		})
	}
}
