package http

import (
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/domain"
	"github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/service"
)

type verifyRequestReq struct {
	Email string `json:"email"`
}

type verifyConfirmReq struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type verifyResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// VerifyRequestHandler issues a fresh verification code for the email. The
// response is success whenever the code was persisted, delivered or not.
func VerifyRequestHandler(verifier *service.Verification) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req verifyRequestReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Datos inválidos",
			})
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_EMAIL",
				"message":    "Formato de email inválido",
			})
		}

		res, err := verifier.Issue(c.UserContext(), req.Email)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "No se pudo generar el código",
			})
		}
		return c.JSON(verifyResp{Success: res.OK, Message: res.Message})
	}
}

// VerifyConfirmHandler validates a submitted code. On success the user's
// email, if registered, is marked confirmed.
func VerifyConfirmHandler(verifier *service.Verification, userRepo domain.UserRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req verifyConfirmReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Datos inválidos",
			})
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		req.Code = strings.TrimSpace(req.Code)
		if req.Email == "" || req.Code == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Email y código son obligatorios",
			})
		}

		res, err := verifier.Validate(c.UserContext(), req.Email, req.Code)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "No se pudo validar el código",
			})
		}
		if !res.OK {
			status := fiber.StatusBadRequest
			if res.Status == service.StatusNotFound {
				status = fiber.StatusNotFound
			}
			if res.Status == service.StatusRateLimited {
				status = fiber.StatusTooManyRequests
			}
			return c.Status(status).JSON(fiber.Map{
				"error_code": string(res.Status),
				"message":    res.Message,
			})
		}

		if u, err := userRepo.GetByEmail(req.Email); err == nil {
			_ = userRepo.ConfirmEmail(u.ID)
		}
		return c.JSON(verifyResp{Success: true, Message: res.Message})
	}
}
