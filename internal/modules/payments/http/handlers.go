package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	authdom "github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/domain"
	"github.com/jhandryJ/UIDEportes-backend/internal/modules/payments/domain"
	plathttp "github.com/jhandryJ/UIDEportes-backend/internal/platform/http"
	"github.com/jhandryJ/UIDEportes-backend/internal/policy"
)

var validate = validator.New()

type pagoResp struct {
	ID             int64     `json:"id"`
	EquipoID       int64     `json:"equipoId"`
	UsuarioPagoID  int64     `json:"usuarioPagoId"`
	Monto          float64   `json:"monto"`
	ComprobanteURL string    `json:"comprobanteUrl"`
	Observacion    *string   `json:"observacion"`
	Estado         string    `json:"estado"`
	ValidadoPorID  *int64    `json:"validadoPorId"`
	FechaSubida    time.Time `json:"fechaSubida"`
}

func toPagoResp(p domain.Pago) pagoResp {
	return pagoResp{
		ID: p.ID, EquipoID: p.EquipoID, UsuarioPagoID: p.UsuarioPagoID,
		Monto: p.Monto, ComprobanteURL: p.ComprobanteURL, Observacion: p.Observacion,
		Estado: string(p.Estado), ValidadoPorID: p.ValidadoPorID, FechaSubida: p.FechaSubida,
	}
}

func serverError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error_code": "SERVER_ERROR",
		"message":    msg,
	})
}

type createPagoReq struct {
	EquipoID       int64   `json:"equipoId" validate:"required,gt=0"`
	Monto          float64 `json:"monto" validate:"required,gt=0"`
	ComprobanteURL string  `json:"comprobanteUrl" validate:"required,url"`
	Observacion    *string `json:"observacion"`
}

// CreatePagoHandler accepts a payment proof. Only the team's captain may
// submit one: an admin does not get to file payments on a team's behalf,
// the CanModifyTeam bypass applies to team edits and validation only.
func CreatePagoHandler(pagos domain.PagoRepo, engine *policy.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := plathttp.CurrentActor(c)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		var req createPagoReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS", "message": "Datos inválidos",
			})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "VALIDATION_ERROR", "message": err.Error(),
			})
		}

		captains := false
		if actor.Role == authdom.RoleCapitan {
			ok, err := engine.CanModifyTeam(actor.ID, actor.Role, req.EquipoID)
			if err != nil {
				return serverError(c, "No se pudo autorizar la operación")
			}
			captains = ok
		}
		if !captains {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error_code": "FORBIDDEN",
				"message":    "Solo el capitán del equipo puede subir comprobantes de pago",
			})
		}

		p, err := pagos.Create(domain.CreatePagoParams{
			EquipoID: req.EquipoID, UsuarioPagoID: actor.ID,
			Monto: req.Monto, ComprobanteURL: req.ComprobanteURL,
			Observacion: req.Observacion,
		})
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error_code": "NOT_FOUND", "message": "Equipo no encontrado",
				})
			}
			return serverError(c, "Error al crear la solicitud de pago")
		}
		return c.Status(fiber.StatusCreated).JSON(toPagoResp(*p))
	}
}

func ListPagosHandler(pagos domain.PagoRepo, engine *policy.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := plathttp.CurrentActor(c)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		pred, err := engine.PaymentFilter(actor)
		if err != nil {
			return serverError(c, "No se pudo resolver la visibilidad")
		}
		list, err := pagos.ListWhere(pred)
		if err != nil {
			return serverError(c, "Error al listar pagos")
		}
		out := make([]pagoResp, 0, len(list))
		for _, p := range list {
			out = append(out, toPagoResp(p))
		}
		return c.JSON(out)
	}
}

// GetPagoHandler answers 404 for both a missing payment and one outside the
// actor's visibility.
func GetPagoHandler(pagos domain.PagoRepo, engine *policy.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := plathttp.CurrentActor(c)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS", "message": "ID inválido",
			})
		}
		pred, err := engine.PaymentFilter(actor)
		if err != nil {
			return serverError(c, "No se pudo resolver la visibilidad")
		}
		p, err := pagos.GetByID(id)
		if err != nil || !pred(*p) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error_code": "NOT_FOUND",
				"message":    "Pago no encontrado o sin permiso para verlo",
			})
		}
		return c.JSON(toPagoResp(*p))
	}
}

type validatePagoReq struct {
	Estado      string  `json:"estado" validate:"required,oneof=VALIDADO RECHAZADO"`
	Observacion *string `json:"observacion"`
}

// ValidatePagoHandler decides a pending payment, once. Repeated decisions
// get a conflict-style error instead of overwriting the first one.
func ValidatePagoHandler(pagos domain.PagoRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := plathttp.CurrentActor(c)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		if actor.Role != authdom.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error_code": "FORBIDDEN",
				"message":    "Solo administradores pueden validar pagos",
			})
		}
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS", "message": "ID inválido",
			})
		}
		var req validatePagoReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS", "message": "Datos inválidos",
			})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "VALIDATION_ERROR", "message": err.Error(),
			})
		}

		p, err := pagos.Resolve(id, domain.EstadoPago(req.Estado), req.Observacion, actor.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error_code": "NOT_FOUND", "message": "Pago no encontrado",
				})
			}
			if errors.Is(err, domain.ErrAlreadyResolved) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error_code": "ALREADY_RESOLVED",
					"message":    "Este pago ya fue validado o rechazado",
				})
			}
			return serverError(c, "Error al validar el pago")
		}
		return c.JSON(toPagoResp(*p))
	}
}
