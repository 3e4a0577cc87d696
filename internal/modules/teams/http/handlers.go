package http

import (
	"errors"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/teams/domain"
	plathttp "github.com/jhandryJ/UIDEportes-backend/internal/platform/http"
	"github.com/jhandryJ/UIDEportes-backend/internal/policy"
)

var validate = validator.New()

type teamResp struct {
	ID        int64   `json:"id"`
	Nombre    string  `json:"nombre"`
	LogoURL   *string `json:"logoUrl"`
	Facultad  *string `json:"facultad"`
	CapitanID int64   `json:"capitanId"`
	Miembros  []int64 `json:"miembros"`
}

func toTeamResp(t domain.Team) teamResp {
	members := make([]int64, 0, len(t.Miembros))
	for id := range t.Miembros {
		members = append(members, id)
	}
	sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	return teamResp{
		ID: t.ID, Nombre: t.Nombre, LogoURL: t.LogoURL, Facultad: t.Facultad,
		CapitanID: t.CapitanID, Miembros: members,
	}
}

func serverError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error_code": "SERVER_ERROR",
		"message":    msg,
	})
}

func forbidden(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error_code": "FORBIDDEN",
		"message":    msg,
	})
}

func paramID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// ListTeamsHandler returns the teams visible to the actor under the
// row-visibility policy. An empty list is a normal answer.
func ListTeamsHandler(teams domain.TeamRepo, engine *policy.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := plathttp.CurrentActor(c)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		pred, err := engine.TeamFilter(actor)
		if err != nil {
			return serverError(c, "No se pudo resolver la visibilidad")
		}
		list, err := teams.ListWhere(pred)
		if err != nil {
			return serverError(c, "Error al listar equipos")
		}
		out := make([]teamResp, 0, len(list))
		for _, t := range list {
			out = append(out, toTeamResp(t))
		}
		return c.JSON(out)
	}
}

// GetTeamHandler hides invisible teams behind a 404 rather than a 403, so
// the response does not leak which ids exist.
func GetTeamHandler(teams domain.TeamRepo, engine *policy.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := plathttp.CurrentActor(c)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		id, err := paramID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS", "message": "ID inválido",
			})
		}
		pred, err := engine.TeamFilter(actor)
		if err != nil {
			return serverError(c, "No se pudo resolver la visibilidad")
		}
		t, err := teams.GetByID(id)
		if err != nil || !pred(*t) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error_code": "NOT_FOUND", "message": "Equipo no encontrado",
			})
		}
		return c.JSON(toTeamResp(*t))
	}
}

type createTeamReq struct {
	Nombre   string  `json:"nombre" validate:"required,min=3"`
	LogoURL  *string `json:"logoUrl" validate:"omitempty,url"`
	Facultad *string `json:"facultad"`
}

func CreateTeamHandler(teams domain.TeamRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := plathttp.CurrentActor(c)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		var req createTeamReq
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

		t, err := teams.Create(domain.CreateTeamParams{
			Nombre: req.Nombre, LogoURL: req.LogoURL, Facultad: req.Facultad,
			CapitanID: actor.ID,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrAlreadyCaptain):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error_code": "ALREADY_CAPTAIN",
					"message":    "El usuario ya es capitán de un equipo",
				})
			case errors.Is(err, domain.ErrDuplicateName):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error_code": "DUPLICATE_NAME",
					"message":    "Ya existe un equipo con ese nombre",
				})
			}
			return serverError(c, "Error al crear el equipo")
		}
		return c.Status(fiber.StatusCreated).JSON(toTeamResp(*t))
	}
}

type updateTeamReq struct {
	Nombre   *string `json:"nombre" validate:"omitempty,min=3"`
	LogoURL  *string `json:"logoUrl" validate:"omitempty,url"`
	Facultad *string `json:"facultad"`
}

func UpdateTeamHandler(teams domain.TeamRepo, engine *policy.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := plathttp.CurrentActor(c)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		id, err := paramID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS", "message": "ID inválido",
			})
		}
		var req updateTeamReq
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

		ok, err := engine.CanModifyTeam(actor.ID, actor.Role, id)
		if err != nil {
			return serverError(c, "No se pudo autorizar la operación")
		}
		if !ok {
			return forbidden(c, "Solo el capitán o un administrador puede editar el equipo")
		}

		t, err := teams.Update(id, domain.UpdateTeamParams{
			Nombre: req.Nombre, LogoURL: req.LogoURL, Facultad: req.Facultad,
		})
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error_code": "NOT_FOUND", "message": "Equipo no encontrado",
				})
			}
			if errors.Is(err, domain.ErrDuplicateName) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error_code": "DUPLICATE_NAME",
					"message":    "Ya existe un equipo con ese nombre",
				})
			}
			return serverError(c, "Error al actualizar el equipo")
		}
		return c.JSON(toTeamResp(*t))
	}
}

type addMemberReq struct {
	UsuarioID int64 `json:"usuarioId" validate:"required,gt=0"`
}

func AddMemberHandler(teams domain.TeamRepo, engine *policy.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := plathttp.CurrentActor(c)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		id, err := paramID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS", "message": "ID inválido",
			})
		}
		var req addMemberReq
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

		ok, err := engine.CanModifyTeam(actor.ID, actor.Role, id)
		if err != nil {
			return serverError(c, "No se pudo autorizar la operación")
		}
		if !ok {
			return forbidden(c, "Solo el capitán o un administrador puede agregar miembros")
		}

		if err := teams.AddMember(id, req.UsuarioID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error_code": "NOT_FOUND", "message": "Equipo no encontrado",
				})
			}
			if errors.Is(err, domain.ErrAlreadyMember) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error_code": "ALREADY_MEMBER",
					"message":    "El usuario ya es miembro del equipo",
				})
			}
			return serverError(c, "Error al agregar el miembro")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
	}
}
