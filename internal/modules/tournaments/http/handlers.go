package http

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	authdom "github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/domain"
	"github.com/jhandryJ/UIDEportes-backend/internal/modules/tournaments/domain"
	plathttp "github.com/jhandryJ/UIDEportes-backend/internal/platform/http"
	"github.com/jhandryJ/UIDEportes-backend/internal/policy"
)

var validate = validator.New()

func serverError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error_code": "SERVER_ERROR",
		"message":    msg,
	})
}

func adminOnly(c *fiber.Ctx) (authdom.Actor, bool) {
	actor, err := plathttp.CurrentActor(c)
	if err != nil {
		return authdom.Actor{}, false
	}
	return actor, actor.Role == authdom.RoleAdmin
}

type campeonatoResp struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Anio   int    `json:"anio"`
}

func ListCampeonatosHandler(repo domain.CampeonatoRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := repo.List()
		if err != nil {
			return serverError(c, "Error al listar campeonatos")
		}
		out := make([]campeonatoResp, 0, len(list))
		for _, ch := range list {
			out = append(out, campeonatoResp{ID: ch.ID, Nombre: ch.Nombre, Anio: ch.Anio})
		}
		return c.JSON(out)
	}
}

type createCampeonatoReq struct {
	Nombre string `json:"nombre" validate:"required,min=3"`
	Anio   int    `json:"anio" validate:"required,gte=2000"`
}

func CreateCampeonatoHandler(repo domain.CampeonatoRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := adminOnly(c); !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error_code": "FORBIDDEN",
				"message":    "Solo administradores pueden crear campeonatos",
			})
		}
		var req createCampeonatoReq
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
		ch, err := repo.Create(domain.CreateCampeonatoParams{Nombre: req.Nombre, Anio: req.Anio})
		if err != nil {
			return serverError(c, "Error al crear el campeonato")
		}
		return c.Status(fiber.StatusCreated).JSON(campeonatoResp{ID: ch.ID, Nombre: ch.Nombre, Anio: ch.Anio})
	}
}

type torneoResp struct {
	ID               int64   `json:"id"`
	CampeonatoID     int64   `json:"campeonatoId"`
	Disciplina       string  `json:"disciplina"`
	Categoria        string  `json:"categoria"`
	EquiposInscritos []int64 `json:"equiposInscritos"`
}

func toTorneoResp(t domain.Torneo) torneoResp {
	teams := make([]int64, 0, len(t.EquiposInscritos))
	for id := range t.EquiposInscritos {
		teams = append(teams, id)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i] < teams[j] })
	return torneoResp{
		ID: t.ID, CampeonatoID: t.CampeonatoID,
		Disciplina: t.Disciplina, Categoria: t.Categoria,
		EquiposInscritos: teams,
	}
}

func ListTorneosHandler(repo domain.TorneoRepo, engine *policy.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := plathttp.CurrentActor(c)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		pred, err := engine.TournamentFilter(actor)
		if err != nil {
			return serverError(c, "No se pudo resolver la visibilidad")
		}
		// optional discipline narrowing on top of the visibility predicate
		if d := c.Query("disciplina"); d != "" {
			inner := pred
			pred = func(t domain.Torneo) bool { return t.Disciplina == d && inner(t) }
		}
		list, err := repo.ListWhere(pred)
		if err != nil {
			return serverError(c, "Error al listar torneos")
		}
		out := make([]torneoResp, 0, len(list))
		for _, t := range list {
			out = append(out, toTorneoResp(t))
		}
		return c.JSON(out)
	}
}

type createTorneoReq struct {
	CampeonatoID int64  `json:"campeonatoId" validate:"required,gt=0"`
	Disciplina   string `json:"disciplina" validate:"required,oneof=Futbol Basket Ecuavoley"`
	Categoria    string `json:"categoria" validate:"required"`
}

func CreateTorneoHandler(repo domain.TorneoRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := adminOnly(c); !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error_code": "FORBIDDEN",
				"message":    "Solo administradores pueden crear torneos",
			})
		}
		var req createTorneoReq
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
		t, err := repo.Create(domain.CreateTorneoParams{
			CampeonatoID: req.CampeonatoID, Disciplina: req.Disciplina, Categoria: req.Categoria,
		})
		if err != nil {
			return serverError(c, "Error al crear el torneo")
		}
		return c.Status(fiber.StatusCreated).JSON(toTorneoResp(*t))
	}
}

type enrollReq struct {
	EquipoID int64 `json:"equipoId" validate:"required,gt=0"`
}

// EnrollTeamHandler registers a team in a tournament. Only that team's
// captain (or an admin) may do it.
func EnrollTeamHandler(repo domain.TorneoRepo, engine *policy.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := plathttp.CurrentActor(c)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		torneoID, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS", "message": "ID inválido",
			})
		}
		var req enrollReq
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

		ok, err := engine.CanModifyTeam(actor.ID, actor.Role, req.EquipoID)
		if err != nil {
			return serverError(c, "No se pudo autorizar la operación")
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error_code": "FORBIDDEN",
				"message":    "Solo el capitán del equipo puede inscribirlo",
			})
		}

		if err := repo.Enroll(torneoID, req.EquipoID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error_code": "NOT_FOUND", "message": "Torneo no encontrado",
				})
			}
			if errors.Is(err, domain.ErrAlreadyEnrolled) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error_code": "ALREADY_ENROLLED",
					"message":    "El equipo ya está inscrito en el torneo",
				})
			}
			return serverError(c, "Error al inscribir el equipo")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
	}
}

type partidoResp struct {
	ID                int64      `json:"id"`
	TorneoID          int64      `json:"torneoId"`
	EquipoLocalID     *int64     `json:"equipoLocalId"`
	EquipoVisitanteID *int64     `json:"equipoVisitanteId"`
	FechaHora         *time.Time `json:"fechaHora"`
	Cancha            *string    `json:"cancha"`
	Estado            string     `json:"estado"`
	MarcadorLocal     *int       `json:"marcadorLocal"`
	MarcadorVisitante *int       `json:"marcadorVisitante"`
}

func toPartidoResp(p domain.Partido) partidoResp {
	return partidoResp{
		ID: p.ID, TorneoID: p.TorneoID,
		EquipoLocalID: p.EquipoLocalID, EquipoVisitanteID: p.EquipoVisitanteID,
		FechaHora: p.FechaHora, Cancha: p.Cancha, Estado: string(p.Estado),
		MarcadorLocal: p.MarcadorLocal, MarcadorVisitante: p.MarcadorVisitante,
	}
}

func ListPartidosHandler(repo domain.PartidoRepo, engine *policy.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := plathttp.CurrentActor(c)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		pred, err := engine.MatchFilter(actor)
		if err != nil {
			return serverError(c, "No se pudo resolver la visibilidad")
		}
		if q := c.Query("torneo_id"); q != "" {
			torneoID, err := strconv.ParseInt(q, 10, 64)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error_code": "INVALID_FIELDS", "message": "torneo_id inválido",
				})
			}
			inner := pred
			pred = func(p domain.Partido) bool { return p.TorneoID == torneoID && inner(p) }
		}
		list, err := repo.ListWhere(pred)
		if err != nil {
			return serverError(c, "Error al listar partidos")
		}
		out := make([]partidoResp, 0, len(list))
		for _, p := range list {
			out = append(out, toPartidoResp(p))
		}
		return c.JSON(out)
	}
}

type createPartidoReq struct {
	TorneoID          int64      `json:"torneoId" validate:"required,gt=0"`
	EquipoLocalID     *int64     `json:"equipoLocalId" validate:"omitempty,gt=0"`
	EquipoVisitanteID *int64     `json:"equipoVisitanteId" validate:"omitempty,gt=0"`
	FechaHora         *time.Time `json:"fechaHora"`
	Cancha            *string    `json:"cancha"`
}

func CreatePartidoHandler(repo domain.PartidoRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := adminOnly(c); !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error_code": "FORBIDDEN",
				"message":    "Solo administradores pueden programar partidos",
			})
		}
		var req createPartidoReq
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
		p, err := repo.Create(domain.CreatePartidoParams{
			TorneoID: req.TorneoID, EquipoLocalID: req.EquipoLocalID,
			EquipoVisitanteID: req.EquipoVisitanteID,
			FechaHora:         req.FechaHora, Cancha: req.Cancha,
		})
		if err != nil {
			return serverError(c, "Error al crear el partido")
		}
		return c.Status(fiber.StatusCreated).JSON(toPartidoResp(*p))
	}
}
