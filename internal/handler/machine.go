package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/washplan/laundry-booking/internal/apperr"
	"github.com/washplan/laundry-booking/internal/repository"
)

// MachineHandler serves the machine CRUD endpoints.
type MachineHandler struct {
	Repo     *repository.MachineRepo
	TypeRepo *repository.MachineTypeRepo
}

// NewMachineHandler constructs a MachineHandler.
func NewMachineHandler(repo *repository.MachineRepo, typeRepo *repository.MachineTypeRepo) *MachineHandler {
	if repo == nil || typeRepo == nil {
		panic("nil repository passed to NewMachineHandler")
	}
	return &MachineHandler{Repo: repo, TypeRepo: typeRepo}
}

func machineJSON(id, machineTypeID uint64, brand, mdl string, description *string) echo.Map {
	return echo.Map{
		"id":              id,
		"machine_type_id": machineTypeID,
		"brand":           brand,
		"model":           mdl,
		"description":     description,
	}
}

// Create handles POST /v1/machines. Description is optional.
func (h *MachineHandler) Create(c echo.Context) error {
	var body struct {
		MachineTypeID uint64  `json:"machine_type_id"`
		Brand         string  `json:"brand"`
		Model         string  `json:"model"`
		Description   *string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.MachineTypeID == 0 || body.Brand == "" || body.Model == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "machine_type_id, brand and model are required"})
	}
	id, err := h.Repo.Create(c.Request().Context(), body.MachineTypeID, body.Brand, body.Model, body.Description)
	if err != nil {
		return respondError(c, err, "machine could not be created")
	}
	log.Printf("created machine %d", id)
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// Get handles GET /v1/machines/:id.
func (h *MachineHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid machine id"})
	}
	m, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "machine could not be found")
	}
	return c.JSON(http.StatusOK, machineJSON(m.ID, m.MachineTypeID, m.Brand, m.Model, m.Description))
}

// Update handles PATCH /v1/machines/:id. When a machine type is supplied it
// must exist before the update is applied.
func (h *MachineHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid machine id"})
	}
	var body struct {
		MachineTypeID *uint64 `json:"machine_type_id"`
		Brand         *string `json:"brand"`
		Model         *string `json:"model"`
		Description   *string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()

	if body.MachineTypeID != nil {
		exists, err := h.TypeRepo.Exists(ctx, *body.MachineTypeID)
		if err != nil {
			return respondError(c, err, "machine could not be updated")
		}
		if !exists {
			return respondError(c, apperr.Newf(apperr.NotFound, "no machine type with id %d", *body.MachineTypeID), "machine could not be updated")
		}
	}

	m, err := h.Repo.Update(ctx, id, body.MachineTypeID, body.Brand, body.Model, body.Description)
	if err != nil {
		return respondError(c, err, "machine could not be updated")
	}
	log.Printf("updated machine %d", m.ID)
	return c.JSON(http.StatusOK, machineJSON(m.ID, m.MachineTypeID, m.Brand, m.Model, m.Description))
}

// Delete handles DELETE /v1/machines/:id.
func (h *MachineHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid machine id"})
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "machine could not be deleted")
	}
	log.Printf("deleted machine %d", id)
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}
