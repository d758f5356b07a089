package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/washplan/laundry-booking/internal/apperr"
	"github.com/washplan/laundry-booking/internal/repository"
)

// MachineTypeHandler serves the machine type CRUD endpoints.
type MachineTypeHandler struct {
	Repo *repository.MachineTypeRepo
}

// NewMachineTypeHandler constructs a MachineTypeHandler.
func NewMachineTypeHandler(repo *repository.MachineTypeRepo) *MachineTypeHandler {
	if repo == nil {
		panic("nil repository passed to NewMachineTypeHandler")
	}
	return &MachineTypeHandler{Repo: repo}
}

// Create handles POST /v1/machine-types. Type names are unique.
func (h *MachineTypeHandler) Create(c echo.Context) error {
	var body struct {
		Type string `json:"type"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Type == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type is required"})
	}
	ctx := c.Request().Context()

	exists, err := h.Repo.TypeExists(ctx, body.Type)
	if err != nil {
		return respondError(c, err, "machine type could not be created")
	}
	if exists {
		return respondError(c, apperr.Newf(apperr.InsertFailed, "machine type %s already exists", body.Type), "machine type could not be created")
	}

	id, err := h.Repo.Create(ctx, body.Type)
	if err != nil {
		return respondError(c, err, "machine type could not be created")
	}
	log.Printf("created machine type %d (%s)", id, body.Type)
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// Get handles GET /v1/machine-types/:id.
func (h *MachineTypeHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid machine type id"})
	}
	mt, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "machine type could not be found")
	}
	return c.JSON(http.StatusOK, echo.Map{"id": mt.ID, "type": mt.Type})
}

// Update handles PATCH /v1/machine-types/:id.
func (h *MachineTypeHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid machine type id"})
	}
	var body struct {
		Type string `json:"type"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Type == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type is required"})
	}
	mt, err := h.Repo.Update(c.Request().Context(), id, body.Type)
	if err != nil {
		return respondError(c, err, "machine type could not be updated")
	}
	log.Printf("updated machine type %d", mt.ID)
	return c.JSON(http.StatusOK, echo.Map{"id": mt.ID, "type": mt.Type})
}

// Delete handles DELETE /v1/machine-types/:id.
func (h *MachineTypeHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid machine type id"})
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "machine type could not be deleted")
	}
	log.Printf("deleted machine type %d", id)
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}
