package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/washplan/laundry-booking/internal/apperr"
	"github.com/washplan/laundry-booking/internal/model"
	"github.com/washplan/laundry-booking/internal/repository"
)

// unnumberedLocation marks a location without a position number.
const unnumberedLocation = -1

// MachineLocationHandler serves the machine location CRUD endpoints.
type MachineLocationHandler struct {
	Repo         *repository.MachineLocationRepo
	MachineRepo  *repository.MachineRepo
	BuildingRepo *repository.BuildingAddressRepo
}

// NewMachineLocationHandler constructs a MachineLocationHandler.
func NewMachineLocationHandler(repo *repository.MachineLocationRepo, machineRepo *repository.MachineRepo, buildingRepo *repository.BuildingAddressRepo) *MachineLocationHandler {
	if repo == nil || machineRepo == nil || buildingRepo == nil {
		panic("nil repository passed to NewMachineLocationHandler")
	}
	return &MachineLocationHandler{Repo: repo, MachineRepo: machineRepo, BuildingRepo: buildingRepo}
}

func validLocationStatus(s model.MachineLocationStatus) bool {
	switch s {
	case model.LocationActive, model.LocationBroken, model.LocationStorage:
		return true
	}
	return false
}

// Create handles POST /v1/machine-locations. A machine can stand in one
// building only, and a numbered position may hold one machine. Status
// defaults to storage and number to unnumbered.
func (h *MachineLocationHandler) Create(c echo.Context) error {
	var body struct {
		MachineID  uint64                       `json:"machine_id"`
		BuildingID uint64                       `json:"building_id"`
		Number     *int                         `json:"number"`
		Status     *model.MachineLocationStatus `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.MachineID == 0 || body.BuildingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "machine_id and building_id are required"})
	}
	number := unnumberedLocation
	if body.Number != nil {
		number = *body.Number
	}
	status := model.LocationStorage
	if body.Status != nil {
		status = *body.Status
	}
	if !validLocationStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	ctx := c.Request().Context()

	placed, err := h.Repo.MachineHasLocation(ctx, body.MachineID)
	if err != nil {
		return respondError(c, err, "machine location could not be created")
	}
	if placed {
		return respondError(c, apperr.Newf(apperr.InsertFailed, "machine %d already has a location", body.MachineID), "machine location could not be created")
	}
	if number != unnumberedLocation {
		taken, err := h.Repo.NumberTaken(ctx, body.BuildingID, number)
		if err != nil {
			return respondError(c, err, "machine location could not be created")
		}
		if taken {
			return respondError(c, apperr.Newf(apperr.InsertFailed, "building %d already has a machine with number %d", body.BuildingID, number), "machine location could not be created")
		}
	}

	id, err := h.Repo.Create(ctx, body.MachineID, body.BuildingID, number, status)
	if err != nil {
		return respondError(c, err, "machine location could not be created")
	}
	log.Printf("created machine location %d for machine %d at building %d", id, body.MachineID, body.BuildingID)
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// Get handles GET /v1/machine-locations/:id. It returns the joined
// machine and building address detail.
func (h *MachineLocationHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid machine location id"})
	}
	det, err := h.Repo.GetDetailByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "machine location could not be found")
	}
	return c.JSON(http.StatusOK, det)
}

// GetByQuery handles GET /v1/machine-locations with optional machine_id,
// building_id and status filters.
func (h *MachineLocationHandler) GetByQuery(c echo.Context) error {
	var filter repository.LocationFilter
	if v := c.QueryParam("machine_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid machine_id"})
		}
		filter.MachineID = id
	}
	if v := c.QueryParam("building_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building_id"})
		}
		filter.BuildingID = id
	}
	if v := c.QueryParam("status"); v != "" {
		status := model.MachineLocationStatus(v)
		if !validLocationStatus(status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		filter.Status = status
	}
	details, err := h.Repo.ListDetails(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err, "machine locations could not be found")
	}
	return c.JSON(http.StatusOK, details)
}

// Update handles PATCH /v1/machine-locations/:id. Omitted fields keep
// their value.
func (h *MachineLocationHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid machine location id"})
	}
	var body struct {
		MachineID  *uint64                      `json:"machine_id"`
		BuildingID *uint64                      `json:"building_id"`
		Number     *int                         `json:"number"`
		Status     *model.MachineLocationStatus `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Status != nil && !validLocationStatus(*body.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	ml, err := h.Repo.Update(c.Request().Context(), id, body.MachineID, body.BuildingID, body.Number, body.Status)
	if err != nil {
		return respondError(c, err, "machine location could not be updated")
	}
	log.Printf("updated machine location %d", ml.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"id":          ml.ID,
		"machine_id":  ml.MachineID,
		"building_id": ml.BuildingID,
		"number":      ml.Number,
		"status":      ml.Status,
	})
}

// Delete handles DELETE /v1/machine-locations/:id.
func (h *MachineLocationHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid machine location id"})
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "machine location could not be deleted")
	}
	log.Printf("deleted machine location %d", id)
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}
