package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/washplan/laundry-booking/internal/apperr"
	"github.com/washplan/laundry-booking/internal/repository"
)

// UserAddressHandler serves the user address endpoints.
type UserAddressHandler struct {
	Repo         *repository.UserAddressRepo
	UserRepo     *repository.UserRepo
	BuildingRepo *repository.BuildingAddressRepo
}

// NewUserAddressHandler constructs a UserAddressHandler.
func NewUserAddressHandler(repo *repository.UserAddressRepo, userRepo *repository.UserRepo, buildingRepo *repository.BuildingAddressRepo) *UserAddressHandler {
	if repo == nil || userRepo == nil || buildingRepo == nil {
		panic("nil repository passed to NewUserAddressHandler")
	}
	return &UserAddressHandler{Repo: repo, UserRepo: userRepo, BuildingRepo: buildingRepo}
}

// Create handles POST /v1/user-addresses. A user has at most one address;
// user and building must both exist.
func (h *UserAddressHandler) Create(c echo.Context) error {
	var body struct {
		UserID          uint64 `json:"user_id"`
		BuildingID      uint64 `json:"building_id"`
		ApartmentNumber string `json:"apartment_number"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.UserID == 0 || body.BuildingID == 0 || body.ApartmentNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id, building_id and apartment_number are required"})
	}
	ctx := c.Request().Context()

	if _, err := h.UserRepo.GetByID(ctx, body.UserID); err != nil {
		return respondError(c, err, "user address could not be created")
	}
	exists, err := h.BuildingRepo.Exists(ctx, body.BuildingID)
	if err != nil {
		return respondError(c, err, "user address could not be created")
	}
	if !exists {
		return respondError(c, apperr.Newf(apperr.NotFound, "no building with id %d", body.BuildingID), "user address could not be created")
	}
	has, err := h.Repo.UserHasAddress(ctx, body.UserID)
	if err != nil {
		return respondError(c, err, "user address could not be created")
	}
	if has {
		return respondError(c, apperr.Newf(apperr.InsertFailed, "user %d already has an address", body.UserID), "user address could not be created")
	}

	id, err := h.Repo.Create(ctx, body.UserID, body.BuildingID, body.ApartmentNumber)
	if err != nil {
		return respondError(c, err, "user address could not be created")
	}
	log.Printf("created user address %d for user %d at building %d", id, body.UserID, body.BuildingID)
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// Get handles GET /v1/user-addresses/:id.
func (h *UserAddressHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user address id"})
	}
	det, err := h.Repo.GetDetailByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "user address could not be found")
	}
	return c.JSON(http.StatusOK, det)
}

// GetByQuery handles GET /v1/user-addresses?user_id=.
func (h *UserAddressHandler) GetByQuery(c echo.Context) error {
	userID, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 64)
	if err != nil || userID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}
	det, err := h.Repo.GetDetailByUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err, "user address could not be found")
	}
	return c.JSON(http.StatusOK, det)
}

// Delete handles DELETE /v1/user-addresses/:id.
func (h *UserAddressHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user address id"})
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "user address could not be deleted")
	}
	log.Printf("deleted user address %d", id)
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}
