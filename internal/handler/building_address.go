package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/washplan/laundry-booking/internal/apperr"
	"github.com/washplan/laundry-booking/internal/repository"
)

// BuildingAddressHandler serves the building address CRUD endpoints.
// Street and city are stored title-cased, numbers and postal codes
// upper-cased, so duplicate checks are not defeated by casing.
type BuildingAddressHandler struct {
	Repo *repository.BuildingAddressRepo
}

// NewBuildingAddressHandler constructs a BuildingAddressHandler.
func NewBuildingAddressHandler(repo *repository.BuildingAddressRepo) *BuildingAddressHandler {
	if repo == nil {
		panic("nil repository passed to NewBuildingAddressHandler")
	}
	return &BuildingAddressHandler{Repo: repo}
}

func capitalize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func upperTrimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToUpper(strings.TrimSpace(*s))
	if v == "" {
		return nil
	}
	return &v
}

// Create handles POST /v1/building-addresses. The full address must not
// already exist.
func (h *BuildingAddressHandler) Create(c echo.Context) error {
	var body struct {
		Street      string  `json:"street"`
		Number      *string `json:"number"`
		BlockNumber *string `json:"block_number"`
		City        string  `json:"city"`
		PostalCode  string  `json:"postal_code"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Street == "" || body.City == "" || body.PostalCode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "street, city and postal_code are required"})
	}

	street := capitalize(body.Street)
	city := capitalize(body.City)
	postalCode := strings.ToUpper(strings.TrimSpace(body.PostalCode))
	number := upperTrimmed(body.Number)
	blockNumber := upperTrimmed(body.BlockNumber)
	ctx := c.Request().Context()

	exists, err := h.Repo.AddressExists(ctx, street, number, blockNumber, city, postalCode)
	if err != nil {
		return respondError(c, err, "building address could not be created")
	}
	if exists {
		return respondError(c, apperr.New(apperr.InsertFailed, "building address already exists"), "building address could not be created")
	}

	id, err := h.Repo.Create(ctx, street, number, blockNumber, city, postalCode)
	if err != nil {
		return respondError(c, err, "building address could not be created")
	}
	log.Printf("created building address %d (%s, %s, %s)", id, street, postalCode, city)
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

func buildingAddressJSON(id uint64, street string, number, blockNumber *string, city, postalCode string) echo.Map {
	return echo.Map{
		"id":           id,
		"street":       street,
		"number":       number,
		"block_number": blockNumber,
		"city":         city,
		"postal_code":  postalCode,
	}
}

// Get handles GET /v1/building-addresses/:id.
func (h *BuildingAddressHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building address id"})
	}
	ba, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "building address could not be found")
	}
	return c.JSON(http.StatusOK, buildingAddressJSON(ba.ID, ba.Street, ba.Number, ba.BlockNumber, ba.City, ba.PostalCode))
}

// Update handles PATCH /v1/building-addresses/:id. Street, city and postal
// code keep their value when omitted; number and block number are
// replaced by whatever the request carries, including nothing.
func (h *BuildingAddressHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building address id"})
	}
	var body struct {
		Street      *string `json:"street"`
		Number      *string `json:"number"`
		BlockNumber *string `json:"block_number"`
		City        *string `json:"city"`
		PostalCode  *string `json:"postal_code"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	var street, city *string
	if body.Street != nil {
		s := capitalize(*body.Street)
		street = &s
	}
	if body.City != nil {
		s := capitalize(*body.City)
		city = &s
	}
	postalCode := upperTrimmed(body.PostalCode)
	number := upperTrimmed(body.Number)
	blockNumber := upperTrimmed(body.BlockNumber)

	ba, err := h.Repo.Update(c.Request().Context(), id, street, number, blockNumber, city, postalCode)
	if err != nil {
		return respondError(c, err, "building address could not be updated")
	}
	log.Printf("updated building address %d", ba.ID)
	return c.JSON(http.StatusOK, buildingAddressJSON(ba.ID, ba.Street, ba.Number, ba.BlockNumber, ba.City, ba.PostalCode))
}

// Delete handles DELETE /v1/building-addresses/:id.
func (h *BuildingAddressHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building address id"})
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "building address could not be deleted")
	}
	log.Printf("deleted building address %d", id)
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}
