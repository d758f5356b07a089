package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/washplan/laundry-booking/internal/apperr"
	"github.com/washplan/laundry-booking/internal/repository"
	"github.com/washplan/laundry-booking/internal/utils"
)

// defaultUserRole is assigned to every user created through the API.
const defaultUserRole = "resident"

// UserHandler serves the user CRUD endpoints.
type UserHandler struct {
	Repo       *repository.UserRepo
	BcryptCost int
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(repo *repository.UserRepo, bcryptCost int) *UserHandler {
	if repo == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Repo: repo, BcryptCost: bcryptCost}
}

// Create handles POST /v1/users. Emails are unique; the password is
// stored as a bcrypt hash only.
func (h *UserHandler) Create(c echo.Context) error {
	var body struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Email == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}
	ctx := c.Request().Context()
	log.Printf("creating user with email %s", body.Email)

	exists, err := h.Repo.EmailExists(ctx, body.Email)
	if err != nil {
		return respondError(c, err, "user could not be created")
	}
	if exists {
		return respondError(c, apperr.Newf(apperr.InsertFailed, "user with email %s already exists", body.Email), "user could not be created")
	}

	hash, err := utils.HashPassword(body.Password, h.BcryptCost)
	if err != nil {
		return respondError(c, err, "user could not be created")
	}

	id, err := h.Repo.Create(ctx, body.FirstName, body.LastName, body.Email, hash, defaultUserRole)
	if err != nil {
		return respondError(c, err, "user could not be created")
	}
	log.Printf("created user %d with email %s", id, body.Email)
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// Get handles GET /v1/users/:id. The password hash is never exposed.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	u, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "user could not be found")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":         u.ID,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
		"role":       u.Role,
	})
}

// Update handles PATCH /v1/users/:id. Omitted fields keep their value; a
// supplied password is rehashed before storing.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var body struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Email     *string `json:"email"`
		Password  *string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	var passwordHash *string
	if body.Password != nil {
		hash, err := utils.HashPassword(*body.Password, h.BcryptCost)
		if err != nil {
			return respondError(c, err, "user could not be updated")
		}
		passwordHash = &hash
	}
	u, err := h.Repo.Update(c.Request().Context(), id, body.FirstName, body.LastName, body.Email, passwordHash)
	if err != nil {
		return respondError(c, err, "user could not be updated")
	}
	log.Printf("updated user %d", u.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"id":         u.ID,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
	})
}

// Delete handles DELETE /v1/users/:id. Users are hard deleted.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "user could not be deleted")
	}
	log.Printf("deleted user %d", id)
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}
