// Package handler contains the Echo HTTP handlers. Handlers bind request
// payloads, orchestrate repositories (opening a transaction when an
// operation spans multiple statements) and translate errors at the
// boundary: tagged apperr errors become structured unprocessable
// responses, everything else becomes a generic 500.
package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/washplan/laundry-booking/internal/apperr"
	"github.com/washplan/laundry-booking/internal/repository"
)

// parseIDParam extracts a positive numeric :id path parameter.
func parseIDParam(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// respondError maps an error to its HTTP response. Business failures keep
// their kind and message; repository.ErrNotFound is promoted to the
// NotFound kind; anything else is logged and reported as a system error.
func respondError(c echo.Context, err error, fallback string) error {
	if errors.Is(err, repository.ErrNotFound) {
		err = apperr.Wrap(apperr.NotFound, fallback, err)
	}
	if kind, ok := apperr.KindOf(err); ok {
		log.Printf("%s: %v", fallback, err)
		var e *apperr.Error
		errors.As(err, &e)
		return c.JSON(apperr.HTTPStatus(kind), echo.Map{
			"error":   kind.String(),
			"message": e.Message,
		})
	}
	log.Printf("%s: %v", fallback, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
