package handler

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/washplan/laundry-booking/internal/booking"
	"github.com/washplan/laundry-booking/internal/model"
	"github.com/washplan/laundry-booking/internal/queue"
	queuepublisher "github.com/washplan/laundry-booking/internal/service"
	"github.com/washplan/laundry-booking/internal/utils"
)

// BookingStore is the repository surface the booking handler needs.
// *repository.BookingRepo satisfies it; tests substitute a fake.
type BookingStore interface {
	DB() *sql.DB
	CountContainedInWeekTx(ctx context.Context, tx *sql.Tx, weekStart, weekEnd time.Time) (int, error)
	InsertTx(ctx context.Context, tx *sql.Tx, userID, machineID uint64, start, end time.Time) (uint64, error)
	GetActiveByID(ctx context.Context, id uint64) (*model.Booking, error)
	ListActiveByUserWithin(ctx context.Context, userID uint64, periodStart, periodEnd time.Time) ([]model.Booking, error)
	Deactivate(ctx context.Context, id uint64) (*model.Booking, error)
}

// BookingHandler serves the booking endpoints. Creation delegates the
// admission decision to the engine; the handler owns the transaction so
// the quota check and the insert share one connection.
type BookingHandler struct {
	Repo   BookingStore
	Engine *booking.Engine
}

// NewBookingHandler constructs a BookingHandler. Both dependencies must be
// non-nil.
func NewBookingHandler(repo BookingStore, engine *booking.Engine) *BookingHandler {
	if repo == nil || engine == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Repo: repo, Engine: engine}
}

// txStore adapts BookingStore to the engine's Store interface, pinning
// every call to one transaction.
type txStore struct {
	repo BookingStore
	tx   *sql.Tx
}

func (s txStore) CountContainedInWeek(ctx context.Context, weekStart, weekEnd time.Time) (int, error) {
	return s.repo.CountContainedInWeekTx(ctx, s.tx, weekStart, weekEnd)
}

func (s txStore) Insert(ctx context.Context, userID, machineID uint64, start, end time.Time) (uint64, error) {
	return s.repo.InsertTx(ctx, s.tx, userID, machineID, start, end)
}

// bookingResponse renders a booking row with ISO-8601 UTC timestamps.
type bookingResponse struct {
	ID        uint64 `json:"id"`
	UserID    uint64 `json:"user_id"`
	MachineID uint64 `json:"machine_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

func toBookingResponse(b *model.Booking) bookingResponse {
	return bookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		MachineID: b.MachineID,
		StartTime: utils.FormatISO(b.StartTime),
		EndTime:   utils.FormatISO(b.EndTime),
		Status:    string(b.Status),
	}
}

// Create handles POST /v1/bookings. It runs the admission engine inside a
// single transaction and returns the new booking id. On success a
// booking.created event is published best-effort; a broker failure never
// fails the request.
func (h *BookingHandler) Create(c echo.Context) error {
	var body struct {
		UserID    uint64 `json:"user_id"`
		MachineID uint64 `json:"machine_id"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.UserID == 0 || body.MachineID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and machine_id are required"})
	}
	log.Printf("creating booking for machine %d from %s to %s", body.MachineID, body.StartTime, body.EndTime)

	ctx := c.Request().Context()
	tx, err := h.Repo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	id, err := h.Engine.Admit(ctx, txStore{repo: h.Repo, tx: tx}, booking.Request{
		UserID:    body.UserID,
		MachineID: body.MachineID,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
	})
	if err != nil {
		return respondError(c, err, "booking could not be created")
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	log.Printf("created booking %d for machine %d from %s to %s", id, body.MachineID, body.StartTime, body.EndTime)

	_ = queuepublisher.PublishBookingCreated(ctx, queue.BookingCreatedEvent{
		BookingID: id,
		UserID:    body.UserID,
		MachineID: body.MachineID,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		CreatedAt: utils.FormatISO(time.Now()),
	})

	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// Get handles GET /v1/bookings/:id. Only active bookings are returned;
// cancelled ones yield a not-found response.
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Repo.GetActiveByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "booking could not be found")
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// GetByQuery handles GET /v1/bookings?user_id=&start_period=&end_period=.
// The period bounds are expanded to whole UTC days before querying, so a
// bare date covers the full day.
func (h *BookingHandler) GetByQuery(c echo.Context) error {
	userID, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 64)
	if err != nil || userID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}
	startPeriod, err := utils.BeginningOfDay(c.QueryParam("start_period"))
	if err != nil {
		return respondError(c, err, "bookings could not be found")
	}
	endPeriod, err := utils.EndOfDay(c.QueryParam("end_period"))
	if err != nil {
		return respondError(c, err, "bookings could not be found")
	}

	bookings, err := h.Repo.ListActiveByUserWithin(c.Request().Context(), userID, startPeriod, endPeriod)
	if err != nil {
		return respondError(c, err, "bookings could not be found")
	}
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Cancel handles DELETE /v1/bookings/:id. The booking is soft deleted:
// status flips to inactive and the row is returned. Cancelling twice is
// idempotent; only an unknown id yields not-found.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	log.Printf("marking booking %d as inactive", id)
	b, err := h.Repo.Deactivate(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "booking could not be cancelled")
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}
