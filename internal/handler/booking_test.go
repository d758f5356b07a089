package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/washplan/laundry-booking/internal/booking"
	"github.com/washplan/laundry-booking/internal/model"
	"github.com/washplan/laundry-booking/internal/repository"
)

// fakeBookingStore implements BookingStore over an in-memory row map. Its
// Deactivate mirrors the repository contract: the update matches by id
// alone, so an already-inactive row is returned again, and only an unknown
// id yields ErrNotFound.
type fakeBookingStore struct {
	rows map[uint64]*model.Booking
}

func (f *fakeBookingStore) DB() *sql.DB { return nil }

func (f *fakeBookingStore) CountContainedInWeekTx(ctx context.Context, tx *sql.Tx, weekStart, weekEnd time.Time) (int, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeBookingStore) InsertTx(ctx context.Context, tx *sql.Tx, userID, machineID uint64, start, end time.Time) (uint64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeBookingStore) GetActiveByID(ctx context.Context, id uint64) (*model.Booking, error) {
	b, ok := f.rows[id]
	if !ok || b.Status != model.BookingActive {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (f *fakeBookingStore) ListActiveByUserWithin(ctx context.Context, userID uint64, periodStart, periodEnd time.Time) ([]model.Booking, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBookingStore) Deactivate(ctx context.Context, id uint64) (*model.Booking, error) {
	b, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	b.Status = model.BookingInactive
	return b, nil
}

func cancelRequest(t *testing.T, h *BookingHandler, id string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/bookings/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if err := h.Cancel(c); err != nil {
		t.Fatalf("Cancel returned %v", err)
	}
	return rec
}

func TestCancelIsIdempotent(t *testing.T) {
	store := &fakeBookingStore{rows: map[uint64]*model.Booking{
		5: {
			ID: 5, UserID: 7, MachineID: 3,
			StartTime: time.Date(2020, 10, 15, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2020, 10, 15, 12, 0, 0, 0, time.UTC),
			Status:    model.BookingActive,
		},
	}}
	h := NewBookingHandler(store, booking.NewEngine(2))

	for i := 0; i < 2; i++ {
		rec := cancelRequest(t, h, "5")
		if rec.Code != http.StatusOK {
			t.Fatalf("cancel #%d status = %d, want 200", i+1, rec.Code)
		}
		var body bookingResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("cancel #%d invalid JSON: %v", i+1, err)
		}
		if body.ID != 5 || body.Status != string(model.BookingInactive) {
			t.Errorf("cancel #%d returned id=%d status=%q, want id=5 status=inactive", i+1, body.ID, body.Status)
		}
	}
}

func TestCancelUnknownID(t *testing.T) {
	store := &fakeBookingStore{rows: map[uint64]*model.Booking{}}
	h := NewBookingHandler(store, booking.NewEngine(2))

	rec := cancelRequest(t, h, "99")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "not_found" {
		t.Errorf("error field = %q, want not_found", body["error"])
	}
}

func TestGetSkipsCancelledBookings(t *testing.T) {
	store := &fakeBookingStore{rows: map[uint64]*model.Booking{
		5: {
			ID: 5, UserID: 7, MachineID: 3,
			StartTime: time.Date(2020, 10, 15, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2020, 10, 15, 12, 0, 0, 0, time.UTC),
			Status:    model.BookingInactive,
		},
	}}
	h := NewBookingHandler(store, booking.NewEngine(2))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")
	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422 for a cancelled booking", rec.Code)
	}
}
