package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/washplan/laundry-booking/internal/model"
)

// BookingRepo provides access to the `booking` table. Bookings are soft
// deleted: cancellation flips status to inactive and the row remains. All
// timestamps are stored and compared in UTC; the connection is opened with
// loc=UTC so DATETIME columns round-trip unchanged.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying pool so handlers can open transactions that
// span the quota check and the insert.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// CountContainedInWeekTx counts bookings whose window is fully contained in
// [weekStart, weekEnd], inside the caller's transaction.
//
// Deliberately no status filter: cancelled bookings keep consuming weekly
// quota, while single-row lookups do filter on active. The asymmetry is
// inherited behavior and is documented rather than fixed here.
func (r *BookingRepo) CountContainedInWeekTx(ctx context.Context, tx *sql.Tx, weekStart, weekEnd time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM booking WHERE start_time >= ? AND end_time <= ?`
	var count int
	if err := tx.QueryRowContext(ctx, q, weekStart, weekEnd).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// InsertTx inserts an active booking row inside the caller's transaction
// and returns the generated id. A uniqueness conflict (same machine and
// window already taken) is absorbed by INSERT IGNORE and reported as
// ErrNoRowInserted so the engine can distinguish it from a quota rejection.
func (r *BookingRepo) InsertTx(ctx context.Context, tx *sql.Tx, userID, machineID uint64, start, end time.Time) (uint64, error) {
	const q = `INSERT IGNORE INTO booking (user_id, machine_id, start_time, end_time, status)
	           VALUES (?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, userID, machineID, start, end, model.BookingActive)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, ErrNoRowInserted
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetActiveByID returns the active booking with the given id, or
// ErrNotFound when the row is absent or inactive.
func (r *BookingRepo) GetActiveByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT id, user_id, machine_id, start_time, end_time, status
	           FROM booking WHERE id = ? AND status = ?`
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, id, model.BookingActive).Scan(
		&b.ID, &b.UserID, &b.MachineID, &b.StartTime, &b.EndTime, &b.Status,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListActiveByUserWithin returns the user's active bookings whose window is
// fully contained in [periodStart, periodEnd], ordered by start time.
func (r *BookingRepo) ListActiveByUserWithin(ctx context.Context, userID uint64, periodStart, periodEnd time.Time) ([]model.Booking, error) {
	const q = `SELECT id, user_id, machine_id, start_time, end_time, status
	           FROM booking
	           WHERE user_id = ? AND status = ? AND start_time >= ? AND end_time <= ?
	           ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, q, userID, model.BookingActive, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.MachineID, &b.StartTime, &b.EndTime, &b.Status); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Deactivate flips the booking's status to inactive and returns the updated
// row. The update matches on id alone, so cancelling an already-inactive
// booking succeeds and returns the row again (idempotent cancel).
// ErrNotFound is returned only when the id does not exist at all.
func (r *BookingRepo) Deactivate(ctx context.Context, id uint64) (*model.Booking, error) {
	const upd = `UPDATE booking SET status = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, upd, model.BookingInactive, id); err != nil {
		return nil, err
	}
	const sel = `SELECT id, user_id, machine_id, start_time, end_time, status FROM booking WHERE id = ?`
	var b model.Booking
	err := r.db.QueryRowContext(ctx, sel, id).Scan(
		&b.ID, &b.UserID, &b.MachineID, &b.StartTime, &b.EndTime, &b.Status,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
