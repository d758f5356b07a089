// Package booking implements the admission engine: the decision of whether
// a requested booking window may be reserved. The engine is stateless and
// re-derives everything from the store on each call, so it can be run on
// any number of replicas. It holds no pool or transaction lifecycle; the
// caller supplies a Store that is already scoped to a single transaction
// so the quota check and the insert observe the same snapshot.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/washplan/laundry-booking/internal/apperr"
	"github.com/washplan/laundry-booking/internal/repository"
	"github.com/washplan/laundry-booking/internal/utils"
)

// Store is the transactional slice of the booking table the engine needs.
// Implementations wrap a *sql.Tx; both calls must run on the same
// transaction or two concurrent requests can each pass the quota check.
type Store interface {
	// CountContainedInWeek counts bookings fully contained in the week
	// window, regardless of status.
	CountContainedInWeek(ctx context.Context, weekStart, weekEnd time.Time) (int, error)
	// Insert reserves the slot with active status and returns the new id.
	// A storage-level conflict surfaces as repository.ErrNoRowInserted.
	Insert(ctx context.Context, userID, machineID uint64, start, end time.Time) (uint64, error)
}

// Request carries the inputs of a create-booking call. Start and end are
// ISO-8601 strings as received from the client; the engine owns parsing
// them so that a malformed instant fails with InvalidTimestamp before any
// store access.
type Request struct {
	UserID    uint64
	MachineID uint64
	StartTime string
	EndTime   string
}

// Engine decides booking admission against a weekly quota.
type Engine struct {
	// QuotaLimit is the configured weekly cap. The admission rule rejects
	// only when the pre-insert count already exceeds the limit, so the
	// effective maximum per week is QuotaLimit+1 rows.
	QuotaLimit int
}

// NewEngine returns an Engine enforcing the given weekly quota limit.
func NewEngine(quotaLimit int) *Engine { return &Engine{QuotaLimit: quotaLimit} }

// Admit runs the full admission sequence: window validation, quota check,
// reservation. It returns the new booking id on success. Failures are
// tagged apperr errors:
//
//	InvalidTimestamp – start or end could not be parsed
//	InvalidWindow    – start is after end
//	WindowInPast     – start is not in the future
//	QuotaExceeded    – the week already holds more than QuotaLimit bookings
//	InsertFailed     – the slot was taken at the storage layer
//
// The two store calls run against the caller's transaction; nothing is
// written when any check fails.
func (e *Engine) Admit(ctx context.Context, store Store, req Request) (uint64, error) {
	startsAfterEnd, err := utils.IsAfterDate(req.StartTime, req.EndTime)
	if err != nil {
		return 0, err
	}
	if startsAfterEnd {
		return 0, apperr.Newf(apperr.InvalidWindow, "start time %s is after end time %s", req.StartTime, req.EndTime)
	}

	inFuture, err := utils.IsAfterNow(req.StartTime)
	if err != nil {
		return 0, err
	}
	if !inFuture {
		return 0, apperr.Newf(apperr.WindowInPast, "start time %s is not in the future", req.StartTime)
	}

	weekStart, err := utils.BeginningOfWeek(req.StartTime)
	if err != nil {
		return 0, err
	}
	weekEnd, err := utils.EndOfWeek(req.StartTime)
	if err != nil {
		return 0, err
	}

	count, err := store.CountContainedInWeek(ctx, weekStart, weekEnd)
	if err != nil {
		return 0, err
	}
	if count > e.QuotaLimit {
		return 0, apperr.Newf(apperr.QuotaExceeded, "week of %s already has %d bookings", utils.FormatISO(weekStart), count)
	}

	start, err := utils.ParseTimestamp(req.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := utils.ParseTimestamp(req.EndTime)
	if err != nil {
		return 0, err
	}

	id, err := store.Insert(ctx, req.UserID, req.MachineID, start, end)
	if err != nil {
		if errors.Is(err, repository.ErrNoRowInserted) {
			return 0, apperr.Wrap(apperr.InsertFailed, "booking slot could not be reserved", err)
		}
		return 0, err
	}
	return id, nil
}
