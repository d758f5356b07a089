package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/washplan/laundry-booking/internal/apperr"
	"github.com/washplan/laundry-booking/internal/repository"
	"github.com/washplan/laundry-booking/internal/utils"
)

// mockStore implements Store with overridable behavior per test case.
type mockStore struct {
	countFn  func(ctx context.Context, weekStart, weekEnd time.Time) (int, error)
	insertFn func(ctx context.Context, userID, machineID uint64, start, end time.Time) (uint64, error)

	countCalls  int
	insertCalls int
}

func (m *mockStore) CountContainedInWeek(ctx context.Context, weekStart, weekEnd time.Time) (int, error) {
	m.countCalls++
	if m.countFn == nil {
		return 0, nil
	}
	return m.countFn(ctx, weekStart, weekEnd)
}

func (m *mockStore) Insert(ctx context.Context, userID, machineID uint64, start, end time.Time) (uint64, error) {
	m.insertCalls++
	if m.insertFn == nil {
		return 1, nil
	}
	return m.insertFn(ctx, userID, machineID, start, end)
}

// futureWindow returns a start/end pair well in the future so the past check
// never interferes with the case under test.
func futureWindow(t *testing.T) (string, string) {
	t.Helper()
	start := time.Now().UTC().Add(48 * time.Hour)
	return utils.FormatISO(start), utils.FormatISO(start.Add(2 * time.Hour))
}

func TestAdmitSuccess(t *testing.T) {
	start, end := futureWindow(t)
	store := &mockStore{
		countFn: func(ctx context.Context, weekStart, weekEnd time.Time) (int, error) {
			return 2, nil
		},
		insertFn: func(ctx context.Context, userID, machineID uint64, s, e time.Time) (uint64, error) {
			if userID != 7 || machineID != 3 {
				t.Errorf("Insert got user=%d machine=%d, want user=7 machine=3", userID, machineID)
			}
			return 42, nil
		},
	}

	id, err := NewEngine(2).Admit(context.Background(), store, Request{
		UserID: 7, MachineID: 3, StartTime: start, EndTime: end,
	})
	if err != nil {
		t.Fatalf("Admit error: %v", err)
	}
	if id != 42 {
		t.Errorf("Admit id = %d, want 42", id)
	}
	if store.countCalls != 1 || store.insertCalls != 1 {
		t.Errorf("store calls = %d count, %d insert; want 1 and 1", store.countCalls, store.insertCalls)
	}
}

func TestAdmitQuotaBoundary(t *testing.T) {
	// The rule rejects only when the pre-insert count already exceeds the
	// limit. With limit 2 a count of 2 admits, a count of 3 rejects.
	cases := []struct {
		name     string
		count    int
		admitted bool
	}{
		{"count below limit", 1, true},
		{"count at limit still admits", 2, true},
		{"count above limit rejects", 3, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := futureWindow(t)
			store := &mockStore{
				countFn: func(ctx context.Context, weekStart, weekEnd time.Time) (int, error) {
					return tc.count, nil
				},
			}

			_, err := NewEngine(2).Admit(context.Background(), store, Request{
				UserID: 1, MachineID: 1, StartTime: start, EndTime: end,
			})
			if tc.admitted {
				if err != nil {
					t.Fatalf("Admit error: %v", err)
				}
				if store.insertCalls != 1 {
					t.Errorf("insert calls = %d, want 1", store.insertCalls)
				}
				return
			}
			if !apperr.Is(err, apperr.QuotaExceeded) {
				t.Fatalf("Admit error = %v, want QuotaExceeded", err)
			}
			if store.insertCalls != 0 {
				t.Errorf("insert calls = %d, want 0 after quota rejection", store.insertCalls)
			}
		})
	}
}

func TestAdmitQuotaUsesStartWeek(t *testing.T) {
	store := &mockStore{
		countFn: func(ctx context.Context, weekStart, weekEnd time.Time) (int, error) {
			if got := utils.FormatISO(weekStart); got[11:] != "00:00:00.000Z" {
				t.Errorf("weekStart = %s, want midnight", got)
			}
			if weekStart.Weekday() != time.Monday {
				t.Errorf("weekStart weekday = %v, want Monday", weekStart.Weekday())
			}
			if want := weekStart.AddDate(0, 0, 7).Add(-time.Millisecond); !weekEnd.Equal(want) {
				t.Errorf("weekEnd = %v, want %v", weekEnd, want)
			}
			return 0, nil
		},
	}

	start, end := futureWindow(t)
	if _, err := NewEngine(2).Admit(context.Background(), store, Request{
		UserID: 1, MachineID: 1, StartTime: start, EndTime: end,
	}); err != nil {
		t.Fatalf("Admit error: %v", err)
	}
	if store.countCalls != 1 {
		t.Fatalf("count calls = %d, want 1", store.countCalls)
	}
}

func TestAdmitRejectsInvertedWindow(t *testing.T) {
	start, end := futureWindow(t)
	store := &mockStore{}

	_, err := NewEngine(2).Admit(context.Background(), store, Request{
		UserID: 1, MachineID: 1, StartTime: end, EndTime: start,
	})
	if !apperr.Is(err, apperr.InvalidWindow) {
		t.Fatalf("Admit error = %v, want InvalidWindow", err)
	}
	if store.countCalls != 0 || store.insertCalls != 0 {
		t.Errorf("store was touched (%d count, %d insert), want no calls", store.countCalls, store.insertCalls)
	}
}

func TestAdmitEqualStartAndEnd(t *testing.T) {
	// Window validation is a strict after-comparison, so a zero-length
	// window where start equals end is admitted.
	instant := utils.FormatISO(time.Now().UTC().Add(48 * time.Hour))
	store := &mockStore{}

	id, err := NewEngine(2).Admit(context.Background(), store, Request{
		UserID: 1, MachineID: 1, StartTime: instant, EndTime: instant,
	})
	if err != nil {
		t.Fatalf("Admit error: %v", err)
	}
	if id != 1 {
		t.Errorf("Admit id = %d, want 1", id)
	}
	if store.countCalls != 1 || store.insertCalls != 1 {
		t.Errorf("store calls = %d count, %d insert; want 1 and 1", store.countCalls, store.insertCalls)
	}
}

func TestAdmitRejectsPastStart(t *testing.T) {
	start := utils.FormatISO(time.Now().UTC().Add(-time.Hour))
	end := utils.FormatISO(time.Now().UTC().Add(time.Hour))
	store := &mockStore{}

	_, err := NewEngine(2).Admit(context.Background(), store, Request{
		UserID: 1, MachineID: 1, StartTime: start, EndTime: end,
	})
	if !apperr.Is(err, apperr.WindowInPast) {
		t.Fatalf("Admit error = %v, want WindowInPast", err)
	}
	if store.countCalls != 0 {
		t.Errorf("count calls = %d, want 0", store.countCalls)
	}
}

func TestAdmitRejectsBadTimestamps(t *testing.T) {
	_, end := futureWindow(t)
	for _, bad := range []string{"", "abc", "0"} {
		store := &mockStore{}
		_, err := NewEngine(2).Admit(context.Background(), store, Request{
			UserID: 1, MachineID: 1, StartTime: bad, EndTime: end,
		})
		if !apperr.Is(err, apperr.InvalidTimestamp) {
			t.Errorf("Admit with start %q: error = %v, want InvalidTimestamp", bad, err)
		}
		if store.countCalls != 0 || store.insertCalls != 0 {
			t.Errorf("Admit with start %q touched the store", bad)
		}
	}
}

func TestAdmitInsertConflict(t *testing.T) {
	start, end := futureWindow(t)
	store := &mockStore{
		insertFn: func(ctx context.Context, userID, machineID uint64, s, e time.Time) (uint64, error) {
			return 0, repository.ErrNoRowInserted
		},
	}

	_, err := NewEngine(2).Admit(context.Background(), store, Request{
		UserID: 1, MachineID: 1, StartTime: start, EndTime: end,
	})
	if !apperr.Is(err, apperr.InsertFailed) {
		t.Fatalf("Admit error = %v, want InsertFailed", err)
	}
	if !errors.Is(err, repository.ErrNoRowInserted) {
		t.Errorf("Admit error does not wrap ErrNoRowInserted: %v", err)
	}
}

func TestAdmitPropagatesStoreErrors(t *testing.T) {
	start, end := futureWindow(t)
	boom := errors.New("connection lost")
	store := &mockStore{
		countFn: func(ctx context.Context, weekStart, weekEnd time.Time) (int, error) {
			return 0, boom
		},
	}

	_, err := NewEngine(2).Admit(context.Background(), store, Request{
		UserID: 1, MachineID: 1, StartTime: start, EndTime: end,
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Admit error = %v, want the store error", err)
	}
	if _, tagged := apperr.KindOf(err); tagged {
		t.Errorf("store error was tagged as a business error: %v", err)
	}
}
