package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindString(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{InvalidTimestamp, "invalid_timestamp"},
		{InvalidWindow, "invalid_window"},
		{WindowInPast, "window_in_past"},
		{QuotaExceeded, "quota_exceeded"},
		{InsertFailed, "insert_failed"},
		{NotFound, "not_found"},
		{Kind(99), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestHTTPStatus(t *testing.T) {
	for _, k := range []Kind{InvalidTimestamp, InvalidWindow, WindowInPast, QuotaExceeded, InsertFailed, NotFound} {
		if got := HTTPStatus(k); got != http.StatusUnprocessableEntity {
			t.Errorf("HTTPStatus(%s) = %d, want 422", k, got)
		}
	}
	if got := HTTPStatus(Kind(99)); got != http.StatusInternalServerError {
		t.Errorf("HTTPStatus(unknown) = %d, want 500", got)
	}
}

func TestErrorFormatting(t *testing.T) {
	plain := New(QuotaExceeded, "week is full")
	if got := plain.Error(); got != "quota_exceeded: week is full" {
		t.Errorf("Error() = %q", got)
	}

	cause := errors.New("duplicate key")
	wrapped := Wrap(InsertFailed, "slot taken", cause)
	if got := wrapped.Error(); got != "insert_failed: slot taken: duplicate key" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error does not expose its cause via errors.Is")
	}
}

func TestKindOf(t *testing.T) {
	err := Newf(WindowInPast, "start %s already passed", "2020-10-15")

	k, ok := KindOf(err)
	if !ok || k != WindowInPast {
		t.Errorf("KindOf = (%v, %v), want (WindowInPast, true)", k, ok)
	}

	// The kind survives further wrapping.
	deep := fmt.Errorf("admitting booking: %w", err)
	if !Is(deep, WindowInPast) {
		t.Errorf("Is(deep, WindowInPast) = false for %v", deep)
	}
	if Is(deep, QuotaExceeded) {
		t.Error("Is matched the wrong kind")
	}

	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf reported a kind for a plain error")
	}
}
