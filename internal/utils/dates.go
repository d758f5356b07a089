package utils

import (
	"time"

	"github.com/washplan/laundry-booking/internal/apperr"
)

// isoMillis renders instants the way the API exposes them: UTC with
// millisecond precision and a trailing Z.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// isoLayouts are the accepted input shapes: a full ISO-8601 timestamp with
// any offset, a timestamp without offset (treated as UTC) and a bare date.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp and normalizes it to UTC.
// Booking windows are always compared in UTC regardless of the offset the
// client supplied, so every comparison helper below starts here. Fails with
// apperr.InvalidTimestamp on anything that is not a valid timestamp.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperr.Newf(apperr.InvalidTimestamp, "%q is not a valid ISO-8601 timestamp", value)
}

// FormatISO renders an instant as an ISO-8601 UTC string with millisecond
// precision, e.g. 2020-10-12T00:00:00.000Z.
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

// IsAfterNow reports whether the instant is strictly later than the current
// UTC time.
func IsAfterNow(value string) (bool, error) {
	t, err := ParseTimestamp(value)
	if err != nil {
		return false, err
	}
	return t.After(time.Now().UTC()), nil
}

// IsAfterDate reports whether a is strictly later than b. Equal instants
// yield false.
func IsAfterDate(a, b string) (bool, error) {
	ta, err := ParseTimestamp(a)
	if err != nil {
		return false, err
	}
	tb, err := ParseTimestamp(b)
	if err != nil {
		return false, err
	}
	return ta.After(tb), nil
}

// BeginningOfWeek returns Monday 00:00:00.000 UTC of the ISO week containing
// the instant.
func BeginningOfWeek(value string) (time.Time, error) {
	t, err := ParseTimestamp(value)
	if err != nil {
		return time.Time{}, err
	}
	// time.Weekday numbers Sunday as 0; ISO weeks start on Monday.
	offset := (int(t.Weekday()) + 6) % 7
	day := t.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC), nil
}

// EndOfWeek returns Sunday 23:59:59.999 UTC of the ISO week containing the
// instant.
func EndOfWeek(value string) (time.Time, error) {
	start, err := BeginningOfWeek(value)
	if err != nil {
		return time.Time{}, err
	}
	return start.AddDate(0, 0, 7).Add(-time.Millisecond), nil
}

// BeginningOfDay returns 00:00:00.000 UTC of the calendar day containing the
// instant.
func BeginningOfDay(value string) (time.Time, error) {
	t, err := ParseTimestamp(value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// EndOfDay returns 23:59:59.999 UTC of the calendar day containing the
// instant.
func EndOfDay(value string) (time.Time, error) {
	start, err := BeginningOfDay(value)
	if err != nil {
		return time.Time{}, err
	}
	return start.AddDate(0, 0, 1).Add(-time.Millisecond), nil
}
