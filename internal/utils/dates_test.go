package utils

import (
	"testing"
	"time"

	"github.com/washplan/laundry-booking/internal/apperr"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
		valid bool
	}{
		{"full timestamp with Z", "2020-10-15T12:30:00.000Z", "2020-10-15T12:30:00.000Z", true},
		{"offset normalized to UTC", "2020-10-15T12:30:00+02:00", "2020-10-15T10:30:00.000Z", true},
		{"no offset treated as UTC", "2020-10-15T12:30:00", "2020-10-15T12:30:00.000Z", true},
		{"minute precision", "2020-10-15T12:30", "2020-10-15T12:30:00.000Z", true},
		{"bare date", "2020-10-15", "2020-10-15T00:00:00.000Z", true},
		{"empty", "", "", false},
		{"garbage", "abc", "", false},
		{"zero", "0", "", false},
		{"negative", "-1", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTimestamp(tc.in)
			if !tc.valid {
				if err == nil {
					t.Fatalf("ParseTimestamp(%q) = %v, want error", tc.in, got)
				}
				if !apperr.Is(err, apperr.InvalidTimestamp) {
					t.Fatalf("ParseTimestamp(%q) error = %v, want InvalidTimestamp", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) error: %v", tc.in, err)
			}
			if s := FormatISO(got); s != tc.want {
				t.Errorf("ParseTimestamp(%q) = %s, want %s", tc.in, s, tc.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("ParseTimestamp(%q) location = %v, want UTC", tc.in, got.Location())
			}
		})
	}
}

func TestWeekBounds(t *testing.T) {
	cases := []struct {
		name      string
		in        string
		wantStart string
		wantEnd   string
	}{
		{"thursday mid-week", "2020-10-15", "2020-10-12T00:00:00.000Z", "2020-10-18T23:59:59.999Z"},
		{"monday maps to itself", "2020-10-12T08:00:00Z", "2020-10-12T00:00:00.000Z", "2020-10-18T23:59:59.999Z"},
		{"sunday stays in same week", "2020-10-18T23:00:00Z", "2020-10-12T00:00:00.000Z", "2020-10-18T23:59:59.999Z"},
		{"year boundary", "2021-01-01", "2020-12-28T00:00:00.000Z", "2021-01-03T23:59:59.999Z"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, err := BeginningOfWeek(tc.in)
			if err != nil {
				t.Fatalf("BeginningOfWeek(%q) error: %v", tc.in, err)
			}
			if s := FormatISO(start); s != tc.wantStart {
				t.Errorf("BeginningOfWeek(%q) = %s, want %s", tc.in, s, tc.wantStart)
			}
			end, err := EndOfWeek(tc.in)
			if err != nil {
				t.Fatalf("EndOfWeek(%q) error: %v", tc.in, err)
			}
			if s := FormatISO(end); s != tc.wantEnd {
				t.Errorf("EndOfWeek(%q) = %s, want %s", tc.in, s, tc.wantEnd)
			}
		})
	}
}

func TestDayBounds(t *testing.T) {
	start, err := BeginningOfDay("2020-10-15T14:45:00Z")
	if err != nil {
		t.Fatalf("BeginningOfDay error: %v", err)
	}
	if s := FormatISO(start); s != "2020-10-15T00:00:00.000Z" {
		t.Errorf("BeginningOfDay = %s, want 2020-10-15T00:00:00.000Z", s)
	}
	end, err := EndOfDay("2020-10-15T14:45:00Z")
	if err != nil {
		t.Fatalf("EndOfDay error: %v", err)
	}
	if s := FormatISO(end); s != "2020-10-15T23:59:59.999Z" {
		t.Errorf("EndOfDay = %s, want 2020-10-15T23:59:59.999Z", s)
	}
}

func TestIsAfterDate(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want bool
	}{
		{"later is after", "2020-10-15T13:00:00Z", "2020-10-15T12:00:00Z", true},
		{"earlier is not after", "2020-10-15T12:00:00Z", "2020-10-15T13:00:00Z", false},
		{"equal is not after", "2020-10-15T12:00:00Z", "2020-10-15T12:00:00Z", false},
		{"offsets compare as instants", "2020-10-15T12:00:00+02:00", "2020-10-15T10:00:00Z", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := IsAfterDate(tc.a, tc.b)
			if err != nil {
				t.Fatalf("IsAfterDate(%q, %q) error: %v", tc.a, tc.b, err)
			}
			if got != tc.want {
				t.Errorf("IsAfterDate(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}

	if _, err := IsAfterDate("abc", "2020-10-15"); !apperr.Is(err, apperr.InvalidTimestamp) {
		t.Errorf("IsAfterDate with bad first arg: error = %v, want InvalidTimestamp", err)
	}
	if _, err := IsAfterDate("2020-10-15", "abc"); !apperr.Is(err, apperr.InvalidTimestamp) {
		t.Errorf("IsAfterDate with bad second arg: error = %v, want InvalidTimestamp", err)
	}
}

func TestIsAfterNow(t *testing.T) {
	future := FormatISO(time.Now().UTC().Add(24 * time.Hour))
	got, err := IsAfterNow(future)
	if err != nil {
		t.Fatalf("IsAfterNow(%q) error: %v", future, err)
	}
	if !got {
		t.Errorf("IsAfterNow(%q) = false, want true", future)
	}

	past := FormatISO(time.Now().UTC().Add(-24 * time.Hour))
	got, err = IsAfterNow(past)
	if err != nil {
		t.Fatalf("IsAfterNow(%q) error: %v", past, err)
	}
	if got {
		t.Errorf("IsAfterNow(%q) = true, want false", past)
	}
}

func TestFormatISOTruncatesToMillis(t *testing.T) {
	in := time.Date(2020, 10, 15, 12, 30, 45, 123456789, time.UTC)
	if s := FormatISO(in); s != "2020-10-15T12:30:45.123Z" {
		t.Errorf("FormatISO = %s, want 2020-10-15T12:30:45.123Z", s)
	}
}
