package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/washplan/laundry-booking/internal/apperr"
	"github.com/washplan/laundry-booking/internal/repository"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"tagged quota error", apperr.New(apperr.QuotaExceeded, "week is full"), http.StatusUnprocessableEntity, "quota_exceeded"},
		{"repo not found promoted", repository.ErrNotFound, http.StatusUnprocessableEntity, "not_found"},
		{"wrapped not found promoted", errors.Join(errors.New("query"), repository.ErrNotFound), http.StatusUnprocessableEntity, "not_found"},
		{"plain error is a 500", errors.New("connection refused"), http.StatusInternalServerError, "database error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t)
			if err := respondError(c, tc.err, "operation failed"); err != nil {
				t.Fatalf("respondError returned %v", err)
			}
			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body["error"] != tc.wantError {
				t.Errorf("error field = %q, want %q", body["error"], tc.wantError)
			}
		})
	}
}

func TestParseIDParam(t *testing.T) {
	cases := []struct {
		in    string
		want  uint64
		valid bool
	}{
		{"17", 17, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		c, _ := newTestContext(t)
		c.SetParamNames("id")
		c.SetParamValues(tc.in)
		got, err := parseIDParam(c)
		if tc.valid {
			if err != nil || got != tc.want {
				t.Errorf("parseIDParam(%q) = (%d, %v), want (%d, nil)", tc.in, got, err, tc.want)
			}
			continue
		}
		if err == nil {
			t.Errorf("parseIDParam(%q) = %d, want error", tc.in, got)
		}
	}
}
