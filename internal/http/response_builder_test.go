package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Serg-Vas/financial-dashboard/internal/core"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid query date", fmt.Errorf("%w: %w", errBadParam, &core.InvalidDateError{Field: "issuance_from", Value: "x"}), http.StatusBadRequest},
		{"invalid page", &core.InvalidPageRequestError{PageNumber: 0, PageSize: 10}, http.StatusBadRequest},
		{"invalid month", fmt.Errorf("aggregate month: %w", core.ErrInvalidMonth), http.StatusBadRequest},
		{"bad param", fmt.Errorf("%w: page", errBadParam), http.StatusBadRequest},
		{"stored bad date", fmt.Errorf("load loans: %w", &core.InvalidDateError{RecordID: 4, Field: core.FieldReturnDate}), http.StatusUnprocessableEntity},
		{"anything else", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusForError(tt.err); got != tt.want {
				t.Errorf("StatusForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// A malformed query date matches both errBadParam and core.ErrInvalidDate; the
// client is at fault, so it must stay a 400.
func TestStatusForError_QueryDateIsBadRequest(t *testing.T) {
	_, err := ParseFilterCriteria(url.Values{ParamReturnTo: {"31-12-2024"}})
	if !errors.Is(err, errBadParam) || !errors.Is(err, core.ErrInvalidDate) {
		t.Fatalf("expected both errBadParam and ErrInvalidDate, got %v", err)
	}
	var dateErr *core.InvalidDateError
	if !errors.As(err, &dateErr) || dateErr.Field != ParamReturnTo {
		t.Fatalf("expected InvalidDateError for %s, got %v", ParamReturnTo, err)
	}
	if got := StatusForError(err); got != http.StatusBadRequest {
		t.Fatalf("StatusForError = %d, want 400", got)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/loans", nil)
	writeError(rr, req, &core.InvalidPageRequestError{PageNumber: -1, PageSize: 10})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "invalid page request") {
		t.Errorf("body = %q", rr.Body.String())
	}
}
