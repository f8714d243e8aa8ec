// Package http provides the JSON API over the loan analytics engines.
//
// This file implements JSON response writing and the mapping from domain
// errors to HTTP status codes.

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Serg-Vas/financial-dashboard/internal/core"
	"github.com/Serg-Vas/financial-dashboard/internal/log"
)

var errBadParam = errors.New("invalid query parameter")

// LoansPage is the /api/loans response body.
type LoansPage struct {
	Items      []core.LoanRecord `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// StatusForError maps request validation errors to 400, dataset records that
// cannot be compared to 422 and everything else to 500.
func StatusForError(err error) int {
	// errBadParam must be checked first: a bad query date also wraps
	// *core.InvalidDateError and so matches core.ErrInvalidDate.
	switch {
	case errors.Is(err, errBadParam),
		errors.Is(err, core.ErrInvalidPageRequest),
		errors.Is(err, core.ErrInvalidMonth):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrInvalidDate):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError logs err and writes it as JSON. Internal errors hide their
// details from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusForError(err)
	logger := log.FromContext(r.Context())
	fields := log.NewFields().WithError(err).ToSlice()
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", fields...)
		msg = http.StatusText(status)
	} else {
		logger.DebugContext(r.Context(), "Rejected request", fields...)
	}
	writeJSON(w, status, ErrorBody{Error: msg})
}
