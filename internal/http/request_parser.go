// Package http provides the JSON API over the loan analytics engines.
//
// This file implements parsing and validation of query parameters into core
// filter criteria, page requests and month selections.

package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Serg-Vas/financial-dashboard/internal/core"
)

// Query parameter names.
const (
	ParamIssuanceFrom = "issuance_from"
	ParamIssuanceTo   = "issuance_to"
	ParamReturnFrom   = "return_from"
	ParamReturnTo     = "return_to"
	ParamOverdue      = "overdue"
	ParamPage         = "page"
	ParamPageSize     = "page_size"
	ParamMonth        = "month"
)

// ParseFilterCriteria builds filter criteria from the query. Missing or empty
// bounds stay absent; a malformed date fails with an error wrapping both
// errBadParam and *core.InvalidDateError.
func ParseFilterCriteria(query url.Values) (core.FilterCriteria, error) {
	var c core.FilterCriteria
	bounds := []struct {
		param string
		dst   *core.Date
	}{
		{ParamIssuanceFrom, &c.IssuanceDateFrom},
		{ParamIssuanceTo, &c.IssuanceDateTo},
		{ParamReturnFrom, &c.ReturnDateFrom},
		{ParamReturnTo, &c.ReturnDateTo},
	}
	for _, b := range bounds {
		v := strings.TrimSpace(query.Get(b.param))
		if v == "" {
			continue
		}
		d, err := core.ParseDate(v)
		if err != nil {
			return core.FilterCriteria{}, fmt.Errorf("%w: %w", errBadParam, &core.InvalidDateError{Field: b.param, Value: v})
		}
		*b.dst = d
	}

	if v := strings.TrimSpace(query.Get(ParamOverdue)); v != "" {
		overdue, err := strconv.ParseBool(v)
		if err != nil {
			return core.FilterCriteria{}, fmt.Errorf("%w: %s must be a boolean, got %q", errBadParam, ParamOverdue, v)
		}
		c.OverdueOnly = overdue
	}
	return c, nil
}

// ParsePageRequest reads page and page_size, defaulting to the first page of
// defaultSize. Sizes above maxSize are clamped. Non-positive values are kept
// so that PageRequest.Validate reports them.
func ParsePageRequest(query url.Values, defaultSize, maxSize int) (core.PageRequest, error) {
	page := core.PageRequest{PageNumber: 1, PageSize: defaultSize}

	if v := strings.TrimSpace(query.Get(ParamPage)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return core.PageRequest{}, fmt.Errorf("%w: %s must be a number, got %q", errBadParam, ParamPage, v)
		}
		page.PageNumber = n
	}
	if v := strings.TrimSpace(query.Get(ParamPageSize)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return core.PageRequest{}, fmt.Errorf("%w: %s must be a number, got %q", errBadParam, ParamPageSize, v)
		}
		page.PageSize = n
	}
	if maxSize > 0 && page.PageSize > maxSize {
		page.PageSize = maxSize
	}

	if err := page.Validate(); err != nil {
		return core.PageRequest{}, err
	}
	return page, nil
}

// ParseMonth reads the yyyy-MM month parameter. Absent means no month.
func ParseMonth(query url.Values) (core.YearMonth, error) {
	return core.ParseYearMonth(query.Get(ParamMonth))
}
