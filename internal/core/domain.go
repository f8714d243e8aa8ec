package core

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar form used for loan dates on the wire.
const DateLayout = "2006-01-02"

type (
	Date struct {
		time.Time
	}

	LoanRecord struct {
		ID               int64   `json:"id"`
		User             string  `json:"user"`
		IssuanceDate     Date    `json:"issuance_date"`
		ReturnDate       Date    `json:"return_date"`        // due date
		ActualReturnDate Date    `json:"actual_return_date"` // zero while the loan is outstanding
		Body             float64 `json:"body"`
		Percent          float64 `json:"percent"`
	}

	// FilterCriteria bounds are inclusive; a zero Date leaves the bound unset.
	FilterCriteria struct {
		IssuanceDateFrom Date
		IssuanceDateTo   Date
		ReturnDateFrom   Date
		ReturnDateTo     Date
		OverdueOnly      bool
	}

	// PageRequest is 1-indexed.
	PageRequest struct {
		PageNumber int
		PageSize   int
	}
)

// Record field names used in InvalidDateError.
const (
	FieldIssuanceDate     = "issuance_date"
	FieldReturnDate       = "return_date"
	FieldActualReturnDate = "actual_return_date"
)

var (
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidPageRequest = errors.New("invalid page request")
	ErrInvalidMonth       = errors.New("invalid month")
)

// InvalidDateError reports a date that cannot be parsed or compared.
type InvalidDateError struct {
	RecordID int64
	Field    string
	Value    string
}

func (e *InvalidDateError) Error() string {
	var b strings.Builder
	b.WriteString("invalid date")
	if e.Field != "" {
		b.WriteString(" in " + e.Field)
	}
	if e.RecordID != 0 {
		fmt.Fprintf(&b, " of loan %d", e.RecordID)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, ": %q", e.Value)
	}
	return b.String()
}

func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }

type InvalidPageRequestError struct {
	PageNumber int
	PageSize   int
}

func (e *InvalidPageRequestError) Error() string {
	return fmt.Sprintf("invalid page request: page %d, size %d (page must be >= 1, size must be > 0)", e.PageNumber, e.PageSize)
}

func (e *InvalidPageRequestError) Unwrap() error { return ErrInvalidPageRequest }

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp, keeping only the calendar date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return NewDate(t.Year(), int(t.Month()), t.Day()), nil
	}
	return Date{}, &InvalidDateError{Value: s}
}

// IsEmpty returns true if the date is zero (absent optional date)
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// Month returns the 1-based month
func (d Date) Month() int {
	return int(d.Time.Month())
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*d = Date{}
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return &InvalidDateError{Value: string(data)}
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsReturned reports whether the loan has an actual return date, late or not.
func (l LoanRecord) IsReturned() bool {
	return !l.ActualReturnDate.IsEmpty()
}

// IsOverdue reports whether the loan came back after its due date, or is still
// outstanding with a due date before referenceNow.
func (l LoanRecord) IsOverdue(referenceNow time.Time) (bool, error) {
	if l.ReturnDate.IsEmpty() {
		return false, &InvalidDateError{RecordID: l.ID, Field: FieldReturnDate}
	}
	if l.IsReturned() {
		return l.ActualReturnDate.After(l.ReturnDate.Time), nil
	}
	return l.ReturnDate.Before(referenceNow), nil
}

// IsEmpty reports whether no bound is set and overdue filtering is off.
func (c FilterCriteria) IsEmpty() bool {
	return c.IssuanceDateFrom.IsEmpty() && c.IssuanceDateTo.IsEmpty() &&
		c.ReturnDateFrom.IsEmpty() && c.ReturnDateTo.IsEmpty() && !c.OverdueOnly
}

func (p PageRequest) Validate() error {
	if p.PageSize <= 0 || p.PageNumber < 1 {
		return &InvalidPageRequestError{PageNumber: p.PageNumber, PageSize: p.PageSize}
	}
	return nil
}

// StartIndex is the offset of the first record on the page.
func (p PageRequest) StartIndex() int {
	return (p.PageNumber - 1) * p.PageSize
}
