// Package dataset reads loan datasets into core records.
//
// The wire format is the dashboard's db.json: an array of objects with
// snake_case keys and YYYY-MM-DD dates, actual_return_date null while a loan
// is outstanding.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Serg-Vas/financial-dashboard/internal/core"
)

// loanJSON is the wire shape of one record. Dates stay raw so decode errors
// can name the record and field.
type loanJSON struct {
	ID               int64           `json:"id"`
	User             string          `json:"user"`
	IssuanceDate     json.RawMessage `json:"issuance_date"`
	ReturnDate       json.RawMessage `json:"return_date"`
	ActualReturnDate json.RawMessage `json:"actual_return_date"`
	Body             json.Number     `json:"body"`
	Percent          json.Number     `json:"percent"`
}

var ErrNegativeAmount = errors.New("negative amount")

// Decode reads a JSON array of loans.
func Decode(r io.Reader) ([]core.LoanRecord, error) {
	var raw []loanJSON
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode loans: %w", err)
	}

	records := make([]core.LoanRecord, 0, len(raw))
	for _, item := range raw {
		rec, err := item.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Encode writes records in the same wire format Decode reads.
func Encode(w io.Writer, records []core.LoanRecord) error {
	out := make([]loanJSON, 0, len(records))
	for _, rec := range records {
		item := loanJSON{
			ID:      rec.ID,
			User:    rec.User,
			Body:    json.Number(formatAmount(rec.Body)),
			Percent: json.Number(formatAmount(rec.Percent)),
		}
		var err error
		if item.IssuanceDate, err = rec.IssuanceDate.MarshalJSON(); err != nil {
			return fmt.Errorf("encode loan %d: %w", rec.ID, err)
		}
		if item.ReturnDate, err = rec.ReturnDate.MarshalJSON(); err != nil {
			return fmt.Errorf("encode loan %d: %w", rec.ID, err)
		}
		if item.ActualReturnDate, err = rec.ActualReturnDate.MarshalJSON(); err != nil {
			return fmt.Errorf("encode loan %d: %w", rec.ID, err)
		}
		out = append(out, item)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (l loanJSON) toRecord() (core.LoanRecord, error) {
	rec := core.LoanRecord{ID: l.ID, User: l.User}

	var err error
	if rec.IssuanceDate, err = parseField(l.ID, core.FieldIssuanceDate, l.IssuanceDate, true); err != nil {
		return core.LoanRecord{}, err
	}
	if rec.ReturnDate, err = parseField(l.ID, core.FieldReturnDate, l.ReturnDate, true); err != nil {
		return core.LoanRecord{}, err
	}
	if rec.ActualReturnDate, err = parseField(l.ID, core.FieldActualReturnDate, l.ActualReturnDate, false); err != nil {
		return core.LoanRecord{}, err
	}

	if rec.Body, err = parseAmount(l.ID, "body", l.Body); err != nil {
		return core.LoanRecord{}, err
	}
	if rec.Percent, err = parseAmount(l.ID, "percent", l.Percent); err != nil {
		return core.LoanRecord{}, err
	}
	return rec, nil
}

// parseField decodes one date. A missing, null or empty optional date is the
// zero Date; a required one fails like a malformed date.
func parseField(id int64, field string, raw json.RawMessage, required bool) (core.Date, error) {
	var d core.Date
	if len(raw) > 0 {
		if err := d.UnmarshalJSON(raw); err != nil {
			return core.Date{}, &core.InvalidDateError{RecordID: id, Field: field, Value: strings.Trim(string(raw), `"`)}
		}
	}
	if required && d.IsEmpty() {
		return core.Date{}, &core.InvalidDateError{RecordID: id, Field: field, Value: string(raw)}
	}
	return d, nil
}

func parseAmount(id int64, field string, n json.Number) (float64, error) {
	if n == "" {
		return 0, nil
	}
	v, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("loan %d: parse %s %q: %w", id, field, n, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("loan %d: %s %v: %w", id, field, v, ErrNegativeAmount)
	}
	return v, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
