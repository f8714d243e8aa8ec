// Package services provides the loan analytics engines.
//
// This file implements record selection. Each set criterion becomes a
// predicate; a record survives only if every predicate accepts it. Records are
// checked in a single pass and keep their input order.

package services

import (
	"time"

	"github.com/Serg-Vas/financial-dashboard/internal/core"
)

// loanPredicate reports whether a record satisfies one criterion.
type loanPredicate func(core.LoanRecord) (bool, error)

// FilterLoans returns the records matching every bound in criteria. Date
// bounds are inclusive. With OverdueOnly set, records must also be overdue
// relative to referenceNow. The input slice is not modified.
func FilterLoans(records []core.LoanRecord, criteria core.FilterCriteria, referenceNow time.Time) ([]core.LoanRecord, error) {
	if criteria.IsEmpty() {
		return append(make([]core.LoanRecord, 0, len(records)), records...), nil
	}
	predicates := buildPredicates(criteria, referenceNow)

	out := make([]core.LoanRecord, 0, len(records))
	for _, loan := range records {
		keep := true
		for _, p := range predicates {
			ok, err := p(loan)
			if err != nil {
				return nil, err
			}
			if !ok {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, loan)
		}
	}
	return out, nil
}

func buildPredicates(c core.FilterCriteria, referenceNow time.Time) []loanPredicate {
	var predicates []loanPredicate

	issuance := func(l core.LoanRecord) core.Date { return l.IssuanceDate }
	due := func(l core.LoanRecord) core.Date { return l.ReturnDate }

	if !c.IssuanceDateFrom.IsEmpty() {
		predicates = append(predicates, notBefore(core.FieldIssuanceDate, issuance, c.IssuanceDateFrom))
	}
	if !c.IssuanceDateTo.IsEmpty() {
		predicates = append(predicates, notAfter(core.FieldIssuanceDate, issuance, c.IssuanceDateTo))
	}
	if !c.ReturnDateFrom.IsEmpty() {
		predicates = append(predicates, notBefore(core.FieldReturnDate, due, c.ReturnDateFrom))
	}
	if !c.ReturnDateTo.IsEmpty() {
		predicates = append(predicates, notAfter(core.FieldReturnDate, due, c.ReturnDateTo))
	}
	if c.OverdueOnly {
		predicates = append(predicates, func(l core.LoanRecord) (bool, error) {
			return l.IsOverdue(referenceNow)
		})
	}
	return predicates
}

// notBefore accepts records whose date is on or after bound.
func notBefore(field string, get func(core.LoanRecord) core.Date, bound core.Date) loanPredicate {
	return func(l core.LoanRecord) (bool, error) {
		d := get(l)
		if d.IsEmpty() {
			return false, &core.InvalidDateError{RecordID: l.ID, Field: field}
		}
		return !d.Before(bound.Time), nil
	}
}

// notAfter accepts records whose date is on or before bound.
func notAfter(field string, get func(core.LoanRecord) core.Date, bound core.Date) loanPredicate {
	return func(l core.LoanRecord) (bool, error) {
		d := get(l)
		if d.IsEmpty() {
			return false, &core.InvalidDateError{RecordID: l.ID, Field: field}
		}
		return !d.After(bound.Time), nil
	}
}
