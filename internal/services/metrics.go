package services

import (
	"fmt"

	"github.com/Serg-Vas/financial-dashboard/internal/core"
)

// FilterByMonth returns the records issued in the given calendar month.
func FilterByMonth(records []core.LoanRecord, year, month int) ([]core.LoanRecord, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidMonth, month)
	}
	out := make([]core.LoanRecord, 0)
	for _, loan := range records {
		if loan.IssuanceDate.IsEmpty() {
			return nil, &core.InvalidDateError{RecordID: loan.ID, Field: core.FieldIssuanceDate}
		}
		if loan.IssuanceDate.Year() == year && loan.IssuanceDate.Month() == month {
			out = append(out, loan)
		}
	}
	return out, nil
}

// AggregateByMonth computes metrics over the loans issued in year/month.
// Month 0 means no month is selected and yields all-zero metrics.
func AggregateByMonth(records []core.LoanRecord, year, month int) (core.MonthlyMetrics, error) {
	if month == 0 {
		return core.MonthlyMetrics{}, nil
	}
	selected, err := FilterByMonth(records, year, month)
	if err != nil {
		return core.MonthlyMetrics{}, err
	}
	return Aggregate(selected), nil
}

// Aggregate computes the totals over records as given. Sums are accumulated
// in input order.
func Aggregate(records []core.LoanRecord) core.MonthlyMetrics {
	var m core.MonthlyMetrics
	for _, loan := range records {
		m.TotalLoans++
		m.TotalLoanAmount += loan.Body
		m.TotalInterestAccrued += loan.Percent
		if loan.IsReturned() {
			m.TotalLoansReturned++
		}
	}
	if m.TotalLoans > 0 {
		m.AverageLoanAmount = m.TotalLoanAmount / float64(m.TotalLoans)
	}
	return m
}

// GroupByUser accumulates per-user aggregates over the records accepted by
// keep (all records when keep is nil). Groups are returned in the order their
// user first appears.
func GroupByUser(records []core.LoanRecord, keep func(core.LoanRecord) bool) []core.UserAggregate {
	index := make(map[string]int)
	groups := make([]core.UserAggregate, 0)

	for _, loan := range records {
		if keep != nil && !keep(loan) {
			continue
		}
		i, ok := index[loan.User]
		if !ok {
			i = len(groups)
			index[loan.User] = i
			groups = append(groups, core.UserAggregate{User: loan.User})
		}
		groups[i].LoanCount++
		groups[i].TotalInterest += loan.Percent
		groups[i].TotalBody += loan.Body
	}
	return groups
}

func returnedOnly(l core.LoanRecord) bool { return l.IsReturned() }
