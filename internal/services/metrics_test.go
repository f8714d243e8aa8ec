package services

import (
	"errors"
	"testing"

	"github.com/Serg-Vas/financial-dashboard/internal/core"
)

func TestAggregateByMonth_Scenario(t *testing.T) {
	got, err := AggregateByMonth(scenarioLoans(), 2024, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := core.MonthlyMetrics{
		TotalLoans:           2,
		TotalLoanAmount:      300,
		TotalInterestAccrued: 30,
		AverageLoanAmount:    150,
		TotalLoansReturned:   1,
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestAggregateByMonth_MonthSelection(t *testing.T) {
	loans := []core.LoanRecord{
		{ID: 1, IssuanceDate: core.NewDate(2024, 1, 31), Body: 10},
		{ID: 2, IssuanceDate: core.NewDate(2024, 2, 1), Body: 20, ActualReturnDate: core.NewDate(2024, 2, 10)},
		{ID: 3, IssuanceDate: core.NewDate(2023, 2, 15), Body: 40},
		{ID: 4, IssuanceDate: core.NewDate(2024, 2, 29), Body: 60},
	}

	got, err := AggregateByMonth(loans, 2024, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalLoans != 2 || got.TotalLoanAmount != 80 || got.AverageLoanAmount != 40 || got.TotalLoansReturned != 1 {
		t.Fatalf("unexpected metrics %+v", got)
	}

	// No loans in the month: zeros, not an error.
	got, err = AggregateByMonth(loans, 2022, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (core.MonthlyMetrics{}) {
		t.Fatalf("expected zero metrics, got %+v", got)
	}
}

func TestAggregateByMonth_NoMonthSelected(t *testing.T) {
	got, err := AggregateByMonth(scenarioLoans(), 2024, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (core.MonthlyMetrics{}) {
		t.Fatalf("expected zero metrics, got %+v", got)
	}
}

func TestAggregateByMonth_InvalidMonth(t *testing.T) {
	for _, m := range []int{-1, 13} {
		if _, err := AggregateByMonth(scenarioLoans(), 2024, m); !errors.Is(err, core.ErrInvalidMonth) {
			t.Fatalf("month %d: expected ErrInvalidMonth, got %v", m, err)
		}
	}
}

func TestAggregateByMonth_MissingIssuanceDate(t *testing.T) {
	loans := append(scenarioLoans(), core.LoanRecord{ID: 3, User: "carol"})
	_, err := AggregateByMonth(loans, 2024, 1)
	var dateErr *core.InvalidDateError
	if !errors.As(err, &dateErr) || dateErr.RecordID != 3 {
		t.Fatalf("expected InvalidDateError for loan 3, got %v", err)
	}
}

func TestAggregate_Empty(t *testing.T) {
	if got := Aggregate(nil); got != (core.MonthlyMetrics{}) {
		t.Fatalf("expected zero metrics, got %+v", got)
	}
}

func TestGroupByUser(t *testing.T) {
	loans := []core.LoanRecord{
		{User: "b", Body: 10, Percent: 1},
		{User: "a", Body: 20, Percent: 2, ActualReturnDate: core.NewDate(2024, 1, 1)},
		{User: "b", Body: 30, Percent: 3, ActualReturnDate: core.NewDate(2024, 1, 1)},
	}

	all := GroupByUser(loans, nil)
	want := []core.UserAggregate{
		{User: "b", LoanCount: 2, TotalInterest: 4, TotalBody: 40},
		{User: "a", LoanCount: 1, TotalInterest: 2, TotalBody: 20},
	}
	if len(all) != len(want) {
		t.Fatalf("got %d groups, want %d", len(all), len(want))
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("group %d = %+v, want %+v", i, all[i], want[i])
		}
	}

	returned := GroupByUser(loans, returnedOnly)
	if len(returned) != 2 || returned[0].User != "a" || returned[1].TotalBody != 30 {
		t.Fatalf("unexpected returned-only groups %+v", returned)
	}
}
