package core

import (
	"fmt"
	"strconv"
	"strings"
)

// YearMonth selects a calendar month. Month 0 means no month is selected.
type YearMonth struct {
	Year  int
	Month int // 1-12
}

// ParseYearMonth parses the "yyyy-MM" month picker format. An empty string
// yields the zero YearMonth.
func ParseYearMonth(s string) (YearMonth, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return YearMonth{}, nil
	}
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return YearMonth{Year: year, Month: month}, nil
}

// IsZero reports whether no month is selected.
func (ym YearMonth) IsZero() bool {
	return ym.Month == 0
}

func (ym YearMonth) String() string {
	if ym.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// UserAggregate accumulates one user's loans over a record subset.
type UserAggregate struct {
	User          string
	LoanCount     int
	TotalInterest float64
	TotalBody     float64
}

// MonthlyMetrics is the summary for loans issued in one month.
type MonthlyMetrics struct {
	TotalLoans           int     `json:"total_loans"`
	TotalLoanAmount      float64 `json:"total_loan_amount"`
	TotalInterestAccrued float64 `json:"total_interest_accrued"`
	AverageLoanAmount    float64 `json:"average_loan_amount"`
	TotalLoansReturned   int     `json:"total_loans_returned"`
}

type UserLoanCount struct {
	User  string `json:"user"`
	Count int    `json:"count"`
}

type UserInterest struct {
	User          string  `json:"user"`
	TotalInterest float64 `json:"total_interest"`
}

type UserRatio struct {
	User  string  `json:"user"`
	Ratio float64 `json:"ratio"`
}

// Rankings holds the three top-user lists.
type Rankings struct {
	ByLoanCount           []UserLoanCount `json:"by_loan_count"`
	ByTotalInterest       []UserInterest  `json:"by_total_interest"`
	ByInterestToBodyRatio []UserRatio     `json:"by_interest_to_body_ratio"`
}

// Summary combines the monthly view and the global rankings.
type Summary struct {
	Period   string         `json:"period,omitempty"`
	Metrics  MonthlyMetrics `json:"metrics"`
	Rankings Rankings       `json:"rankings"`
}
