package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Serg-Vas/financial-dashboard/internal/core"
)

// BuildSummary computes the monthly metrics for ym and the three global
// rankings. The four computations share records read-only and run
// concurrently; each one sums sequentially, so results match the individual
// functions exactly.
func BuildSummary(ctx context.Context, records []core.LoanRecord, ym core.YearMonth) (core.Summary, error) {
	summary := core.Summary{Period: ym.String()}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		metrics, err := AggregateByMonth(records, ym.Year, ym.Month)
		if err != nil {
			return fmt.Errorf("aggregate month %s: %w", ym, err)
		}
		summary.Metrics = metrics
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary.Rankings.ByLoanCount = TopUsersByLoanCount(records)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary.Rankings.ByTotalInterest = TopUsersByTotalInterest(records)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary.Rankings.ByInterestToBodyRatio = TopUsersByInterestToBodyRatio(records)
		return nil
	})

	if err := g.Wait(); err != nil {
		return core.Summary{}, err
	}
	return summary, nil
}

// BuildRankings computes only the three rankings over records.
func BuildRankings(records []core.LoanRecord) core.Rankings {
	return core.Rankings{
		ByLoanCount:           TopUsersByLoanCount(records),
		ByTotalInterest:       TopUsersByTotalInterest(records),
		ByInterestToBodyRatio: TopUsersByInterestToBodyRatio(records),
	}
}
