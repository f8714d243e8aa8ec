package services

import (
	"sort"

	"github.com/Serg-Vas/financial-dashboard/internal/core"
)

// TopN is the length limit of every ranking.
const TopN = 10

// TopUsersByLoanCount ranks users by number of loans, returned or not.
// Equal counts keep the order in which users first appear.
func TopUsersByLoanCount(records []core.LoanRecord) []core.UserLoanCount {
	groups := GroupByUser(records, nil)
	sortDesc(groups, func(g core.UserAggregate) float64 { return float64(g.LoanCount) })

	out := make([]core.UserLoanCount, 0, min(len(groups), TopN))
	for _, g := range truncate(groups) {
		out = append(out, core.UserLoanCount{User: g.User, Count: g.LoanCount})
	}
	return out
}

// TopUsersByTotalInterest ranks users by interest summed over returned loans.
// Users without a returned loan are left out.
func TopUsersByTotalInterest(records []core.LoanRecord) []core.UserInterest {
	groups := GroupByUser(records, returnedOnly)
	sortDesc(groups, func(g core.UserAggregate) float64 { return g.TotalInterest })

	out := make([]core.UserInterest, 0, min(len(groups), TopN))
	for _, g := range truncate(groups) {
		out = append(out, core.UserInterest{User: g.User, TotalInterest: g.TotalInterest})
	}
	return out
}

// TopUsersByInterestToBodyRatio ranks users by total interest over total body
// of their returned loans. A zero total body gives a ratio of 0.
func TopUsersByInterestToBodyRatio(records []core.LoanRecord) []core.UserRatio {
	groups := GroupByUser(records, returnedOnly)
	sortDesc(groups, interestToBody)

	out := make([]core.UserRatio, 0, min(len(groups), TopN))
	for _, g := range truncate(groups) {
		out = append(out, core.UserRatio{User: g.User, Ratio: interestToBody(g)})
	}
	return out
}

func interestToBody(g core.UserAggregate) float64 {
	if g.TotalBody > 0 {
		return g.TotalInterest / g.TotalBody
	}
	return 0
}

// sortDesc orders groups by key, largest first. The sort is stable so ties
// stay in grouping order.
func sortDesc(groups []core.UserAggregate, key func(core.UserAggregate) float64) {
	sort.SliceStable(groups, func(i, j int) bool { return key(groups[i]) > key(groups[j]) })
}

func truncate(groups []core.UserAggregate) []core.UserAggregate {
	if len(groups) > TopN {
		return groups[:TopN]
	}
	return groups
}
