package services

import (
	"github.com/Serg-Vas/financial-dashboard/internal/core"
)

// DefaultPageSize is the list view's page size when the caller sets none.
const DefaultPageSize = 10

// Paginate returns the contiguous window of records for page. A page past the
// end yields an empty slice; a non-positive page number or size is rejected
// with *core.InvalidPageRequestError.
func Paginate(records []core.LoanRecord, page core.PageRequest) ([]core.LoanRecord, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	// Compare page numbers rather than offsets so huge page numbers cannot overflow.
	if page.PageNumber > PageCount(len(records), page.PageSize) {
		return []core.LoanRecord{}, nil
	}
	start := page.StartIndex()
	end := start + min(page.PageSize, len(records)-start)

	out := make([]core.LoanRecord, end-start)
	copy(out, records[start:end])
	return out, nil
}

// PageCount returns how many pages of pageSize are needed to show total records.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}
