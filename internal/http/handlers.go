package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Serg-Vas/financial-dashboard/internal/core"
	"github.com/Serg-Vas/financial-dashboard/internal/log"
	"github.com/Serg-Vas/financial-dashboard/internal/services"
)

// loadLoans reads the dataset under the configured request timeout.
func (s *Server) loadLoans(ctx context.Context) ([]core.LoanRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.RequestTimeout)
	defer cancel()

	records, err := s.source.Loans(ctx)
	if err != nil {
		return nil, fmt.Errorf("load loans: %w", err)
	}
	return records, nil
}

// logAnalytics records one engine call at debug level under the analytics component.
func logAnalytics(r *http.Request, msg string, fields log.LogFields) {
	log.FromContext(r.Context()).WithComponent(log.ComponentAnalytics).
		DebugContext(r.Context(), msg, fields.ToSlice()...)
}

// handleLoans filters the dataset and returns one page of the result.
func (s *Server) handleLoans(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	criteria, err := ParseFilterCriteria(query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := ParsePageRequest(query, s.opts.DefaultPageSize, s.opts.MaxPageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}

	records, err := s.loadLoans(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	filtered, err := services.FilterLoans(records, criteria, s.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	logAnalytics(r, "Loans filtered", log.NewFields().
		WithOperation(log.OpFilter).
		WithLoanCount(len(filtered)))
	items, err := services.Paginate(filtered, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logAnalytics(r, "Loans page served", log.NewFields().
		WithOperation(log.OpPaginate).
		WithPage(page.PageNumber, page.PageSize))

	writeJSON(w, http.StatusOK, LoansPage{
		Items:      items,
		Page:       page.PageNumber,
		PageSize:   page.PageSize,
		Total:      len(filtered),
		TotalPages: services.PageCount(len(filtered), page.PageSize),
	})
}

// handleMetrics returns the monthly metrics for ?month=yyyy-MM.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	ym, err := ParseMonth(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	records, err := s.loadLoans(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics, err := services.AggregateByMonth(records, ym.Year, ym.Month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logAnalytics(r, "Monthly metrics aggregated", log.NewFields().
		WithOperation(log.OpAggregate).
		WithPeriod(ym.String()).
		WithLoanCount(metrics.TotalLoans))
	writeJSON(w, http.StatusOK, metrics)
}

// handleRankings returns the three top-user lists over the full dataset.
func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	records, err := s.loadLoans(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	rankings := services.BuildRankings(records)
	logAnalytics(r, "Rankings built", log.NewFields().
		WithOperation(log.OpRank).
		WithLoanCount(len(records)))
	writeJSON(w, http.StatusOK, rankings)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ym, err := ParseMonth(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	records, err := s.loadLoans(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	summary, err := services.BuildSummary(r.Context(), records, ym)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logAnalytics(r, "Summary built", log.NewFields().
		WithOperation(log.OpSummary).
		WithPeriod(summary.Period).
		WithLoanCount(len(records)))
	writeJSON(w, http.StatusOK, summary)
}
