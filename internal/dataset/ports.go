package dataset

import (
	"context"

	"github.com/Serg-Vas/financial-dashboard/internal/core"
)

// Ports for inbound data adapters.
type (
	// LoanSource supplies the materialized loan dataset.
	LoanSource interface {
		// Loans returns every loan record in a stable order.
		Loans(ctx context.Context) ([]core.LoanRecord, error)
	}

	// LoanImporter replaces or extends a source's dataset.
	LoanImporter interface {
		ImportLoans(ctx context.Context, records []core.LoanRecord) (int, error)
	}
)
