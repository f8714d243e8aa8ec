package memory

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/Serg-Vas/financial-dashboard/internal/core"
	"github.com/Serg-Vas/financial-dashboard/internal/dataset"
)

// Store holds a dataset in memory. Callers get copies, never the backing slice.
type Store struct {
	mu    sync.RWMutex
	items []core.LoanRecord
}

func New(records []core.LoanRecord) *Store {
	return &Store{items: append([]core.LoanRecord(nil), records...)}
}

// NewFromFile seeds the store from a JSON dataset. A missing file yields an
// empty store.
func NewFromFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return New(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open seed dataset: %w", err)
	}
	defer f.Close()

	records, err := dataset.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read seed dataset %s: %w", path, err)
	}
	return New(records), nil
}

// Loans returns a copy of the stored records.
func (s *Store) Loans(_ context.Context) ([]core.LoanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.LoanRecord(nil), s.items...), nil
}

var _ dataset.LoanSource = (*Store)(nil)
