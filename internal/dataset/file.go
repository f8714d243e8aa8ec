package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Serg-Vas/financial-dashboard/internal/core"
)

// FileSource reads the dataset from a JSON file on every call.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Loans implements LoanSource
func (s *FileSource) Loans(ctx context.Context) ([]core.LoanRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", s.path, err)
	}

	slog.DebugContext(ctx, "Loaded loan dataset", "path", s.path, "count", len(records))
	return records, nil
}

// Path returns the dataset file path.
func (s *FileSource) Path() string {
	return s.path
}
