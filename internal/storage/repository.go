package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Serg-Vas/financial-dashboard/internal/core"
	"github.com/Serg-Vas/financial-dashboard/internal/dataset"

	_ "modernc.org/sqlite"
)

const (
	selectLoansSQL = `SELECT id, user, issuance_date, return_date, actual_return_date, body, percent
FROM loans ORDER BY id`

	upsertLoanSQL = `INSERT INTO loans (id, user, issuance_date, return_date, actual_return_date, body, percent)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    user = excluded.user,
    issuance_date = excluded.issuance_date,
    return_date = excluded.return_date,
    actual_return_date = excluded.actual_return_date,
    body = excluded.body,
    percent = excluded.percent,
    imported_at = CURRENT_TIMESTAMP`

	countLoansSQL = `SELECT COUNT(*) FROM loans`
)

// SQLiteRepository serves the loan dataset from a SQLite file.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Loans implements dataset.LoanSource, ordered by id.
func (r *SQLiteRepository) Loans(ctx context.Context) ([]core.LoanRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectLoansSQL)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var records []core.LoanRecord
	for rows.Next() {
		var (
			rec         core.LoanRecord
			issued, due string
			actual      sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.User, &issued, &due, &actual, &rec.Body, &rec.Percent); err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		if rec.IssuanceDate, err = parseColumn(rec.ID, core.FieldIssuanceDate, issued); err != nil {
			return nil, err
		}
		if rec.ReturnDate, err = parseColumn(rec.ID, core.FieldReturnDate, due); err != nil {
			return nil, err
		}
		if actual.Valid && actual.String != "" {
			if rec.ActualReturnDate, err = parseColumn(rec.ID, core.FieldActualReturnDate, actual.String); err != nil {
				return nil, err
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loans: %w", err)
	}

	slog.DebugContext(ctx, "Loaded loans from SQLite", "count", len(records))
	return records, nil
}

// ImportLoans upserts records by id in a single transaction.
func (r *SQLiteRepository) ImportLoans(ctx context.Context, records []core.LoanRecord) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertLoanSQL)
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var actual sql.NullString
		if rec.IsReturned() {
			actual = sql.NullString{String: rec.ActualReturnDate.String(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			rec.ID,
			rec.User,
			rec.IssuanceDate.String(),
			rec.ReturnDate.String(),
			actual,
			rec.Body,
			rec.Percent,
		); err != nil {
			return 0, fmt.Errorf("upsert loan %d: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	slog.InfoContext(ctx, "Imported loans into SQLite", "count", len(records))
	return len(records), nil
}

// CountLoans returns the number of stored loans.
func (r *SQLiteRepository) CountLoans(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, countLoansSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count loans: %w", err)
	}
	return n, nil
}

func parseColumn(id int64, field, value string) (core.Date, error) {
	d, err := core.ParseDate(value)
	if err != nil {
		return core.Date{}, &core.InvalidDateError{RecordID: id, Field: field, Value: value}
	}
	return d, nil
}

var (
	_ dataset.LoanSource   = (*SQLiteRepository)(nil)
	_ dataset.LoanImporter = (*SQLiteRepository)(nil)
)
