// Command loanstats prints a loan summary report for one month and can
// publish it over AMQP, seed the SQLite dataset from a JSON dump or dump the
// configured dataset back to JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Serg-Vas/financial-dashboard/internal/amqp"
	"github.com/Serg-Vas/financial-dashboard/internal/cli"
	"github.com/Serg-Vas/financial-dashboard/internal/config"
	"github.com/Serg-Vas/financial-dashboard/internal/core"
	"github.com/Serg-Vas/financial-dashboard/internal/dataset"
	"github.com/Serg-Vas/financial-dashboard/internal/log"
	"github.com/Serg-Vas/financial-dashboard/internal/services"
	"github.com/Serg-Vas/financial-dashboard/internal/storage"
)

func main() {
	month := flag.String("month", "", "month to aggregate, yyyy-MM (empty for rankings only)")
	importPath := flag.String("import", "", "import a JSON dataset into the SQLite database and exit")
	exportPath := flag.String("export", "", "write the configured dataset as JSON to this path (- for stdout) and exit")
	publish := flag.Bool("publish", false, "publish the summary to AMQP_URL")
	flag.Parse()

	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	if *importPath != "" {
		if err := importDataset(ctx, cfg, logger, *importPath); err != nil {
			logger.Error("Import failed", log.FieldOperation, log.OpImport, log.FieldError, err)
			os.Exit(1)
		}
		return
	}

	if *exportPath != "" {
		if err := exportDataset(ctx, cfg, logger, *exportPath); err != nil {
			logger.Error("Export failed", log.FieldOperation, log.OpExport, log.FieldError, err)
			os.Exit(1)
		}
		return
	}

	if err := report(ctx, cfg, logger, *month, *publish); err != nil {
		logger.Error("Report failed", log.FieldOperation, log.OpSummary, log.FieldError, err)
		os.Exit(1)
	}
}

func report(ctx context.Context, cfg *config.Config, logger *log.Logger, month string, publish bool) error {
	ym, err := core.ParseYearMonth(month)
	if err != nil {
		return err
	}

	source, err := cli.OpenSource(cfg, logger)
	if err != nil {
		return err
	}
	defer source.Close()

	loadCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()
	records, err := source.Loans(loadCtx)
	if err != nil {
		return fmt.Errorf("load loans: %w", err)
	}

	summary, err := services.BuildSummary(ctx, records, ym)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if !publish {
		return nil
	}
	if cfg.AMQPURL == "" {
		return errors.New("publish requested but AMQP_URL is not set")
	}

	client, err := amqp.NewClientWithRetry(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, 3)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.PublishSummary(ctx, summary); err != nil {
		return err
	}
	logger.WithComponent(log.ComponentAMQP).Info("Summary published",
		log.FieldOperation, log.OpPublish,
		log.FieldPeriod, summary.Period)
	return nil
}

func importDataset(ctx context.Context, cfg *config.Config, logger *log.Logger, path string) error {
	start := time.Now()
	records, err := dataset.NewFileSource(path).Loans(ctx)
	if err != nil {
		return err
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", cfg.SQLiteDBPath, err)
	}
	defer repo.Close()

	n, err := repo.ImportLoans(ctx, records)
	if err != nil {
		return err
	}
	logger.WithComponent(log.ComponentStorage).Info("Dataset imported",
		log.FieldOperation, log.OpImport,
		log.FieldLoanCount, n,
		"path", cfg.SQLiteDBPath,
		log.FieldDuration, time.Since(start).Milliseconds())
	return nil
}

// exportDataset writes every record of the configured source in the dataset
// JSON format, so the dump can be fed back through -import.
func exportDataset(ctx context.Context, cfg *config.Config, logger *log.Logger, path string) (err error) {
	source, err := cli.OpenSource(cfg, logger)
	if err != nil {
		return err
	}
	defer source.Close()

	loadCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()
	records, err := source.Loans(loadCtx)
	if err != nil {
		return fmt.Errorf("load loans: %w", err)
	}

	out := os.Stdout
	if path != "-" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return fmt.Errorf("create export file: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close export file: %w", cerr)
			}
		}()
		out = f
	}

	if err := dataset.Encode(out, records); err != nil {
		return err
	}
	logger.WithComponent(log.ComponentDataset).Info("Dataset exported",
		log.FieldOperation, log.OpExport,
		log.FieldLoanCount, len(records),
		"path", path)
	return nil
}
