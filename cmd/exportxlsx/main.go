package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mlaurent/restodoc/internal/common"
	"github.com/mlaurent/restodoc/internal/export"
	"github.com/mlaurent/restodoc/internal/repository"
)

// exportxlsx renders the stored parse results into a workbook for the
// accounting side.
func main() {
	var (
		out   = flag.String("out", "restodoc.xlsx", "output XLSX file path")
		limit = flag.Int("limit", 500, "max parse jobs to export")
	)
	flag.Parse()

	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if cfg.Database.DSN == "" {
		fmt.Fprintln(os.Stderr, "DB_URL env var is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("opening DB", "error", err)
		os.Exit(1)
	}
	defer repository.Close(db, logger)

	jobs := repository.NewParseJobRepository(db, repository.DriverFor(cfg.Database.DSN), logger)
	svc := export.NewService(jobs, logger)

	data, err := svc.ExportResultsXLSX(ctx, *limit)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Error("writing workbook", "path", *out, "error", err)
		os.Exit(1)
	}
	logger.Info("export.done", "path", *out, "bytes", len(data))
}
