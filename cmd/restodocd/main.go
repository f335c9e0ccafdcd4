package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/mlaurent/restodoc/internal/common"
	"github.com/mlaurent/restodoc/internal/ingest"
	"github.com/mlaurent/restodoc/internal/pipeline"
	"github.com/mlaurent/restodoc/internal/repository"
)

// restodocd watches directories of OCR text dumps, structures every new
// document, and records the results in the parse_job store.
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if len(cfg.Ingest.WatchRoots) == 0 {
		logger.Error("WATCH_ROOTS env var is required (comma-separated directories)")
		os.Exit(1)
	}
	if cfg.Database.DSN == "" {
		logger.Error("DB_URL env var is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

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

	if err := repository.EnsureSchema(ctx, db, logger); err != nil {
		logger.Error("ensuring schema", "error", err)
		os.Exit(1)
	}

	jobs := repository.NewParseJobRepository(db, repository.DriverFor(cfg.Database.DSN), logger)
	proc := pipeline.NewProcessor(logger, cfg.Pipeline)
	uc := ingest.NewUsecase(proc, jobs, logger)

	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       cfg.Ingest.WatchRoots,
		InitialScan: true,
		Debounce:    cfg.Ingest.Debounce,
	})
	if err != nil {
		logger.Error("starting watcher", "error", err)
		os.Exit(1)
	}

	logger.Info("ingest.watch.start", "roots", cfg.Ingest.WatchRoots)
	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		case werr, ok := <-errs:
			if ok && werr != nil {
				logger.Error("watcher error", "error", werr)
			}
		case path, ok := <-events:
			if !ok {
				return
			}
			evCtx := common.WithRequestID(ctx, uuid.NewString())
			if _, err := uc.ProcessPath(evCtx, path); err != nil {
				logger.Error("pipeline.process.failed", "path", path, "error", err)
			}
		}
	}
}
