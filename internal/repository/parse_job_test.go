package repository

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/mlaurent/restodoc/constants"
	"github.com/mlaurent/restodoc/internal/common"
	"github.com/mlaurent/restodoc/internal/entity"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// every pooled connection would get its own empty in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	if err := EnsureSchema(context.Background(), db, testLogger()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDoc() entity.Document {
	return entity.Document{
		ID:         uuid.New(),
		SourcePath: "/ocr/zreport_20240315.txt",
		DocType:    constants.DocTypeZReport,
		Text:       "x1) Entrées 850,00",
	}
}

func TestParseJobLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewParseJobRepository(testDB(t), "sqlite", testLogger())

	job, err := repo.Start(ctx, testDoc())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if job.Status != constants.JobStatusRunning {
		t.Errorf("Status = %s, want %s", job.Status, constants.JobStatusRunning)
	}

	if err := repo.FinishSuccess(ctx, job.ID, []byte(`{"ok":true}`)); err != nil {
		t.Fatalf("FinishSuccess: %v", err)
	}

	got, err := repo.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != constants.JobStatusParseOK {
		t.Errorf("Status = %s, want %s", got.Status, constants.JobStatusParseOK)
	}
	if string(got.ResultJSON) != `{"ok":true}` {
		t.Errorf("ResultJSON = %q", got.ResultJSON)
	}
	if got.FinishedAt == nil {
		t.Error("FinishedAt not set")
	}
	if got.DocumentID == uuid.Nil {
		t.Error("DocumentID not persisted")
	}
}

func TestParseJobRejectionAndFailure(t *testing.T) {
	ctx := context.Background()
	repo := NewParseJobRepository(testDB(t), "sqlite", testLogger())

	rejected, err := repo.Start(ctx, testDoc())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := repo.FinishRejected(ctx, rejected.ID, "all segments below threshold", []byte(`{}`)); err != nil {
		t.Fatalf("FinishRejected: %v", err)
	}
	got, err := repo.GetByID(ctx, rejected.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != constants.JobStatusRejected {
		t.Errorf("Status = %s, want %s", got.Status, constants.JobStatusRejected)
	}
	if got.ErrorMessage == nil || *got.ErrorMessage != "all segments below threshold" {
		t.Errorf("ErrorMessage = %v", got.ErrorMessage)
	}

	failed, err := repo.Start(ctx, testDoc())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := repo.FinishFailure(ctx, failed.ID, "boom"); err != nil {
		t.Fatalf("FinishFailure: %v", err)
	}
	got, err = repo.GetByID(ctx, failed.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != constants.JobStatusFailed {
		t.Errorf("Status = %s, want %s", got.Status, constants.JobStatusFailed)
	}
}

func TestParseJobNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewParseJobRepository(testDB(t), "sqlite", testLogger())

	if _, err := repo.GetByID(ctx, uuid.New()); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetByID error = %v, want ErrNotFound", err)
	}
	if err := repo.FinishSuccess(ctx, uuid.New(), nil); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("FinishSuccess error = %v, want ErrNotFound", err)
	}
}

func TestParseJobListByStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewParseJobRepository(testDB(t), "sqlite", testLogger())

	var finished []uuid.UUID
	for i := 0; i < 3; i++ {
		job, err := repo.Start(ctx, testDoc())
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
		finished = append(finished, job.ID)
	}
	for _, id := range finished[:2] {
		if err := repo.FinishSuccess(ctx, id, []byte(`{}`)); err != nil {
			t.Fatalf("FinishSuccess: %v", err)
		}
	}

	ok, err := repo.ListByStatus(ctx, constants.JobStatusParseOK, 10)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(ok) != 2 {
		t.Errorf("got %d PARSE_OK jobs, want 2", len(ok))
	}
	running, err := repo.ListByStatus(ctx, constants.JobStatusRunning, 10)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(running) != 1 {
		t.Errorf("got %d RUNNING jobs, want 1", len(running))
	}
}
