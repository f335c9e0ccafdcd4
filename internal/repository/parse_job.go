package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mlaurent/restodoc/constants"
	"github.com/mlaurent/restodoc/internal/common"
	"github.com/mlaurent/restodoc/internal/entity"
)

// ParseJobRepository is the persistence collaborator contract: the pipeline
// itself never touches storage, the daemon records each run through this.
type ParseJobRepository interface {
	Start(ctx context.Context, doc entity.Document) (*entity.ParseJob, error)
	FinishSuccess(ctx context.Context, jobID uuid.UUID, resultJSON []byte) error
	FinishRejected(ctx context.Context, jobID uuid.UUID, reason string, resultJSON []byte) error
	FinishFailure(ctx context.Context, jobID uuid.UUID, errMsg string) error
	GetByID(ctx context.Context, jobID uuid.UUID) (*entity.ParseJob, error)
	ListByStatus(ctx context.Context, status constants.JobStatus, limit int) ([]entity.ParseJob, error)
}

type sqlParseJobRepository struct {
	db     *sql.DB
	driver string
	log    *slog.Logger
}

func NewParseJobRepository(db *sql.DB, driver string, logger *slog.Logger) ParseJobRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &sqlParseJobRepository{db: db, driver: driver, log: logger}
}

// EnsureSchema creates the parse_job table when it does not exist yet.
// Column types are chosen to work on both postgres and sqlite.
func EnsureSchema(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS parse_job (
	id            TEXT PRIMARY KEY,
	document_id   TEXT NOT NULL,
	source_path   TEXT NOT NULL,
	doc_type      TEXT NOT NULL,
	status        TEXT NOT NULL,
	error_message TEXT,
	result_json   TEXT,
	started_at    TIMESTAMP NOT NULL,
	finished_at   TIMESTAMP
)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		if logger != nil {
			logger.Error("schema creation failed", "error", err)
		}
		return common.NewAppError("SCHEMA_ERROR", "create parse_job table", err)
	}
	return nil
}

func (r *sqlParseJobRepository) Start(ctx context.Context, doc entity.Document) (*entity.ParseJob, error) {
	job := &entity.ParseJob{
		ID:         uuid.New(),
		DocumentID: doc.ID,
		DocType:    doc.DocType,
		Status:     constants.JobStatusRunning,
		StartedAt:  time.Now().UTC(),
	}
	q := rebind(r.driver, `
INSERT INTO parse_job (id, document_id, source_path, doc_type, status, started_at)
VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q,
		job.ID.String(), job.DocumentID.String(), doc.SourcePath,
		string(job.DocType), string(job.Status), job.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("start parse job: %w", err)
	}
	r.log.Debug("parse_job.started", "job_id", job.ID, "doc_type", job.DocType)
	return job, nil
}

func (r *sqlParseJobRepository) FinishSuccess(ctx context.Context, jobID uuid.UUID, resultJSON []byte) error {
	return r.finish(ctx, jobID, constants.JobStatusParseOK, nil, resultJSON)
}

func (r *sqlParseJobRepository) FinishRejected(ctx context.Context, jobID uuid.UUID, reason string, resultJSON []byte) error {
	return r.finish(ctx, jobID, constants.JobStatusRejected, &reason, resultJSON)
}

func (r *sqlParseJobRepository) FinishFailure(ctx context.Context, jobID uuid.UUID, errMsg string) error {
	return r.finish(ctx, jobID, constants.JobStatusFailed, &errMsg, nil)
}

func (r *sqlParseJobRepository) finish(ctx context.Context, jobID uuid.UUID, status constants.JobStatus, msg *string, resultJSON []byte) error {
	q := rebind(r.driver, `
UPDATE parse_job SET status = ?, error_message = ?, result_json = ?, finished_at = ?
WHERE id = ?`)
	var result *string
	if len(resultJSON) > 0 {
		s := string(resultJSON)
		result = &s
	}
	res, err := r.db.ExecContext(ctx, q, string(status), msg, result, time.Now().UTC(), jobID.String())
	if err != nil {
		return fmt.Errorf("finish parse job: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.NewAppError("JOB_NOT_FOUND", jobID.String(), common.ErrNotFound)
	}
	// the row carries the document id, the update statement does not; the
	// ingest context does
	r.log.Debug("parse_job.finished",
		"job_id", jobID,
		"status", status,
		"document_id", common.DocumentIDFromContext(ctx),
	)
	return nil
}

func (r *sqlParseJobRepository) GetByID(ctx context.Context, jobID uuid.UUID) (*entity.ParseJob, error) {
	q := rebind(r.driver, `
SELECT id, document_id, doc_type, status, error_message, result_json, started_at, finished_at
FROM parse_job WHERE id = ?`)
	row := r.db.QueryRowContext(ctx, q, jobID.String())
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewAppError("JOB_NOT_FOUND", jobID.String(), common.ErrNotFound)
	}
	return job, err
}

func (r *sqlParseJobRepository) ListByStatus(ctx context.Context, status constants.JobStatus, limit int) ([]entity.ParseJob, error) {
	if limit <= 0 {
		limit = 100
	}
	q := rebind(r.driver, `
SELECT id, document_id, doc_type, status, error_message, result_json, started_at, finished_at
FROM parse_job WHERE status = ? ORDER BY started_at DESC LIMIT ?`)
	rows, err := r.db.QueryContext(ctx, q, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("list parse jobs: %w", err)
	}
	defer rows.Close()

	var jobs []entity.ParseJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*entity.ParseJob, error) {
	var (
		job        entity.ParseJob
		id, docID  string
		docType    string
		status     string
		errMsg     sql.NullString
		resultJSON sql.NullString
		finishedAt sql.NullTime
	)
	if err := row.Scan(&id, &docID, &docType, &status, &errMsg, &resultJSON, &job.StartedAt, &finishedAt); err != nil {
		return nil, err
	}
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("corrupt job id %q: %w", id, err)
	}
	job.ID = parsedID
	if parsedDoc, err := uuid.Parse(docID); err == nil {
		job.DocumentID = parsedDoc
	}
	job.DocType = constants.DocumentType(docType)
	job.Status = constants.JobStatus(status)
	if errMsg.Valid {
		job.ErrorMessage = &errMsg.String
	}
	if resultJSON.Valid {
		job.ResultJSON = []byte(resultJSON.String)
	}
	if finishedAt.Valid {
		job.FinishedAt = &finishedAt.Time
	}
	return &job, nil
}
