package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mlaurent/restodoc/constants"
	"github.com/mlaurent/restodoc/internal/common"
	"github.com/mlaurent/restodoc/internal/entity"
	"github.com/mlaurent/restodoc/internal/output"
	"github.com/mlaurent/restodoc/internal/pipeline"
	"github.com/mlaurent/restodoc/internal/repository"
)

// Filename prefixes mapping an OCR dump to its document type. The document
// type selector stays outside the pipeline; for file-based ingestion the
// convention is the selector.
var prefixToDocType = []struct {
	prefix  string
	docType constants.DocumentType
}{
	{"zreport", constants.DocTypeZReport},
	{"cloture", constants.DocTypeZReport},
	{"invoice", constants.DocTypeSupplierInvoice},
	{"facture", constants.DocTypeSupplierInvoice},
	{"prices", constants.DocTypePriceSheet},
	{"mercuriale", constants.DocTypePriceSheet},
}

// DocTypeForPath infers the document type from the file's base name prefix.
func DocTypeForPath(path string) (constants.DocumentType, bool) {
	base := strings.ToLower(filepath.Base(path))
	for _, p := range prefixToDocType {
		if strings.HasPrefix(base, p.prefix) {
			return p.docType, true
		}
	}
	return "", false
}

// LoadDocument reads one OCR dump from disk. The text is kept exactly as
// read; indentation must survive untouched up to the pipeline.
func LoadDocument(path string) (entity.Document, error) {
	docType, ok := DocTypeForPath(path)
	if !ok {
		return entity.Document{}, fmt.Errorf("no document type convention matches %q", filepath.Base(path))
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return entity.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return entity.Document{
		ID:         uuid.New(),
		SourcePath: path,
		DocType:    docType,
		Text:       string(raw),
		IngestedAt: time.Now().UTC(),
	}, nil
}

// Usecase ties ingestion together: load a dump, record a job, run the
// pipeline, persist the serialized result.
type Usecase struct {
	Processor *pipeline.Processor
	Jobs      repository.ParseJobRepository
	Log       *slog.Logger
}

func NewUsecase(proc *pipeline.Processor, jobs repository.ParseJobRepository, logger *slog.Logger) *Usecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &Usecase{Processor: proc, Jobs: jobs, Log: logger}
}

// ProcessPath runs the whole flow for one file and returns the job ID.
func (u *Usecase) ProcessPath(ctx context.Context, path string) (uuid.UUID, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		u.Log.Warn("ingest.load.failed", "path", path, "error", err)
		return uuid.Nil, err
	}

	ctx = common.WithDocumentID(ctx, doc.ID.String())
	job, err := u.Jobs.Start(ctx, doc)
	if err != nil {
		return uuid.Nil, fmt.Errorf("start job: %w", err)
	}

	result, err := u.Processor.Process(ctx, doc)
	if err != nil {
		_ = u.Jobs.FinishFailure(ctx, job.ID, err.Error())
		return job.ID, err
	}

	serialized, err := output.Marshal(result)
	if err != nil {
		_ = u.Jobs.FinishFailure(ctx, job.ID, err.Error())
		return job.ID, err
	}

	// an invoice document whose every segment failed the quality gate is a
	// first-class rejection, not a failure
	if result.Invoices != nil && len(result.Invoices.Segments) == 0 && len(result.Invoices.Rejected) > 0 {
		reason := fmt.Sprintf("all %d segments below quality threshold", len(result.Invoices.Rejected))
		if err := u.Jobs.FinishRejected(ctx, job.ID, reason, serialized); err != nil {
			return job.ID, err
		}
		u.Log.Info("ingest.process.rejected", "job_id", job.ID, "path", path, "reason", reason)
		return job.ID, nil
	}

	if err := u.Jobs.FinishSuccess(ctx, job.ID, serialized); err != nil {
		return job.ID, err
	}
	u.Log.Info("ingest.process.ok", "job_id", job.ID, "path", path, "doc_type", doc.DocType)
	return job.ID, nil
}
