package export

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/mlaurent/restodoc/constants"
	"github.com/mlaurent/restodoc/internal/entity"
)

// stubJobRepo serves a fixed job list to the export service.
type stubJobRepo struct {
	jobs []entity.ParseJob
}

func (s *stubJobRepo) Start(context.Context, entity.Document) (*entity.ParseJob, error) {
	return nil, nil
}
func (s *stubJobRepo) FinishSuccess(context.Context, uuid.UUID, []byte) error { return nil }
func (s *stubJobRepo) FinishRejected(context.Context, uuid.UUID, string, []byte) error {
	return nil
}
func (s *stubJobRepo) FinishFailure(context.Context, uuid.UUID, string) error { return nil }
func (s *stubJobRepo) GetByID(context.Context, uuid.UUID) (*entity.ParseJob, error) {
	return nil, nil
}
func (s *stubJobRepo) ListByStatus(context.Context, constants.JobStatus, int) ([]entity.ParseJob, error) {
	return s.jobs, nil
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestExportResultsXLSX(t *testing.T) {
	zres := entity.ParseResult{
		DocumentID: uuid.New(),
		DocType:    constants.DocTypeZReport,
		ZReport: &entity.ZReportResult{
			ClosureDate: "15/03/2024",
			Families: map[constants.Family]entity.FamilyAggregate{
				constants.FamilyEntrees: {Family: constants.FamilyEntrees, ArticleCount: 3, TotalSales: 850},
				constants.FamilyPlats:   {Family: constants.FamilyPlats, ArticleCount: 3, TotalSales: 2400},
			},
		},
		ParsedAt: time.Now().UTC(),
	}
	invres := entity.ParseResult{
		DocumentID: uuid.New(),
		DocType:    constants.DocTypeSupplierInvoice,
		Invoices: &entity.InvoiceResult{
			Segments: []entity.SegmentResult{{
				Segment: entity.InvoiceSegment{HeaderLabel: "METRO"},
				Items: []entity.ParsedLineItem{
					{Name: "Tomates grappe", Quantity: 10, Unit: "kg", UnitPrice: 2.5, TotalPrice: 25},
				},
			}},
		},
		ParsedAt: time.Now().UTC(),
	}

	repo := &stubJobRepo{jobs: []entity.ParseJob{
		{ID: uuid.New(), Status: constants.JobStatusParseOK, ResultJSON: mustJSON(t, zres)},
		{ID: uuid.New(), Status: constants.JobStatusParseOK, ResultJSON: mustJSON(t, invres)},
		{ID: uuid.New(), Status: constants.JobStatusParseOK}, // no result payload
	}}
	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	out, err := svc.ExportResultsXLSX(context.Background(), 100)
	if err != nil {
		t.Fatalf("ExportResultsXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	famRows, err := f.GetRows("Familles")
	if err != nil {
		t.Fatalf("GetRows(Familles): %v", err)
	}
	if len(famRows) != 3 { // header + 2 families
		t.Fatalf("got %d family rows, want 3: %v", len(famRows), famRows)
	}
	if famRows[1][1] != "Entrées" || famRows[2][1] != "Plats" {
		t.Errorf("family rows out of order: %v", famRows[1:])
	}

	itemRows, err := f.GetRows("Articles")
	if err != nil {
		t.Fatalf("GetRows(Articles): %v", err)
	}
	if len(itemRows) != 2 { // header + 1 item
		t.Fatalf("got %d item rows, want 2: %v", len(itemRows), itemRows)
	}
	if itemRows[1][2] != "Tomates grappe" {
		t.Errorf("item row = %v", itemRows[1])
	}

	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		t.Error("default sheet not removed")
	}
}
