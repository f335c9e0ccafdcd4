package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mlaurent/restodoc/constants"
	"github.com/mlaurent/restodoc/internal/common"
	"github.com/mlaurent/restodoc/internal/entity"
)

func testProcessor() *Processor {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProcessor(logger, common.PipelineConfig{})
}

func TestProcess_ZReport(t *testing.T) {
	doc := entity.Document{
		ID:      uuid.New(),
		DocType: constants.DocTypeZReport,
		Text: `Date: 15/03/2024
x1) Entrées 850,00
   x3) Salade de chèvre 180,00
Total TTC: 850,00
`,
	}
	result, err := testProcessor().Process(context.Background(), doc)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.DocumentID != doc.ID {
		t.Errorf("DocumentID = %s, want %s", result.DocumentID, doc.ID)
	}
	if result.ZReport == nil {
		t.Fatal("ZReport payload is nil")
	}
	if result.Invoices != nil || result.PriceSheet != nil {
		t.Error("unexpected payloads set alongside ZReport")
	}
	if len(result.ZReport.Categories) != 1 {
		t.Errorf("got %d categories, want 1", len(result.ZReport.Categories))
	}
	if result.ParsedAt.IsZero() {
		t.Error("ParsedAt not set")
	}
}

func TestProcess_SupplierInvoice(t *testing.T) {
	text := `METRO CASH & CARRY
FACTURE N° 2024-0001
Date: 12/03/2024
Tomates grappe 10.0 KG 2.50 25.00
Crème fraîche 5 L 3.20 16.00
TOTAL TTC: 41.00
`
	doc := entity.Document{ID: uuid.New(), DocType: constants.DocTypeSupplierInvoice, Text: text}
	result, err := testProcessor().Process(context.Background(), doc)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.Invoices == nil {
		t.Fatal("Invoices payload is nil")
	}
	if len(result.Invoices.Segments) != 1 {
		t.Fatalf("got %d accepted segments, want 1 (rejected: %d)",
			len(result.Invoices.Segments), len(result.Invoices.Rejected))
	}
	seg := result.Invoices.Segments[0]
	if len(seg.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(seg.Items))
	}
	if seg.Items[0].Name != "Tomates grappe" || seg.Items[0].TotalPrice != 25.00 {
		t.Errorf("item[0] = %+v", seg.Items[0])
	}
	if seg.SupplierCategory != constants.SupplierGrocery {
		t.Errorf("SupplierCategory = %s, want %s", seg.SupplierCategory, constants.SupplierGrocery)
	}
}

func TestProcess_InvoiceQualityGate(t *testing.T) {
	// two detector matches far apart force two segments; the second is noise
	noise := strings.Repeat("?#| ", 40)
	text := `METRO CASH & CARRY
FACTURE N° 2024-0001
Date: 12/03/2024
Tomates grappe 10.0 KG 2.50 25.00
TOTAL TTC: 25.00
` + strings.Repeat("remplissage neutre sans marqueur ", 20) + `
FACTURE
` + noise
	doc := entity.Document{ID: uuid.New(), DocType: constants.DocTypeSupplierInvoice, Text: text}
	result, err := testProcessor().Process(context.Background(), doc)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(result.Invoices.Segments) != 1 {
		t.Errorf("got %d accepted segments, want 1", len(result.Invoices.Segments))
	}
	if len(result.Invoices.Rejected) != 1 {
		t.Fatalf("got %d rejected segments, want 1", len(result.Invoices.Rejected))
	}
	rej := result.Invoices.Rejected[0]
	if rej.Quality.IsAcceptable {
		t.Error("rejected segment marked acceptable")
	}
	if len(rej.Quality.Issues) == 0 {
		t.Error("rejected segment carries no issues")
	}
}

func TestProcess_PriceSheet(t *testing.T) {
	doc := entity.Document{
		ID:      uuid.New(),
		DocType: constants.DocTypePriceSheet,
		Text: `MERCURIALE SEMAINE 11
Carottes des sables 1 KG 1.20 1.20
Filet de cabillaud 1 KG 18.50 18.50
ligne sans prix
`,
	}
	result, err := testProcessor().Process(context.Background(), doc)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.PriceSheet == nil {
		t.Fatal("PriceSheet payload is nil")
	}
	if len(result.PriceSheet.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(result.PriceSheet.Items))
	}
	if result.PriceSheet.Items[1].UnitPrice != 18.50 {
		t.Errorf("item[1].UnitPrice = %v, want 18.50", result.PriceSheet.Items[1].UnitPrice)
	}
}

func TestProcess_UnknownDocType(t *testing.T) {
	doc := entity.Document{ID: uuid.New(), DocType: constants.DocumentType("MENU")}
	_, err := testProcessor().Process(context.Background(), doc)
	if err == nil {
		t.Fatal("expected error for unknown document type")
	}
	var appErr *common.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error type = %T, want *common.AppError", err)
	}
	if appErr.Code != "UNKNOWN_DOC_TYPE" {
		t.Errorf("Code = %q", appErr.Code)
	}
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Error("error does not wrap ErrInvalidInput")
	}
}
