package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/mlaurent/restodoc/constants"
)

// Document is one ingested OCR dump awaiting or holding a parse result.
type Document struct {
	ID         uuid.UUID              `json:"id"`
	SourcePath string                 `json:"source_path"`
	DocType    constants.DocumentType `json:"doc_type"`
	Text       string                 `json:"text"`
	IngestedAt time.Time              `json:"ingested_at"`
}

// InvoiceResult is the structured output of the supplier-invoice path:
// per-segment line items plus segment metadata, including rejected
// segments with their quality verdicts.
type InvoiceResult struct {
	Segments []SegmentResult  `json:"segments"`
	Rejected []InvoiceSegment `json:"rejected,omitempty"`
}

// SegmentResult pairs one accepted invoice segment with its extracted items.
type SegmentResult struct {
	Segment          InvoiceSegment             `json:"segment"`
	Items            []ParsedLineItem           `json:"items"`
	SupplierCategory constants.SupplierCategory `json:"supplier_category"`
}

// PriceSheetResult is the structured output of the price-sheet path.
type PriceSheetResult struct {
	Items []ParsedLineItem `json:"items"`
}

// ParseResult is the envelope one pipeline invocation returns. Exactly one
// of the typed payloads is set, matching DocType.
type ParseResult struct {
	DocumentID uuid.UUID              `json:"document_id"`
	DocType    constants.DocumentType `json:"doc_type"`
	ZReport    *ZReportResult         `json:"z_report,omitempty"`
	Invoices   *InvoiceResult         `json:"invoices,omitempty"`
	PriceSheet *PriceSheetResult      `json:"price_sheet,omitempty"`
	ParsedAt   time.Time              `json:"parsed_at"`
}

// ParseJob tracks one pipeline run for persistence.
type ParseJob struct {
	ID           uuid.UUID              `json:"id"`
	DocumentID   uuid.UUID              `json:"document_id"`
	DocType      constants.DocumentType `json:"doc_type"`
	Status       constants.JobStatus    `json:"status"`
	ErrorMessage *string                `json:"error_message,omitempty"`
	ResultJSON   []byte                 `json:"result_json,omitempty"`
	StartedAt    time.Time              `json:"started_at"`
	FinishedAt   *time.Time             `json:"finished_at,omitempty"`
}
