// Package pipeline dispatches one OCR document to its structuring path and
// wraps the outcome in a ParseResult envelope.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mlaurent/restodoc/constants"
	"github.com/mlaurent/restodoc/internal/common"
	"github.com/mlaurent/restodoc/internal/entity"
	"github.com/mlaurent/restodoc/internal/fields"
	"github.com/mlaurent/restodoc/internal/invoice"
	"github.com/mlaurent/restodoc/internal/ocr"
	"github.com/mlaurent/restodoc/internal/taxonomy"
	"github.com/mlaurent/restodoc/internal/zreport"
)

// Processor runs the full document-to-structured-data pipeline. It holds no
// per-document state: every Process call builds its result from scratch, so
// one Processor may serve concurrent invocations.
type Processor struct {
	Logger    *slog.Logger
	Cfg       common.PipelineConfig
	engine    *zreport.Engine
	segmenter *invoice.Segmenter
}

func NewProcessor(logger *slog.Logger, cfg common.PipelineConfig) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.QualityThreshold <= 0 {
		cfg.QualityThreshold = common.DefaultQualityThreshold
	}
	if cfg.ProximityWindow <= 0 {
		cfg.ProximityWindow = common.DefaultProximityWindow
	}
	if cfg.MinSegmentLength <= 0 {
		cfg.MinSegmentLength = common.DefaultMinSegmentLength
	}
	return &Processor{
		Logger: logger,
		Cfg:    cfg,
		engine: zreport.NewEngine(logger),
		segmenter: invoice.NewSegmenter(invoice.SegmenterConfig{
			ProximityWindow: cfg.ProximityWindow,
			Quality: invoice.QualityConfig{
				Threshold: cfg.QualityThreshold,
				MinLength: cfg.MinSegmentLength,
			},
		}, logger),
	}
}

// Process structures one document according to its type. The caller picks
// the type; the pipeline never infers it. Malformed text degrades to a
// partial or empty result; the only error is an unknown document type.
func (p *Processor) Process(ctx context.Context, doc entity.Document) (*entity.ParseResult, error) {
	result := &entity.ParseResult{
		DocumentID: doc.ID,
		DocType:    doc.DocType,
		ParsedAt:   time.Now().UTC(),
	}

	text := ocr.Normalize(doc.Text)

	switch doc.DocType {
	case constants.DocTypeZReport:
		result.ZReport = p.engine.Parse(text)
	case constants.DocTypeSupplierInvoice:
		result.Invoices = p.parseInvoices(text)
	case constants.DocTypePriceSheet:
		result.PriceSheet = p.parsePriceSheet(text)
	default:
		return nil, common.NewAppError("UNKNOWN_DOC_TYPE",
			"no structuring path for document type "+string(doc.DocType),
			common.ErrInvalidInput)
	}

	log := p.Logger
	if rid := common.RequestIDFromContext(ctx); rid != "" {
		log = log.With("request_id", rid)
	}
	log.Info("pipeline.process.ok",
		"document_id", doc.ID,
		"doc_type", doc.DocType,
	)
	return result, nil
}

// parseInvoices segments the blob, gates every segment on quality, and
// extracts line items from the accepted ones. Rejected segments are kept
// with their score and reasons so the caller can surface them.
func (p *Processor) parseInvoices(text string) *entity.InvoiceResult {
	out := &entity.InvoiceResult{Segments: []entity.SegmentResult{}}

	for _, seg := range p.segmenter.Detect(text) {
		if !seg.Quality.IsAcceptable {
			p.Logger.Warn("pipeline.invoice.rejected",
				"index", seg.Index,
				"score", seg.Quality.Score,
				"issues", seg.Quality.Issues,
			)
			out.Rejected = append(out.Rejected, seg)
			continue
		}

		items := extractLineItems(seg.Text)
		names := make([]string, 0, len(items))
		for _, it := range items {
			names = append(names, it.Name)
		}
		out.Segments = append(out.Segments, entity.SegmentResult{
			Segment:          seg,
			Items:            items,
			SupplierCategory: taxonomy.ClassifySupplier(seg.HeaderLabel, names),
		})
	}
	return out
}

// parsePriceSheet runs the line-item extractor over every line of the sheet.
func (p *Processor) parsePriceSheet(text string) *entity.PriceSheetResult {
	return &entity.PriceSheetResult{Items: extractLineItems(text)}
}

// extractLineItems applies the smart line parser to each non-blank line,
// skipping silently whatever does not decompose into a product line.
func extractLineItems(text string) []entity.ParsedLineItem {
	var items []entity.ParsedLineItem
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		item := fields.ParseLineItem(line)
		if item == nil {
			continue
		}
		fields.ReconcileItem(item)
		items = append(items, *item)
	}
	return items
}
