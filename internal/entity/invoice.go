package entity

// QualityResult is the heuristic verdict on whether a text segment is a
// genuine, legible invoice rather than noise or a mis-split fragment.
type QualityResult struct {
	IsAcceptable bool     `json:"is_acceptable"`
	Score        float64  `json:"score"`
	Issues       []string `json:"issues,omitempty"`
}

// InvoiceSegment is one supplier invoice's worth of text recovered from a
// blob that may contain several concatenated invoices.
type InvoiceSegment struct {
	Index       int           `json:"index"`
	HeaderLabel string        `json:"header_label"`
	Text        string        `json:"text"`
	StartOffset int           `json:"start_offset"`
	EndOffset   int           `json:"end_offset"`
	Quality     QualityResult `json:"quality"`
}

// ParsedLineItem is one product line decomposed into its typed fields.
// Quantity and prices are non-negative; a field the extractor could not
// locate stays zero until ReconcileItem back-fills it.
type ParsedLineItem struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
	SourceLine string  `json:"source_line"`
}
