package entity

import (
	"github.com/mlaurent/restodoc/constants"
)

// RawLine is one line of OCR text with its original indentation intact.
// RawIndent is the count of leading whitespace characters of the unstripped
// line; it is captured before any cleanup because it encodes the
// category/production hierarchy.
type RawLine struct {
	Text       string `json:"text"`
	RawIndent  int    `json:"raw_indent"`
	LineNumber int    `json:"line_number"`
}

// CategoryEntry is a top-level (indent 0) sales-category line of a Z-report.
type CategoryEntry struct {
	Name        string           `json:"name"`
	Quantity    int              `json:"quantity"`
	TotalPrice  float64          `json:"total_price"`
	IndentLevel int              `json:"indent_level"`
	Family      constants.Family `json:"family"`
	RawLine     string           `json:"raw_line"`
	LineNumber  int              `json:"line_number"`
}

// ProductionEntry is an indented line nested under a category, one specific
// dish or drink sold. Its family always equals the resolved family of the
// nearest preceding category.
type ProductionEntry struct {
	Name        string           `json:"name"`
	Quantity    int              `json:"quantity"`
	TotalPrice  float64          `json:"total_price"`
	IndentLevel int              `json:"indent_level"`
	Family      constants.Family `json:"family"`
	Category    string           `json:"category"`
	RawLine     string           `json:"raw_line"`
	LineNumber  int              `json:"line_number"`
}

// FamilyAggregate sums every entry attributed to one family.
type FamilyAggregate struct {
	Family       constants.Family `json:"family"`
	ArticleCount int              `json:"article_count"`
	TotalSales   float64          `json:"total_sales"`
	Details      []string         `json:"details"`
}

// Reconciliation compares the sum of top-level categories against the
// displayed TTC total. A non-zero delta is informational, never an error.
type Reconciliation struct {
	ComputedTotal  float64  `json:"computed_total"`
	DisplayedTotal *float64 `json:"displayed_total,omitempty"`
	Delta          *float64 `json:"delta,omitempty"`
}

// ZReportResult is the structured form of one end-of-day closure report.
// Missing header fields are nil, never zero.
type ZReportResult struct {
	ClosureDate    string                               `json:"closure_date,omitempty"`
	ClosureTime    string                               `json:"closure_time,omitempty"`
	CoversCount    *float64                             `json:"covers_count,omitempty"`
	TotalExclTax   *float64                             `json:"total_excl_tax,omitempty"`
	TotalInclTax   *float64                             `json:"total_incl_tax,omitempty"`
	Categories     []CategoryEntry                      `json:"categories"`
	Productions    []ProductionEntry                    `json:"productions"`
	Families       map[constants.Family]FamilyAggregate `json:"families"`
	Reconciliation Reconciliation                       `json:"reconciliation"`
}
