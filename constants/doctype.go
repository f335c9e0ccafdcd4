package constants

import "strings"

// DocumentType selects which structuring path the pipeline runs.
// The pipeline never infers it; callers pick it upstream.
type DocumentType string

const (
	DocTypeZReport         DocumentType = "Z_REPORT"
	DocTypeSupplierInvoice DocumentType = "SUPPLIER_INVOICE"
	DocTypePriceSheet      DocumentType = "PRICE_SHEET"
)

var allDocumentTypes = []DocumentType{
	DocTypeZReport,
	DocTypeSupplierInvoice,
	DocTypePriceSheet,
}

// ParseDocumentType canonicalizes a free-form label into a DocumentType.
func ParseDocumentType(input string) (DocumentType, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")

	synonyms := map[string]DocumentType{
		"ZREPORT":    DocTypeZReport,
		"CLOTURE":    DocTypeZReport,
		"CLOSURE":    DocTypeZReport,
		"INVOICE":    DocTypeSupplierInvoice,
		"FACTURE":    DocTypeSupplierInvoice,
		"PRICES":     DocTypePriceSheet,
		"MERCURIALE": DocTypePriceSheet,
	}
	if dt, ok := synonyms[normalized]; ok {
		return dt, true
	}
	for _, dt := range allDocumentTypes {
		if normalized == string(dt) {
			return dt, true
		}
	}
	return "", false
}
