package fields

import "regexp"

// Price patterns tried in priority order: a decimal amount with optional
// euro sign, then a whole amount with a mandatory euro sign, then any
// number the locale normalizer accepts.
var (
	rePriceDecimal = regexp.MustCompile(`(\d+[.,]\d{1,2})\s*€?`)
	rePriceEuro    = regexp.MustCompile(`(\d+)\s*€`)
)

// ExtractPrice locates a price in free text. Returns nil when nothing
// price-shaped is present.
func ExtractPrice(text string) *float64 {
	if m := rePriceDecimal.FindStringSubmatch(text); m != nil {
		if v := NormalizeNumber(m[1]); v != nil {
			return v
		}
	}
	if m := rePriceEuro.FindStringSubmatch(text); m != nil {
		if v := NormalizeNumber(m[1]); v != nil {
			return v
		}
	}
	return NormalizeNumber(text)
}
