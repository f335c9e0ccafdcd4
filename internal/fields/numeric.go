// Package fields holds the generic field extractors shared by every
// structuring path: locale-aware numeric parsing, quantity/unit and price
// extraction, and the composite product-line parser.
package fields

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	reDotThousands   = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+(?:,\d+)?$`)
	reCommaThousands = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+(?:\.\d+)?$`)
	reNumeric        = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)
)

// currency symbols and noise stripped before numeric parsing
var numberStripper = strings.NewReplacer(
	"€", "", "$", "", "£", "",
	"EUR", "", "eur", "",
	" ", "", " ", "", "\t", "",
)

// NormalizeNumber parses a locale-formatted number (comma or dot decimal
// separator, optional thousands separators, optional currency symbol) into
// a float rounded to 2 decimals. Returns nil when the input is not numeric;
// it never panics or errors out to the caller.
func NormalizeNumber(text string) *float64 {
	compact := numberStripper.Replace(strings.TrimSpace(text))
	if compact == "" {
		return nil
	}

	switch {
	case reDotThousands.MatchString(compact):
		// 1.234.567,89 -> dots are thousands, comma is decimal
		compact = strings.ReplaceAll(compact, ".", "")
		compact = strings.Replace(compact, ",", ".", 1)
	case reCommaThousands.MatchString(compact):
		// 1,234,567.89 -> commas are thousands
		compact = strings.ReplaceAll(compact, ",", "")
	case strings.Contains(compact, ",") && !strings.Contains(compact, "."):
		// single comma, no dot: French decimal separator
		if strings.Count(compact, ",") > 1 {
			return nil
		}
		compact = strings.Replace(compact, ",", ".", 1)
	}

	if !reNumeric.MatchString(compact) {
		return nil
	}
	v, err := strconv.ParseFloat(compact, 64)
	if err != nil {
		return nil
	}
	v = math.Round(v*100) / 100
	return &v
}
