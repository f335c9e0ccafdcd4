package fields

import (
	"math"
	"regexp"
	"strings"

	"github.com/mlaurent/restodoc/internal/entity"
)

var (
	reHasDigit       = regexp.MustCompile(`\d`)
	rePriceToken     = regexp.MustCompile(`^\d+[.,]\d{1,2}€?$`)
	reNumberToken    = regexp.MustCompile(`^\d+(?:[.,]\d+)?$`)
	reUnitWord       = regexp.MustCompile(`(?i)^(kg|kgs|kilos?|kilogrammes?|gr?|grammes?|l|litres?|pi[eè]ces?|pcs?|unit[eé]s?|colis|bottes?|bunch|bouquet)$`)
	reFusedQtyUnit   = regexp.MustCompile(`(?i)^(\d+(?:[.,]\d+)?)(kg|kgs|g|gr|l|pcs?|k)$`)
	priceTokenWindow = 4
)

// ParseLineItem decomposes one free-text product line into name, quantity,
// unit and prices. Returns nil when the line does not look like a product
// line: fewer than two numeric tokens, or no recoverable name.
func ParseLineItem(line string) *entity.ParsedLineItem {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}

	numericCount := 0
	for _, tok := range tokens {
		if reHasDigit.MatchString(tok) {
			numericCount++
		}
	}
	if numericCount < 2 {
		return nil
	}

	item := &entity.ParsedLineItem{SourceLine: line}

	// forward scan: first quantity+unit pair (or fused token) wins
	qtyIdx, qtyEnd := -1, -1
	for i, tok := range tokens {
		if m := reFusedQtyUnit.FindStringSubmatch(tok); m != nil {
			if v := NormalizeNumber(m[1]); v != nil {
				item.Quantity = *v
				item.Unit = CanonicalUnit(m[2])
				qtyIdx, qtyEnd = i, i
			}
			break
		}
		if i+1 < len(tokens) && reNumberToken.MatchString(tok) && reUnitWord.MatchString(tokens[i+1]) {
			if v := NormalizeNumber(tok); v != nil {
				item.Quantity = *v
				item.Unit = CanonicalUnit(tokens[i+1])
				qtyIdx, qtyEnd = i, i+1
			}
			break
		}
	}

	// backward scan: price-shaped tokens within the trailing window. A
	// decimal quantity like "10.0" is price-shaped too, so the window never
	// reaches back into the quantity/unit tokens.
	var prices []float64
	start := len(tokens) - priceTokenWindow
	if start < 0 {
		start = 0
	}
	if qtyEnd >= 0 && start <= qtyEnd {
		start = qtyEnd + 1
	}
	for _, tok := range tokens[start:] {
		if rePriceToken.MatchString(tok) {
			if v := NormalizeNumber(tok); v != nil {
				prices = append(prices, *v)
			}
		}
	}
	switch {
	case len(prices) >= 2:
		item.UnitPrice = prices[len(prices)-2]
		item.TotalPrice = prices[len(prices)-1]
	case len(prices) == 1:
		item.TotalPrice = prices[0]
		if item.Quantity > 0 {
			item.UnitPrice = math.Round(item.TotalPrice/item.Quantity*100) / 100
		}
	}

	// name is everything before the quantity token; without a located
	// quantity, everything except the trailing price window
	nameEnd := qtyIdx
	if nameEnd < 0 {
		nameEnd = len(tokens) - priceTokenWindow
	}
	if nameEnd <= 0 {
		return nil
	}
	item.Name = strings.Join(tokens[:nameEnd], " ")
	if strings.TrimSpace(item.Name) == "" {
		return nil
	}
	return item
}

// ReconcileItem back-fills the fields ParseLineItem could not locate:
// zero quantity defaults to 1, a missing price is derived from the other
// one, and the unit is mapped onto its canonical name.
func ReconcileItem(item *entity.ParsedLineItem) {
	if item == nil {
		return
	}
	if item.Quantity <= 0 {
		item.Quantity = 1.0
	}
	if item.TotalPrice == 0 && item.UnitPrice > 0 {
		item.TotalPrice = math.Round(item.UnitPrice*item.Quantity*100) / 100
	}
	if item.UnitPrice == 0 && item.TotalPrice > 0 {
		item.UnitPrice = math.Round(item.TotalPrice/item.Quantity*100) / 100
	}
	if item.Unit == "" {
		item.Unit = UnitPiece
	} else {
		item.Unit = CanonicalUnit(item.Unit)
	}
}
