package fields

import (
	"regexp"
	"strings"
)

// Canonical unit names. Everything the extractors emit is one of these.
const (
	UnitKilogram = "kg"
	UnitGram     = "g"
	UnitLitre    = "L"
	UnitPiece    = "pièce"
	UnitColis    = "colis"
	UnitBotte    = "botte"
)

// DefaultUnitSynonyms maps vendor spellings to canonical units. Applied by
// ReconcileItem as a post-pass so extractors stay pattern-only.
var DefaultUnitSynonyms = map[string]string{
	"k":          UnitKilogram,
	"kg":         UnitKilogram,
	"kgs":        UnitKilogram,
	"kilo":       UnitKilogram,
	"kilos":      UnitKilogram,
	"kilogramme": UnitKilogram,
	"g":          UnitGram,
	"gr":         UnitGram,
	"gramme":     UnitGram,
	"grammes":    UnitGram,
	"l":          UnitLitre,
	"litre":      UnitLitre,
	"litres":     UnitLitre,
	"piece":      UnitPiece,
	"pieces":     UnitPiece,
	"pièce":      UnitPiece,
	"pièces":     UnitPiece,
	"pc":         UnitPiece,
	"pcs":        UnitPiece,
	"unité":      UnitPiece,
	"unités":     UnitPiece,
	"colis":      UnitColis,
	"carton":     UnitColis,
	"botte":      UnitBotte,
	"bottes":     UnitBotte,
	"bunch":      UnitBotte,
	"bouquet":    UnitBotte,
}

// Quantity patterns tried in a fixed priority order: explicit units first,
// then the "K"-suffix kilogram shorthand, then a bare number defaulting to
// pièce. First match wins.
var (
	reQtyExplicitUnit = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(kg|kgs|kilos?|kilogrammes?|gr?|grammes?|l|litres?|pi[eè]ces?|pcs?|unit[eé]s?|colis|bottes?|bunch|bouquet)\b`)
	reQtyKShorthand   = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*K\b`)
	reQtyBareNumber   = regexp.MustCompile(`(\d+(?:[.,]\d+)?)`)
)

// ExtractQuantityUnit locates a quantity and its unit in free text.
// Returns ok=false when no number is present at all.
func ExtractQuantityUnit(text string) (qty float64, unit string, ok bool) {
	if m := reQtyExplicitUnit.FindStringSubmatch(text); m != nil {
		if v := NormalizeNumber(m[1]); v != nil {
			return *v, CanonicalUnit(m[2]), true
		}
	}
	if m := reQtyKShorthand.FindStringSubmatch(text); m != nil {
		if v := NormalizeNumber(m[1]); v != nil {
			return *v, UnitKilogram, true
		}
	}
	if m := reQtyBareNumber.FindStringSubmatch(text); m != nil {
		if v := NormalizeNumber(m[1]); v != nil {
			return *v, UnitPiece, true
		}
	}
	return 0, "", false
}

// CanonicalUnit maps a raw unit spelling onto its canonical name. Unknown
// units pass through lowercased.
func CanonicalUnit(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	if canonical, found := DefaultUnitSynonyms[u]; found {
		return canonical
	}
	return u
}
