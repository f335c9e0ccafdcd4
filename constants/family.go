package constants

import "strings"

// Family is one of the Z-report sales groupings. Every category and
// production entry resolves to exactly one family.
type Family string

const (
	FamilyBar      Family = "Bar"
	FamilyEntrees  Family = "Entrées"
	FamilyPlats    Family = "Plats"
	FamilyDesserts Family = "Desserts"
	FamilyAutres   Family = "Autres"
)

var allFamilies = []Family{
	FamilyBar,
	FamilyEntrees,
	FamilyPlats,
	FamilyDesserts,
	FamilyAutres,
}

// AllFamilies returns every family in display order.
func AllFamilies() []Family {
	out := make([]Family, len(allFamilies))
	copy(out, allFamilies)
	return out
}

// ParseFamily canonicalizes a label into a Family, defaulting to Autres.
func ParseFamily(input string) (Family, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	switch normalized {
	case "bar", "boissons", "drinks":
		return FamilyBar, true
	case "entrées", "entrees", "starters":
		return FamilyEntrees, true
	case "plats", "plats principaux", "mains":
		return FamilyPlats, true
	case "desserts", "dessert":
		return FamilyDesserts, true
	}
	for _, f := range allFamilies {
		if normalized == strings.ToLower(string(f)) {
			return f, true
		}
	}
	return FamilyAutres, false
}
