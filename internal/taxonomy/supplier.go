package taxonomy

import (
	"strings"

	"github.com/mlaurent/restodoc/constants"
)

type supplierSet struct {
	category constants.SupplierCategory
	keywords []string
}

// supplierSets is evaluated top to bottom, first match wins.
var supplierSets = []supplierSet{
	{constants.SupplierProduce, []string{
		"primeur", "maraîcher", "maraicher", "fruits et légumes",
		"fruits et legumes", "verger", "potager",
	}},
	{constants.SupplierButcher, []string{
		"boucherie", "boucher", "charcuterie", "charcutier", "volailles",
		"viandes",
	}},
	{constants.SupplierSeafood, []string{
		"marée", "maree", "poissonnerie", "poissonnier", "criée", "criee",
		"ostréiculteur", "mareyeur",
	}},
	{constants.SupplierDairy, []string{
		"laiterie", "fromagerie", "fromager", "crémerie", "cremerie",
		"produits laitiers",
	}},
	{constants.SupplierGrocery, []string{
		"épicerie", "epicerie", "cash", "métro", "metro", "promocash",
		"transgourmet", "grossiste",
	}},
	{constants.SupplierFrozen, []string{
		"surgelé", "surgele", "congelé", "congele", "picard", "frozen",
	}},
}

// productToSupplier maps a product category vote onto a supplier category.
var productToSupplier = map[constants.ProductCategory]constants.SupplierCategory{
	constants.ProductVegetables: constants.SupplierProduce,
	constants.ProductFruits:     constants.SupplierProduce,
	constants.ProductMeats:      constants.SupplierButcher,
	constants.ProductSeafood:    constants.SupplierSeafood,
	constants.ProductDairy:      constants.SupplierDairy,
	constants.ProductSpices:     constants.SupplierGrocery,
	constants.ProductGrocery:    constants.SupplierGrocery,
	constants.ProductGrains:     constants.SupplierGrocery,
	constants.ProductBeverages:  constants.SupplierGrocery,
}

// ClassifySupplier infers a supplier category from the supplier name, and
// when the name alone is inconclusive, from a majority vote over the
// categories of its products. Defaults to fresh/general.
func ClassifySupplier(name string, productNames []string) constants.SupplierCategory {
	lower := strings.ToLower(name)
	for _, set := range supplierSets {
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				return set.category
			}
		}
	}

	if len(productNames) == 0 {
		return constants.SupplierFresh
	}

	votes := map[constants.SupplierCategory]int{}
	for _, pn := range productNames {
		cat := ClassifyProduct(pn)
		if sup, ok := productToSupplier[cat]; ok {
			votes[sup]++
		}
	}
	best := constants.SupplierFresh
	bestCount := 0
	// deterministic tie-break: first supplier set order wins
	order := []constants.SupplierCategory{
		constants.SupplierProduce, constants.SupplierButcher,
		constants.SupplierSeafood, constants.SupplierDairy,
		constants.SupplierGrocery, constants.SupplierFrozen,
	}
	for _, sup := range order {
		if votes[sup] > bestCount {
			best = sup
			bestCount = votes[sup]
		}
	}
	return best
}
