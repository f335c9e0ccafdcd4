// Package taxonomy infers product and supplier categories from names using
// ordered keyword decision lists: first matching set wins, evaluation order
// is fixed and documented by the list order itself.
package taxonomy

import (
	"strings"

	"github.com/mlaurent/restodoc/constants"
)

type keywordSet struct {
	category constants.ProductCategory
	keywords []string
}

// productSets is evaluated top to bottom; the order is part of the
// classification contract (meats before grocery, so "boeuf séché" lands in
// Meats even though "séché" also appears in grocery vocabulary).
var productSets = []keywordSet{
	{constants.ProductVegetables, []string{
		"tomate", "carotte", "courgette", "aubergine", "poireau", "oignon",
		"ail", "échalote", "salade", "laitue", "roquette", "épinard",
		"haricot", "poivron", "chou", "brocoli", "champignon", "pomme de terre",
		"patate", "céleri", "fenouil", "endive", "radis", "navet", "betterave",
		"asperge", "artichaut", "concombre", "courge", "potiron", "légume",
	}},
	{constants.ProductMeats, []string{
		"boeuf", "bœuf", "veau", "porc", "agneau", "poulet", "volaille",
		"canard", "dinde", "pintade", "lapin", "jambon", "saucisse",
		"saucisson", "lardon", "chorizo", "merguez", "entrecôte", "filet mignon",
		"bavette", "onglet", "paleron", "viande", "steak", "côte de",
	}},
	{constants.ProductSeafood, []string{
		"saumon", "cabillaud", "thon", "bar ", "dorade", "daurade", "sole",
		"merlu", "lieu", "lotte", "sardine", "maquereau", "crevette",
		"gambas", "moule", "huître", "huitre", "palourde", "coquille",
		"saint-jacques", "st-jacques", "calamar", "encornet", "poulpe",
		"poisson", "homard", "langoustine", "crabe",
	}},
	{constants.ProductDairy, []string{
		"lait", "crème", "creme", "beurre", "fromage", "yaourt", "yogourt",
		"mozzarella", "parmesan", "comté", "emmental", "gruyère", "chèvre",
		"roquefort", "brie", "camembert", "mascarpone", "ricotta", "burrata",
		"oeuf", "œuf",
	}},
	{constants.ProductSpices, []string{
		"sel", "poivre", "épice", "epice", "curry", "paprika", "cumin",
		"curcuma", "safran", "cannelle", "muscade", "thym", "romarin",
		"laurier", "basilic", "persil", "coriandre", "menthe", "estragon",
		"ciboulette", "moutarde", "vinaigre", "sauce", "ketchup", "mayonnaise",
	}},
	{constants.ProductFruits, []string{
		"pomme", "poire", "banane", "orange", "citron", "pamplemousse",
		"fraise", "framboise", "myrtille", "cassis", "cerise", "abricot",
		"pêche", "peche", "nectarine", "prune", "raisin", "melon", "pastèque",
		"ananas", "mangue", "kiwi", "figue", "fruit",
	}},
	{constants.ProductGrocery, []string{
		"huile", "olive", "conserve", "bocal", "sucre", "farine", "levure",
		"chocolat", "café", "cafe", "thé", "the ", "confiture", "miel",
		"biscuit", "chips", "olive", "câpre", "cornichon", "séché",
	}},
	{constants.ProductGrains, []string{
		"riz", "pâtes", "pates", "spaghetti", "linguine", "penne", "tagliatelle",
		"semoule", "quinoa", "boulgour", "lentille", "pois chiche", "polenta",
		"pain", "baguette", "brioche",
	}},
	{constants.ProductBeverages, []string{
		"vin", "bière", "biere", "champagne", "prosecco", "cidre", "jus",
		"soda", "cola", "limonade", "eau", "sirop", "rhum", "vodka", "gin",
		"whisky", "pastis", "apéritif", "aperitif", "liqueur",
	}},
}

// ClassifyProduct infers the product category of a name by case-insensitive
// substring match against the ordered keyword sets. Defaults to Other.
func ClassifyProduct(name string) constants.ProductCategory {
	lower := strings.ToLower(name)
	for _, set := range productSets {
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				return set.category
			}
		}
	}
	return constants.ProductOther
}
