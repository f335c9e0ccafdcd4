package taxonomy

import (
	"testing"

	"github.com/mlaurent/restodoc/constants"
)

func TestClassifyProduct(t *testing.T) {
	tests := []struct {
		name string
		want constants.ProductCategory
	}{
		{"Tomates grappe", constants.ProductVegetables},
		{"Pomme de terre grenaille", constants.ProductVegetables},
		{"Entrecôte de boeuf", constants.ProductMeats},
		{"Filet mignon de porc", constants.ProductMeats},
		{"Saumon fumé", constants.ProductSeafood},
		{"Noix de Saint-Jacques", constants.ProductSeafood},
		{"Crème fraîche épaisse", constants.ProductDairy},
		{"Chèvre frais", constants.ProductDairy},
		{"Moutarde de Dijon", constants.ProductSpices},
		{"Fraises gariguette", constants.ProductFruits},
		{"Huile d'olive vierge", constants.ProductGrocery},
		{"Linguine artisanales", constants.ProductGrains},
		{"Vin rouge de table", constants.ProductBeverages},
		{"Serviettes en papier", constants.ProductOther},
		{"", constants.ProductOther},
	}
	for _, tt := range tests {
		if got := ClassifyProduct(tt.name); got != tt.want {
			t.Errorf("ClassifyProduct(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestClassifyProduct_OrderContract(t *testing.T) {
	// vegetables are evaluated before spices, so a salad with sauce in the
	// name stays a vegetable
	if got := ClassifyProduct("Salade sauce césar"); got != constants.ProductVegetables {
		t.Errorf("ClassifyProduct = %s, want %s", got, constants.ProductVegetables)
	}
	// meats before grocery
	if got := ClassifyProduct("Boeuf séché"); got != constants.ProductMeats {
		t.Errorf("ClassifyProduct = %s, want %s", got, constants.ProductMeats)
	}
}

func TestClassifySupplier_ByName(t *testing.T) {
	tests := []struct {
		name string
		want constants.SupplierCategory
	}{
		{"Boucherie Martin", constants.SupplierButcher},
		{"Poissonnerie de la Criée", constants.SupplierSeafood},
		{"Fromagerie Laurent", constants.SupplierDairy},
		{"METRO Cash & Carry", constants.SupplierGrocery},
		{"Primeur des Halles", constants.SupplierProduce},
		{"Picard Surgelés", constants.SupplierFrozen},
	}
	for _, tt := range tests {
		if got := ClassifySupplier(tt.name, nil); got != tt.want {
			t.Errorf("ClassifySupplier(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestClassifySupplier_MajorityVote(t *testing.T) {
	products := []string{
		"Entrecôte de boeuf",
		"Saucisses de Toulouse",
		"Jambon blanc",
		"Tomates grappe",
	}
	if got := ClassifySupplier("Ets Dupont", products); got != constants.SupplierButcher {
		t.Errorf("ClassifySupplier = %s, want %s", got, constants.SupplierButcher)
	}
}

func TestClassifySupplier_Default(t *testing.T) {
	if got := ClassifySupplier("Ets Dupont", nil); got != constants.SupplierFresh {
		t.Errorf("ClassifySupplier = %s, want %s", got, constants.SupplierFresh)
	}
	// products that classify to Other cast no votes
	if got := ClassifySupplier("Ets Dupont", []string{"Serviettes", "Nappes"}); got != constants.SupplierFresh {
		t.Errorf("ClassifySupplier = %s, want %s", got, constants.SupplierFresh)
	}
}
