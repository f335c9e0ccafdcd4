package constants

// ProductCategory tags an extracted item with its product taxonomy bucket.
type ProductCategory string

const (
	ProductVegetables ProductCategory = "Vegetables"
	ProductMeats      ProductCategory = "Meats"
	ProductSeafood    ProductCategory = "Seafood"
	ProductDairy      ProductCategory = "Dairy"
	ProductSpices     ProductCategory = "Spices"
	ProductFruits     ProductCategory = "Fruits"
	ProductGrocery    ProductCategory = "Grocery"
	ProductGrains     ProductCategory = "Grains"
	ProductBeverages  ProductCategory = "Beverages"
	ProductOther      ProductCategory = "Other"
)

// SupplierCategory tags a supplier with the kind of goods it sells.
type SupplierCategory string

const (
	SupplierProduce SupplierCategory = "produce"
	SupplierButcher SupplierCategory = "butcher"
	SupplierSeafood SupplierCategory = "seafood"
	SupplierDairy   SupplierCategory = "dairy"
	SupplierGrocery SupplierCategory = "grocery"
	SupplierFrozen  SupplierCategory = "frozen"
	SupplierFresh   SupplierCategory = "fresh"
)
