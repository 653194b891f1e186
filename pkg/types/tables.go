package types

// Table names of the relational schema.
const (
	FlavorsTable           = "flavors"
	IngredientsTable       = "ingredients"
	AllergensTable         = "allergens"
	FlavorIngredientsTable = "flavor_ingredients"
	FlavorAllergensTable   = "flavor_allergens"
	CartTable              = "cart"
)

// CatalogTableNames lists the catalog tables in dependency order, parents
// before the association tables that reference them. The cart is not part
// of the catalog.
var CatalogTableNames = []string{
	FlavorsTable,
	IngredientsTable,
	AllergensTable,
	FlavorIngredientsTable,
	FlavorAllergensTable,
}
