package types

// FlavorIngredient links a flavor to one of its ingredients. The pair is the
// key; rows are created only through Catalog.LinkIngredientToFlavor.
type FlavorIngredient struct {
	FlavorID     string `json:"flavor_id"`
	IngredientID string `json:"ingredient_id"`
}

// FlavorAllergen links a flavor to an allergen it contains.
type FlavorAllergen struct {
	FlavorID   string `json:"flavor_id"`
	AllergenID string `json:"allergen_id"`
}
