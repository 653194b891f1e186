package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient is a raw material tracked in a free-form unit.
type Ingredient struct {
	IngredientID  string          `json:"ingredient_id"`
	Name          string          `json:"name"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	Unit          string          `json:"unit,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Allergen is a named allergen a flavor may contain.
type Allergen struct {
	AllergenID string    `json:"allergen_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}
