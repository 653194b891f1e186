package types

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Flavor is a sellable ice cream product with a price and stock.
type Flavor struct {
	FlavorID      string          `json:"flavor_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	IsSeasonal    bool            `json:"is_seasonal"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
}

// FlavorInput carries the caller-supplied fields for AddFlavor.
type FlavorInput struct {
	Name          string
	Description   string
	IsSeasonal    bool
	Price         decimal.Decimal
	StockQuantity int
}

// Validate checks the input before it reaches the store.
func (in FlavorInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrInvalidName
	}
	if err := ValidatePrice(in.Price); err != nil {
		return err
	}
	if in.StockQuantity < 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// ValidatePrice returns ErrInvalidPrice unless price is strictly positive.
func ValidatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return ErrInvalidPrice
	}
	return nil
}

// SearchFilter narrows SearchFlavors. Zero values are no-ops: an empty Name
// matches every flavor and a nil Seasonal matches both kinds.
type SearchFilter struct {
	Name     string
	Seasonal *bool
}

// ParseSeasonal maps the tri-state answers "y"/"yes", "n"/"no" and
// ""/"any" to a Seasonal filter value. ok is false for anything else.
func ParseSeasonal(s string) (seasonal *bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "all":
		return nil, true
	case "y", "yes", "true":
		v := true
		return &v, true
	case "n", "no", "false":
		v := false
		return &v, true
	default:
		return nil, false
	}
}
