package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a pending purchase line. Its quantity was reserved from the
// flavor's stock when the item was added.
type CartItem struct {
	CartItemID string    `json:"cart_item_id"`
	FlavorID   string    `json:"flavor_id"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
}

// CartLine is the read model returned by ViewCart.
type CartLine struct {
	FlavorName string          `json:"flavor_name"`
	Quantity   int             `json:"quantity"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

// NewCartLine prices quantity units at price.
func NewCartLine(flavorName string, quantity int, price decimal.Decimal) CartLine {
	return CartLine{
		FlavorName: flavorName,
		Quantity:   quantity,
		LineTotal:  price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// CartTotal sums the line totals.
func CartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal)
	}
	return total
}
