// This file implements the cart: stock reservation on add, priced view,
// and clear.
package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

// AddToCart reserves quantity units of the named flavor and inserts a cart
// item. The stock decrement and the insert share one transaction; if either
// fails neither is visible.
func (b *Backend) AddToCart(ctx context.Context, flavorName string, quantity int) (*types.CartItem, error) {
	if quantity < 1 {
		return nil, types.ErrInvalidQuantity
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}
	item := &types.CartItem{CartItemID: id, Quantity: quantity, CreatedAt: now()}

	err = b.withTx(ctx, "add to cart", func(tx *sqlx.Tx) error {
		flavor, err := flavorByName(ctx, tx, flavorName)
		if err != nil {
			return err
		}
		if flavor.StockQuantity < quantity {
			return fmt.Errorf("%s: want %d, have %d: %w",
				flavorName, quantity, flavor.StockQuantity, types.ErrInsufficientStock)
		}
		item.FlavorID = flavor.FlavorID

		// Conditional decrement: the row only changes if the stock still
		// covers the request.
		res, err := tx.ExecContext(ctx,
			"UPDATE flavors SET stock_quantity = stock_quantity - ? WHERE flavor_id = ? AND stock_quantity >= ?",
			quantity, flavor.FlavorID, quantity,
		)
		if err != nil {
			return fmt.Errorf("reserving stock: %w", translateConstraint(err, types.ErrConstraint))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("reading affected rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%s: %w", flavorName, types.ErrInsufficientStock)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO cart (cart_item_id, flavor_id, quantity, created_at) VALUES (?, ?, ?, ?)",
			item.CartItemID, item.FlavorID, item.Quantity, formatTime(item.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("inserting cart item: %w", translateConstraint(err, types.ErrConstraint))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.logger.Debug("added to cart", zap.String("flavor", flavorName), zap.Int("quantity", quantity))
	return item, nil
}

// cartLineRow is one cart item joined with its flavor's current price.
type cartLineRow struct {
	FlavorName string          `db:"flavor_name"`
	Quantity   int             `db:"quantity"`
	Price      decimal.Decimal `db:"price"`
}

// ViewCart returns the cart in insertion order, priced at each flavor's
// current price.
func (b *Backend) ViewCart(ctx context.Context) ([]types.CartLine, error) {
	var rows []cartLineRow
	err := b.view(func(db *sqlx.DB) error {
		return db.SelectContext(ctx, &rows,
			`SELECT f.name AS flavor_name, c.quantity, f.price
			FROM cart c
			JOIN flavors f ON f.flavor_id = c.flavor_id
			ORDER BY c.rowid`)
	})
	if err != nil {
		return nil, fmt.Errorf("fetching cart: %w", err)
	}

	lines := make([]types.CartLine, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, types.NewCartLine(r.FlavorName, r.Quantity, r.Price))
	}
	return lines, nil
}

// ClearCart deletes every cart item in one transaction. Stock reserved by
// the deleted items stays deducted.
func (b *Backend) ClearCart(ctx context.Context) error {
	var cleared int64
	err := b.withTx(ctx, "clear cart", func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM cart")
		if err != nil {
			return fmt.Errorf("deleting cart items: %w", err)
		}
		cleared, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("reading affected rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	b.logger.Debug("cart cleared", zap.Int64("items", cleared))
	return nil
}
