// This file implements seeding of the demo catalog.
package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

// seedIngredient describes an ingredient created by Seed.
type seedIngredient struct {
	name  string
	stock string
	unit  string
}

// seedFlavor describes a flavor created by Seed and the names it links to.
type seedFlavor struct {
	input       types.FlavorInput
	ingredients []string
	allergens   []string
}

var seedAllergens = []string{"Nuts", "Dairy"}

var seedIngredients = []seedIngredient{
	{"Heavy Cream", "100", "liters"},
	{"Sugar", "50", "kg"},
}

var seedFlavors = []seedFlavor{
	{
		input: types.FlavorInput{
			Name:          "Chocolate Delight",
			Description:   "Rich chocolate flavor",
			IsSeasonal:    true,
			Price:         decimal.RequireFromString("5.99"),
			StockQuantity: 20,
		},
		ingredients: []string{"Heavy Cream"},
		allergens:   []string{"Dairy"},
	},
}

// Seed creates the demo catalog. Rows whose name already exists are left
// alone, including the links of an existing flavor, so Seed can run on
// every start.
func (b *Backend) Seed(ctx context.Context) error {
	return b.withTx(ctx, "seed", func(tx *sqlx.Tx) error {
		ts := formatTime(now())

		for _, name := range seedAllergens {
			id, err := newID()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO allergens (allergen_id, name, created_at) VALUES (?, ?, ?) ON CONFLICT(name) DO NOTHING",
				id, name, ts,
			); err != nil {
				return fmt.Errorf("seeding allergen %q: %w", name, err)
			}
		}

		for _, ing := range seedIngredients {
			id, err := newID()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO ingredients (ingredient_id, name, stock_quantity, unit, created_at) VALUES (?, ?, ?, ?, ?) ON CONFLICT(name) DO NOTHING",
				id, ing.name, ing.stock, ing.unit, ts,
			); err != nil {
				return fmt.Errorf("seeding ingredient %q: %w", ing.name, err)
			}
		}

		for _, f := range seedFlavors {
			id, err := newID()
			if err != nil {
				return err
			}
			in := f.input
			res, err := tx.ExecContext(ctx,
				"INSERT INTO flavors ("+flavorColumns+") VALUES (?, ?, ?, ?, ?, ?, ?) ON CONFLICT(name) DO NOTHING",
				id, in.Name, in.Description, in.IsSeasonal, in.Price.String(), in.StockQuantity, ts,
			)
			if err != nil {
				return fmt.Errorf("seeding flavor %q: %w", in.Name, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("reading affected rows: %w", err)
			}
			if n == 0 {
				// Existing flavor of the same name; its links are not ours
				// to change.
				continue
			}
			for _, ing := range f.ingredients {
				if err := seedLink(ctx, tx, flavorIngredients, in.Name, ing); err != nil {
					return err
				}
			}
			for _, al := range f.allergens {
				if err := seedLink(ctx, tx, flavorAllergens, in.Name, al); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// seedLink inserts the association between two seeded names unless it
// already exists.
func seedLink(ctx context.Context, tx *sqlx.Tx, a association, flavorName, otherName string) error {
	_, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO "+a.table+" (flavor_id, "+a.otherColumn+") "+
			"SELECT f.flavor_id, o."+a.otherColumn+" FROM flavors f, "+a.otherTable+" o "+
			"WHERE f.name = ? AND o.name = ?",
		flavorName, otherName,
	)
	if err != nil {
		return fmt.Errorf("seeding %s %q -> %q: %w", a.table, flavorName, otherName, err)
	}
	return nil
}
