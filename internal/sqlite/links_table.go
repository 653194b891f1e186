// This file implements the flavor association tables (flavor_ingredients,
// flavor_allergens). Rows are only ever created here, by name lookup.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

// association describes one flavor join table and the entity it links to.
type association struct {
	table       string // join table
	otherTable  string // parent table of the non-flavor side
	otherColumn string // key column shared by otherTable and table
}

var (
	flavorIngredients = association{
		table:       types.FlavorIngredientsTable,
		otherTable:  types.IngredientsTable,
		otherColumn: "ingredient_id",
	}
	flavorAllergens = association{
		table:       types.FlavorAllergensTable,
		otherTable:  types.AllergensTable,
		otherColumn: "allergen_id",
	}
)

// LinkIngredientToFlavor associates an ingredient with a flavor.
func (b *Backend) LinkIngredientToFlavor(ctx context.Context, flavorName, ingredientName string) error {
	return b.link(ctx, flavorIngredients, flavorName, ingredientName)
}

// LinkAllergenToFlavor associates an allergen with a flavor.
func (b *Backend) LinkAllergenToFlavor(ctx context.Context, flavorName, allergenName string) error {
	return b.link(ctx, flavorAllergens, flavorName, allergenName)
}

// link resolves both names and inserts the pair in one transaction. A missing
// name returns ErrNotFound before anything is written; an existing pair
// returns ErrAlreadyLinked.
func (b *Backend) link(ctx context.Context, a association, flavorName, otherName string) error {
	err := b.withTx(ctx, "link "+a.table, func(tx *sqlx.Tx) error {
		flavorID, err := idByName(ctx, tx, types.FlavorsTable, "flavor_id", flavorName)
		if err != nil {
			return err
		}
		otherID, err := idByName(ctx, tx, a.otherTable, a.otherColumn, otherName)
		if err != nil {
			return err
		}

		var one int
		err = tx.QueryRowxContext(ctx,
			"SELECT 1 FROM "+a.table+" WHERE flavor_id = ? AND "+a.otherColumn+" = ?",
			flavorID, otherID,
		).Scan(&one)
		if err == nil {
			return fmt.Errorf("%s -> %s: %w", flavorName, otherName, types.ErrAlreadyLinked)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking %s: %w", a.table, err)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO "+a.table+" (flavor_id, "+a.otherColumn+") VALUES (?, ?)",
			flavorID, otherID,
		)
		if err != nil {
			return fmt.Errorf("inserting into %s: %w", a.table, translateConstraint(err, types.ErrAlreadyLinked))
		}
		return nil
	})
	if err != nil {
		return err
	}

	b.logger.Debug("linked",
		zap.String("table", a.table),
		zap.String("flavor", flavorName),
		zap.String("other", otherName),
	)
	return nil
}
