// This file implements the ingredients and allergens accessors.
package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

const (
	ingredientColumns = "ingredient_id, name, stock_quantity, unit, created_at"
	allergenColumns   = "allergen_id, name, created_at"
)

type ingredientRow struct {
	IngredientID  string          `db:"ingredient_id"`
	Name          string          `db:"name"`
	StockQuantity decimal.Decimal `db:"stock_quantity"`
	Unit          string          `db:"unit"`
	CreatedAt     string          `db:"created_at"`
}

func (r ingredientRow) hydrate() (*types.Ingredient, error) {
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &types.Ingredient{
		IngredientID:  r.IngredientID,
		Name:          r.Name,
		StockQuantity: r.StockQuantity,
		Unit:          r.Unit,
		CreatedAt:     createdAt,
	}, nil
}

type allergenRow struct {
	AllergenID string `db:"allergen_id"`
	Name       string `db:"name"`
	CreatedAt  string `db:"created_at"`
}

func (r allergenRow) hydrate() (*types.Allergen, error) {
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &types.Allergen{AllergenID: r.AllergenID, Name: r.Name, CreatedAt: createdAt}, nil
}

// AddIngredient inserts an ingredient. Stock must not be negative.
func (b *Backend) AddIngredient(ctx context.Context, name string, stock decimal.Decimal, unit string) (*types.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, types.ErrInvalidName
	}
	if stock.IsNegative() {
		return nil, types.ErrInvalidQuantity
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}
	ing := &types.Ingredient{
		IngredientID:  id,
		Name:          name,
		StockQuantity: stock,
		Unit:          unit,
		CreatedAt:     now(),
	}

	err = b.withTx(ctx, "add ingredient", func(tx *sqlx.Tx) error {
		if err := checkNameFree(ctx, tx, types.IngredientsTable, ing.Name); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO ingredients ("+ingredientColumns+") VALUES (?, ?, ?, ?, ?)",
			ing.IngredientID, ing.Name, ing.StockQuantity.String(), ing.Unit, formatTime(ing.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("inserting ingredient %q: %w", ing.Name, translateConstraint(err, types.ErrDuplicateName))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.logger.Debug("ingredient added", zap.String("name", ing.Name))
	return ing, nil
}

// ListIngredients returns every ingredient in insertion order.
func (b *Backend) ListIngredients(ctx context.Context) ([]*types.Ingredient, error) {
	return b.selectIngredients(ctx, "SELECT "+ingredientColumns+" FROM ingredients ORDER BY rowid")
}

// FlavorIngredients returns the ingredients linked to the named flavor.
func (b *Backend) FlavorIngredients(ctx context.Context, flavorName string) ([]*types.Ingredient, error) {
	var rows []ingredientRow
	err := b.view(func(db *sqlx.DB) error {
		flavorID, err := idByName(ctx, db, types.FlavorsTable, "flavor_id", flavorName)
		if err != nil {
			return err
		}
		return db.SelectContext(ctx, &rows,
			`SELECT i.ingredient_id, i.name, i.stock_quantity, i.unit, i.created_at
			FROM ingredients i
			JOIN flavor_ingredients fi ON fi.ingredient_id = i.ingredient_id
			WHERE fi.flavor_id = ?
			ORDER BY i.rowid`, flavorID)
	})
	if err != nil {
		return nil, err
	}
	return hydrateIngredients(rows)
}

func (b *Backend) selectIngredients(ctx context.Context, query string, args ...any) ([]*types.Ingredient, error) {
	var rows []ingredientRow
	err := b.view(func(db *sqlx.DB) error {
		return db.SelectContext(ctx, &rows, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("fetching ingredients: %w", err)
	}
	return hydrateIngredients(rows)
}

func hydrateIngredients(rows []ingredientRow) ([]*types.Ingredient, error) {
	out := make([]*types.Ingredient, 0, len(rows))
	for _, r := range rows {
		ing, err := r.hydrate()
		if err != nil {
			return nil, fmt.Errorf("hydrating ingredient %s: %w", r.IngredientID, err)
		}
		out = append(out, ing)
	}
	return out, nil
}

// AddAllergen inserts an allergen.
func (b *Backend) AddAllergen(ctx context.Context, name string) (*types.Allergen, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, types.ErrInvalidName
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}
	al := &types.Allergen{AllergenID: id, Name: name, CreatedAt: now()}

	err = b.withTx(ctx, "add allergen", func(tx *sqlx.Tx) error {
		if err := checkNameFree(ctx, tx, types.AllergensTable, al.Name); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO allergens ("+allergenColumns+") VALUES (?, ?, ?)",
			al.AllergenID, al.Name, formatTime(al.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("inserting allergen %q: %w", al.Name, translateConstraint(err, types.ErrDuplicateName))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.logger.Debug("allergen added", zap.String("name", al.Name))
	return al, nil
}

// ListAllergens returns every allergen in insertion order.
func (b *Backend) ListAllergens(ctx context.Context) ([]*types.Allergen, error) {
	var rows []allergenRow
	err := b.view(func(db *sqlx.DB) error {
		return db.SelectContext(ctx, &rows, "SELECT "+allergenColumns+" FROM allergens ORDER BY rowid")
	})
	if err != nil {
		return nil, fmt.Errorf("fetching allergens: %w", err)
	}
	return hydrateAllergens(rows)
}

// FlavorAllergens returns the allergens linked to the named flavor.
func (b *Backend) FlavorAllergens(ctx context.Context, flavorName string) ([]*types.Allergen, error) {
	var rows []allergenRow
	err := b.view(func(db *sqlx.DB) error {
		flavorID, err := idByName(ctx, db, types.FlavorsTable, "flavor_id", flavorName)
		if err != nil {
			return err
		}
		return db.SelectContext(ctx, &rows,
			`SELECT a.allergen_id, a.name, a.created_at
			FROM allergens a
			JOIN flavor_allergens fa ON fa.allergen_id = a.allergen_id
			WHERE fa.flavor_id = ?
			ORDER BY a.rowid`, flavorID)
	})
	if err != nil {
		return nil, err
	}
	return hydrateAllergens(rows)
}

func hydrateAllergens(rows []allergenRow) ([]*types.Allergen, error) {
	out := make([]*types.Allergen, 0, len(rows))
	for _, r := range rows {
		al, err := r.hydrate()
		if err != nil {
			return nil, fmt.Errorf("hydrating allergen %s: %w", r.AllergenID, err)
		}
		out = append(out, al)
	}
	return out, nil
}
