// This file implements flavor creation, lookup, repricing and search.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

const flavorColumns = "flavor_id, name, description, is_seasonal, price, stock_quantity, created_at"

// flavorRow is the SQLite shape of a flavor.
type flavorRow struct {
	FlavorID      string          `db:"flavor_id"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	IsSeasonal    bool            `db:"is_seasonal"`
	Price         decimal.Decimal `db:"price"`
	StockQuantity int             `db:"stock_quantity"`
	CreatedAt     string          `db:"created_at"`
}

// hydrate converts the row into a *types.Flavor.
func (r flavorRow) hydrate() (*types.Flavor, error) {
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &types.Flavor{
		FlavorID:      r.FlavorID,
		Name:          r.Name,
		Description:   r.Description,
		IsSeasonal:    r.IsSeasonal,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		CreatedAt:     createdAt,
	}, nil
}

// AddFlavor validates in and inserts a new flavor. A taken name returns
// ErrDuplicateName and leaves the existing flavor untouched.
func (b *Backend) AddFlavor(ctx context.Context, in types.FlavorInput) (*types.Flavor, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}
	flavor := &types.Flavor{
		FlavorID:      id,
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		IsSeasonal:    in.IsSeasonal,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		CreatedAt:     now(),
	}

	err = b.withTx(ctx, "add flavor", func(tx *sqlx.Tx) error {
		if err := checkNameFree(ctx, tx, types.FlavorsTable, flavor.Name); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO flavors ("+flavorColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
			flavor.FlavorID, flavor.Name, flavor.Description, flavor.IsSeasonal,
			flavor.Price.String(), flavor.StockQuantity, formatTime(flavor.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("inserting flavor %q: %w", flavor.Name, translateConstraint(err, types.ErrDuplicateName))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.logger.Debug("flavor added", zap.String("name", flavor.Name), zap.String("flavor_id", flavor.FlavorID))
	return flavor, nil
}

// GetFlavor returns the flavor with the given name.
func (b *Backend) GetFlavor(ctx context.Context, name string) (*types.Flavor, error) {
	var flavor *types.Flavor
	err := b.view(func(db *sqlx.DB) error {
		var err error
		flavor, err = flavorByName(ctx, db, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return flavor, nil
}

// SetFlavorPrice replaces the price of the named flavor. Cart lines pick up
// the new price on the next ViewCart.
func (b *Backend) SetFlavorPrice(ctx context.Context, name string, price decimal.Decimal) error {
	if err := types.ValidatePrice(price); err != nil {
		return err
	}
	return b.withTx(ctx, "set flavor price", func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, "UPDATE flavors SET price = ? WHERE name = ?", price.String(), name)
		if err != nil {
			return fmt.Errorf("updating price of %q: %w", name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("reading affected rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("flavor %q: %w", name, types.ErrNotFound)
		}
		return nil
	})
}

// SearchFlavors returns the flavors matching every supplied filter in
// insertion order. Name matches as a case-insensitive substring.
func (b *Backend) SearchFlavors(ctx context.Context, filter types.SearchFilter) ([]*types.Flavor, error) {
	query := "SELECT " + flavorColumns + " FROM flavors"
	var conditions []string
	var args []any

	if filter.Name != "" {
		conditions = append(conditions, "instr(lower(name), lower(?)) > 0")
		args = append(args, filter.Name)
	}
	if filter.Seasonal != nil {
		conditions = append(conditions, "is_seasonal = ?")
		args = append(args, *filter.Seasonal)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY rowid"

	var rows []flavorRow
	err := b.view(func(db *sqlx.DB) error {
		return db.SelectContext(ctx, &rows, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("searching flavors: %w", err)
	}

	flavors := make([]*types.Flavor, 0, len(rows))
	for _, r := range rows {
		f, err := r.hydrate()
		if err != nil {
			return nil, fmt.Errorf("hydrating flavor %s: %w", r.FlavorID, err)
		}
		flavors = append(flavors, f)
	}
	return flavors, nil
}

// flavorByName loads a flavor through q, which may be the database or an
// open transaction. Returns ErrNotFound when no flavor has that name.
func flavorByName(ctx context.Context, q sqlx.QueryerContext, name string) (*types.Flavor, error) {
	var r flavorRow
	err := sqlx.GetContext(ctx, q, &r, "SELECT "+flavorColumns+" FROM flavors WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("flavor %q: %w", name, types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting flavor %q: %w", name, err)
	}
	return r.hydrate()
}

// checkNameFree returns ErrDuplicateName if table already holds a row with
// the given name.
func checkNameFree(ctx context.Context, tx *sqlx.Tx, table, name string) error {
	var one int
	err := tx.QueryRowxContext(ctx, "SELECT 1 FROM "+table+" WHERE name = ?", name).Scan(&one)
	if err == nil {
		return fmt.Errorf("%s %q: %w", strings.TrimSuffix(table, "s"), name, types.ErrDuplicateName)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking %s name uniqueness: %w", table, err)
	}
	return nil
}

// idByName returns the primary key of the row in table with the given name.
func idByName(ctx context.Context, q sqlx.QueryerContext, table, idColumn, name string) (string, error) {
	var id string
	err := sqlx.GetContext(ctx, q, &id, "SELECT "+idColumn+" FROM "+table+" WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s %q: %w", strings.TrimSuffix(table, "s"), name, types.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("looking up %s %q: %w", table, name, err)
	}
	return id, nil
}
