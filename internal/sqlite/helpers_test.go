package sqlite

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

// setupBackend attaches a Backend to a fresh temp directory and detaches it
// when the test ends.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend(nil)
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return b
}

func mustAddFlavor(t *testing.T, b *Backend, name, price string, stock int, seasonal bool) *types.Flavor {
	t.Helper()
	f, err := b.AddFlavor(context.Background(), types.FlavorInput{
		Name:          name,
		Description:   name + " ice cream",
		IsSeasonal:    seasonal,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
	})
	require.NoError(t, err)
	return f
}

func mustAddIngredient(t *testing.T, b *Backend, name, stock, unit string) *types.Ingredient {
	t.Helper()
	ing, err := b.AddIngredient(context.Background(), name, decimal.RequireFromString(stock), unit)
	require.NoError(t, err)
	return ing
}

func mustAddAllergen(t *testing.T, b *Backend, name string) *types.Allergen {
	t.Helper()
	al, err := b.AddAllergen(context.Background(), name)
	require.NoError(t, err)
	return al
}

// countRows returns the number of rows in table.
func countRows(t *testing.T, b *Backend, table string) int {
	t.Helper()
	var n int
	require.NoError(t, b.db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

// stockOf returns the current stock of the named flavor.
func stockOf(t *testing.T, b *Backend, name string) int {
	t.Helper()
	f, err := b.GetFlavor(context.Background(), name)
	require.NoError(t, err)
	return f.StockQuantity
}
