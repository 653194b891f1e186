package sqlite

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

func TestNewBackend_ImplementsStore(t *testing.T) {
	store := NewBackend(nil)
	require.NoError(t, store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer store.Detach()

	ctx := context.Background()
	_, err := store.AddFlavor(ctx, types.FlavorInput{
		Name:          "Vanilla",
		Price:         decimal.RequireFromString("4.50"),
		StockQuantity: 10,
	})
	require.NoError(t, err)

	_, err = store.AddToCart(ctx, "Vanilla", 3)
	require.NoError(t, err)

	lines, err := store.ViewCart(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "13.50", lines[0].LineTotal.StringFixed(2))
}
