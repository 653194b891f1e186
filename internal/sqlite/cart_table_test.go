package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

func TestAddToCart_VanillaScenario(t *testing.T) {
	b := setupBackend(t)
	ctx := context.Background()
	mustAddFlavor(t, b, "Vanilla", "4.50", 10, false)

	item, err := b.AddToCart(ctx, "Vanilla", 3)
	require.NoError(t, err)
	assert.NotEmpty(t, item.CartItemID)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 7, stockOf(t, b, "Vanilla"))

	lines, err := b.ViewCart(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Vanilla", lines[0].FlavorName)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "13.50", lines[0].LineTotal.StringFixed(2))

	_, err = b.AddToCart(ctx, "Vanilla", 8)
	assert.ErrorIs(t, err, types.ErrInsufficientStock)
	assert.Equal(t, 7, stockOf(t, b, "Vanilla"))
	assert.Equal(t, 1, countRows(t, b, types.CartTable))
}

func TestAddToCart(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend)
	}{
		{
			name: "two adds leave two rows and both quantities deducted",
			check: func(t *testing.T, b *Backend) {
				_, err := b.AddToCart(ctx, "Mint", 2)
				require.NoError(t, err)
				_, err = b.AddToCart(ctx, "Mint", 3)
				require.NoError(t, err)
				assert.Equal(t, 0, stockOf(t, b, "Mint"))
				assert.Equal(t, 2, countRows(t, b, types.CartTable))
			},
		},
		{
			name: "exact stock is allowed",
			check: func(t *testing.T, b *Backend) {
				_, err := b.AddToCart(ctx, "Mint", 5)
				require.NoError(t, err)
				assert.Equal(t, 0, stockOf(t, b, "Mint"))
			},
		},
		{
			name: "unknown flavor returns ErrNotFound",
			check: func(t *testing.T, b *Backend) {
				_, err := b.AddToCart(ctx, "Pistachio", 1)
				assert.ErrorIs(t, err, types.ErrNotFound)
				assert.Equal(t, 0, countRows(t, b, types.CartTable))
			},
		},
		{
			name: "zero or negative quantity returns ErrInvalidQuantity",
			check: func(t *testing.T, b *Backend) {
				_, err := b.AddToCart(ctx, "Mint", 0)
				assert.ErrorIs(t, err, types.ErrInvalidQuantity)
				_, err = b.AddToCart(ctx, "Mint", -2)
				assert.ErrorIs(t, err, types.ErrInvalidQuantity)
				assert.Equal(t, 5, stockOf(t, b, "Mint"))
			},
		},
		{
			name: "failed insert rolls back the stock decrement",
			check: func(t *testing.T, b *Backend) {
				_, err := b.db.Exec(`CREATE TRIGGER fail_cart BEFORE INSERT ON cart
					BEGIN SELECT RAISE(ABORT, 'cart insert rejected'); END;`)
				require.NoError(t, err)

				_, err = b.AddToCart(ctx, "Mint", 2)
				require.Error(t, err)
				assert.Equal(t, 5, stockOf(t, b, "Mint"))
				assert.Equal(t, 0, countRows(t, b, types.CartTable))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBackend(t)
			mustAddFlavor(t, b, "Mint", "3.25", 5, false)
			tt.check(t, b)
		})
	}
}

func TestAddToCart_ConcurrentReservations(t *testing.T) {
	b := setupBackend(t)
	ctx := context.Background()
	mustAddFlavor(t, b, "Mango", "4.00", 5, true)

	const workers = 12
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		other     []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := b.AddToCart(ctx, "Mango", 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case !errors.Is(err, types.ErrInsufficientStock):
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, other)
	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 0, stockOf(t, b, "Mango"))
	assert.Equal(t, 5, countRows(t, b, types.CartTable))
}

func TestViewCart_UsesCurrentPrice(t *testing.T) {
	b := setupBackend(t)
	ctx := context.Background()
	mustAddFlavor(t, b, "Vanilla", "4.50", 10, false)
	mustAddFlavor(t, b, "Strawberry", "3.99", 10, true)

	_, err := b.AddToCart(ctx, "Strawberry", 2)
	require.NoError(t, err)
	_, err = b.AddToCart(ctx, "Vanilla", 1)
	require.NoError(t, err)

	require.NoError(t, b.SetFlavorPrice(ctx, "Vanilla", decimal.RequireFromString("5.00")))

	lines, err := b.ViewCart(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Strawberry", lines[0].FlavorName)
	assert.Equal(t, "7.98", lines[0].LineTotal.StringFixed(2))
	assert.Equal(t, "Vanilla", lines[1].FlavorName)
	assert.Equal(t, "5.00", lines[1].LineTotal.StringFixed(2))
	assert.Equal(t, "12.98", types.CartTotal(lines).StringFixed(2))
}

func TestViewCart_Empty(t *testing.T) {
	b := setupBackend(t)

	lines, err := b.ViewCart(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestClearCart(t *testing.T) {
	b := setupBackend(t)
	ctx := context.Background()
	mustAddFlavor(t, b, "Vanilla", "4.50", 10, false)

	_, err := b.AddToCart(ctx, "Vanilla", 4)
	require.NoError(t, err)
	_, err = b.AddToCart(ctx, "Vanilla", 1)
	require.NoError(t, err)

	require.NoError(t, b.ClearCart(ctx))

	lines, err := b.ViewCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Equal(t, 5, stockOf(t, b, "Vanilla"), "clearing does not refund stock")

	require.NoError(t, b.ClearCart(ctx), "clearing an empty cart succeeds")
}
