package sqlite

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

func TestAddFlavor(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend)
	}{
		{
			name: "added flavor is found by name search with submitted attributes",
			check: func(t *testing.T, b *Backend) {
				in := types.FlavorInput{
					Name:          "Pistachio Dream",
					Description:   "Roasted pistachio",
					IsSeasonal:    true,
					Price:         decimal.RequireFromString("6.25"),
					StockQuantity: 12,
				}
				created, err := b.AddFlavor(ctx, in)
				require.NoError(t, err)
				assert.NotEmpty(t, created.FlavorID)

				got, err := b.SearchFlavors(ctx, types.SearchFilter{Name: "Pistachio Dream"})
				require.NoError(t, err)
				require.Len(t, got, 1)
				assert.Equal(t, created.FlavorID, got[0].FlavorID)
				assert.Equal(t, in.Name, got[0].Name)
				assert.Equal(t, in.Description, got[0].Description)
				assert.True(t, got[0].IsSeasonal)
				assert.True(t, in.Price.Equal(got[0].Price), "price %s", got[0].Price)
				assert.Equal(t, 12, got[0].StockQuantity)
				assert.True(t, created.CreatedAt.Equal(got[0].CreatedAt))
			},
		},
		{
			name: "duplicate name fails and leaves the existing row untouched",
			check: func(t *testing.T, b *Backend) {
				mustAddFlavor(t, b, "Vanilla", "4.50", 10, false)

				_, err := b.AddFlavor(ctx, types.FlavorInput{
					Name:          "Vanilla",
					Description:   "impostor",
					IsSeasonal:    true,
					Price:         decimal.RequireFromString("99"),
					StockQuantity: 1,
				})
				assert.ErrorIs(t, err, types.ErrDuplicateName)

				f, err := b.GetFlavor(ctx, "Vanilla")
				require.NoError(t, err)
				assert.Equal(t, "Vanilla ice cream", f.Description)
				assert.False(t, f.IsSeasonal)
				assert.Equal(t, "4.50", f.Price.StringFixed(2))
				assert.Equal(t, 10, f.StockQuantity)
				assert.Equal(t, 1, countRows(t, b, types.FlavorsTable))
			},
		},
		{
			name: "invalid input writes nothing",
			check: func(t *testing.T, b *Backend) {
				_, err := b.AddFlavor(ctx, types.FlavorInput{Name: "", Price: decimal.RequireFromString("1")})
				assert.ErrorIs(t, err, types.ErrInvalidName)

				_, err = b.AddFlavor(ctx, types.FlavorInput{Name: "Free", Price: decimal.Zero})
				assert.ErrorIs(t, err, types.ErrInvalidPrice)

				_, err = b.AddFlavor(ctx, types.FlavorInput{Name: "Owed", Price: decimal.RequireFromString("1"), StockQuantity: -3})
				assert.ErrorIs(t, err, types.ErrInvalidQuantity)

				assert.Equal(t, 0, countRows(t, b, types.FlavorsTable))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, setupBackend(t))
		})
	}
}

func TestGetFlavor_NotFound(t *testing.T) {
	b := setupBackend(t)

	_, err := b.GetFlavor(context.Background(), "Nope")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSetFlavorPrice(t *testing.T) {
	b := setupBackend(t)
	ctx := context.Background()
	mustAddFlavor(t, b, "Vanilla", "4.50", 10, false)

	require.NoError(t, b.SetFlavorPrice(ctx, "Vanilla", decimal.RequireFromString("5.00")))
	f, err := b.GetFlavor(ctx, "Vanilla")
	require.NoError(t, err)
	assert.Equal(t, "5.00", f.Price.StringFixed(2))

	assert.ErrorIs(t, b.SetFlavorPrice(ctx, "Nope", decimal.RequireFromString("1")), types.ErrNotFound)
	assert.ErrorIs(t, b.SetFlavorPrice(ctx, "Vanilla", decimal.RequireFromString("-1")), types.ErrInvalidPrice)
}

func TestSearchFlavors(t *testing.T) {
	b := setupBackend(t)
	ctx := context.Background()

	mustAddFlavor(t, b, "Vanilla", "4.50", 10, false)
	mustAddFlavor(t, b, "Chocolate Delight", "5.99", 20, true)
	mustAddFlavor(t, b, "Pumpkin Spice", "6.00", 5, true)
	mustAddFlavor(t, b, "Dark Chocolate", "5.50", 8, false)

	yes, no := true, false

	tests := []struct {
		name   string
		filter types.SearchFilter
		want   []string
	}{
		{
			name:   "no filter returns all in insertion order",
			filter: types.SearchFilter{},
			want:   []string{"Vanilla", "Chocolate Delight", "Pumpkin Spice", "Dark Chocolate"},
		},
		{
			name:   "name matches case-insensitive substring",
			filter: types.SearchFilter{Name: "CHOCO"},
			want:   []string{"Chocolate Delight", "Dark Chocolate"},
		},
		{
			name:   "seasonal only",
			filter: types.SearchFilter{Seasonal: &yes},
			want:   []string{"Chocolate Delight", "Pumpkin Spice"},
		},
		{
			name:   "regular only",
			filter: types.SearchFilter{Seasonal: &no},
			want:   []string{"Vanilla", "Dark Chocolate"},
		},
		{
			name:   "filters combine with AND",
			filter: types.SearchFilter{Name: "chocolate", Seasonal: &no},
			want:   []string{"Dark Chocolate"},
		},
		{
			name:   "no match returns empty",
			filter: types.SearchFilter{Name: "mint"},
			want:   []string{},
		},
		{
			name:   "like wildcards are matched literally",
			filter: types.SearchFilter{Name: "%"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.SearchFlavors(ctx, tt.filter)
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, f := range got {
				names = append(names, f.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
