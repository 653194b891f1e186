package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend(nil)
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	require.NoError(t, b.Attach(config))
	defer b.Detach()

	_, err := os.Stat(filepath.Join(tmpDir, DBFileName))
	assert.NoError(t, err, "parlor.db should be created")

	assert.ErrorIs(t, b.Attach(config), types.ErrAlreadyAttached)
}

func TestBackend_AttachCreatesDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "data")

	b := NewBackend(nil)
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
	defer b.Detach()

	info, err := os.Stat(dataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.FileExists(t, filepath.Join(dataDir, DBFileName))
}

func TestBackend_AttachEscapesDataDir(t *testing.T) {
	for _, name := range []string{"shop?v2", "a#b", "50% off", "with space"} {
		t.Run(name, func(t *testing.T) {
			parent := t.TempDir()
			dataDir := filepath.Join(parent, name)

			b := NewBackend(nil)
			require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
			defer b.Detach()

			mustAddFlavor(t, b, "Vanilla", "4.50", 10, false)

			assert.FileExists(t, filepath.Join(dataDir, DBFileName))
			entries, err := os.ReadDir(parent)
			require.NoError(t, err)
			require.Len(t, entries, 1, "nothing written beside the data dir")
			assert.Equal(t, name, entries[0].Name())
		})
	}
}

func TestDSN(t *testing.T) {
	got := dsn("/srv/shop?v2/parlor.db")
	assert.Contains(t, got, "file:///srv/shop%3Fv2/parlor.db?")
	assert.Contains(t, got, "_txlock=immediate")
}

func TestBackend_AttachRejectsInvalidConfig(t *testing.T) {
	b := NewBackend(nil)

	assert.ErrorIs(t, b.Attach(types.Config{DataDir: t.TempDir()}), types.ErrBackendEmpty)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: "postgres", DataDir: t.TempDir()}), types.ErrBackendUnknown)
}

func TestBackend_Detach(t *testing.T) {
	b := NewBackend(nil)
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))

	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "second Detach should not error")

	ctx := context.Background()
	_, err := b.SearchFlavors(ctx, types.SearchFilter{})
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = b.AddAllergen(ctx, "Nuts")
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, b.ClearCart(ctx), types.ErrStoreDetached)
}

func TestBackend_DataPersistsAcrossReattach(t *testing.T) {
	dataDir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}
	ctx := context.Background()

	b := NewBackend(nil)
	require.NoError(t, b.Attach(config))
	mustAddFlavor(t, b, "Vanilla", "4.50", 10, false)
	_, err := b.AddToCart(ctx, "Vanilla", 2)
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	b2 := NewBackend(nil)
	require.NoError(t, b2.Attach(config))
	defer b2.Detach()

	f, err := b2.GetFlavor(ctx, "Vanilla")
	require.NoError(t, err)
	assert.Equal(t, 8, f.StockQuantity)

	lines, err := b2.ViewCart(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "9.00", lines[0].LineTotal.StringFixed(2))
}

func TestBackend_ForeignKeysEnforced(t *testing.T) {
	b := setupBackend(t)

	_, err := b.db.Exec(
		"INSERT INTO flavor_allergens (flavor_id, allergen_id) VALUES (?, ?)",
		"no-such-flavor", "no-such-allergen",
	)
	require.Error(t, err)
	assert.ErrorIs(t, translateConstraint(err, types.ErrAlreadyLinked), types.ErrConstraint)
	assert.Equal(t, 0, countRows(t, b, types.FlavorAllergensTable))
}

func TestBackend_SchemaRejectsBadFlavorColumns(t *testing.T) {
	b := setupBackend(t)

	tests := []struct {
		name  string
		price any
		stock any
	}{
		{"non-numeric stock", "4.50", "lots"},
		{"negative stock", "4.50", -1},
		{"zero price", "0", 5},
		{"negative price", "-3", 5},
		{"non-numeric price", "free", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.db.Exec(
				"INSERT INTO flavors ("+flavorColumns+") VALUES (?, ?, '', 0, ?, ?, ?)",
				"id-"+tt.name, tt.name, tt.price, tt.stock, "2026-01-02T03:04:05Z",
			)
			require.Error(t, err)
			assert.ErrorIs(t, translateConstraint(err, types.ErrDuplicateName), types.ErrConstraint)
		})
	}
	assert.Equal(t, 0, countRows(t, b, types.FlavorsTable))
}
