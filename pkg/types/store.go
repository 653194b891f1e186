package types

import (
	"context"

	"github.com/shopspring/decimal"
)

// Store is the catalog and cart storage handle. Callers attach it to a
// backend, run operations, and detach when done. Every mutating operation
// runs in exactly one transaction; on failure nothing it touched persists.
type Store interface {
	// Attach connects the Store to the backend described by config.
	// Creates the DataDir and the schema if absent. Returns
	// ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	// After Detach, operations return ErrStoreDetached.
	Detach() error

	Catalog
	Cart

	// Seed creates the demo catalog, skipping rows that already exist.
	Seed(ctx context.Context) error

	// ExportCatalog writes the catalog tables to dir as JSONL files and
	// returns the record count per table. The cart is not exported.
	ExportCatalog(ctx context.Context, dir string) (map[string]int, error)

	// ImportCatalog loads JSONL files written by ExportCatalog in one
	// transaction.
	ImportCatalog(ctx context.Context, dir string) (map[string]int, error)
}

// Catalog covers flavors, ingredients, allergens and their associations.
type Catalog interface {
	// AddFlavor creates a flavor. Returns ErrDuplicateName if the name is
	// taken; the existing row is left untouched.
	AddFlavor(ctx context.Context, in FlavorInput) (*Flavor, error)

	// GetFlavor returns the flavor with the given name or ErrNotFound.
	GetFlavor(ctx context.Context, name string) (*Flavor, error)

	// SetFlavorPrice replaces the unit price of a flavor.
	SetFlavorPrice(ctx context.Context, name string, price decimal.Decimal) error

	// SearchFlavors returns flavors matching every supplied filter, in
	// insertion order.
	SearchFlavors(ctx context.Context, filter SearchFilter) ([]*Flavor, error)

	AddIngredient(ctx context.Context, name string, stock decimal.Decimal, unit string) (*Ingredient, error)
	ListIngredients(ctx context.Context) ([]*Ingredient, error)

	AddAllergen(ctx context.Context, name string) (*Allergen, error)
	ListAllergens(ctx context.Context) ([]*Allergen, error)

	// LinkIngredientToFlavor associates an ingredient with a flavor by name.
	// Returns ErrNotFound if either name is unknown and ErrAlreadyLinked if
	// the pair exists.
	LinkIngredientToFlavor(ctx context.Context, flavorName, ingredientName string) error

	// LinkAllergenToFlavor associates an allergen with a flavor by name.
	LinkAllergenToFlavor(ctx context.Context, flavorName, allergenName string) error

	FlavorIngredients(ctx context.Context, flavorName string) ([]*Ingredient, error)
	FlavorAllergens(ctx context.Context, flavorName string) ([]*Allergen, error)
}

// Cart covers stock reservation and the pending purchase lines.
type Cart interface {
	// AddToCart reserves quantity units of the named flavor and records a
	// cart item. Returns ErrNotFound for an unknown flavor and
	// ErrInsufficientStock when stock is short; neither changes state.
	AddToCart(ctx context.Context, flavorName string, quantity int) (*CartItem, error)

	// ViewCart returns one line per cart item priced at the flavor's
	// current price.
	ViewCart(ctx context.Context) ([]CartLine, error)

	// ClearCart deletes every cart item. Reserved stock is not returned.
	ClearCart(ctx context.Context) error
}
