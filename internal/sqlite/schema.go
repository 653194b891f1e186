// Package sqlite implements the SQLite backend for the parlor store.
package sqlite

// Schema DDL for all tables. Every statement is idempotent so Attach can run
// it against an existing database.
const (
	createFlavors = `CREATE TABLE IF NOT EXISTS flavors (
    flavor_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    is_seasonal INTEGER NOT NULL DEFAULT 0,
    price TEXT NOT NULL CHECK (CAST(price AS REAL) > 0),
    stock_quantity INTEGER NOT NULL DEFAULT 0
        CHECK (typeof(stock_quantity) = 'integer' AND stock_quantity >= 0),
    created_at TEXT NOT NULL
);`

	createIngredients = `CREATE TABLE IF NOT EXISTS ingredients (
    ingredient_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    stock_quantity TEXT NOT NULL DEFAULT '0',
    unit TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);`

	createAllergens = `CREATE TABLE IF NOT EXISTS allergens (
    allergen_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    created_at TEXT NOT NULL
);`

	createFlavorIngredients = `CREATE TABLE IF NOT EXISTS flavor_ingredients (
    flavor_id TEXT NOT NULL,
    ingredient_id TEXT NOT NULL,
    PRIMARY KEY (flavor_id, ingredient_id),
    FOREIGN KEY (flavor_id) REFERENCES flavors(flavor_id),
    FOREIGN KEY (ingredient_id) REFERENCES ingredients(ingredient_id)
);`

	createFlavorAllergens = `CREATE TABLE IF NOT EXISTS flavor_allergens (
    flavor_id TEXT NOT NULL,
    allergen_id TEXT NOT NULL,
    PRIMARY KEY (flavor_id, allergen_id),
    FOREIGN KEY (flavor_id) REFERENCES flavors(flavor_id),
    FOREIGN KEY (allergen_id) REFERENCES allergens(allergen_id)
);`

	createCart = `CREATE TABLE IF NOT EXISTS cart (
    cart_item_id TEXT PRIMARY KEY,
    flavor_id TEXT NOT NULL,
    quantity INTEGER NOT NULL DEFAULT 1
        CHECK (typeof(quantity) = 'integer' AND quantity >= 1),
    created_at TEXT NOT NULL,
    FOREIGN KEY (flavor_id) REFERENCES flavors(flavor_id)
);`
)

// Index DDL for common queries.
const (
	idxFlavorsSeasonal         = `CREATE INDEX IF NOT EXISTS idx_flavors_seasonal ON flavors(is_seasonal);`
	idxFlavorIngredientsIngred = `CREATE INDEX IF NOT EXISTS idx_flavor_ingredients_ingredient ON flavor_ingredients(ingredient_id);`
	idxFlavorAllergensAllergen = `CREATE INDEX IF NOT EXISTS idx_flavor_allergens_allergen ON flavor_allergens(allergen_id);`
	idxCartFlavor              = `CREATE INDEX IF NOT EXISTS idx_cart_flavor ON cart(flavor_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createFlavors,
	createIngredients,
	createAllergens,
	createFlavorIngredients,
	createFlavorAllergens,
	createCart,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxFlavorsSeasonal,
	idxFlavorIngredientsIngred,
	idxFlavorAllergensAllergen,
	idxCartFlavor,
}
