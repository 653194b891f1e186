// This file implements catalog export to and import from JSONL files.
// The cart is never exported.
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

// catalogFile maps a catalog table to its JSONL file, its columns, and the
// check run on every imported record.
type catalogFile struct {
	file      string
	table     string
	columns   []string
	normalize func(rec map[string]any) error
}

// catalogColumns holds the exported columns and import check per table.
var catalogColumns = map[string]struct {
	columns   []string
	normalize func(rec map[string]any) error
}{
	types.FlavorsTable: {
		[]string{"flavor_id", "name", "description", "is_seasonal", "price", "stock_quantity", "created_at"},
		normalizeFlavor,
	},
	types.IngredientsTable: {
		[]string{"ingredient_id", "name", "stock_quantity", "unit", "created_at"},
		normalizeIngredient,
	},
	types.AllergensTable: {
		[]string{"allergen_id", "name", "created_at"},
		normalizeAllergen,
	},
	types.FlavorIngredientsTable: {
		[]string{"flavor_id", "ingredient_id"},
		normalizeIDs("flavor_id", "ingredient_id"),
	},
	types.FlavorAllergensTable: {
		[]string{"flavor_id", "allergen_id"},
		normalizeIDs("flavor_id", "allergen_id"),
	},
}

// catalogFiles lists the catalog files in types.CatalogTableNames order.
func catalogFiles() []catalogFile {
	files := make([]catalogFile, 0, len(types.CatalogTableNames))
	for _, table := range types.CatalogTableNames {
		c := catalogColumns[table]
		files = append(files, catalogFile{
			file:      table + ".jsonl",
			table:     table,
			columns:   c.columns,
			normalize: c.normalize,
		})
	}
	return files
}

// ExportCatalog writes every catalog table to dir as JSONL, one file per
// table, and returns the number of records written per table.
func (b *Backend) ExportCatalog(ctx context.Context, dir string) (map[string]int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	counts := make(map[string]int, len(types.CatalogTableNames))
	err := b.view(func(db *sqlx.DB) error {
		for _, cf := range catalogFiles() {
			records, err := dumpTable(ctx, db, cf)
			if err != nil {
				return err
			}
			if err := writeJSONL(filepath.Join(dir, cf.file), records); err != nil {
				return fmt.Errorf("writing %s: %w", cf.file, err)
			}
			counts[cf.table] = len(records)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.logger.Info("catalog exported", zap.String("dir", dir), zap.Any("counts", counts))
	return counts, nil
}

// dumpTable reads every row of cf.table as a column-name keyed map.
func dumpTable(ctx context.Context, db *sqlx.DB, cf catalogFile) ([]map[string]any, error) {
	rows, err := db.QueryxContext(ctx,
		"SELECT "+strings.Join(cf.columns, ", ")+" FROM "+cf.table+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", cf.table, err)
	}
	defer rows.Close()

	var records []map[string]any
	for rows.Next() {
		rec := make(map[string]any, len(cf.columns))
		if err := rows.MapScan(rec); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", cf.table, err)
		}
		for k, v := range rec {
			if raw, ok := v.([]byte); ok {
				rec[k] = string(raw)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", cf.table, err)
	}
	return records, nil
}

// ImportCatalog loads the JSONL files in dir into the catalog tables in one
// transaction. Missing files count as empty and lines that are not JSON
// objects are skipped. Fields not in the table's column list are ignored.
// A record that fails the same checks as AddFlavor and AddIngredient
// (ErrInvalidName, ErrInvalidPrice, ErrInvalidQuantity, ErrInvalidRecord)
// or any constraint failure, such as a name that already exists, rolls
// back the whole import.
func (b *Backend) ImportCatalog(ctx context.Context, dir string) (map[string]int, error) {
	counts := make(map[string]int, len(types.CatalogTableNames))
	err := b.withTx(ctx, "import catalog", func(tx *sqlx.Tx) error {
		for _, cf := range catalogFiles() {
			records, err := readJSONL(filepath.Join(dir, cf.file))
			if err != nil {
				return fmt.Errorf("reading %s: %w", cf.file, err)
			}
			if len(records) == 0 {
				continue
			}
			if err := insertRecords(ctx, tx, cf, records); err != nil {
				return fmt.Errorf("loading %s into %s: %w", cf.file, cf.table, err)
			}
			counts[cf.table] = len(records)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.logger.Info("catalog imported", zap.String("dir", dir), zap.Any("counts", counts))
	return counts, nil
}

// insertRecords checks and inserts records into cf.table using a prepared
// statement.
func insertRecords(ctx context.Context, tx *sqlx.Tx, cf catalogFile, records []map[string]any) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cf.columns)), ", ")
	stmt, err := tx.PreparexContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		cf.table, strings.Join(cf.columns, ", "), placeholders,
	))
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", cf.table, err)
	}
	defer stmt.Close()

	onDuplicate := types.ErrDuplicateName
	if cf.table == types.FlavorIngredientsTable || cf.table == types.FlavorAllergensTable {
		onDuplicate = types.ErrAlreadyLinked
	}

	for i, rec := range records {
		if err := cf.normalize(rec); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		args := make([]any, len(cf.columns))
		for j, col := range cf.columns {
			args[j] = rec[col]
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("record %d: %w", i+1, translateConstraint(err, onDuplicate))
		}
	}
	return nil
}
