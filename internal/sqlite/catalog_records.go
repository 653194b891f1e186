// This file checks imported catalog records and rewrites their fields into
// the column types the store writes itself.
package sqlite

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

// normalizeFlavor applies the AddFlavor checks to a flavors record.
func normalizeFlavor(rec map[string]any) error {
	id, err := recordID(rec, "flavor_id")
	if err != nil {
		return err
	}
	name, err := recordString(rec, "name")
	if err != nil {
		return err
	}
	description, err := recordString(rec, "description")
	if err != nil {
		return err
	}
	seasonal, err := recordBool(rec, "is_seasonal")
	if err != nil {
		return err
	}
	price, err := recordDecimal(rec, "price")
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidPrice, err)
	}
	stock, err := recordInt(rec, "stock_quantity")
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidQuantity, err)
	}
	createdAt, err := recordTime(rec)
	if err != nil {
		return err
	}

	in := types.FlavorInput{
		Name:          name,
		Description:   description,
		IsSeasonal:    seasonal,
		Price:         price,
		StockQuantity: stock,
	}
	if err := in.Validate(); err != nil {
		return fmt.Errorf("flavor %q: %w", name, err)
	}

	rec["flavor_id"] = id
	rec["name"] = strings.TrimSpace(name)
	rec["description"] = description
	rec["is_seasonal"] = seasonal
	rec["price"] = price.String()
	rec["stock_quantity"] = int64(stock)
	rec["created_at"] = createdAt
	return nil
}

// normalizeIngredient applies the AddIngredient checks to an ingredients
// record.
func normalizeIngredient(rec map[string]any) error {
	id, err := recordID(rec, "ingredient_id")
	if err != nil {
		return err
	}
	name, err := recordName(rec)
	if err != nil {
		return err
	}
	unit, err := recordString(rec, "unit")
	if err != nil {
		return err
	}
	stock := decimal.Zero
	if _, ok := rec["stock_quantity"]; ok {
		if stock, err = recordDecimal(rec, "stock_quantity"); err != nil {
			return fmt.Errorf("%w: %v", types.ErrInvalidQuantity, err)
		}
	}
	if stock.IsNegative() {
		return fmt.Errorf("ingredient %q stock %s: %w", name, stock, types.ErrInvalidQuantity)
	}
	createdAt, err := recordTime(rec)
	if err != nil {
		return err
	}

	rec["ingredient_id"] = id
	rec["name"] = name
	rec["stock_quantity"] = stock.String()
	rec["unit"] = unit
	rec["created_at"] = createdAt
	return nil
}

// normalizeAllergen checks an allergens record.
func normalizeAllergen(rec map[string]any) error {
	id, err := recordID(rec, "allergen_id")
	if err != nil {
		return err
	}
	name, err := recordName(rec)
	if err != nil {
		return err
	}
	createdAt, err := recordTime(rec)
	if err != nil {
		return err
	}
	rec["allergen_id"] = id
	rec["name"] = name
	rec["created_at"] = createdAt
	return nil
}

// normalizeIDs returns a check requiring every column to hold a non-empty
// string ID. Whether the IDs exist is left to the foreign keys.
func normalizeIDs(columns ...string) func(rec map[string]any) error {
	return func(rec map[string]any) error {
		for _, col := range columns {
			id, err := recordID(rec, col)
			if err != nil {
				return err
			}
			rec[col] = id
		}
		return nil
	}
}

// recordString returns a string field; absent means "".
func recordString(rec map[string]any, col string) (string, error) {
	switch v := rec[col].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("%s: want string, got %T: %w", col, v, types.ErrInvalidRecord)
	}
}

// recordName returns the trimmed, required name field.
func recordName(rec map[string]any) (string, error) {
	name, err := recordString(rec, "name")
	if err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", types.ErrInvalidName
	}
	return name, nil
}

// recordID returns a required, non-empty string key.
func recordID(rec map[string]any, col string) (string, error) {
	id, err := recordString(rec, col)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("%s missing: %w", col, types.ErrInvalidRecord)
	}
	return id, nil
}

// recordBool accepts a JSON boolean or the integers 0 and 1; absent means
// false.
func recordBool(rec map[string]any, col string) (bool, error) {
	switch v := rec[col].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case json.Number:
		switch v.String() {
		case "0":
			return false, nil
		case "1":
			return true, nil
		}
	}
	return false, fmt.Errorf("%s: want boolean, got %v: %w", col, rec[col], types.ErrInvalidRecord)
}

// recordDecimal accepts a JSON number or a numeric string.
func recordDecimal(rec map[string]any, col string) (decimal.Decimal, error) {
	var raw string
	switch v := rec[col].(type) {
	case json.Number:
		raw = v.String()
	case string:
		raw = v
	default:
		return decimal.Zero, fmt.Errorf("%s: want number, got %v", col, rec[col])
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %q is not a number", col, raw)
	}
	return d, nil
}

// recordInt accepts a JSON integer or an integer string; absent means 0.
func recordInt(rec map[string]any, col string) (int, error) {
	var raw string
	switch v := rec[col].(type) {
	case nil:
		return 0, nil
	case json.Number:
		raw = v.String()
	case string:
		raw = v
	default:
		return 0, fmt.Errorf("%s: want integer, got %v", col, rec[col])
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", col, raw)
	}
	return n, nil
}

// recordTime returns created_at in the stored RFC3339 form.
func recordTime(rec map[string]any) (string, error) {
	raw, err := recordString(rec, "created_at")
	if err != nil {
		return "", err
	}
	t, err := parseTime(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrInvalidRecord, err)
	}
	return formatTime(t.UTC()), nil
}
