package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

// printJSON writes v to stdout as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// parsePrice parses a unit price argument.
func parsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, userErrorf("invalid price %q: %w", s, types.ErrInvalidPrice)
	}
	return price, nil
}

// seasonLabel renders the seasonal flag for humans.
func seasonLabel(f *types.Flavor) string {
	if f.IsSeasonal {
		return "Seasonal"
	}
	return "Regular"
}

// writeFlavorLine prints one flavor as "Name - $price (Seasonal)".
func writeFlavorLine(w io.Writer, f *types.Flavor) {
	fmt.Fprintf(w, "%s - $%s (%s)\n", f.Name, f.Price.StringFixed(2), seasonLabel(f))
}

// writeCartLines prints the cart and its total.
func writeCartLines(w io.Writer, lines []types.CartLine) {
	if len(lines) == 0 {
		fmt.Fprintln(w, "Cart is empty.")
		return
	}
	for _, l := range lines {
		fmt.Fprintf(w, "%s: %d x Total: $%s\n", l.FlavorName, l.Quantity, l.LineTotal.StringFixed(2))
	}
	fmt.Fprintf(w, "Cart total: $%s\n", types.CartTotal(lines).StringFixed(2))
}
