package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

func newIngredientCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingredient",
		Short: "Manage ingredients",
	}
	cmd.AddCommand(newIngredientAddCmd(a), newIngredientListCmd(a))
	return cmd
}

func newIngredientAddCmd(a *app) *cobra.Command {
	var (
		name  string
		stock string
		unit  string
	)
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add an ingredient",
		Example: `  parlor ingredient add --name "Heavy Cream" --stock 100 --unit liters`,
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := decimal.NewFromString(stock)
			if err != nil {
				return userErrorf("invalid stock %q: %w", stock, types.ErrInvalidQuantity)
			}
			return a.withStore(cmd, func(ctx context.Context, store types.Store) error {
				ing, err := store.AddIngredient(ctx, name, qty, unit)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd, ing)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added ingredient: %s\n", ing.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "ingredient name (required)")
	cmd.Flags().StringVar(&stock, "stock", "0", "quantity in stock")
	cmd.Flags().StringVar(&unit, "unit", "", "unit of the stock quantity, e.g. kg")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newIngredientListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List ingredients",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, store types.Store) error {
				ings, err := store.ListIngredients(ctx)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd, ings)
				}
				for _, ing := range ings {
					fmt.Fprintf(cmd.OutOrStdout(), "%s - %s %s\n", ing.Name, ing.StockQuantity.String(), ing.Unit)
				}
				return nil
			})
		},
	}
}
