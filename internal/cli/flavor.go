package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

func newFlavorCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flavor",
		Short: "Manage flavors",
	}
	cmd.AddCommand(
		newFlavorAddCmd(a),
		newFlavorGetCmd(a),
		newFlavorListCmd(a),
		newFlavorPriceCmd(a),
	)
	return cmd
}

func newFlavorAddCmd(a *app) *cobra.Command {
	var (
		name        string
		description string
		seasonal    bool
		price       string
		stock       int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a flavor to the catalog",
		Example: `  parlor flavor add --name Vanilla --price 4.50 --stock 10
  parlor flavor add --name "Pumpkin Spice" --price 5.25 --seasonal`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePrice(price)
			if err != nil {
				return err
			}
			in := types.FlavorInput{
				Name:          name,
				Description:   description,
				IsSeasonal:    seasonal,
				Price:         p,
				StockQuantity: stock,
			}
			return a.withStore(cmd, func(ctx context.Context, store types.Store) error {
				f, err := store.AddFlavor(ctx, in)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd, f)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added flavor: %s\n", f.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "flavor name (required)")
	cmd.Flags().StringVar(&description, "description", "", "flavor description")
	cmd.Flags().BoolVar(&seasonal, "seasonal", false, "mark the flavor as seasonal")
	cmd.Flags().StringVar(&price, "price", "", "unit price, e.g. 4.50 (required)")
	cmd.Flags().IntVar(&stock, "stock", 0, "scoops in stock")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

// flavorDetail is a flavor with its associations, as shown by flavor get.
type flavorDetail struct {
	*types.Flavor
	Ingredients []*types.Ingredient `json:"ingredients"`
	Allergens   []*types.Allergen   `json:"allergens"`
}

func newFlavorGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show a flavor with its ingredients and allergens",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, store types.Store) error {
				f, err := store.GetFlavor(ctx, args[0])
				if err != nil {
					return err
				}
				ings, err := store.FlavorIngredients(ctx, f.Name)
				if err != nil {
					return err
				}
				als, err := store.FlavorAllergens(ctx, f.Name)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd, flavorDetail{Flavor: f, Ingredients: ings, Allergens: als})
				}

				w := cmd.OutOrStdout()
				writeFlavorLine(w, f)
				if f.Description != "" {
					fmt.Fprintf(w, "  %s\n", f.Description)
				}
				fmt.Fprintf(w, "  Stock: %d\n", f.StockQuantity)
				for _, ing := range ings {
					fmt.Fprintf(w, "  Ingredient: %s\n", ing.Name)
				}
				for _, al := range als {
					fmt.Fprintf(w, "  Allergen: %s\n", al.Name)
				}
				return nil
			})
		},
	}
}

func newFlavorListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every flavor",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.searchAndPrint(cmd, types.SearchFilter{})
		},
	}
}

func newFlavorPriceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "price <name> <price>",
		Short: "Change a flavor's unit price",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePrice(args[1])
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(ctx context.Context, store types.Store) error {
				if err := store.SetFlavorPrice(ctx, args[0], p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Price of %s set to $%s\n", args[0], p.StringFixed(2))
				return nil
			})
		},
	}
}
