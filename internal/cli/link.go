package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

func newLinkCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Associate ingredients and allergens with flavors",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:     "ingredient <flavor> <ingredient>",
			Short:   "Record that a flavor contains an ingredient",
			Example: `  parlor link ingredient "Chocolate Delight" "Heavy Cream"`,
			Args:    exactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore(cmd, func(ctx context.Context, store types.Store) error {
					if err := store.LinkIngredientToFlavor(ctx, args[0], args[1]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Linked ingredient %s to %s\n", args[1], args[0])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:     "allergen <flavor> <allergen>",
			Short:   "Record that a flavor contains an allergen",
			Example: `  parlor link allergen "Chocolate Delight" Dairy`,
			Args:    exactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore(cmd, func(ctx context.Context, store types.Store) error {
					if err := store.LinkAllergenToFlavor(ctx, args[0], args[1]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Linked allergen %s to %s\n", args[1], args[0])
					return nil
				})
			},
		},
	)
	return cmd
}
