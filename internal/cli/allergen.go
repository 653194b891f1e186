package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

func newAllergenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allergen",
		Short: "Manage allergens",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add an allergen",
			Args:  exactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore(cmd, func(ctx context.Context, store types.Store) error {
					al, err := store.AddAllergen(ctx, args[0])
					if err != nil {
						return err
					}
					if a.flags.jsonMode {
						return printJSON(cmd, al)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Added allergen: %s\n", al.Name)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List allergens",
			Args:  exactArgs(0),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore(cmd, func(ctx context.Context, store types.Store) error {
					als, err := store.ListAllergens(ctx)
					if err != nil {
						return err
					}
					if a.flags.jsonMode {
						return printJSON(cmd, als)
					}
					for _, al := range als {
						fmt.Fprintln(cmd.OutOrStdout(), al.Name)
					}
					return nil
				})
			},
		},
	)
	return cmd
}
