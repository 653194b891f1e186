package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		name     string
		seasonal string
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search flavors by name and season",
		Long: `Search returns flavors whose name contains --name, ignoring case, and
whose seasonal flag matches --seasonal (yes, no or any). Both filters
apply together; with neither, every flavor is listed.`,
		Example: `  parlor search --name choc
  parlor search --seasonal yes`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := types.ParseSeasonal(seasonal)
			if !ok {
				return userErrorf("invalid --seasonal %q (want yes, no or any)", seasonal)
			}
			return a.searchAndPrint(cmd, types.SearchFilter{Name: name, Seasonal: s})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "substring of the flavor name")
	cmd.Flags().StringVar(&seasonal, "seasonal", "any", "yes, no or any")
	return cmd
}

// searchAndPrint runs a flavor search and prints the result.
func (a *app) searchAndPrint(cmd *cobra.Command, filter types.SearchFilter) error {
	return a.withStore(cmd, func(ctx context.Context, store types.Store) error {
		flavors, err := store.SearchFlavors(ctx, filter)
		if err != nil {
			return err
		}
		if a.flags.jsonMode {
			return printJSON(cmd, flavors)
		}
		if len(flavors) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No flavors found.")
			return nil
		}
		for _, f := range flavors {
			writeFlavorLine(cmd.OutOrStdout(), f)
		}
		return nil
	})
}
