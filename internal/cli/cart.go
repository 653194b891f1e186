package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}
	cmd.AddCommand(newCartAddCmd(a), newCartViewCmd(a), newCartClearCmd(a))
	return cmd
}

func newCartAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <flavor> [quantity]",
		Short: "Reserve scoops of a flavor",
		Long: `Add reserves quantity scoops (default 1) of a flavor and records a cart
line. The flavor's stock drops by the same amount. Fails without changes
when the stock is short.`,
		Args: rangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty := 1
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					return userErrorf("invalid quantity %q: %w", args[1], types.ErrInvalidQuantity)
				}
				qty = n
			}
			return a.withStore(cmd, func(ctx context.Context, store types.Store) error {
				item, err := store.AddToCart(ctx, args[0], qty)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd, item)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Added to cart successfully!")
				return nil
			})
		},
	}
}

func newCartViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the cart priced at current prices",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, store types.Store) error {
				lines, err := store.ViewCart(ctx)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd, map[string]any{
						"lines": lines,
						"total": types.CartTotal(lines),
					})
				}
				writeCartLines(cmd.OutOrStdout(), lines)
				return nil
			})
		},
	}
}

func newCartClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Long:  "Clear deletes every cart line. Reserved stock is not returned to the flavors.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, store types.Store) error {
				if err := store.ClearCart(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared!")
				return nil
			})
		},
	}
}
