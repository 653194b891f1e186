package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

const menuText = `
--- Ice Cream Parlor Management ---
1. Search Flavors
2. Add to Cart
3. View Cart
4. Clear Cart
5. Exit`

func newMenuCmd(a *app) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive parlor menu",
		Long: `Menu runs an interactive loop over stdin: search flavors, add to the
cart, view the cart, clear the cart, exit. End of input also exits.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, store types.Store) error {
				if seed {
					if err := store.Seed(ctx); err != nil {
						return err
					}
				}
				m := &menu{
					store:  store,
					in:     bufio.NewScanner(cmd.InOrStdin()),
					out:    cmd.OutOrStdout(),
					logger: a.logger,
				}
				return m.loop(ctx)
			})
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", true, "load the demo catalog before starting")
	return cmd
}

// menu is one interactive session.
type menu struct {
	store  types.Store
	in     *bufio.Scanner
	out    io.Writer
	logger *zap.Logger
}

// prompt prints label and reads one line. ok is false at end of input.
func (m *menu) prompt(label string) (line string, ok bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *menu) loop(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, menuText)
		choice, ok := m.prompt("Enter your choice: ")
		if !ok {
			fmt.Fprintln(m.out)
			return m.in.Err()
		}

		var err error
		switch choice {
		case "1":
			err = m.search(ctx)
		case "2":
			err = m.addToCart(ctx)
		case "3":
			err = m.viewCart(ctx)
		case "4":
			err = m.clearCart(ctx)
		case "5":
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Try again.")
		}
		if err != nil {
			return err
		}
	}
}

func (m *menu) search(ctx context.Context) error {
	name, ok := m.prompt("Enter flavor name (or press enter for all): ")
	if !ok {
		return nil
	}
	answer, ok := m.prompt("Seasonal? (Y/N, or press enter for all): ")
	if !ok {
		return nil
	}
	// Anything other than a yes or no answer means all flavors.
	seasonal, _ := types.ParseSeasonal(answer)

	flavors, err := m.store.SearchFlavors(ctx, types.SearchFilter{Name: name, Seasonal: seasonal})
	if err != nil {
		return err
	}
	if len(flavors) == 0 {
		fmt.Fprintln(m.out, "No flavors found.")
	}
	for _, f := range flavors {
		writeFlavorLine(m.out, f)
	}
	return nil
}

func (m *menu) addToCart(ctx context.Context) error {
	name, ok := m.prompt("Enter flavor name to add to cart: ")
	if !ok {
		return nil
	}
	raw, ok := m.prompt("Enter quantity: ")
	if !ok {
		return nil
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid quantity.")
		return nil
	}

	if _, err := m.store.AddToCart(ctx, name, qty); err != nil {
		if exitCode(err) != exitUserError {
			return err
		}
		m.logger.Info("add to cart rejected", zap.String("flavor", name), zap.Error(err))
		fmt.Fprintln(m.out, "Failed to add to cart.")
		return nil
	}
	fmt.Fprintln(m.out, "Added to cart successfully!")
	return nil
}

func (m *menu) viewCart(ctx context.Context) error {
	lines, err := m.store.ViewCart(ctx)
	if err != nil {
		return err
	}
	writeCartLines(m.out, lines)
	return nil
}

func (m *menu) clearCart(ctx context.Context) error {
	if err := m.store.ClearCart(ctx); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Cart cleared!")
	return nil
}
