package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write the catalog to JSONL files",
		Long: `Export writes one JSONL file per catalog table into dir. The cart is not
exported.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, store types.Store) error {
				counts, err := store.ExportCatalog(ctx, args[0])
				if err != nil {
					return err
				}
				return a.printCounts(cmd, "Exported", counts)
			})
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Load a catalog written by export",
		Long: `Import loads the JSONL files in dir in one transaction. Malformed lines
are skipped and missing files count as empty. A name that already exists
fails the import and nothing is loaded.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, store types.Store) error {
				counts, err := store.ImportCatalog(ctx, args[0])
				if err != nil {
					return err
				}
				return a.printCounts(cmd, "Imported", counts)
			})
		},
	}
}

// printCounts prints per-table record counts in table order.
func (a *app) printCounts(cmd *cobra.Command, verb string, counts map[string]int) error {
	if a.flags.jsonMode {
		return printJSON(cmd, counts)
	}
	writeCounts(cmd.OutOrStdout(), verb, counts)
	return nil
}

func writeCounts(w io.Writer, verb string, counts map[string]int) {
	tables := make([]string, 0, len(counts))
	for t := range counts {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	for _, t := range tables {
		fmt.Fprintf(w, "%s %d %s\n", verb, counts[t], t)
	}
}
