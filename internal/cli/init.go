package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/parlor/internal/paths"
	"github.com/mesh-intelligence/parlor/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize parlor storage",
		Long: `Create the configuration and data directories and the database schema.

When --data-dir is given it is recorded in config.yaml so later commands
use it without the flag. Running init again keeps existing data.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.dataDir != "" {
				if err := recordDataDir(paths.ConfigFile(a.configDir), a.flags.dataDir); err != nil {
					return fmt.Errorf("update config: %w", err)
				}
			}

			var dataDir string
			err := a.withStore(cmd, func(ctx context.Context, store types.Store) error {
				cfg, err := a.storeConfig()
				dataDir = cfg.DataDir
				return err
			})
			if err != nil {
				return err
			}

			if a.flags.jsonMode {
				return printJSON(cmd, map[string]string{
					"config_dir": a.configDir,
					"data_dir":   dataDir,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Parlor initialized (data: %s)\n", dataDir)
			return nil
		},
	}
}

// recordDataDir sets data_dir in the config file at path, keeping the
// other keys.
func recordDataDir(path, dataDir string) error {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	abs, err := paths.ResolveDataDir(dataDir, "")
	if err != nil {
		return err
	}
	cfg.DataDir = abs

	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte("# parlor configuration\n"), out...), 0o644)
}
