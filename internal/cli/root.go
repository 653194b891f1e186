// Package cli implements the parlor command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/parlor/internal/logging"
	"github.com/mesh-intelligence/parlor/internal/paths"
	"github.com/mesh-intelligence/parlor/pkg/parlor"
	"github.com/mesh-intelligence/parlor/pkg/sqlite"
	"github.com/mesh-intelligence/parlor/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
}

// app is the state shared by one invocation of the root command.
type app struct {
	flags     rootFlags
	configDir string
	config    *viper.Viper
	logger    *zap.Logger
}

// NewRootCmd creates the top-level "parlor" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:     "parlor",
		Short:   "Ice cream parlor catalog and cart",
		Long:    "Parlor manages an ice cream parlor's flavors, ingredients, allergens\nand a shopping cart that reserves flavor stock.",
		Version: parlor.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			// Sync fails on stderr for some terminals; nothing to do about it.
			_ = a.logger.Sync()
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/parlor)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.parlor-db)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default: warn)")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newSeedCmd(a),
		newFlavorCmd(a),
		newIngredientCmd(a),
		newAllergenCmd(a),
		newLinkCmd(a),
		newSearchCmd(a),
		newCartCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newMenuCmd(a),
	)
	return root
}

// Execute runs the root command with os.Args and returns the process exit
// code.
func Execute() int {
	return run(NewRootCmd(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// run executes root with the given arguments and streams and maps the
// outcome to an exit code.
func run(root *cobra.Command, args []string, in io.Reader, out, errOut io.Writer) int {
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(errOut, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// setup resolves the config directory, loads config.yaml and builds the
// logger. It runs before every subcommand.
func (a *app) setup() error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	a.configDir = configDir
	a.config = cfg

	level := a.flags.logLevel
	if level == "" {
		level = cfg.GetString(cfgKeyLogLevel)
	}
	logger, err := logging.New(level, cfg.GetString(cfgKeyLogFormat))
	if err != nil {
		return usageError{err}
	}
	a.logger = logger
	return nil
}

// storeConfig returns the backend configuration after applying the data
// directory precedence.
func (a *app) storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return types.Config{
		Backend: a.config.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}, nil
}

// withStore attaches a store for the duration of fn.
func (a *app) withStore(cmd *cobra.Command, fn func(ctx context.Context, store types.Store) error) error {
	cfg, err := a.storeConfig()
	if err != nil {
		return err
	}
	store := sqlite.NewBackend(a.logger)
	if err := store.Attach(cfg); err != nil {
		if errors.Is(err, types.ErrBackendEmpty) || errors.Is(err, types.ErrBackendUnknown) {
			return usageError{fmt.Errorf("attach store: %w", err)}
		}
		return fmt.Errorf("attach store: %w", err)
	}
	defer func() {
		if err := store.Detach(); err != nil {
			a.logger.Warn("detach store", zap.Error(err))
		}
	}()
	return fn(cmd.Context(), store)
}

// usageError marks an error caused by bad input rather than a failing
// system.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// userErrorf returns a usageError with a formatted message.
func userErrorf(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// userSentinels are store errors caused by the request, not the system.
var userSentinels = []error{
	types.ErrNotFound,
	types.ErrDuplicateName,
	types.ErrAlreadyLinked,
	types.ErrInsufficientStock,
	types.ErrInvalidName,
	types.ErrInvalidPrice,
	types.ErrInvalidQuantity,
	types.ErrInvalidRecord,
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// rangeArgs is cobra.RangeArgs reporting a usage error.
func rangeArgs(min, max int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(min, max)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// exitCode maps an error to exitUserError or exitSysError.
func exitCode(err error) int {
	var ue usageError
	if errors.As(err, &ue) {
		return exitUserError
	}
	// Raised by cobra itself before any command runs.
	msg := err.Error()
	if strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "required flag") {
		return exitUserError
	}
	for _, s := range userSentinels {
		if errors.Is(err, s) {
			return exitUserError
		}
	}
	return exitSysError
}
