package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arthur-debert/toran/formats"
	"github.com/arthur-debert/toran/internal/config"
	"github.com/arthur-debert/toran/internal/logging"
	"github.com/arthur-debert/toran/inventory"
	"github.com/arthur-debert/toran/inventory/storage"
)

// app carries what the commands share for one invocation
type app struct {
	configFile string

	cfg      config.Config
	logger   *zap.Logger
	closeLog func()

	kv    storage.KV
	store *inventory.Store
}

// globalFlags are bound to viper keys of the same name
var globalFlags = []string{
	config.KeyFile,
	config.KeyBackend,
	config.KeyFormat,
	config.KeyLogLevel,
	config.KeyVerbose,
}

func newApp() *app {
	return &app{
		logger:   zap.NewNop(),
		closeLog: func() {},
	}
}

// run executes one invocation and releases storage and the log file afterwards
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := newApp()
	defer a.close()

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "toran",
		Short: "Toran - inventory records for a small electronics shop",
		Long: `Toran keeps the stock list of a small electronics retailer: items with a
SKU, name, category, quantity, price and shelf location.

Records are kept in a local key-value store (a JSON file by default, SQLite
or memory on request). Settings come from flags, TORAN_* environment
variables, a toran.{json,yaml} config file or a .env file.

Examples:
  # Add an item
  toran add FAN-002 "Wall Fan" --category Fans --qty 6 --price 999 --loc S1

  # Find everything on shelf S1
  toran list -q s1

  # Export the inventory as CSV
  toran export --output ~/Downloads

  # Open the terminal dashboard
  toran dashboard`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "", "", "Config file (default: ./toran.yaml or $HOME/.toran/toran.yaml)")
	flags.StringP(config.KeyFile, "f", "", "Data file path (default: XDG data dir)")
	flags.String(config.KeyBackend, string(storage.BackendJSON), "Storage backend: json|sqlite|memory")
	flags.String(config.KeyFormat, formats.Default, "Output format: table|json|yaml|csv")
	flags.String(config.KeyLogLevel, "warn", "Log level: debug|info|warn|error")
	flags.BoolP(config.KeyVerbose, "v", false, "Mirror log output to stderr")

	rootCmd.AddCommand(
		newAddCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newListCmd(a),
		newStatsCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newChatCmd(a),
		newThemeCmd(a),
		newMigrateCmd(a),
		newConfigCmd(a),
		newDashboardCmd(a),
	)

	return rootCmd
}

// setup resolves configuration and starts logging. Storage is opened lazily
// by the commands that need it.
func (a *app) setup(cmd *cobra.Command) error {
	v, err := config.New(config.Options{ConfigFile: a.configFile})
	if err != nil {
		return NewConfigError("load configuration", err)
	}

	root := cmd.Root().PersistentFlags()
	for _, key := range globalFlags {
		if err := v.BindPFlag(key, root.Lookup(key)); err != nil {
			return NewConfigError("bind flags", err)
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return NewConfigError("load configuration", err)
	}
	a.cfg = cfg

	logger, closeLog, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Verbose: cfg.Verbose,
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		// Logging is best effort; the command still runs
		cmd.PrintErrf("Warning: %v\n", err)
		return nil
	}
	a.logger = logger
	a.closeLog = closeLog

	a.logger.Debug("command started",
		zap.String("command", cmd.CommandPath()),
		zap.String("backend", string(cfg.Backend)),
		zap.String("file", cfg.File),
		zap.String("config", cfg.Source))
	return nil
}

// openKV opens the configured storage backend once per invocation
func (a *app) openKV() (storage.KV, error) {
	if a.kv != nil {
		return a.kv, nil
	}

	kv, err := storage.Open(a.cfg.Backend, a.cfg.File, storage.WithLogger(a.logger.Named("storage")))
	if err != nil {
		return nil, NewStoreError("open storage", err, CommonSuggestions.CheckFile, CommonSuggestions.CheckPerms)
	}
	a.kv = kv
	return kv, nil
}

// openStore loads the record store, seeding it on first use
func (a *app) openStore() (*inventory.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	kv, err := a.openKV()
	if err != nil {
		return nil, err
	}

	store, err := inventory.Open(kv, inventory.WithLogger(a.logger.Named("inventory")))
	if err != nil {
		return nil, NewStoreError("load inventory", err, CommonSuggestions.CheckFile)
	}
	a.store = store
	return store, nil
}

// format returns the renderer selected by --format
func (a *app) format() *formats.Format {
	format, err := formats.Get(a.cfg.Format)
	if err != nil {
		// config.Load already rejected unknown formats
		format, _ = formats.Get(formats.Default)
	}
	return format
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("failed to close store", zap.Error(err))
		}
	} else if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			a.logger.Warn("failed to close storage", zap.Error(err))
		}
	}
	a.store = nil
	a.kv = nil
	a.closeLog()
	a.closeLog = func() {}
}

