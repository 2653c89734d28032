package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/barber-queue/internal/config"
	"github.com/BruksfildServices01/barber-queue/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Store   string // overrides STORE_DRIVER
	DSN     string // sqlite path, postgres URL or redis URL

	cfg *config.Config
}

var ValidFormats = []string{"text", "json"}

// NewRootCommand builds queuectl. Each command opens the store, acts
// through the queue engine and closes the store again, so the store file
// plays the part of the browser's local storage.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "queuectl",
		Short: "Walk-in barbershop queue",
		Long:  "Join, watch and manage the walk-in queue of a barbershop from the terminal.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			cfg, err := opts.config()
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid configuration", err)
			}
			opts.cfg = cfg
			logging.InitTo(cmd.ErrOrStderr(), cfg.LogLevel, "text")
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Store, "store", "", "store driver (memory|sqlite|postgres|redis), default from STORE_DRIVER")
	cmd.PersistentFlags().StringVar(&opts.DSN, "dsn", "", "sqlite path or postgres/redis URL for the chosen store")

	cmd.AddCommand(NewJoinCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewLeaveCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))

	return cmd
}

// config layers the flags over the environment.
func (o *RootOptions) config() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.Store != "" {
		cfg.StoreDriver = o.Store
	}
	if o.DSN != "" {
		switch cfg.StoreDriver {
		case config.DriverSQLite:
			cfg.SQLitePath = o.DSN
		case config.DriverPostgres:
			cfg.DBUrl = o.DSN
		case config.DriverRedis:
			cfg.RedisURL = o.DSN
		}
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	} else {
		cfg.LogLevel = "warn"
	}
	return cfg, cfg.Validate()
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}
