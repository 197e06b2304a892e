package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/finances-api/internal/config"
	"github.com/phrazzld/finances-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Running the root command without a
// subcommand serves the API.
func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "finances-api",
		Short: "Personal finances HTTP API",
		Long: `finances-api records users' income and expense entries and reports
their balance over a JSON HTTP interface.

Configuration comes from config.yaml, a .env file and FINANCES_* environment
variables, in increasing order of precedence.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a config file (default: ./config.yaml when present)")

	serve := serveCmd(&cfgFile)
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve)
	root.AddCommand(migrateCmd(&cfgFile))

	return root
}

func serveCmd(cfgFile *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap(*cfgFile)
			if err != nil {
				return err
			}
			if migrate {
				cfg.Database.MigrateOnStart = true
			}

			app, err := newApplication(cmd.Context(), cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer app.cleanup()

			return app.Run(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")

	return cmd
}

func migrateCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [" + strings.Join(postgres.MigrationCommands, "|") + "]",
		Short: "Manage the PostgreSQL schema",
		Long: `Apply, roll back or inspect the embedded SQL migrations.
Without an argument pending migrations are applied.`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: postgres.MigrationCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}

			cfg, logger, err := bootstrap(*cfgFile)
			if err != nil {
				return err
			}
			if cfg.Database.Driver != config.DriverPostgres {
				return fmt.Errorf("migrations need the %q driver, configured driver is %q",
					config.DriverPostgres, cfg.Database.Driver)
			}

			db, err := openDatabase(cmd.Context(), cfg.Database, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					logger.Error("failed to close database", slog.String("error", err.Error()))
				}
			}()

			return postgres.Migrate(cmd.Context(), db, command, logger)
		},
	}
}

// bootstrap loads configuration and installs the process logger.
func bootstrap(cfgFile string) (*config.Config, *slog.Logger, error) {
	cfg, err := loadAppConfig(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver))

	return cfg, logger, nil
}
