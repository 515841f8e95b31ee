package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/ifysglbiydgfifs/java-lab-8-1/config"
	"github.com/ifysglbiydgfifs/java-lab-8-1/database"
	"github.com/ifysglbiydgfifs/java-lab-8-1/events"
	"github.com/ifysglbiydgfifs/java-lab-8-1/eventstore"
	"github.com/ifysglbiydgfifs/java-lab-8-1/loggers"
)

var (
	configPath string
	driverName string
	dsn        string

	cfg      *config.Config
	logger   *slog.Logger
	db       *sqlx.DB
	store    *eventstore.Store
	seq      *events.Sequence
	dbLogger *loggers.DBLogger
)

var rootCmd = &cobra.Command{
	Use:          "eventlog",
	Short:        "Persist events to a SQL table and report on them",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath, func(c *config.Config) {
			if cmd.Flags().Changed("driver") {
				c.Driver = driverName
			}
			if cmd.Flags().Changed("dsn") {
				c.DSN = dsn
			}
		})
		if err != nil {
			return err
		}

		logger, err = newLogger(cfg)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)

		db, err = database.Connect(cfg.Driver, cfg.DSN, cfg.Pool())
		if err != nil {
			return err
		}

		store = eventstore.New(db, logger)
		seq = events.NewSequence()
		dbLogger = loggers.NewDBLogger(
			store,
			seq,
			loggers.WithLogger(logger),
			loggers.WithSummaryWriter(cmd.OutOrStdout()),
			loggers.WithDefensiveBootstrap(cfg.DefensiveBootstrap),
		)
		if err := dbLogger.Initialize(); err != nil {
			closeDB()
			return fmt.Errorf("failed to initialize event log: %w", err)
		}
		return nil
	},
}

// closeDB releases the connection pool. It runs after every command,
// including ones that failed.
func closeDB() {
	if db != nil {
		db.Close()
		db = nil
	}
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler).With("run", uuid.NewString()), nil
}

func init() {
	cobra.OnFinalize(closeDB)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("EVENTLOG_CONFIG"), "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&driverName, "driver", "", "database driver (sqlite3 or postgres)")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "database data source name")

	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(summaryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
