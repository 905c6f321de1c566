// Command linkctl administers the links service: schema migration, users,
// tokens and the audit trail. `linkctl serve` runs the API server.
package main

import (
	"fmt"
	"os"

	"github.com/anonto42/linkfeed/backend/pkg/config"
	"github.com/anonto42/linkfeed/backend/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "linkctl",
	Short:         "Administer the links service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		log, err = logger.New(cfg.Env, cfg.LogLevel)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func main() {
	rootCmd.AddCommand(migrateCmd, userCmd, tokenCmd, serveCmd, historyCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openDB opens the configured relational database; the caller closes it
func openDB() (*gorm.DB, func(), error) {
	db, err := config.OpenGorm(cfg.Database.Driver, cfg.Database.URL, false)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", cfg.Database.Driver, err)
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, closeFn, nil
}
