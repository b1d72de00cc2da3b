package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"SONJUTOKTOK_BACK-END/internal/config"
	"SONJUTOKTOK_BACK-END/internal/store"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the users table and its constraints",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Store.Driver != config.StoreDriverPostgres {
				return fmt.Errorf("migrate needs STORE_DRIVER=%s, got %s", config.StoreDriverPostgres, cfg.Store.Driver)
			}

			log := newLogger(cfg)
			defer log.Sync()

			pool, err := openPool(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := store.NewPostgresStore(pool).Migrate(cmd.Context()); err != nil {
				return err
			}
			log.Info("users table is up to date", zap.String("database", cfg.Database.Name))
			return nil
		},
	}
}
