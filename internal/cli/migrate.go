package cli

import (
	"fmt"
	"os"

	"github.com/nikolayk812/shoppay/internal/db"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg.Log, os.Stdout)
			if err != nil {
				return err
			}

			if err := db.Migrate(cfg.Database.URL); err != nil {
				return fmt.Errorf("db.Migrate: %w", err)
			}

			logger.Info("migrations applied")
			return nil
		},
	}
}
