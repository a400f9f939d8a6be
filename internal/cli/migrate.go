package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/ops-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/ops-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(envFiles()...)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		slog.SetDefault(appHTTP.NewLogger(os.Stdout, Version, cfg.App.Env, cfg.App.LogLevel))

		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := database.Migrate(cmd.Context(), db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		slog.Info("Database migrations applied")
		return nil
	},
}
