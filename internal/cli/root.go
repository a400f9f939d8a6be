// Package cli holds the ops-backend command tree.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

var envFile string

var rootCmd = &cobra.Command{
	Use:   "ops-backend",
	Short: "Attendance, timesheet and project tracking API",
	Long: `ops-backend serves the attendance, regularization, timesheet, project
and reporting API. Running it without a subcommand starts the server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the command tree; SIGINT and SIGTERM cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env)")
	rootCmd.Version = Version
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func envFiles() []string {
	if envFile == "" {
		return nil
	}
	return []string{envFile}
}
