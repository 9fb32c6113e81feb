package command

// root.go defines the root command for yamdbctl, the operator tool that talks
// to the database directly rather than through the HTTP API.

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"yamdb/database"
	"yamdb/internal/config"
	"yamdb/internal/logger"
)

var (
	cfg *config.Config
	log *logrus.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yamdbctl",
	Short: "yamdbctl - YaMDb administration tool",
	Long: `yamdbctl manages a YaMDb deployment from the command line. It reads the same
environment (or .env file) as the API server and can:
- Apply the database schema
- Bootstrap an administrator account
- Change the role of an existing user`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return err
		}
		cfg = loaded

		logger.Init(cfg.LogLevel, cfg.LogFormat)
		log = logger.Get()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDB connects with the loaded config; callers close it with database.Close.
func openDB(ctx context.Context) (*gorm.DB, error) {
	db, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}
