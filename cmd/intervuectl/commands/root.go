package commands

import (
	"fmt"
	"os"

	"github.com/darshan4295/interview-app/internal/config"
	"github.com/darshan4295/interview-app/internal/repositories"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// Global flags
	dbURL   string
	envFile string
	verbose bool

	// Version is set at build time.
	Version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "intervuectl",
	Short: "Operator tooling for the interview platform",
	Long: `intervuectl runs maintenance tasks against the interview platform database.

The connection is taken from --db, DATABASE_URL or the POSTGRES_* variables,
in that order.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file to load")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log SQL statements")
}

// openDB is replaced in tests.
var openDB = func() (*gorm.DB, error) {
	config.LoadDotenv(envFile)
	dsn := dbURL
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, err
		}
		dsn = cfg.Database.DSN()
	}
	level := logger.Silent
	if verbose {
		level = logger.Info
	}
	return repositories.OpenPostgres(dsn, level)
}
