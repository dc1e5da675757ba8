package commands

import (
	"context"
	"database/sql"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sales_insights/internal/config"
	"sales_insights/internal/repositories/sqlconnect"
	"sales_insights/internal/repositories/transactionstore"
	"sales_insights/pkg/utils"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "salesctl",
		Short: "Maintenance and reporting for the sales insights dataset",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				utils.Logger.WithError(err).Warn("Failed to read .env file")
			}
		},
	}

	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newHashPasswordCommand())

	return rootCmd
}

// openStore loads the configuration and returns a store warmed from the
// configured database. The caller closes the returned db.
func openStore(ctx context.Context) (*config.Config, *transactionstore.Store, *sql.DB, error) {
	cfg := config.Load()
	utils.InitLogger(cfg.AppEnv, cfg.LogLevel, cfg.LogDir)
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	db, err := sqlconnect.ConnectDb(ctx, cfg.DB)
	if err != nil {
		return nil, nil, nil, err
	}

	store := transactionstore.New(transactionstore.NewSQLRepository(db))
	if err := store.Load(ctx); err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	return cfg, store, db, nil
}
