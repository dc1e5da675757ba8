package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sales_insights/internal/services"
)

func newSeedCommand() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all transactions with the seed provider's dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, db, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if url == "" {
				url = cfg.SeedURL
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.SeedTimeout)
			defer cancel()

			seeder := services.NewSeeder(services.NewSeedClient(url, cfg.SeedTimeout), store, nil)
			result, err := seeder.Initialize(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions from %s\n", result.Records, seeder.Source())
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "seed dataset URL (defaults to SEED_URL)")
	return cmd
}
