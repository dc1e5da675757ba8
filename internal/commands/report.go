package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"sales_insights/internal/services"
)

func newReportCommand() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print statistics, price ranges and categories as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := services.ParseMonth(month)
			if err != nil {
				return err
			}

			cfg, store, db, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			report, err := services.NewAnalyticsService(store, cfg.StoreTimeout).Combined(cmd.Context(), m)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month number (1-12) or name; empty for all months")
	return cmd
}
