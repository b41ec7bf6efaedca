package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (a *app) analyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Daily donations and issues with current stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			days, _ := cmd.Flags().GetInt("days")
			summary, err := a.api.AnalyticsSummary(cmd.Context(), sess, days)
			if err != nil {
				return explain(err)
			}
			return renderSummary(a.out, summary, a.lowThreshold())
		},
	}
	cmd.Flags().Int("days", 30, "window in days")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Bulk exports",
	}
	donors := &cobra.Command{
		Use:   "donors",
		Short: "Download every donor as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("output")
			if path == "-" {
				return explain(a.api.ExportDonorsCSV(cmd.Context(), sess, a.out))
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			if err := a.api.ExportDonorsCSV(cmd.Context(), sess, f); err != nil {
				f.Close()
				_ = os.Remove(path)
				return explain(err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Wrote %s\n", path)
			return nil
		},
	}
	donors.Flags().StringP("output", "o", "donors.csv", "output file, or - for stdout")
	cmd.AddCommand(donors)
	return cmd
}
