package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
)

func newReportCommand() *cobra.Command {
	var orgID string
	var actorID string
	var reportType string
	var startStr string
	var endStr string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a report snapshot from rolled-up summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd.Context(), "report")

			start, err := time.Parse("2006-01-02", startStr)
			if err != nil {
				return fmt.Errorf("parsing --start: %w", err)
			}
			end, err := time.Parse("2006-01-02", endStr)
			if err != nil {
				return fmt.Errorf("parsing --end: %w", err)
			}

			env, err := setupEnv(ctx)
			if err != nil {
				return err
			}
			defer env.close()

			report, err := env.services.Reporting.GenerateReport(ctx, orgID, domain.ReportType(reportType), start, end, actorID)
			if err != nil {
				return fmt.Errorf("generating report: %w", err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "organization ID (required)")
	_ = cmd.MarkFlagRequired("org")
	cmd.Flags().StringVar(&actorID, "actor", "", "acting user ID (required)")
	_ = cmd.MarkFlagRequired("actor")
	cmd.Flags().StringVar(&reportType, "type", string(domain.TrialBalance), "report type: balance_sheet, profit_loss, cash_flow, trial_balance")
	cmd.Flags().StringVar(&startStr, "start", "", "period start, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("start")
	cmd.Flags().StringVar(&endStr, "end", "", "period end, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
