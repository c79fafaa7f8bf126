package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bookkeepd/bookkeepd/internal/dto"
)

func newRollupCommand() *cobra.Command {
	var orgID string
	var actorID string
	var startStr string
	var endStr string

	cmd := &cobra.Command{
		Use:   "rollup",
		Short: "Roll up ledger summaries for a period across an organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd.Context(), "rollup")

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

			summaries, err := env.services.Ledger.RollupOrganization(ctx, orgID, start, end, actorID)
			if err != nil {
				return fmt.Errorf("rolling up period: %w", err)
			}

			responses := make([]dto.LedgerSummaryResponse, len(summaries))
			for i := range summaries {
				responses[i] = dto.ToLedgerSummaryResponse(&summaries[i])
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(responses); err != nil {
				return fmt.Errorf("encoding summaries: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Rolled up %d accounts for %s..%s.\n", len(summaries), startStr, endStr)
			return nil
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "organization ID (required)")
	_ = cmd.MarkFlagRequired("org")
	cmd.Flags().StringVar(&actorID, "actor", "", "acting user ID (required)")
	_ = cmd.MarkFlagRequired("actor")
	cmd.Flags().StringVar(&startStr, "start", "", "period start, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("start")
	cmd.Flags().StringVar(&endStr, "end", "", "period end, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
