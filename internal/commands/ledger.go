package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bookkeepd/bookkeepd/internal/dto"
)

func newLedgerCommand() *cobra.Command {
	var orgID string
	var actorID string
	var fromStr string
	var toStr string

	cmd := &cobra.Command{
		Use:   "ledger <account-id>",
		Short: "Print ledger entries and the closing balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd.Context(), "ledger")
			accountID := args[0]

			var from, to *time.Time
			if fromStr != "" {
				parsed, err := time.Parse("2006-01-02", fromStr)
				if err != nil {
					return fmt.Errorf("parsing --from: %w", err)
				}
				from = &parsed
			}
			if toStr != "" {
				parsed, err := time.Parse("2006-01-02", toStr)
				if err != nil {
					return fmt.Errorf("parsing --to: %w", err)
				}
				to = &parsed
			}

			env, err := setupEnv(ctx)
			if err != nil {
				return err
			}
			defer env.close()

			entries, err := env.services.Ledger.AccountEntries(ctx, orgID, accountID, from, to, actorID)
			if err != nil {
				return fmt.Errorf("listing ledger entries: %w", err)
			}

			asOf := time.Now().UTC()
			if to != nil {
				asOf = *to
			}
			balance, err := env.services.Ledger.AccountBalance(ctx, orgID, accountID, asOf, actorID)
			if err != nil {
				return fmt.Errorf("computing balance: %w", err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(dto.ToLedgerEntryResponses(entries)); err != nil {
				return fmt.Errorf("encoding entries: %w", err)
			}
			fmt.Printf("Balance as of %s: %s\n", asOf.Format("2006-01-02"), balance.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "organization ID (required)")
	_ = cmd.MarkFlagRequired("org")
	cmd.Flags().StringVar(&actorID, "actor", "", "acting user ID (required)")
	_ = cmd.MarkFlagRequired("actor")
	cmd.Flags().StringVar(&fromStr, "from", "", "window start, YYYY-MM-DD")
	cmd.Flags().StringVar(&toStr, "to", "", "window end, YYYY-MM-DD")

	return cmd
}
