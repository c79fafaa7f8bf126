package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPostCommand() *cobra.Command {
	var orgID string
	var actorID string

	cmd := &cobra.Command{
		Use:   "post <entry-id>",
		Short: "Post a draft journal entry to the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd.Context(), "post")

			env, err := setupEnv(ctx)
			if err != nil {
				return err
			}
			defer env.close()

			entry, err := env.services.Journal.PostJournalEntry(ctx, orgID, args[0], actorID)
			if err != nil {
				return fmt.Errorf("posting entry: %w", err)
			}

			fmt.Printf("Entry %s posted on %s.\n", entry.EntryID, entry.EntryDate.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "organization ID (required)")
	_ = cmd.MarkFlagRequired("org")
	cmd.Flags().StringVar(&actorID, "actor", "", "acting user ID (required)")
	_ = cmd.MarkFlagRequired("actor")

	return cmd
}
