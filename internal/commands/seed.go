package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	"github.com/bookkeepd/bookkeepd/internal/dto"
)

// defaultChart is the starter chart of accounts seeded into a new organization.
var defaultChart = []dto.CreateAccountRequest{
	{Code: "1000", Name: "Cash", AccountType: domain.Asset},
	{Code: "1100", Name: "Accounts Receivable", AccountType: domain.Asset},
	{Code: "1500", Name: "Fixed Assets", AccountType: domain.Asset},
	{Code: "1510", Name: "Accumulated Depreciation", AccountType: domain.Asset},
	{Code: "2000", Name: "Accounts Payable", AccountType: domain.Liability},
	{Code: "2100", Name: "Taxes Payable", AccountType: domain.Liability},
	{Code: "3000", Name: "Owner's Equity", AccountType: domain.Equity},
	{Code: "4000", Name: "Sales Revenue", AccountType: domain.Income},
	{Code: "5000", Name: "Operating Expenses", AccountType: domain.Expense},
	{Code: "5100", Name: "Depreciation Expense", AccountType: domain.Expense},
}

func newSeedCommand() *cobra.Command {
	var name string
	var currency string
	var adminUserID string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create an organization with a starter chart of accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd.Context(), "seed")

			env, err := setupEnv(ctx)
			if err != nil {
				return err
			}
			defer env.close()

			org, err := env.services.Organization.CreateOrganization(ctx, dto.CreateOrganizationRequest{
				Name:         name,
				BaseCurrency: currency,
			}, adminUserID)
			if err != nil {
				return fmt.Errorf("creating organization: %w", err)
			}

			accounts := make([]domain.Account, 0, len(defaultChart))
			for _, req := range defaultChart {
				account, err := env.services.Account.CreateAccount(ctx, org.OrganizationID, req, adminUserID)
				if err != nil {
					return fmt.Errorf("creating account %s: %w", req.Code, err)
				}
				accounts = append(accounts, *account)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Organization dto.OrganizationResponse `json:"organization"`
				Accounts     []dto.AccountResponse    `json:"accounts"`
			}{
				Organization: dto.ToOrganizationResponse(org),
				Accounts:     dto.ToListAccountResponse(accounts),
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "organization name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&currency, "currency", "USD", "base currency (ISO-4217)")
	cmd.Flags().StringVar(&adminUserID, "admin", "", "user ID made admin of the new organization (required)")
	_ = cmd.MarkFlagRequired("admin")

	return cmd
}
