package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Income    AccountType = "income"
	Expense   AccountType = "expense"
)

// AccountTypes lists all valid account types in report ordering.
var AccountTypes = []AccountType{Asset, Liability, Equity, Income, Expense}

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account is one node of an organization's chart of accounts. The hierarchy is a
// tree: ParentAccountID references another account of the same organization, and
// cycles are rejected at write time. Non-postable accounts are aggregation nodes
// only; journal lines must reference postable accounts. (organization, code) is
// unique.
type Account struct {
	AccountID       string      `json:"accountID"` // Primary Key (UUID)
	OrganizationID  string      `json:"organizationID"`
	Code            string      `json:"code"`
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID *string     `json:"parentAccountID"` // Nullable, self-referencing
	IsPostable      bool        `json:"isPostable"`
	AuditFields
}

// AccountFullName resolves the qualified display name of an account by walking
// its ancestry: parent's full name, then " > ", then the account's own name.
// Unknown or cyclic parents terminate the walk at the last resolvable ancestor.
func AccountFullName(accounts map[string]Account, accountID string) string {
	acc, ok := accounts[accountID]
	if !ok {
		return ""
	}
	name := acc.Name
	seen := map[string]struct{}{acc.AccountID: {}}
	for acc.ParentAccountID != nil {
		parent, ok := accounts[*acc.ParentAccountID]
		if !ok {
			break
		}
		if _, visited := seen[parent.AccountID]; visited {
			break
		}
		seen[parent.AccountID] = struct{}{}
		name = parent.Name + " > " + name
		acc = parent
	}
	return name
}
