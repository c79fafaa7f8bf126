package accounting

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookkeepd/bookkeepd/internal/apperrors"
	"github.com/bookkeepd/bookkeepd/internal/core/domain"
)

// SumDebitsCredits totals the debit and credit sides of a set of journal lines.
func SumDebitsCredits(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.DebitAmount())
		credits = credits.Add(line.CreditAmount())
	}
	return debits, credits
}

// DeriveLedgerEntries maps each journal line of a posted entry to one ledger
// entry: debit = amount for D lines, credit = amount for C lines. Balances are
// left zero here; they are assigned by RecomputeRunningBalances once the prior
// account state is known.
func DeriveLedgerEntries(entry domain.JournalEntry, lines []domain.JournalLine, actorID string, at time.Time) []domain.LedgerEntry {
	derived := make([]domain.LedgerEntry, len(lines))
	for i, line := range lines {
		derived[i] = domain.LedgerEntry{
			LedgerEntryID:  uuid.NewString(),
			OrganizationID: entry.OrganizationID,
			AccountID:      line.AccountID,
			LineID:         line.LineID,
			Date:           entry.EntryDate,
			Debit:          line.DebitAmount(),
			Credit:         line.CreditAmount(),
			AuditFields:    domain.NewAuditFields(actorID, at),
		}
	}
	return derived
}

// SortLedgerEntries orders entries by (date, created_at, id), the stable order
// running balances are defined over.
func SortLedgerEntries(entries []domain.LedgerEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].LedgerEntryID < entries[j].LedgerEntryID
	})
}

// RecomputeRunningBalances assigns balance = previous + debit - credit to every
// entry, seeding from opening (the last known balance before the first entry, or
// zero). Entries must all belong to one account; they are sorted in place into
// the canonical (date, created_at, id) order first.
func RecomputeRunningBalances(entries []domain.LedgerEntry, opening decimal.Decimal) {
	SortLedgerEntries(entries)
	balance := opening
	for i := range entries {
		balance = balance.Add(entries[i].Debit).Sub(entries[i].Credit)
		entries[i].Balance = balance
	}
}

// RollupPeriod computes the opening/debit/credit/closing tuple for one account
// over a window, given the balance strictly before the window and the in-window
// entries. When the window holds entries, the closing balance must equal the
// last entry's running balance; a mismatch means the projection is stale or a
// concurrent write raced, and is returned as a consistency error.
func RollupPeriod(opening decimal.Decimal, entries []domain.LedgerEntry) (debitTotal, creditTotal, closing decimal.Decimal, err error) {
	debitTotal = decimal.Zero
	creditTotal = decimal.Zero
	for _, e := range entries {
		debitTotal = debitTotal.Add(e.Debit)
		creditTotal = creditTotal.Add(e.Credit)
	}
	closing = opening.Add(debitTotal).Sub(creditTotal)

	if n := len(entries); n > 0 {
		sorted := make([]domain.LedgerEntry, n)
		copy(sorted, entries)
		SortLedgerEntries(sorted)
		last := sorted[n-1].Balance
		if !last.Equal(closing) {
			return debitTotal, creditTotal, closing, apperrors.NewConsistencyError(
				"ledger summary closing balance", closing.String(), last.String())
		}
	}
	return debitTotal, creditTotal, closing, nil
}
