package accounting_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookkeepd/bookkeepd/internal/apperrors"
	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	"github.com/bookkeepd/bookkeepd/internal/utils/accounting"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func line(amount string, dc domain.DCIndicator) domain.JournalLine {
	return domain.JournalLine{
		LineID: uuid.NewString(),
		Amount: decimal.RequireFromString(amount),
		DC:     dc,
	}
}

func TestSumDebitsCredits(t *testing.T) {
	tests := []struct {
		name        string
		lines       []domain.JournalLine
		wantDebits  string
		wantCredits string
	}{
		{
			name: "balanced pair",
			lines: []domain.JournalLine{
				line("1000.00", domain.DebitLine),
				line("1000.00", domain.CreditLine),
			},
			wantDebits:  "1000.00",
			wantCredits: "1000.00",
		},
		{
			name: "split credit",
			lines: []domain.JournalLine{
				line("1000.00", domain.DebitLine),
				line("600.00", domain.CreditLine),
				line("400.00", domain.CreditLine),
			},
			wantDebits:  "1000.00",
			wantCredits: "1000.00",
		},
		{
			name: "unbalanced",
			lines: []domain.JournalLine{
				line("500.00", domain.DebitLine),
				line("400.00", domain.CreditLine),
			},
			wantDebits:  "500.00",
			wantCredits: "400.00",
		},
		{
			name:        "empty",
			lines:       nil,
			wantDebits:  "0",
			wantCredits: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debits, credits := accounting.SumDebitsCredits(tt.lines)
			assert.True(t, debits.Equal(decimal.RequireFromString(tt.wantDebits)), "debits: got %s", debits)
			assert.True(t, credits.Equal(decimal.RequireFromString(tt.wantCredits)), "credits: got %s", credits)
		})
	}
}

func TestDeriveLedgerEntries_OnePerLine(t *testing.T) {
	entry := domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: uuid.NewString(),
		EntryDate:      day(10),
		Status:         domain.Posted,
	}
	lines := []domain.JournalLine{
		line("1000.00", domain.DebitLine),
		line("1000.00", domain.CreditLine),
	}
	for i := range lines {
		lines[i].AccountID = uuid.NewString()
	}

	derived := accounting.DeriveLedgerEntries(entry, lines, "actor", time.Now().UTC())

	require.Len(t, derived, len(lines))
	for i, d := range derived {
		assert.Equal(t, lines[i].LineID, d.LineID)
		assert.Equal(t, lines[i].AccountID, d.AccountID)
		assert.True(t, d.Date.Equal(entry.EntryDate))
	}
	assert.True(t, derived[0].Debit.Equal(decimal.RequireFromString("1000.00")))
	assert.True(t, derived[0].Credit.IsZero())
	assert.True(t, derived[1].Credit.Equal(decimal.RequireFromString("1000.00")))
	assert.True(t, derived[1].Debit.IsZero())
}

func ledgerEntry(d int, createdAt time.Time, debit, credit string) domain.LedgerEntry {
	return domain.LedgerEntry{
		LedgerEntryID: uuid.NewString(),
		AccountID:     "acct",
		LineID:        uuid.NewString(),
		Date:          day(d),
		Debit:         decimal.RequireFromString(debit),
		Credit:        decimal.RequireFromString(credit),
		AuditFields:   domain.AuditFields{CreatedAt: createdAt},
	}
}

func TestRecomputeRunningBalances(t *testing.T) {
	now := time.Now().UTC()
	entries := []domain.LedgerEntry{
		ledgerEntry(20, now, "0", "200.00"),
		ledgerEntry(5, now, "1000.00", "0"),
		ledgerEntry(12, now, "0", "300.00"),
	}

	accounting.RecomputeRunningBalances(entries, decimal.RequireFromString("50.00"))

	// Sorted into date order with balance = prev + debit - credit.
	require.True(t, entries[0].Date.Equal(day(5)))
	assert.True(t, entries[0].Balance.Equal(decimal.RequireFromString("1050.00")))
	assert.True(t, entries[1].Balance.Equal(decimal.RequireFromString("750.00")))
	assert.True(t, entries[2].Balance.Equal(decimal.RequireFromString("550.00")))
}

func TestRecomputeRunningBalances_SameDateOrdersByCreatedAt(t *testing.T) {
	early := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	late := time.Date(2025, 3, 5, 17, 0, 0, 0, time.UTC)
	entries := []domain.LedgerEntry{
		ledgerEntry(5, late, "0", "100.00"),
		ledgerEntry(5, early, "500.00", "0"),
	}

	accounting.RecomputeRunningBalances(entries, decimal.Zero)

	assert.True(t, entries[0].Balance.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, entries[1].Balance.Equal(decimal.RequireFromString("400.00")))
}

func TestRollupPeriod(t *testing.T) {
	now := time.Now().UTC()

	t.Run("closing equals opening plus debits minus credits", func(t *testing.T) {
		// Worked example: 250.00 opening, Cash debited 1000.00 then credited 300.00.
		opening := decimal.RequireFromString("250.00")
		e1 := ledgerEntry(5, now, "1000.00", "0")
		e1.Balance = decimal.RequireFromString("1250.00")
		e2 := ledgerEntry(12, now.Add(time.Hour), "0", "300.00")
		e2.Balance = decimal.RequireFromString("950.00")

		debits, credits, closing, err := accounting.RollupPeriod(opening, []domain.LedgerEntry{e1, e2})

		require.NoError(t, err)
		assert.True(t, debits.Equal(decimal.RequireFromString("1000.00")))
		assert.True(t, credits.Equal(decimal.RequireFromString("300.00")))
		assert.True(t, closing.Equal(decimal.RequireFromString("950.00")))
	})

	t.Run("empty window closes at opening", func(t *testing.T) {
		opening := decimal.RequireFromString("77.00")

		debits, credits, closing, err := accounting.RollupPeriod(opening, nil)

		require.NoError(t, err)
		assert.True(t, debits.IsZero())
		assert.True(t, credits.IsZero())
		assert.True(t, closing.Equal(opening))
	})

	t.Run("stale running balance is a consistency error", func(t *testing.T) {
		e := ledgerEntry(5, now, "100.00", "0")
		e.Balance = decimal.RequireFromString("42.00") // should be 100.00

		_, _, _, err := accounting.RollupPeriod(decimal.Zero, []domain.LedgerEntry{e})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrConsistency)
	})
}
