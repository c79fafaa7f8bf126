package services

import (
	"context"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
	"github.com/bookkeepd/bookkeepd/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalEntry retrieves a journal entry with its lines.
	GetJournalEntry(ctx context.Context, organizationID, entryID string, actorID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a paginated list of an organization's entries.
	ListJournalEntries(ctx context.Context, organizationID string, params dto.ListJournalEntriesParams, actorID string) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournalEntry creates a draft entry with its lines. Line shape
	// (positive amounts, postable same-organization accounts) is validated here;
	// the balance invariant is enforced at posting time.
	CreateJournalEntry(ctx context.Context, organizationID string, req dto.CreateJournalEntryRequest, actorID string) (*domain.JournalEntry, error)

	// UpdateJournalEntry updates the header fields of a draft entry.
	UpdateJournalEntry(ctx context.Context, organizationID, entryID string, req dto.UpdateJournalEntryRequest, actorID string) (*domain.JournalEntry, error)

	// DeleteJournalEntry removes a draft entry and its lines.
	DeleteJournalEntry(ctx context.Context, organizationID, entryID string, actorID string) error
}

// JournalPostingSvc defines the posting state machine
type JournalPostingSvc interface {
	// PostJournalEntry validates the double-entry rules and atomically flips the
	// entry to posted while deriving its ledger entries. Any rule violation
	// returns a ValidationError and leaves the entry draft with nothing written.
	// Companions ride in the posting transaction; a companion failure leaves
	// the entry draft too.
	PostJournalEntry(ctx context.Context, organizationID, entryID string, actorID string, companions ...portsrepo.PostCompanion) (*domain.JournalEntry, error)

	// UnpostJournalEntry reverts a posted entry to draft, deleting its derived
	// ledger entries atomically.
	UnpostJournalEntry(ctx context.Context, organizationID, entryID string, actorID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalPostingSvc
}
