package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookkeepd/bookkeepd/internal/apperrors"
	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
	portssvc "github.com/bookkeepd/bookkeepd/internal/core/ports/services"
	"github.com/bookkeepd/bookkeepd/internal/dto"
	"github.com/bookkeepd/bookkeepd/internal/utils/accounting"
)

// journalService implements the journal entry lifecycle: draft creation,
// header edits, and the posting state machine that derives ledger entries.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	auditSvc    portssvc.AuditSvc
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, authorizer portssvc.OrganizationAuthorizer, auditSvc portssvc.AuditSvc) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: BaseService{Authorizer: authorizer},
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		auditSvc:    auditSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validateLineShape checks the rules that hold for every line regardless of
// entry status: positive amount, a valid D/C indicator, and a postable account
// belonging to the entry's organization.
func (s *journalService) validateLineShape(ctx context.Context, organizationID string, lines []domain.JournalLine) error {
	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return apperrors.NewValidationError("journal.positive_amount",
				fmt.Sprintf("line amount must be positive, got %s", line.Amount), line.LineID)
		}
		if line.DC != domain.DebitLine && line.DC != domain.CreditLine {
			return apperrors.NewValidationError("journal.dc_indicator",
				fmt.Sprintf("line indicator must be D or C, got %q", line.DC), line.LineID)
		}
		accountIDs = append(accountIDs, line.AccountID)
	}

	uniqueIDs := uniqueStrings(accountIDs)
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, organizationID, uniqueIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts for validation: %w", err)
	}
	for _, line := range lines {
		account, found := accounts[line.AccountID]
		if !found || account.OrganizationID != organizationID {
			return apperrors.NewValidationError("journal.account_exists",
				fmt.Sprintf("account %s not found in organization", line.AccountID), line.LineID)
		}
		if !account.IsPostable {
			return apperrors.NewValidationError("journal.account_postable",
				fmt.Sprintf("account %s (%s) is not postable", account.Code, line.AccountID), line.LineID)
		}
	}
	return nil
}

// validateBalanced enforces the double-entry invariant: at least two lines and
// debit total exactly equal to credit total.
func (s *journalService) validateBalanced(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return apperrors.NewValidationError("journal.min_lines",
			fmt.Sprintf("a postable entry needs at least two lines, got %d", len(lines)))
	}
	debits, credits := accounting.SumDebitsCredits(lines)
	if !debits.Equal(credits) {
		return apperrors.NewValidationError("journal.balanced",
			fmt.Sprintf("debit total %s does not equal credit total %s", debits, credits))
	}
	return nil
}

// CreateJournalEntry creates a draft entry with its lines. Balance is not
// required of a draft; it is enforced when the entry is posted.
func (s *journalService) CreateJournalEntry(ctx context.Context, organizationID string, req dto.CreateJournalEntryRequest, actorID string) (*domain.JournalEntry, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if err := s.ValidateStruct(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:         uuid.NewString(),
			EntryID:        entryID,
			OrganizationID: organizationID,
			AccountID:      lineReq.AccountID,
			Amount:         lineReq.Amount,
			DC:             lineReq.DC,
			CostCenterID:   lineReq.CostCenterID,
			ProjectID:      lineReq.ProjectID,
			AuditFields:    domain.NewAuditFields(actorID, now),
		}
	}

	if err := s.validateLineShape(ctx, organizationID, lines); err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: organizationID,
		EntryDate:      req.EntryDate,
		Reference:      req.Reference,
		Description:    req.Description,
		Status:         domain.Draft,
		AuditFields:    domain.NewAuditFields(actorID, now),
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "failed to save journal entry", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.recordAudit(ctx, organizationID, actorID, "journal.create", entry.EntryID, fmt.Sprintf("draft created with %d lines", len(lines)))
	s.LogInfo(ctx, "journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("organization_id", organizationID),
		slog.Int("line_count", len(lines)))

	entry.Lines = lines
	return &entry, nil
}

// GetJournalEntry retrieves a journal entry with its lines.
func (s *journalService) GetJournalEntry(ctx context.Context, organizationID, entryID string, actorID string) (*domain.JournalEntry, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch journal lines", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListJournalEntries retrieves a paginated list of an organization's entries.
func (s *journalService) ListJournalEntries(ctx context.Context, organizationID string, params dto.ListJournalEntriesParams, actorID string) (*dto.ListJournalEntriesResponse, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntriesByOrganization(ctx, organizationID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "failed to list journal entries", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	resp := &dto.ListJournalEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return resp, nil
}

// UpdateJournalEntry updates the header fields of a draft entry. Posted
// entries are immutable; un-post them first.
func (s *journalService) UpdateJournalEntry(ctx context.Context, organizationID, entryID string, req dto.UpdateJournalEntryRequest, actorID string) (*domain.JournalEntry, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %s is %s, only drafts can be edited", apperrors.ErrConflict, entryID, entry.Status)
	}

	updated := false
	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
		updated = true
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
		updated = true
	}
	if req.Description != nil {
		if *req.Description == "" {
			return nil, apperrors.NewValidationError("journal.description", "description must not be empty")
		}
		entry.Description = *req.Description
		updated = true
	}
	if !updated {
		return entry, nil
	}

	entry.Touch(actorID, time.Now().UTC())
	if err := s.journalRepo.UpdateEntryHeader(ctx, *entry); err != nil {
		s.LogError(ctx, err, "failed to update journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}

	s.LogInfo(ctx, "journal entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteJournalEntry removes a draft entry and its lines.
func (s *journalService) DeleteJournalEntry(ctx context.Context, organizationID, entryID string, actorID string) error {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	if entry.Status != domain.Draft {
		return fmt.Errorf("%w: entry %s is %s, only drafts can be deleted", apperrors.ErrConflict, entryID, entry.Status)
	}

	if err := s.journalRepo.DeleteDraftEntry(ctx, organizationID, entryID); err != nil {
		s.LogError(ctx, err, "failed to delete journal entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	s.recordAudit(ctx, organizationID, actorID, "journal.delete", entryID, "draft deleted")
	s.LogInfo(ctx, "journal entry deleted", slog.String("entry_id", entryID))
	return nil
}

// PostJournalEntry validates the double-entry rules and atomically flips the
// entry to posted while writing its derived ledger entries. Validation failure
// leaves the entry draft with nothing written. Companions commit or roll back
// with the posting.
func (s *journalService) PostJournalEntry(ctx context.Context, organizationID, entryID string, actorID string, companions ...portsrepo.PostCompanion) (*domain.JournalEntry, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	if entry.Status == domain.Posted {
		return nil, fmt.Errorf("%w: entry %s is already posted", apperrors.ErrConflict, entryID)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}

	if err := s.validateBalanced(lines); err != nil {
		return nil, err
	}
	if err := s.validateLineShape(ctx, organizationID, lines); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry.Status = domain.Posted
	entry.Touch(actorID, now)

	derived := accounting.DeriveLedgerEntries(*entry, lines, actorID, now)
	if err := s.journalRepo.PostEntry(ctx, *entry, derived, companions...); err != nil {
		s.LogError(ctx, err, "failed to post journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post journal entry %s: %w", entryID, err)
	}

	s.recordAudit(ctx, organizationID, actorID, "journal.post", entryID, fmt.Sprintf("posted, %d ledger entries derived", len(derived)))
	s.LogInfo(ctx, "journal entry posted",
		slog.String("entry_id", entryID),
		slog.String("organization_id", organizationID),
		slog.Int("derived_count", len(derived)))

	entry.Lines = lines
	return entry, nil
}

// UnpostJournalEntry reverts a posted entry to draft, deleting its derived
// ledger entries atomically.
func (s *journalService) UnpostJournalEntry(ctx context.Context, organizationID, entryID string, actorID string) (*domain.JournalEntry, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	if entry.Status != domain.Posted {
		return nil, fmt.Errorf("%w: entry %s is %s, only posted entries can be un-posted", apperrors.ErrConflict, entryID, entry.Status)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}

	entry.Status = domain.Draft
	entry.Touch(actorID, time.Now().UTC())

	if err := s.journalRepo.UnpostEntry(ctx, *entry, lines); err != nil {
		s.LogError(ctx, err, "failed to un-post journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to un-post journal entry %s: %w", entryID, err)
	}

	s.recordAudit(ctx, organizationID, actorID, "journal.unpost", entryID, "reverted to draft")
	s.LogInfo(ctx, "journal entry un-posted", slog.String("entry_id", entryID))

	entry.Lines = lines
	return entry, nil
}

// recordAudit writes an audit trail row. Audit failures are logged, not
// propagated; the business operation already committed.
func (s *journalService) recordAudit(ctx context.Context, organizationID, actorID, action, entryID, detail string) {
	if s.auditSvc == nil {
		return
	}
	if err := s.auditSvc.RecordAction(ctx, organizationID, actorID, action, "journal_entry", entryID, detail, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "failed to record audit entry", slog.String("action", action), slog.String("entry_id", entryID))
	}
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
