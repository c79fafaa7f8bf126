package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
)

// CreateJournalLineRequest defines one line of a new journal entry.
type CreateJournalLineRequest struct {
	AccountID    string          `json:"accountID" validate:"required,uuid4"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	DC           domain.DCIndicator `json:"dc" validate:"required,oneof=D C"`
	CostCenterID *string         `json:"costCenterID" validate:"omitempty,uuid4"`
	ProjectID    *string         `json:"projectID" validate:"omitempty,uuid4"`
}

// CreateJournalEntryRequest defines the data needed to create a draft journal entry.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time                  `json:"entryDate" validate:"required"`
	Reference   string                     `json:"reference"`
	Description string                     `json:"description" validate:"required"`
	Lines       []CreateJournalLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// UpdateJournalEntryRequest defines the fields a draft entry may change.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateJournalEntryRequest struct {
	EntryDate   *time.Time `json:"entryDate"`
	Reference   *string    `json:"reference"`
	Description *string    `json:"description"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID       string             `json:"lineID"`
	AccountID    string             `json:"accountID"`
	Amount       decimal.Decimal    `json:"amount"`
	DC           domain.DCIndicator `json:"dc"`
	CostCenterID *string            `json:"costCenterID,omitempty"`
	ProjectID    *string            `json:"projectID,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID     string                `json:"entryID"`
	EntryDate   time.Time             `json:"entryDate"`
	Reference   string                `json:"reference"`
	Description string                `json:"description"`
	Status      domain.JournalStatus  `json:"status"`
	Lines       []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	CreatedBy   string                `json:"createdBy"`
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Limit     int     `json:"limit"`
	NextToken *string `json:"nextToken"`
}

// ListJournalEntriesResponse wraps a page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalLine to its response DTO.
func ToJournalLineResponse(line *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:       line.LineID,
		AccountID:    line.AccountID,
		Amount:       line.Amount,
		DC:           line.DC,
		CostCenterID: line.CostCenterID,
		ProjectID:    line.ProjectID,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:     entry.EntryID,
		EntryDate:   entry.EntryDate,
		Reference:   entry.Reference,
		Description: entry.Description,
		Status:      entry.Status,
		CreatedAt:   entry.CreatedAt,
		CreatedBy:   entry.CreatedBy,
	}
	if len(entry.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(entry.Lines))
		for i := range entry.Lines {
			resp.Lines[i] = ToJournalLineResponse(&entry.Lines[i])
		}
	}
	return resp
}
