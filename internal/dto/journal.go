package dto

import (
	"time"

	"github.com/rentora-app/rentora_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryItemResponse is one line of a journal entry view.
type JournalEntryItemResponse struct {
	LineNumber  int             `json:"lineNumber"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// JournalEntryResponse is the journal entry view returned to callers.
type JournalEntryResponse struct {
	EntryID     string                     `json:"entryID"`
	CompanyID   string                     `json:"companyID"`
	EntryNumber string                     `json:"entryNumber"`
	EntryDate   time.Time                  `json:"entryDate"`
	EntryType   string                     `json:"entryType"`
	Description string                     `json:"description"`
	TotalDebit  decimal.Decimal            `json:"totalDebit"`
	TotalCredit decimal.Decimal            `json:"totalCredit"`
	Status      string                     `json:"status"`
	Reference   string                     `json:"reference,omitempty"`
	Items       []JournalEntryItemResponse `json:"items,omitempty"`
}

// ToJournalEntryResponse converts a domain journal entry to its view.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:     e.EntryID,
		CompanyID:   e.CompanyID,
		EntryNumber: e.EntryNumber,
		EntryDate:   e.EntryDate,
		EntryType:   string(e.EntryType),
		Description: e.Description,
		TotalDebit:  e.TotalDebit,
		TotalCredit: e.TotalCredit,
		Status:      string(e.Status),
		Reference:   e.Reference,
	}
	if len(e.Items) > 0 {
		resp.Items = make([]JournalEntryItemResponse, len(e.Items))
		for i, item := range e.Items {
			resp.Items[i] = JournalEntryItemResponse{
				LineNumber:  item.LineNumber,
				AccountCode: item.AccountCode,
				Debit:       item.Debit,
				Credit:      item.Credit,
				Description: item.Description,
			}
		}
	}
	return resp
}

// ListJournalEntriesParams holds parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListJournalEntriesResponse is a paginated page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}
