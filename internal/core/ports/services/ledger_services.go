package services

import (
	"context"

	"github.com/rentora-app/rentora_backend/internal/core/domain"
)

// LedgerWriterSvc posts balanced journal entries to the ledger.
type LedgerWriterSvc interface {
	// Post persists a draft as a POSTED journal entry inside a single
	// transaction: allocates the next entry number, inserts the header and
	// lines, re-validates the persisted sums, and applies the per-account
	// debit/credit totals to the chart.
	Post(ctx context.Context, draft domain.JournalEntryDraft, userID string) (*domain.JournalEntry, error)
}

// LedgerReaderSvc defines read operations over posted journal entries.
type LedgerReaderSvc interface {
	// GetEntryByID retrieves a journal entry with its lines.
	GetEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a company's entries newest first. nextToken is
	// an opaque pagination cursor; the returned token is empty on the last
	// page.
	ListEntries(ctx context.Context, companyID string, limit int, nextToken string) ([]domain.JournalEntry, string, error)
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
}
