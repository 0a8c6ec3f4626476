package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal entries.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry header by its ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindItemsByEntryID retrieves all line items of an entry, ordered by
	// line number.
	FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryItem, error)

	// ListEntriesByCompany retrieves a keyset-paginated list of entries for a
	// company, newest first. The returned token fetches the next page.
	ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalTransactionSupport defines the in-transaction operations of the
// ledger writer.
type JournalTransactionSupport interface {
	// NextEntrySequenceInTx atomically increments and returns the per-company,
	// per-year entry sequence. The increment is part of the surrounding
	// transaction, so an aborted posting never burns a reusable number.
	NextEntrySequenceInTx(ctx context.Context, tx pgx.Tx, companyID string, year int) (int64, error)

	// SaveEntryInTx inserts the entry header and all of its line items.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, items []domain.JournalEntryItem) error

	// SumItemsInTx re-reads the persisted line items and returns their debit
	// and credit sums, used for the in-transaction balance re-validation.
	SumItemsInTx(ctx context.Context, tx pgx.Tx, entryID string) (SumResult, error)

	// MarkEntryPostedInTx flips the entry status from DRAFT to POSTED.
	MarkEntryPostedInTx(ctx context.Context, tx pgx.Tx, entryID string) error
}

// SumResult carries the re-validated sums of an entry's line items.
type SumResult struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// JournalRepositoryFacade combines journal reads with in-transaction writes.
type JournalRepositoryFacade interface {
	JournalReader
	JournalTransactionSupport
}

// JournalRepositoryWithTx extends the facade with transaction control.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
