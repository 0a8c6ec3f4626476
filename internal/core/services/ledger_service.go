package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rentora-app/rentora_backend/internal/apperrors"
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	portsrepo "github.com/rentora-app/rentora_backend/internal/core/ports/repositories"
	portssvc "github.com/rentora-app/rentora_backend/internal/core/ports/services"
	"github.com/rentora-app/rentora_backend/internal/middleware"
	"github.com/rentora-app/rentora_backend/internal/utils/accounting"
)

// ledgerService is the only writer of journal entries. Posting happens in one
// database transaction: number allocation, header and line inserts, the
// persisted-sum re-validation, the DRAFT to POSTED flip and the account total
// updates all commit or roll back together.
type ledgerService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates a new ledger writer/reader service.
func NewLedgerService(journalRepo portsrepo.JournalRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// entryNumberFor formats the human-facing entry number from the allocated
// per-company, per-year sequence, e.g. JE-2026-000042.
func entryNumberFor(year int, seq int64) string {
	return fmt.Sprintf("JE-%d-%06d", year, seq)
}

func (s *ledgerService) Post(ctx context.Context, draft domain.JournalEntryDraft, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if draft.CompanyID == "" {
		return nil, fmt.Errorf("%w: draft has no company", apperrors.ErrValidation)
	}
	if err := accounting.ValidateBalanced(draft.Lines); err != nil {
		if !draft.TotalDebit().Equal(draft.TotalCredit()) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrLedgerImbalance, err)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	// Distinct account codes, first-seen order.
	codes := make([]string, 0, len(draft.Lines))
	seen := make(map[string]bool, len(draft.Lines))
	for _, l := range draft.Lines {
		if !seen[l.AccountCode] {
			seen[l.AccountCode] = true
			codes = append(codes, l.AccountCode)
		}
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin posting transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	// Lock the affected account rows for the whole posting so concurrent
	// entries serialize their balance updates.
	locked, err := s.accountRepo.LockAccountsByCodesForUpdate(ctx, tx, draft.CompanyID, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	for _, code := range codes {
		acc, ok := locked[code]
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, code)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: %s is inactive", apperrors.ErrUnknownAccount, code)
		}
	}

	year := draft.EntryDate.Year()
	seq, err := s.journalRepo.NextEntrySequenceInTx(ctx, tx, draft.CompanyID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate entry sequence: %w", err)
	}

	now := time.Now()
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		CompanyID:   draft.CompanyID,
		EntryNumber: entryNumberFor(year, seq),
		EntryDate:   draft.EntryDate,
		EntryType:   draft.EntryType,
		Description: draft.Description,
		TotalDebit:  draft.TotalDebit(),
		TotalCredit: draft.TotalCredit(),
		Status:      domain.Draft,
		Reference:   draft.Reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	items := make([]domain.JournalEntryItem, len(draft.Lines))
	for i, l := range draft.Lines {
		items[i] = domain.JournalEntryItem{
			EntryID:     entry.EntryID,
			LineNumber:  i + 1,
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}

	if err := s.journalRepo.SaveEntryInTx(ctx, tx, entry, items); err != nil {
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	// Re-read the persisted lines and check the sums before flipping to
	// POSTED. This catches any divergence between what was built and what
	// landed in the rows.
	sums, err := s.journalRepo.SumItemsInTx(ctx, tx, entry.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-validate entry sums: %w", err)
	}
	if !sums.TotalDebit.Equal(sums.TotalCredit) || !sums.TotalDebit.Equal(entry.TotalDebit) {
		return nil, fmt.Errorf("%w: persisted sums debit=%s credit=%s, expected %s",
			apperrors.ErrLedgerImbalance, sums.TotalDebit, sums.TotalCredit, entry.TotalDebit)
	}

	if err := s.journalRepo.MarkEntryPostedInTx(ctx, tx, entry.EntryID); err != nil {
		return nil, fmt.Errorf("failed to mark entry posted: %w", err)
	}

	// Fold the lines into per-account debit/credit contributions and apply
	// them to the locked chart rows.
	totals := make(map[string]portsrepo.AccountTotals, len(codes))
	for _, item := range items {
		t := totals[item.AccountCode]
		t.Debit = t.Debit.Add(item.Debit)
		t.Credit = t.Credit.Add(item.Credit)
		totals[item.AccountCode] = t
	}
	if err := s.accountRepo.ApplyEntryTotalsInTx(ctx, tx, draft.CompanyID, totals, userID, now); err != nil {
		return nil, fmt.Errorf("failed to apply account totals: %w", err)
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit posting transaction: %w", err)
	}

	entry.Status = domain.Posted
	entry.Items = items
	logger.Info("Posted journal entry",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("company_id", entry.CompanyID),
		slog.String("entry_type", string(entry.EntryType)),
		slog.String("total", entry.TotalDebit.String()),
	)
	return &entry, nil
}

func (s *ledgerService) GetEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", entryID))
	}
	items, err := s.journalRepo.FindItemsByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry items: %w", err)
	}
	entry.Items = items
	return entry, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, companyID string, limit int, nextToken string) ([]domain.JournalEntry, string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var tokenPtr *string
	if nextToken != "" {
		tokenPtr = &nextToken
	}
	entries, next, err := s.journalRepo.ListEntriesByCompany(ctx, companyID, limit, tokenPtr)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list journal entries: %w", err)
	}
	out := ""
	if next != nil {
		out = *next
	}
	return entries, out, nil
}
