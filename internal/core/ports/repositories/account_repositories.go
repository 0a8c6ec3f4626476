package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountTotals is the per-account debit/credit contribution of one posted
// journal entry, applied to the chart-of-accounts running totals.
type AccountTotals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByCode retrieves a company's account by its chart code.
	FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error)

	// ListAccountsByCompany retrieves the full chart of accounts for a company.
	ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations used inside the ledger
// writer's posting transaction.
type AccountTransactionSupport interface {
	// LockAccountsByCodesForUpdate selects accounts by code and locks the rows
	// for the duration of the transaction.
	LockAccountsByCodesForUpdate(ctx context.Context, tx pgx.Tx, companyID string, codes []string) (map[string]domain.Account, error)

	// ApplyEntryTotalsInTx adds the entry's per-account debit/credit totals to
	// the locked account rows.
	ApplyEntryTotalsInTx(ctx context.Context, tx pgx.Tx, companyID string, totals map[string]AccountTotals, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
