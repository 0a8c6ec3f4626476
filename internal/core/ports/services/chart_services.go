package services

import (
	"context"

	"github.com/rentora-app/rentora_backend/internal/core/domain"
)

// ChartReaderSvc defines read operations over the chart of accounts.
type ChartReaderSvc interface {
	// GetAccountByCode retrieves a company's account by chart code.
	GetAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error)

	// ChartFor returns a code-indexed snapshot of the company's chart, used
	// by the journal entry builder.
	ChartFor(ctx context.Context, companyID string) (domain.Chart, error)

	// ListAccounts retrieves the full chart for a company.
	ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error)
}

// ChartWriterSvc defines setup operations over the chart of accounts.
type ChartWriterSvc interface {
	// SeedDefaults creates the default chart for a company. Accounts that
	// already exist are left untouched.
	SeedDefaults(ctx context.Context, companyID, userID string) ([]domain.Account, error)
}

// ChartSvcFacade combines all chart-of-accounts service interfaces.
type ChartSvcFacade interface {
	ChartReaderSvc
	ChartWriterSvc
}
