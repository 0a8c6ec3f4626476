package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentora-app/rentora_backend/internal/apperrors"
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	portsrepo "github.com/rentora-app/rentora_backend/internal/core/ports/repositories"
	portssvc "github.com/rentora-app/rentora_backend/internal/core/ports/services"
	"github.com/rentora-app/rentora_backend/internal/middleware"
)

// defaultAccount describes one row of the per-company default chart, drawn
// from the Turkish uniform chart of accounts.
type defaultAccount struct {
	Code        string
	Name        string
	AccountType domain.AccountType
	Category    string
}

var defaultChart = []defaultAccount{
	{domain.CodeCash, "Kasa", domain.Asset, "cash"},
	{domain.CodeBank, "Bankalar", domain.Asset, "bank"},
	{domain.CodeAccountsReceivable, "Alıcılar", domain.Asset, "receivable"},
	{domain.CodeInventory, "Ticari Mallar", domain.Asset, "inventory"},
	{domain.CodeAccountsPayable, "Satıcılar", domain.Liability, "payable"},
	{domain.CodeVATPayable, "Hesaplanan KDV", domain.Liability, "tax"},
	{domain.CodeVATDeductible, "İndirilecek KDV", domain.Asset, "tax"},
	{domain.CodeSalesRevenue, "Yurtiçi Satışlar", domain.Revenue, "sales"},
	{domain.CodeInventoryAdjust, "Diğer Olağandışı Gider ve Zararlar", domain.Expense, "adjustment"},
	{domain.CodeGeneralExpenses, "Genel Yönetim Giderleri", domain.Expense, "operating"},
}

// chartService maintains the per-company chart of accounts.
type chartService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewChartService creates a new chart-of-accounts service.
func NewChartService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.ChartSvcFacade {
	return &chartService{accountRepo: accountRepo}
}

var _ portssvc.ChartSvcFacade = (*chartService)(nil)

func (s *chartService) GetAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	acc, err := s.accountRepo.FindAccountByCode(ctx, companyID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, code)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", code, err)
	}
	return acc, nil
}

func (s *chartService) ChartFor(ctx context.Context, companyID string) (domain.Chart, error) {
	accounts, err := s.accountRepo.ListAccountsByCompany(ctx, companyID)
	if err != nil {
		return domain.Chart{}, fmt.Errorf("failed to load chart of accounts for company %s: %w", companyID, err)
	}
	return domain.NewChart(companyID, accounts), nil
}

func (s *chartService) ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for company %s: %w", companyID, err)
	}
	return accounts, nil
}

// SeedDefaults creates any missing default accounts for the company. Existing
// accounts keep their balances and running totals untouched, so seeding is
// safe to repeat.
func (s *chartService) SeedDefaults(ctx context.Context, companyID, userID string) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	created := 0
	for _, def := range defaultChart {
		_, err := s.accountRepo.FindAccountByCode(ctx, companyID, def.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check account %s: %w", def.Code, err)
		}

		account := domain.Account{
			AccountID:   uuid.NewString(),
			CompanyID:   companyID,
			Code:        def.Code,
			Name:        def.Name,
			AccountType: def.AccountType,
			Category:    def.Category,
			IsActive:    true,
			TotalDebit:  decimal.Zero,
			TotalCredit: decimal.Zero,
			Balance:     decimal.Zero,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			// A concurrent seeder may have won the race on the unique code.
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			return nil, fmt.Errorf("failed to save account %s: %w", def.Code, err)
		}
		created++
	}

	logger.Info("Seeded default chart of accounts",
		slog.String("company_id", companyID),
		slog.Int("created", created),
	)
	return s.accountRepo.ListAccountsByCompany(ctx, companyID)
}
