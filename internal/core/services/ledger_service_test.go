package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rentora-app/rentora_backend/internal/apperrors"
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	portsrepo "github.com/rentora-app/rentora_backend/internal/core/ports/repositories"
	portssvc "github.com/rentora-app/rentora_backend/internal/core/ports/services"
	"github.com/rentora-app/rentora_backend/internal/core/services"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryItem, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryItem), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedToken, args.Error(2)
}

func (m *MockJournalRepository) NextEntrySequenceInTx(ctx context.Context, tx pgx.Tx, companyID string, year int) (int64, error) {
	args := m.Called(ctx, tx, companyID, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, items []domain.JournalEntryItem) error {
	args := m.Called(ctx, tx, entry, items)
	return args.Error(0)
}

func (m *MockJournalRepository) SumItemsInTx(ctx context.Context, tx pgx.Tx, entryID string) (portsrepo.SumResult, error) {
	args := m.Called(ctx, tx, entryID)
	return args.Get(0).(portsrepo.SumResult), args.Error(1)
}

func (m *MockJournalRepository) MarkEntryPostedInTx(ctx context.Context, tx pgx.Tx, entryID string) error {
	args := m.Called(ctx, tx, entryID)
	return args.Error(0)
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) LockAccountsByCodesForUpdate(ctx context.Context, tx pgx.Tx, companyID string, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, companyID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyEntryTotalsInTx(ctx context.Context, tx pgx.Tx, companyID string, totals map[string]portsrepo.AccountTotals, userID string, now time.Time) error {
	args := m.Called(ctx, tx, companyID, totals, userID, now)
	return args.Error(0)
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.LedgerSvcFacade
	companyID       string
	userID          string
	draft           domain.JournalEntryDraft
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewLedgerService(s.mockJournalRepo, s.mockAccountRepo)

	s.companyID = "company-1"
	s.userID = "user-1"
	s.draft = domain.JournalEntryDraft{
		CompanyID:   s.companyID,
		EntryDate:   time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC),
		EntryType:   domain.EntryAutoInvoice,
		Description: "Sales invoice INV-2026-17",
		Reference:   "INV-2026-17",
		Lines: []domain.DraftLine{
			{AccountCode: domain.CodeAccountsReceivable, Debit: decimal.NewFromInt(118)},
			{AccountCode: domain.CodeSalesRevenue, Credit: decimal.NewFromInt(100)},
			{AccountCode: domain.CodeVATPayable, Credit: decimal.NewFromInt(18)},
		},
	}
}

func (s *LedgerServiceTestSuite) lockedAccounts(codes ...string) map[string]domain.Account {
	out := make(map[string]domain.Account, len(codes))
	for _, code := range codes {
		out[code] = domain.Account{
			AccountID: "acc-" + code,
			CompanyID: s.companyID,
			Code:      code,
			IsActive:  true,
		}
	}
	return out
}

func (s *LedgerServiceTestSuite) TestPostSuccess() {
	ctx := context.Background()
	codes := []string{domain.CodeAccountsReceivable, domain.CodeSalesRevenue, domain.CodeVATPayable}

	s.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockAccountRepo.On("LockAccountsByCodesForUpdate", ctx, mock.Anything, s.companyID, codes).
		Return(s.lockedAccounts(codes...), nil).Once()
	s.mockJournalRepo.On("NextEntrySequenceInTx", ctx, mock.Anything, s.companyID, 2026).
		Return(int64(42), nil).Once()

	var savedEntry domain.JournalEntry
	var savedItems []domain.JournalEntryItem
	s.mockJournalRepo.On("SaveEntryInTx", ctx, mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryItem")).
		Run(func(args mock.Arguments) {
			savedEntry = args.Get(2).(domain.JournalEntry)
			savedItems = args.Get(3).([]domain.JournalEntryItem)
		}).Return(nil).Once()

	s.mockJournalRepo.On("SumItemsInTx", ctx, mock.Anything, mock.AnythingOfType("string")).
		Return(portsrepo.SumResult{TotalDebit: decimal.NewFromInt(118), TotalCredit: decimal.NewFromInt(118)}, nil).Once()
	s.mockJournalRepo.On("MarkEntryPostedInTx", ctx, mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()
	s.mockAccountRepo.On("ApplyEntryTotalsInTx", ctx, mock.Anything, s.companyID, mock.AnythingOfType("map[string]repositories.AccountTotals"), s.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	s.mockJournalRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	s.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	entry, err := s.service.Post(ctx, s.draft, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Equal("JE-2026-000042", entry.EntryNumber)
	s.Equal(domain.Posted, entry.Status)
	s.True(entry.TotalDebit.Equal(decimal.NewFromInt(118)))
	s.True(entry.TotalCredit.Equal(decimal.NewFromInt(118)))
	s.Equal(s.userID, entry.CreatedBy)
	s.Require().Len(entry.Items, 3)
	s.Equal(1, entry.Items[0].LineNumber)
	s.Equal(3, entry.Items[2].LineNumber)

	// The persisted header is saved as DRAFT and flipped in the same tx
	s.Equal(domain.Draft, savedEntry.Status)
	s.Len(savedItems, 3)

	s.mockJournalRepo.AssertExpectations(s.T())
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestPostImbalancedDraftNeverTouchesDatabase() {
	ctx := context.Background()
	s.draft.Lines = []domain.DraftLine{
		{AccountCode: domain.CodeAccountsReceivable, Debit: decimal.NewFromInt(100)},
		{AccountCode: domain.CodeSalesRevenue, Credit: decimal.NewFromInt(90)},
	}

	_, err := s.service.Post(ctx, s.draft, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrLedgerImbalance)
	s.mockJournalRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *LedgerServiceTestSuite) TestPostDoubleSidedLineFailsValidation() {
	ctx := context.Background()
	// Totals agree but one line carries both sides
	s.draft.Lines = []domain.DraftLine{
		{AccountCode: domain.CodeAccountsReceivable, Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(50)},
		{AccountCode: domain.CodeSalesRevenue, Debit: decimal.NewFromInt(50), Credit: decimal.NewFromInt(100)},
	}

	_, err := s.service.Post(ctx, s.draft, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.NotErrorIs(err, apperrors.ErrLedgerImbalance)
}

func (s *LedgerServiceTestSuite) TestPostUnknownAccountRollsBack() {
	ctx := context.Background()
	codes := []string{domain.CodeAccountsReceivable, domain.CodeSalesRevenue, domain.CodeVATPayable}

	s.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	// The VAT account is missing from the locked set
	s.mockAccountRepo.On("LockAccountsByCodesForUpdate", ctx, mock.Anything, s.companyID, codes).
		Return(s.lockedAccounts(domain.CodeAccountsReceivable, domain.CodeSalesRevenue), nil).Once()
	s.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	_, err := s.service.Post(ctx, s.draft, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnknownAccount)
	s.mockJournalRepo.AssertNotCalled(s.T(), "Commit", mock.Anything, mock.Anything)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestPostInactiveAccountRejected() {
	ctx := context.Background()
	codes := []string{domain.CodeAccountsReceivable, domain.CodeSalesRevenue, domain.CodeVATPayable}

	locked := s.lockedAccounts(codes...)
	inactive := locked[domain.CodeSalesRevenue]
	inactive.IsActive = false
	locked[domain.CodeSalesRevenue] = inactive

	s.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockAccountRepo.On("LockAccountsByCodesForUpdate", ctx, mock.Anything, s.companyID, codes).
		Return(locked, nil).Once()
	s.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	_, err := s.service.Post(ctx, s.draft, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnknownAccount)
}

func (s *LedgerServiceTestSuite) TestPostPersistedSumMismatchAborts() {
	ctx := context.Background()
	codes := []string{domain.CodeAccountsReceivable, domain.CodeSalesRevenue, domain.CodeVATPayable}

	s.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockAccountRepo.On("LockAccountsByCodesForUpdate", ctx, mock.Anything, s.companyID, codes).
		Return(s.lockedAccounts(codes...), nil).Once()
	s.mockJournalRepo.On("NextEntrySequenceInTx", ctx, mock.Anything, s.companyID, 2026).
		Return(int64(7), nil).Once()
	s.mockJournalRepo.On("SaveEntryInTx", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	// The rows disagree with what was built
	s.mockJournalRepo.On("SumItemsInTx", ctx, mock.Anything, mock.AnythingOfType("string")).
		Return(portsrepo.SumResult{TotalDebit: decimal.NewFromInt(118), TotalCredit: decimal.NewFromInt(117)}, nil).Once()
	s.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	_, err := s.service.Post(ctx, s.draft, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrLedgerImbalance)
	s.mockJournalRepo.AssertNotCalled(s.T(), "MarkEntryPostedInTx", mock.Anything, mock.Anything, mock.Anything)
	s.mockJournalRepo.AssertNotCalled(s.T(), "Commit", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestGetEntryByIDCompanyMismatch() {
	ctx := context.Background()
	entry := &domain.JournalEntry{EntryID: "entry-1", CompanyID: "another-company"}
	s.mockJournalRepo.On("FindEntryByID", ctx, "entry-1").Return(entry, nil).Once()

	_, err := s.service.GetEntryByID(ctx, s.companyID, "entry-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockJournalRepo.AssertNotCalled(s.T(), "FindItemsByEntryID", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestGetEntryByIDLoadsItems() {
	ctx := context.Background()
	entry := &domain.JournalEntry{EntryID: "entry-1", CompanyID: s.companyID}
	items := []domain.JournalEntryItem{
		{EntryID: "entry-1", LineNumber: 1, AccountCode: domain.CodeCash, Debit: decimal.NewFromInt(10)},
		{EntryID: "entry-1", LineNumber: 2, AccountCode: domain.CodeAccountsReceivable, Credit: decimal.NewFromInt(10)},
	}
	s.mockJournalRepo.On("FindEntryByID", ctx, "entry-1").Return(entry, nil).Once()
	s.mockJournalRepo.On("FindItemsByEntryID", ctx, "entry-1").Return(items, nil).Once()

	got, err := s.service.GetEntryByID(ctx, s.companyID, "entry-1")

	s.Require().NoError(err)
	s.Len(got.Items, 2)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestListEntriesClampsLimitAndMapsToken() {
	ctx := context.Background()
	entries := []domain.JournalEntry{{EntryID: "entry-1", CompanyID: s.companyID}}

	// Out-of-range limits fall back to the default page size
	s.mockJournalRepo.On("ListEntriesByCompany", ctx, s.companyID, 20, (*string)(nil)).
		Return(entries, "next-token", nil).Once()

	got, next, err := s.service.ListEntries(ctx, s.companyID, 0, "")
	s.Require().NoError(err)
	s.Len(got, 1)
	s.Equal("next-token", next)

	// A provided token is forwarded as a pointer
	token := "prev-token"
	s.mockJournalRepo.On("ListEntriesByCompany", ctx, s.companyID, 50, &token).
		Return([]domain.JournalEntry{}, nil, nil).Once()

	_, next, err = s.service.ListEntries(ctx, s.companyID, 50, token)
	s.Require().NoError(err)
	s.Empty(next)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
