package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rentora-app/rentora_backend/internal/apperrors"
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	portsrepo "github.com/rentora-app/rentora_backend/internal/core/ports/repositories"
	portssvc "github.com/rentora-app/rentora_backend/internal/core/ports/services"
	"github.com/rentora-app/rentora_backend/internal/core/services"
)

// --- Mock StockRepository ---
type MockStockRepository struct {
	mock.Mock
}

var _ portsrepo.StockRepositoryWithTx = (*MockStockRepository)(nil)

func (m *MockStockRepository) FindEquipmentByID(ctx context.Context, equipmentID string) (*domain.Equipment, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockStockRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.StockMovement, error) {
	args := m.Called(ctx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockMovement), args.Error(1)
}

func (m *MockStockRepository) ListMovementsByEquipment(ctx context.Context, equipmentID string, limit, offset int) ([]domain.StockMovement, error) {
	args := m.Called(ctx, equipmentID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockStockRepository) FindEquipmentForUpdate(ctx context.Context, tx pgx.Tx, equipmentID string) (*domain.Equipment, error) {
	args := m.Called(ctx, tx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockStockRepository) SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error {
	args := m.Called(ctx, tx, movement)
	return args.Error(0)
}

func (m *MockStockRepository) UpdateEquipmentQuantityInTx(ctx context.Context, tx pgx.Tx, equipmentID string, quantity int64, userID string, now time.Time) error {
	args := m.Called(ctx, tx, equipmentID, quantity, userID, now)
	return args.Error(0)
}

func (m *MockStockRepository) ReconcileMovement(ctx context.Context, movementID, invoiceID string, userID string, now time.Time) error {
	args := m.Called(ctx, movementID, invoiceID, userID, now)
	return args.Error(0)
}

func (m *MockStockRepository) FindActiveAlertByEquipment(ctx context.Context, equipmentID string) (*domain.StockAlert, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockAlert), args.Error(1)
}

func (m *MockStockRepository) SaveAlert(ctx context.Context, alert domain.StockAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockStockRepository) ResolveAlert(ctx context.Context, alertID string, now time.Time) error {
	args := m.Called(ctx, alertID, now)
	return args.Error(0)
}

func (m *MockStockRepository) ListActiveAlertsByCompany(ctx context.Context, companyID string) ([]domain.StockAlert, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockAlert), args.Error(1)
}

func (m *MockStockRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockStockRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockStockRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite ---
type StockServiceTestSuite struct {
	suite.Suite
	mockStockRepo *MockStockRepository
	service       portssvc.StockSvcFacade
	companyID     string
	userID        string
	equipment     *domain.Equipment
}

func (s *StockServiceTestSuite) SetupTest() {
	s.mockStockRepo = new(MockStockRepository)
	s.service = services.NewStockService(s.mockStockRepo)

	s.companyID = "company-1"
	s.userID = "user-1"
	s.equipment = &domain.Equipment{
		EquipmentID: "eq-1",
		CompanyID:   s.companyID,
		Code:        "SCAFF-01",
		Name:        "Scaffolding set",
		Quantity:    10,
	}
}

func (s *StockServiceTestSuite) expectMovementTx() {
	ctx := context.Background()
	s.mockStockRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockStockRepo.On("Rollback", ctx, mock.Anything).Return(nil)
	s.mockStockRepo.On("FindEquipmentForUpdate", ctx, mock.Anything, s.equipment.EquipmentID).Return(s.equipment, nil).Once()
}

func (s *StockServiceTestSuite) TestRecordRentalOutCapturesBeforeAfter() {
	ctx := context.Background()
	s.expectMovementTx()

	var saved domain.StockMovement
	s.mockStockRepo.On("SaveMovementInTx", ctx, mock.Anything, mock.AnythingOfType("domain.StockMovement")).
		Run(func(args mock.Arguments) { saved = args.Get(2).(domain.StockMovement) }).Return(nil).Once()
	s.mockStockRepo.On("UpdateEquipmentQuantityInTx", ctx, mock.Anything, s.equipment.EquipmentID, int64(7), s.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	s.mockStockRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	// 7 left is above the threshold, no alert to maintain
	s.mockStockRepo.On("FindActiveAlertByEquipment", ctx, s.equipment.EquipmentID).Return(nil, apperrors.ErrNotFound).Once()

	mv, err := s.service.RecordMovement(ctx, domain.StockMovement{
		CompanyID:    s.companyID,
		EquipmentID:  s.equipment.EquipmentID,
		MovementType: domain.MovementRentalOut,
		Quantity:     3,
	}, s.userID)

	s.Require().NoError(err)
	s.NotEmpty(mv.MovementID)
	s.Equal(domain.DirectionOut, mv.Direction, "rental_out implies the out direction")
	s.Equal(int64(10), mv.StockBefore)
	s.Equal(int64(7), mv.StockAfter)
	s.Equal(int64(10), saved.StockBefore)
	s.Equal(int64(7), saved.StockAfter)
	s.mockStockRepo.AssertExpectations(s.T())
	s.mockStockRepo.AssertNotCalled(s.T(), "SaveAlert", mock.Anything, mock.Anything)
}

func (s *StockServiceTestSuite) TestRecordMovementInsufficientStock() {
	ctx := context.Background()
	s.equipment.Quantity = 2
	s.expectMovementTx()

	_, err := s.service.RecordMovement(ctx, domain.StockMovement{
		CompanyID:    s.companyID,
		EquipmentID:  s.equipment.EquipmentID,
		MovementType: domain.MovementRentalOut,
		Quantity:     3,
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInsufficientStock)
	s.mockStockRepo.AssertNotCalled(s.T(), "SaveMovementInTx", mock.Anything, mock.Anything, mock.Anything)
	s.mockStockRepo.AssertNotCalled(s.T(), "Commit", mock.Anything, mock.Anything)
}

func (s *StockServiceTestSuite) TestRecordMovementRejectsBadInput() {
	ctx := context.Background()

	_, err := s.service.RecordMovement(ctx, domain.StockMovement{
		CompanyID:    s.companyID,
		EquipmentID:  s.equipment.EquipmentID,
		MovementType: domain.MovementRentalOut,
		Quantity:     0,
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation)

	// Adjustments carry no implied direction
	_, err = s.service.RecordMovement(ctx, domain.StockMovement{
		CompanyID:    s.companyID,
		EquipmentID:  s.equipment.EquipmentID,
		MovementType: domain.MovementAdjustment,
		Quantity:     1,
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.RecordMovement(ctx, domain.StockMovement{
		CompanyID:    s.companyID,
		EquipmentID:  s.equipment.EquipmentID,
		MovementType: "teleport",
		Quantity:     1,
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation)

	s.mockStockRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *StockServiceTestSuite) TestRecordMovementEquipmentFromOtherCompany() {
	ctx := context.Background()
	s.equipment.CompanyID = "another-company"
	s.expectMovementTx()

	_, err := s.service.RecordMovement(ctx, domain.StockMovement{
		CompanyID:    s.companyID,
		EquipmentID:  s.equipment.EquipmentID,
		MovementType: domain.MovementRentalReturn,
		Quantity:     1,
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StockServiceTestSuite) TestOutboundToZeroRaisesOutOfStockAlert() {
	ctx := context.Background()
	s.equipment.Quantity = 4
	s.expectMovementTx()

	s.mockStockRepo.On("SaveMovementInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	s.mockStockRepo.On("UpdateEquipmentQuantityInTx", ctx, mock.Anything, s.equipment.EquipmentID, int64(0), s.userID, mock.Anything).
		Return(nil).Once()
	s.mockStockRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	// An active low_stock alert exists and must be replaced
	existing := &domain.StockAlert{
		AlertID:     "alert-1",
		EquipmentID: s.equipment.EquipmentID,
		AlertType:   domain.AlertLowStock,
		Severity:    domain.SeverityHigh,
		Status:      "active",
	}
	s.mockStockRepo.On("FindActiveAlertByEquipment", ctx, s.equipment.EquipmentID).Return(existing, nil).Once()
	s.mockStockRepo.On("ResolveAlert", ctx, "alert-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	var alert domain.StockAlert
	s.mockStockRepo.On("SaveAlert", ctx, mock.AnythingOfType("domain.StockAlert")).
		Run(func(args mock.Arguments) { alert = args.Get(1).(domain.StockAlert) }).Return(nil).Once()

	_, err := s.service.RecordMovement(ctx, domain.StockMovement{
		CompanyID:    s.companyID,
		EquipmentID:  s.equipment.EquipmentID,
		MovementType: domain.MovementRentalOut,
		Quantity:     4,
	}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.AlertOutOfStock, alert.AlertType)
	s.Equal(domain.SeverityCritical, alert.Severity)
	s.Equal(int64(0), alert.CurrentStock)
	s.mockStockRepo.AssertExpectations(s.T())
}

func (s *StockServiceTestSuite) TestLowStockSeverityThresholds() {
	ctx := context.Background()

	cases := []struct {
		after    int64
		severity domain.AlertSeverity
	}{
		{5, domain.SeverityHigh},
		{2, domain.SeverityCritical},
	}
	for _, tc := range cases {
		s.SetupTest()
		s.equipment.Quantity = tc.after + 1
		s.expectMovementTx()

		s.mockStockRepo.On("SaveMovementInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
		s.mockStockRepo.On("UpdateEquipmentQuantityInTx", ctx, mock.Anything, s.equipment.EquipmentID, tc.after, s.userID, mock.Anything).
			Return(nil).Once()
		s.mockStockRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
		s.mockStockRepo.On("FindActiveAlertByEquipment", ctx, s.equipment.EquipmentID).Return(nil, apperrors.ErrNotFound).Once()

		var alert domain.StockAlert
		s.mockStockRepo.On("SaveAlert", ctx, mock.AnythingOfType("domain.StockAlert")).
			Run(func(args mock.Arguments) { alert = args.Get(1).(domain.StockAlert) }).Return(nil).Once()

		_, err := s.service.RecordMovement(ctx, domain.StockMovement{
			CompanyID:    s.companyID,
			EquipmentID:  s.equipment.EquipmentID,
			MovementType: domain.MovementRentalOut,
			Quantity:     1,
		}, s.userID)

		s.Require().NoError(err)
		s.Equal(domain.AlertLowStock, alert.AlertType)
		s.Equal(tc.severity, alert.Severity, "quantity %d", tc.after)
	}
}

func (s *StockServiceTestSuite) TestInboundAboveThresholdResolvesAlert() {
	ctx := context.Background()
	s.equipment.Quantity = 2
	s.expectMovementTx()

	s.mockStockRepo.On("SaveMovementInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	s.mockStockRepo.On("UpdateEquipmentQuantityInTx", ctx, mock.Anything, s.equipment.EquipmentID, int64(12), s.userID, mock.Anything).
		Return(nil).Once()
	s.mockStockRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	existing := &domain.StockAlert{AlertID: "alert-2", AlertType: domain.AlertLowStock, Severity: domain.SeverityCritical, Status: "active"}
	s.mockStockRepo.On("FindActiveAlertByEquipment", ctx, s.equipment.EquipmentID).Return(existing, nil).Once()
	s.mockStockRepo.On("ResolveAlert", ctx, "alert-2", mock.AnythingOfType("time.Time")).Return(nil).Once()

	mv, err := s.service.RecordMovement(ctx, domain.StockMovement{
		CompanyID:    s.companyID,
		EquipmentID:  s.equipment.EquipmentID,
		MovementType: domain.MovementRentalReturn,
		Quantity:     10,
	}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.DirectionIn, mv.Direction)
	s.Equal(int64(12), mv.StockAfter)
	s.mockStockRepo.AssertNotCalled(s.T(), "SaveAlert", mock.Anything, mock.Anything)
	s.mockStockRepo.AssertExpectations(s.T())
}

func (s *StockServiceTestSuite) TestAlertFailureDoesNotUndoMovement() {
	ctx := context.Background()
	s.equipment.Quantity = 3
	s.expectMovementTx()

	s.mockStockRepo.On("SaveMovementInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	s.mockStockRepo.On("UpdateEquipmentQuantityInTx", ctx, mock.Anything, s.equipment.EquipmentID, int64(1), s.userID, mock.Anything).
		Return(nil).Once()
	s.mockStockRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	s.mockStockRepo.On("FindActiveAlertByEquipment", ctx, s.equipment.EquipmentID).Return(nil, errors.New("connection reset")).Once()

	mv, err := s.service.RecordMovement(ctx, domain.StockMovement{
		CompanyID:    s.companyID,
		EquipmentID:  s.equipment.EquipmentID,
		MovementType: domain.MovementRentalOut,
		Quantity:     2,
	}, s.userID)

	s.Require().NoError(err, "The committed movement survives an alert maintenance failure")
	s.Equal(int64(1), mv.StockAfter)
}

func (s *StockServiceTestSuite) TestAdjustmentWithExplicitDirection() {
	ctx := context.Background()
	s.expectMovementTx()

	s.mockStockRepo.On("SaveMovementInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	s.mockStockRepo.On("UpdateEquipmentQuantityInTx", ctx, mock.Anything, s.equipment.EquipmentID, int64(13), s.userID, mock.Anything).
		Return(nil).Once()
	s.mockStockRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	s.mockStockRepo.On("FindActiveAlertByEquipment", ctx, s.equipment.EquipmentID).Return(nil, apperrors.ErrNotFound).Once()

	mv, err := s.service.RecordMovement(ctx, domain.StockMovement{
		CompanyID:    s.companyID,
		EquipmentID:  s.equipment.EquipmentID,
		MovementType: domain.MovementAdjustment,
		Direction:    domain.DirectionIn,
		Quantity:     3,
	}, s.userID)

	s.Require().NoError(err)
	s.Equal(int64(13), mv.StockAfter)
}

func (s *StockServiceTestSuite) TestReconcileMovementIdempotent() {
	ctx := context.Background()
	invoiceID := "inv-1"
	mv := &domain.StockMovement{
		MovementID:  "mov-1",
		CompanyID:   s.companyID,
		EquipmentID: s.equipment.EquipmentID,
		InvoiceID:   &invoiceID,
	}
	s.mockStockRepo.On("FindMovementByID", ctx, "mov-1").Return(mv, nil).Once()

	got, err := s.service.ReconcileMovement(ctx, s.companyID, "mov-1", invoiceID, s.userID)

	s.Require().NoError(err)
	s.Equal(invoiceID, *got.InvoiceID)
	s.mockStockRepo.AssertNotCalled(s.T(), "ReconcileMovement", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *StockServiceTestSuite) TestReconcileMovementCrossInvoiceConflict() {
	ctx := context.Background()
	otherInvoice := "inv-other"
	mv := &domain.StockMovement{
		MovementID: "mov-1",
		CompanyID:  s.companyID,
		InvoiceID:  &otherInvoice,
	}
	s.mockStockRepo.On("FindMovementByID", ctx, "mov-1").Return(mv, nil).Once()

	_, err := s.service.ReconcileMovement(ctx, s.companyID, "mov-1", "inv-1", s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *StockServiceTestSuite) TestReconcileMovementSetsLink() {
	ctx := context.Background()
	mv := &domain.StockMovement{MovementID: "mov-1", CompanyID: s.companyID}
	s.mockStockRepo.On("FindMovementByID", ctx, "mov-1").Return(mv, nil).Once()
	s.mockStockRepo.On("ReconcileMovement", ctx, "mov-1", "inv-1", s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	got, err := s.service.ReconcileMovement(ctx, s.companyID, "mov-1", "inv-1", s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(got.InvoiceID)
	s.Equal("inv-1", *got.InvoiceID)
	s.mockStockRepo.AssertExpectations(s.T())
}

func (s *StockServiceTestSuite) TestListMovementsChecksCompany() {
	ctx := context.Background()
	s.equipment.CompanyID = "another-company"
	s.mockStockRepo.On("FindEquipmentByID", ctx, s.equipment.EquipmentID).Return(s.equipment, nil).Once()

	_, err := s.service.ListMovements(ctx, s.companyID, s.equipment.EquipmentID, 20, 0)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockStockRepo.AssertNotCalled(s.T(), "ListMovementsByEquipment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStockServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StockServiceTestSuite))
}
