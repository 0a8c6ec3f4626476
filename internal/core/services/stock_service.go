package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rentora-app/rentora_backend/internal/apperrors"
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	portsrepo "github.com/rentora-app/rentora_backend/internal/core/ports/repositories"
	portssvc "github.com/rentora-app/rentora_backend/internal/core/ports/services"
	"github.com/rentora-app/rentora_backend/internal/middleware"
)

// Stock thresholds below which alerts fire.
const (
	lowStockThreshold = 5
	criticalThreshold = 2
)

// stockService records stock movements and maintains low-stock alerts.
// The equipment quantity is only ever changed here, under a row lock, with a
// before/after snapshot written alongside every change.
type stockService struct {
	stockRepo portsrepo.StockRepositoryWithTx
}

// NewStockService creates a new stock movement service.
func NewStockService(stockRepo portsrepo.StockRepositoryWithTx) portssvc.StockSvcFacade {
	return &stockService{stockRepo: stockRepo}
}

var _ portssvc.StockSvcFacade = (*stockService)(nil)

func (s *stockService) RecordMovement(ctx context.Context, mv domain.StockMovement, userID string) (*domain.StockMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if mv.Quantity <= 0 {
		return nil, fmt.Errorf("%w: movement quantity must be positive, got %d", apperrors.ErrValidation, mv.Quantity)
	}
	switch mv.MovementType {
	case domain.MovementRentalOut, domain.MovementRentalReturn:
		dir, _ := mv.MovementType.DefaultDirection()
		mv.Direction = dir
	case domain.MovementAdjustment:
		if mv.Direction != domain.DirectionIn && mv.Direction != domain.DirectionOut {
			return nil, fmt.Errorf("%w: adjustment movements need an explicit direction", apperrors.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: unknown movement type %q", apperrors.ErrValidation, mv.MovementType)
	}

	tx, err := s.stockRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin movement transaction: %w", err)
	}
	defer s.stockRepo.Rollback(ctx, tx)

	equipment, err := s.stockRepo.FindEquipmentForUpdate(ctx, tx, mv.EquipmentID)
	if err != nil {
		return nil, err
	}
	if equipment.CompanyID != mv.CompanyID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("equipment %s not found", mv.EquipmentID))
	}

	before := equipment.Quantity
	after := before
	if mv.Direction == domain.DirectionOut {
		after = before - mv.Quantity
		if after < 0 {
			return nil, fmt.Errorf("%w: equipment %s has %d on hand, movement needs %d",
				apperrors.ErrInsufficientStock, mv.EquipmentID, before, mv.Quantity)
		}
	} else {
		after = before + mv.Quantity
	}

	now := time.Now()
	mv.MovementID = uuid.NewString()
	mv.StockBefore = before
	mv.StockAfter = after
	mv.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.stockRepo.SaveMovementInTx(ctx, tx, mv); err != nil {
		return nil, fmt.Errorf("failed to save stock movement: %w", err)
	}
	if err := s.stockRepo.UpdateEquipmentQuantityInTx(ctx, tx, mv.EquipmentID, after, userID, now); err != nil {
		return nil, fmt.Errorf("failed to update equipment quantity: %w", err)
	}
	if err := s.stockRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit movement transaction: %w", err)
	}

	logger.Info("Recorded stock movement",
		slog.String("movement_id", mv.MovementID),
		slog.String("equipment_id", mv.EquipmentID),
		slog.String("movement_type", string(mv.MovementType)),
		slog.Int64("stock_before", before),
		slog.Int64("stock_after", after),
	)

	// Alert maintenance is best effort: the movement itself has committed and
	// a failed alert write must not undo it.
	if err := s.maintainAlerts(ctx, equipment, after, userID, now); err != nil {
		logger.Warn("Failed to maintain stock alerts",
			slog.String("equipment_id", mv.EquipmentID),
			slog.String("error", err.Error()),
		)
	}

	return &mv, nil
}

// maintainAlerts raises, replaces, or resolves the active alert for an item
// so it always reflects the current quantity.
func (s *stockService) maintainAlerts(ctx context.Context, equipment *domain.Equipment, quantity int64, userID string, now time.Time) error {
	var (
		wantType     domain.AlertType
		wantSeverity domain.AlertSeverity
		wantMessage  string
	)
	switch {
	case quantity == 0:
		wantType = domain.AlertOutOfStock
		wantSeverity = domain.SeverityCritical
		wantMessage = fmt.Sprintf("%s is out of stock", equipment.Name)
	case quantity <= criticalThreshold:
		wantType = domain.AlertLowStock
		wantSeverity = domain.SeverityCritical
		wantMessage = fmt.Sprintf("%s is critically low: %d left", equipment.Name, quantity)
	case quantity <= lowStockThreshold:
		wantType = domain.AlertLowStock
		wantSeverity = domain.SeverityHigh
		wantMessage = fmt.Sprintf("%s is running low: %d left", equipment.Name, quantity)
	}

	active, err := s.stockRepo.FindActiveAlertByEquipment(ctx, equipment.EquipmentID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	if wantType == "" {
		if active != nil {
			return s.stockRepo.ResolveAlert(ctx, active.AlertID, now)
		}
		return nil
	}

	if active != nil {
		if active.AlertType == wantType && active.Severity == wantSeverity {
			return nil
		}
		if err := s.stockRepo.ResolveAlert(ctx, active.AlertID, now); err != nil {
			return err
		}
	}

	return s.stockRepo.SaveAlert(ctx, domain.StockAlert{
		AlertID:      uuid.NewString(),
		CompanyID:    equipment.CompanyID,
		EquipmentID:  equipment.EquipmentID,
		AlertType:    wantType,
		Severity:     wantSeverity,
		Message:      wantMessage,
		CurrentStock: quantity,
		Status:       "active",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	})
}

// ReconcileMovement links a pending movement to the invoice that settled it.
// Quantities are never touched; reconciliation only sets the link.
func (s *stockService) ReconcileMovement(ctx context.Context, companyID, movementID, invoiceID, userID string) (*domain.StockMovement, error) {
	mv, err := s.stockRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if mv.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("stock movement %s not found", movementID))
	}

	if mv.InvoiceID != nil {
		if *mv.InvoiceID == invoiceID {
			// Already reconciled to this invoice; idempotent no-op.
			return mv, nil
		}
		return nil, fmt.Errorf("%w: movement %s is already reconciled to invoice %s",
			apperrors.ErrConflict, movementID, *mv.InvoiceID)
	}

	if err := s.stockRepo.ReconcileMovement(ctx, movementID, invoiceID, userID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to reconcile movement %s: %w", movementID, err)
	}
	mv.InvoiceID = &invoiceID
	return mv, nil
}

func (s *stockService) ListMovements(ctx context.Context, companyID, equipmentID string, limit, offset int) ([]domain.StockMovement, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	equipment, err := s.stockRepo.FindEquipmentByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if equipment.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("equipment %s not found", equipmentID))
	}

	return s.stockRepo.ListMovementsByEquipment(ctx, equipmentID, limit, offset)
}

func (s *stockService) ListActiveAlerts(ctx context.Context, companyID string) ([]domain.StockAlert, error) {
	return s.stockRepo.ListActiveAlertsByCompany(ctx, companyID)
}
