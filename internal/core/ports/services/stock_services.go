package services

import (
	"context"

	"github.com/rentora-app/rentora_backend/internal/core/domain"
)

// StockWriterSvc records stock movements against equipment quantities.
type StockWriterSvc interface {
	// RecordMovement applies a stock movement and returns it with the
	// captured before/after quantities. Outbound movements that would drive
	// the quantity negative fail with ErrInsufficientStock.
	RecordMovement(ctx context.Context, mv domain.StockMovement, userID string) (*domain.StockMovement, error)

	// ReconcileMovement links a pending movement to the invoice that settled
	// it. Reconciling an already-reconciled movement with the same invoice
	// is a no-op; a different invoice is rejected.
	ReconcileMovement(ctx context.Context, companyID, movementID, invoiceID, userID string) (*domain.StockMovement, error)
}

// StockReaderSvc defines read operations over stock movements and alerts.
type StockReaderSvc interface {
	// ListMovements retrieves an equipment's movement history newest first.
	ListMovements(ctx context.Context, companyID, equipmentID string, limit, offset int) ([]domain.StockMovement, error)

	// ListActiveAlerts retrieves the company's unresolved stock alerts.
	ListActiveAlerts(ctx context.Context, companyID string) ([]domain.StockAlert, error)
}

// StockSvcFacade combines all stock service interfaces.
type StockSvcFacade interface {
	StockWriterSvc
	StockReaderSvc
}
