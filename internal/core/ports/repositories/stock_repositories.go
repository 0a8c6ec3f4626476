package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rentora-app/rentora_backend/internal/core/domain"
)

// StockReader defines read operations for equipment and stock movements.
type StockReader interface {
	// FindEquipmentByID retrieves an equipment row without locking it.
	FindEquipmentByID(ctx context.Context, equipmentID string) (*domain.Equipment, error)

	// FindMovementByID retrieves a single stock movement.
	FindMovementByID(ctx context.Context, movementID string) (*domain.StockMovement, error)

	// ListMovementsByEquipment retrieves movements for an item, newest first.
	ListMovementsByEquipment(ctx context.Context, equipmentID string, limit, offset int) ([]domain.StockMovement, error)
}

// StockTransactionSupport defines the in-transaction operations of the stock
// movement recorder.
type StockTransactionSupport interface {
	// FindEquipmentForUpdate selects the equipment row and locks it for the
	// duration of the transaction.
	FindEquipmentForUpdate(ctx context.Context, tx pgx.Tx, equipmentID string) (*domain.Equipment, error)

	// SaveMovementInTx inserts a stock movement row.
	SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error

	// UpdateEquipmentQuantityInTx writes the new denormalized quantity.
	UpdateEquipmentQuantityInTx(ctx context.Context, tx pgx.Tx, equipmentID string, quantity int64, userID string, now time.Time) error
}

// StockReconciler links pending movements to billing events.
type StockReconciler interface {
	// ReconcileMovement sets the invoice link on a pending movement. The
	// operation is idempotent: re-linking to the same invoice succeeds without
	// effect, and it never touches quantities.
	ReconcileMovement(ctx context.Context, movementID, invoiceID string, userID string, now time.Time) error
}

// StockAlertRepository manages low-stock alert rows.
type StockAlertRepository interface {
	// FindActiveAlertByEquipment returns the active alert for an item, if any.
	FindActiveAlertByEquipment(ctx context.Context, equipmentID string) (*domain.StockAlert, error)

	// SaveAlert persists a new alert.
	SaveAlert(ctx context.Context, alert domain.StockAlert) error

	// ResolveAlert marks an alert resolved.
	ResolveAlert(ctx context.Context, alertID string, now time.Time) error

	// ListActiveAlertsByCompany retrieves active alerts, most severe first.
	ListActiveAlertsByCompany(ctx context.Context, companyID string) ([]domain.StockAlert, error)
}

// StockRepositoryFacade combines all stock repository interfaces.
type StockRepositoryFacade interface {
	StockReader
	StockTransactionSupport
	StockReconciler
	StockAlertRepository
}

// StockRepositoryWithTx extends the facade with transaction control.
type StockRepositoryWithTx interface {
	StockRepositoryFacade
	TransactionManager
}
