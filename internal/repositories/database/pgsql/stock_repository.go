package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentora-app/rentora_backend/internal/apperrors"
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	portsrepo "github.com/rentora-app/rentora_backend/internal/core/ports/repositories"
	"github.com/rentora-app/rentora_backend/internal/models"
	"github.com/rentora-app/rentora_backend/internal/utils/mapping"
)

const movementColumns = `movement_id, company_id, equipment_id, invoice_id, movement_type, direction, movement_reason, quantity, stock_before, stock_after, notes, created_at, created_by, last_updated_at, last_updated_by`

const equipmentColumns = `equipment_id, company_id, code, name, quantity, created_at, created_by, last_updated_at, last_updated_by`

const alertColumns = `alert_id, company_id, equipment_id, alert_type, severity, message, current_stock, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxStockRepository struct {
	BaseRepository
}

// newPgxStockRepository creates a new repository for equipment stock data.
func newPgxStockRepository(pool *pgxpool.Pool) portsrepo.StockRepositoryWithTx {
	return &PgxStockRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StockRepositoryWithTx = (*PgxStockRepository)(nil)

func scanMovement(row pgx.Row) (models.StockMovement, error) {
	var m models.StockMovement
	err := row.Scan(
		&m.MovementID,
		&m.CompanyID,
		&m.EquipmentID,
		&m.InvoiceID,
		&m.MovementType,
		&m.Direction,
		&m.MovementReason,
		&m.Quantity,
		&m.StockBefore,
		&m.StockAfter,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanEquipment(row pgx.Row) (models.Equipment, error) {
	var m models.Equipment
	err := row.Scan(
		&m.EquipmentID,
		&m.CompanyID,
		&m.Code,
		&m.Name,
		&m.Quantity,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanAlert(row pgx.Row) (models.StockAlert, error) {
	var m models.StockAlert
	err := row.Scan(
		&m.AlertID,
		&m.CompanyID,
		&m.EquipmentID,
		&m.AlertType,
		&m.Severity,
		&m.Message,
		&m.CurrentStock,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindEquipmentByID retrieves an equipment row without locking it.
func (r *PgxStockRepository) FindEquipmentByID(ctx context.Context, equipmentID string) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE equipment_id = $1;`
	m, err := scanEquipment(r.Pool.QueryRow(ctx, query, equipmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("equipment %s not found", equipmentID))
		}
		return nil, fmt.Errorf("failed to find equipment %s: %w", equipmentID, err)
	}
	eq := mapping.ToDomainEquipment(m)
	return &eq, nil
}

// FindEquipmentForUpdate retrieves the equipment row and locks it for the
// duration of the transaction.
func (r *PgxStockRepository) FindEquipmentForUpdate(ctx context.Context, tx pgx.Tx, equipmentID string) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE equipment_id = $1 FOR UPDATE;`
	m, err := scanEquipment(tx.QueryRow(ctx, query, equipmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("equipment %s not found", equipmentID))
		}
		return nil, fmt.Errorf("failed to lock equipment %s: %w", equipmentID, err)
	}
	eq := mapping.ToDomainEquipment(m)
	return &eq, nil
}

// FindMovementByID retrieves a single stock movement.
func (r *PgxStockRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE movement_id = $1;`
	m, err := scanMovement(r.Pool.QueryRow(ctx, query, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("stock movement %s not found", movementID))
		}
		return nil, fmt.Errorf("failed to find stock movement %s: %w", movementID, err)
	}
	mv := mapping.ToDomainStockMovement(m)
	return &mv, nil
}

// ListMovementsByEquipment retrieves movements for an item, newest first.
func (r *PgxStockRepository) ListMovementsByEquipment(ctx context.Context, equipmentID string, limit, offset int) ([]domain.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE equipment_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, equipmentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements for equipment %s: %w", equipmentID, err)
	}
	defer rows.Close()

	movements := []models.StockMovement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement row for equipment %s: %w", equipmentID, err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movement rows for equipment %s: %w", equipmentID, err)
	}
	return mapping.ToDomainStockMovementSlice(movements), nil
}

// SaveMovementInTx inserts a stock movement row.
func (r *PgxStockRepository) SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error {
	m := mapping.ToModelStockMovement(movement)
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.MovementID,
		m.CompanyID,
		m.EquipmentID,
		m.InvoiceID,
		m.MovementType,
		m.Direction,
		m.MovementReason,
		m.Quantity,
		m.StockBefore,
		m.StockAfter,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stock movement %s: %w", m.MovementID, err)
	}
	return nil
}

// UpdateEquipmentQuantityInTx writes the new denormalized quantity.
func (r *PgxStockRepository) UpdateEquipmentQuantityInTx(ctx context.Context, tx pgx.Tx, equipmentID string, quantity int64, userID string, now time.Time) error {
	query := `
		UPDATE equipment
		SET quantity = $2, last_updated_at = $3, last_updated_by = $4
		WHERE equipment_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, equipmentID, quantity, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update quantity for equipment %s: %w", equipmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("equipment %s not found", equipmentID))
	}
	return nil
}

// ReconcileMovement sets the invoice link on a pending movement. The guarded
// WHERE clause makes the operation idempotent and rejects cross-invoice
// re-linking without a read-modify-write cycle.
func (r *PgxStockRepository) ReconcileMovement(ctx context.Context, movementID, invoiceID string, userID string, now time.Time) error {
	query := `
		UPDATE stock_movements
		SET invoice_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE movement_id = $1 AND (invoice_id IS NULL OR invoice_id = $2);
	`
	cmdTag, err := r.Pool.Exec(ctx, query, movementID, invoiceID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to reconcile movement %s: %w", movementID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: movement %s is reconciled to a different invoice", apperrors.ErrConflict, movementID)
	}
	return nil
}

// FindActiveAlertByEquipment returns the active alert for an item, if any.
func (r *PgxStockRepository) FindActiveAlertByEquipment(ctx context.Context, equipmentID string) (*domain.StockAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM stock_alerts
		WHERE equipment_id = $1 AND status = 'active';
	`
	m, err := scanAlert(r.Pool.QueryRow(ctx, query, equipmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active alert for equipment %s: %w", equipmentID, err)
	}
	alert := mapping.ToDomainStockAlert(m)
	return &alert, nil
}

// SaveAlert persists a new alert.
func (r *PgxStockRepository) SaveAlert(ctx context.Context, alert domain.StockAlert) error {
	query := `
		INSERT INTO stock_alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		alert.AlertID,
		alert.CompanyID,
		alert.EquipmentID,
		string(alert.AlertType),
		string(alert.Severity),
		alert.Message,
		alert.CurrentStock,
		alert.Status,
		alert.CreatedAt,
		alert.CreatedBy,
		alert.LastUpdatedAt,
		alert.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save stock alert for equipment %s: %w", alert.EquipmentID, err)
	}
	return nil
}

// ResolveAlert marks an alert resolved.
func (r *PgxStockRepository) ResolveAlert(ctx context.Context, alertID string, now time.Time) error {
	query := `
		UPDATE stock_alerts
		SET status = 'resolved', last_updated_at = $2
		WHERE alert_id = $1 AND status = 'active';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, alertID, now)
	if err != nil {
		return fmt.Errorf("failed to resolve alert %s: %w", alertID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListActiveAlertsByCompany retrieves active alerts, most severe first.
func (r *PgxStockRepository) ListActiveAlertsByCompany(ctx context.Context, companyID string) ([]domain.StockAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM stock_alerts
		WHERE company_id = $1 AND status = 'active'
		ORDER BY CASE severity WHEN 'critical' THEN 0 ELSE 1 END, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts for company %s: %w", companyID, err)
	}
	defer rows.Close()

	alerts := []domain.StockAlert{}
	for rows.Next() {
		m, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row for company %s: %w", companyID, err)
		}
		alerts = append(alerts, mapping.ToDomainStockAlert(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alert rows for company %s: %w", companyID, err)
	}
	return alerts, nil
}
