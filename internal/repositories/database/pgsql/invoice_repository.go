package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rentora-app/rentora_backend/internal/apperrors"
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	portsrepo "github.com/rentora-app/rentora_backend/internal/core/ports/repositories"
	"github.com/rentora-app/rentora_backend/internal/models"
	"github.com/rentora-app/rentora_backend/internal/utils/mapping"
)

const invoiceColumns = `invoice_id, company_id, invoice_number, account_card_id, grand_total, vat_amount, paid_amount, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	pool *pgxpool.Pool
}

// newPgxInvoiceRepository creates a new repository for invoice billing totals.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepository {
	return &PgxInvoiceRepository{pool: pool}
}

var _ portsrepo.InvoiceRepository = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.CompanyID,
		&m.InvoiceNumber,
		&m.AccountCardID,
		&m.GrandTotal,
		&m.VATAmount,
		&m.PaidAmount,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindInvoiceByID retrieves a single invoice.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	m, err := scanInvoice(r.pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("invoice %s not found", invoiceID))
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}

// SettlePayment persists the paid amount and status computed by
// domain.Invoice.RegisterPayment. The update is guarded on the paid amount
// observed at read time: a concurrent payment changes it, the guard matches
// no row, and the caller gets a conflict instead of a double-counted total.
func (r *PgxInvoiceRepository) SettlePayment(ctx context.Context, invoiceID string, observedPaid, newPaid decimal.Decimal, status domain.InvoiceStatus, userID string, now time.Time) (*domain.Invoice, error) {
	query := `
		UPDATE invoices
		SET paid_amount = $3,
		    status = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE invoice_id = $1
		  AND paid_amount = $2
		  AND status NOT IN ('paid', 'cancelled')
		RETURNING ` + invoiceColumns + `;
	`
	m, err := scanInvoice(r.pool.QueryRow(ctx, query, invoiceID, observedPaid, newPaid, string(status), now, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing invoice from a lost concurrent race.
			existing, findErr := r.FindInvoiceByID(ctx, invoiceID)
			if findErr != nil {
				return nil, findErr
			}
			return nil, fmt.Errorf("%w: invoice %s changed concurrently (paid %s of %s, status %s)",
				apperrors.ErrConflict, invoiceID, existing.PaidAmount, existing.GrandTotal, existing.Status)
		}
		return nil, fmt.Errorf("failed to settle payment on invoice %s: %w", invoiceID, err)
	}
	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}
