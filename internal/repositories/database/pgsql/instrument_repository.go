package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentora-app/rentora_backend/internal/core/domain"
	portsrepo "github.com/rentora-app/rentora_backend/internal/core/ports/repositories"
	"github.com/rentora-app/rentora_backend/internal/models"
	"github.com/rentora-app/rentora_backend/internal/utils/mapping"
)

type PgxInstrumentRepository struct {
	pool *pgxpool.Pool
}

// newPgxInstrumentRepository creates a new repository for financial
// instruments (checks and promissory notes).
func newPgxInstrumentRepository(pool *pgxpool.Pool) portsrepo.InstrumentRepository {
	return &PgxInstrumentRepository{pool: pool}
}

var _ portsrepo.InstrumentRepository = (*PgxInstrumentRepository)(nil)

// ListInstruments retrieves a company's open instruments, optionally filtered
// by kind, ordered by due date. Cleared and bounced instruments are settled
// and excluded from aging.
func (r *PgxInstrumentRepository) ListInstruments(ctx context.Context, companyID string, kind *domain.InstrumentKind) ([]domain.FinancialInstrument, error) {
	query := `
		SELECT instrument_id, company_id, kind, side, number, drawer_name, amount, due_date, status, created_at, created_by, last_updated_at, last_updated_by
		FROM financial_instruments
		WHERE company_id = $1 AND status IN ('portfolio', 'deposited')
	`
	args := []interface{}{companyID}
	if kind != nil {
		query += ` AND kind = $2`
		args = append(args, string(*kind))
	}
	query += ` ORDER BY due_date;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query instruments for company %s: %w", companyID, err)
	}
	defer rows.Close()

	instruments := []models.FinancialInstrument{}
	for rows.Next() {
		m, err := scanInstrument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan instrument row for company %s: %w", companyID, err)
		}
		instruments = append(instruments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating instrument rows for company %s: %w", companyID, err)
	}
	return mapping.ToDomainInstrumentSlice(instruments), nil
}

func scanInstrument(row pgx.Row) (models.FinancialInstrument, error) {
	var m models.FinancialInstrument
	err := row.Scan(
		&m.InstrumentID,
		&m.CompanyID,
		&m.Kind,
		&m.Side,
		&m.Number,
		&m.DrawerName,
		&m.Amount,
		&m.DueDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
