package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentora-app/rentora_backend/internal/apperrors"
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	portsrepo "github.com/rentora-app/rentora_backend/internal/core/ports/repositories"
	"github.com/rentora-app/rentora_backend/internal/models"
	"github.com/rentora-app/rentora_backend/internal/utils/mapping"
)

const accountColumns = `account_id, company_id, code, name, account_type, category, is_active, total_debit, total_credit, balance, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.CompanyID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.Category,
		&m.IsActive,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.CompanyID,
		m.Code,
		m.Name,
		m.AccountType,
		m.Category,
		m.IsActive,
		m.TotalDebit,
		m.TotalCredit,
		m.Balance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account %s already exists for company %s", apperrors.ErrDuplicate, m.Code, m.CompanyID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.Code, err)
	}
	return nil
}

// FindAccountByCode retrieves a company's account by its chart code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND code = $2;
	`
	m, err := scanAccount(r.pool.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s for company %s: %w", code, companyID, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// ListAccountsByCompany retrieves the full chart of accounts for a company.
func (r *PgxAccountRepository) ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1
		ORDER BY code;
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for company %s: %w", companyID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for company %s: %w", companyID, err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for company %s: %w", companyID, err)
	}
	return accounts, nil
}

// LockAccountsByCodesForUpdate retrieves accounts by code and locks the rows
// for the duration of the transaction. Must be called within a transaction.
func (r *PgxAccountRepository) LockAccountsByCodesForUpdate(ctx context.Context, tx pgx.Tx, companyID string, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND code = ANY($2)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, companyID, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for update: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[m.Code] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	// Missing codes are not an error here; the service layer decides what a
	// missing account means for the posting.
	return accountsMap, nil
}

// ApplyEntryTotalsInTx adds per-account debit/credit contributions to the
// locked account rows in one batch. Balance moves by debit minus credit.
func (r *PgxAccountRepository) ApplyEntryTotalsInTx(ctx context.Context, tx pgx.Tx, companyID string, totals map[string]portsrepo.AccountTotals, userID string, now time.Time) error {
	if len(totals) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET total_debit = total_debit + $3,
		    total_credit = total_credit + $4,
		    balance = balance + $3 - $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE company_id = $1 AND code = $2;
	`
	batch := &pgx.Batch{}
	for code, t := range totals {
		batch.Queue(query, companyID, code, t.Debit, t.Credit, now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range totals {
		cmdTag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("failed to apply account totals: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account vanished during totals update", apperrors.ErrNotFound)
		}
	}
	return nil
}
