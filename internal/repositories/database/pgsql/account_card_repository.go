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

type PgxAccountCardRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountCardRepository creates a new repository for customer/supplier
// running balances.
func newPgxAccountCardRepository(pool *pgxpool.Pool) portsrepo.AccountCardRepository {
	return &PgxAccountCardRepository{pool: pool}
}

var _ portsrepo.AccountCardRepository = (*PgxAccountCardRepository)(nil)

// FindCardByID retrieves a single account card.
func (r *PgxAccountCardRepository) FindCardByID(ctx context.Context, accountCardID string) (*domain.AccountCard, error) {
	query := `
		SELECT account_card_id, company_id, kind, name, balance, created_at, created_by, last_updated_at, last_updated_by
		FROM account_cards
		WHERE account_card_id = $1;
	`
	var m models.AccountCard
	err := r.pool.QueryRow(ctx, query, accountCardID).Scan(
		&m.AccountCardID,
		&m.CompanyID,
		&m.Kind,
		&m.Name,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account card %s not found", accountCardID))
		}
		return nil, fmt.Errorf("failed to find account card %s: %w", accountCardID, err)
	}
	card := mapping.ToDomainAccountCard(m)
	return &card, nil
}

// ApplyDelta adds the signed amount to the card balance as an in-database
// increment and returns the new balance. Concurrent deltas serialize on the
// row and never lose updates.
func (r *PgxAccountCardRepository) ApplyDelta(ctx context.Context, accountCardID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE account_cards
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_card_id = $1
		RETURNING balance;
	`
	var newBalance decimal.Decimal
	err := r.pool.QueryRow(ctx, query, accountCardID, delta, now, userID).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.NewNotFoundError(fmt.Sprintf("account card %s not found", accountCardID))
		}
		return decimal.Zero, fmt.Errorf("failed to apply delta to account card %s: %w", accountCardID, err)
	}
	return newBalance, nil
}
