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

const postingLogColumns = `event_type, source_entity_id, company_id, state, entry_id, entry_number, failure_reason, created_at, last_updated_at`

type PgxPostingLogRepository struct {
	pool *pgxpool.Pool
}

// newPgxPostingLogRepository creates a new repository for the posting log.
func newPgxPostingLogRepository(pool *pgxpool.Pool) portsrepo.PostingLogRepository {
	return &PgxPostingLogRepository{pool: pool}
}

var _ portsrepo.PostingLogRepository = (*PgxPostingLogRepository)(nil)

func scanPostingLog(row pgx.Row) (models.PostingLog, error) {
	var m models.PostingLog
	err := row.Scan(
		&m.EventType,
		&m.SourceEntityID,
		&m.CompanyID,
		&m.State,
		&m.EntryID,
		&m.EntryNumber,
		&m.FailureReason,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// ClaimEvent inserts a RECEIVED row for the event key, relying on the unique
// (event_type, source_entity_id) index for the race. When the key already
// exists in FAILED state it is reset and re-claimed; any other existing state
// is returned as-is with claimed=false.
func (r *PgxPostingLogRepository) ClaimEvent(ctx context.Context, eventType domain.EventType, sourceEntityID, companyID string, now time.Time) (bool, *domain.PostingRecord, error) {
	insertQuery := `
		INSERT INTO posting_log (event_type, source_entity_id, company_id, state, failure_reason, created_at, last_updated_at)
		VALUES ($1, $2, $3, 'RECEIVED', '', $4, $4)
		ON CONFLICT (event_type, source_entity_id) DO NOTHING;
	`
	cmdTag, err := r.pool.Exec(ctx, insertQuery, string(eventType), sourceEntityID, companyID, now)
	if err != nil {
		return false, nil, fmt.Errorf("failed to claim event %s/%s: %w", eventType, sourceEntityID, err)
	}
	if cmdTag.RowsAffected() == 1 {
		return true, nil, nil
	}

	// The key exists. A FAILED attempt may be taken over; the guarded update
	// loses cleanly if another worker re-claims it first.
	reclaimQuery := `
		UPDATE posting_log
		SET state = 'RECEIVED', entry_id = NULL, entry_number = NULL, failure_reason = '', last_updated_at = $3
		WHERE event_type = $1 AND source_entity_id = $2 AND state = 'FAILED';
	`
	cmdTag, err = r.pool.Exec(ctx, reclaimQuery, string(eventType), sourceEntityID, now)
	if err != nil {
		return false, nil, fmt.Errorf("failed to re-claim failed event %s/%s: %w", eventType, sourceEntityID, err)
	}
	if cmdTag.RowsAffected() == 1 {
		return true, nil, nil
	}

	existing, err := r.FindEvent(ctx, eventType, sourceEntityID)
	if err != nil {
		return false, nil, err
	}
	return false, existing, nil
}

// ReclaimEvent resets a stale RECEIVED row back to a fresh claim. The guard
// on last_updated_at makes concurrent takeovers lose cleanly: whichever
// worker updates the row first invalidates the timestamp the others saw.
func (r *PgxPostingLogRepository) ReclaimEvent(ctx context.Context, eventType domain.EventType, sourceEntityID string, observedUpdatedAt, now time.Time) (bool, error) {
	query := `
		UPDATE posting_log
		SET entry_id = NULL, entry_number = NULL, failure_reason = '', last_updated_at = $4
		WHERE event_type = $1 AND source_entity_id = $2
		  AND state = 'RECEIVED' AND last_updated_at = $3;
	`
	cmdTag, err := r.pool.Exec(ctx, query, string(eventType), sourceEntityID, observedUpdatedAt, now)
	if err != nil {
		return false, fmt.Errorf("failed to re-claim stale event %s/%s: %w", eventType, sourceEntityID, err)
	}
	return cmdTag.RowsAffected() == 1, nil
}

// UpdateEventState advances the state machine for the event key.
func (r *PgxPostingLogRepository) UpdateEventState(ctx context.Context, eventType domain.EventType, sourceEntityID string, state domain.PostingState, entryID, entryNumber *string, failureReason string, now time.Time) error {
	query := `
		UPDATE posting_log
		SET state = $3,
		    entry_id = COALESCE($4, entry_id),
		    entry_number = COALESCE($5, entry_number),
		    failure_reason = $6,
		    last_updated_at = $7
		WHERE event_type = $1 AND source_entity_id = $2;
	`
	cmdTag, err := r.pool.Exec(ctx, query, string(eventType), sourceEntityID, string(state), entryID, entryNumber, failureReason, now)
	if err != nil {
		return fmt.Errorf("failed to update event %s/%s to state %s: %w", eventType, sourceEntityID, state, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("posting record %s/%s not found", eventType, sourceEntityID))
	}
	return nil
}

// FindEvent retrieves the posting record for an event key.
func (r *PgxPostingLogRepository) FindEvent(ctx context.Context, eventType domain.EventType, sourceEntityID string) (*domain.PostingRecord, error) {
	query := `
		SELECT ` + postingLogColumns + `
		FROM posting_log
		WHERE event_type = $1 AND source_entity_id = $2;
	`
	m, err := scanPostingLog(r.pool.QueryRow(ctx, query, string(eventType), sourceEntityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("posting record %s/%s not found", eventType, sourceEntityID))
		}
		return nil, fmt.Errorf("failed to find posting record %s/%s: %w", eventType, sourceEntityID, err)
	}
	record := mapping.ToDomainPostingRecord(m)
	return &record, nil
}
