package repositories

import (
	"context"
	"time"

	"github.com/rentora-app/rentora_backend/internal/core/domain"
)

// PostingLogRepository persists the per-event orchestration state that backs
// idempotent posting.
type PostingLogRepository interface {
	// ClaimEvent inserts a RECEIVED row for the event key. When the key
	// already exists the insert is a no-op and the existing record is
	// returned with claimed=false. A FAILED record may be re-claimed.
	ClaimEvent(ctx context.Context, eventType domain.EventType, sourceEntityID, companyID string, now time.Time) (claimed bool, existing *domain.PostingRecord, err error)

	// ReclaimEvent takes over a stale RECEIVED claim whose worker stopped
	// reporting progress. The update is guarded on the last-update time the
	// caller observed, so it loses cleanly when another worker moved the
	// record first.
	ReclaimEvent(ctx context.Context, eventType domain.EventType, sourceEntityID string, observedUpdatedAt, now time.Time) (bool, error)

	// UpdateEventState advances the state machine for the event key,
	// optionally recording the posted entry and a failure reason.
	UpdateEventState(ctx context.Context, eventType domain.EventType, sourceEntityID string, state domain.PostingState, entryID, entryNumber *string, failureReason string, now time.Time) error

	// FindEvent retrieves the posting record for an event key.
	FindEvent(ctx context.Context, eventType domain.EventType, sourceEntityID string) (*domain.PostingRecord, error)
}
