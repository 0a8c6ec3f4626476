package models

import "time"

// PostingLog is the per-event row backing orchestrator idempotency.
// (event_type, source_entity_id) is unique.
type PostingLog struct {
	EventType      string    `db:"event_type"`
	SourceEntityID string    `db:"source_entity_id"`
	CompanyID      string    `db:"company_id"`
	State          string    `db:"state"`
	EntryID        *string   `db:"entry_id"`
	EntryNumber    *string   `db:"entry_number"`
	FailureReason  string    `db:"failure_reason"`
	CreatedAt      time.Time `db:"created_at"`
	LastUpdatedAt  time.Time `db:"last_updated_at"`
}
