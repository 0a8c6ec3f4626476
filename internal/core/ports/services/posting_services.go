package services

import (
	"context"

	"github.com/rentora-app/rentora_backend/internal/core/domain"
)

// PostingOutcome is the result of processing a business event.
type PostingOutcome struct {
	Record  *domain.PostingRecord
	Invoice *domain.Invoice
	Warning string
	// Replayed is true when the event had already been processed and the
	// prior outcome was returned instead of posting again.
	Replayed bool
}

// PostingSvcFacade turns business events into posted journal entries plus
// their side effects, exactly once per event.
type PostingSvcFacade interface {
	// Process handles a business event end to end: claims it in the posting
	// log, builds and posts the journal entry, applies side effects, and
	// records the final state. A replayed COMPLETE event returns the prior
	// outcome; a concurrent in-flight duplicate fails with ErrConflict.
	Process(ctx context.Context, event domain.BusinessEvent, userID string) (*PostingOutcome, error)
}
