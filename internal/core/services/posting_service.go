package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rentora-app/rentora_backend/internal/apperrors"
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	portsrepo "github.com/rentora-app/rentora_backend/internal/core/ports/repositories"
	portssvc "github.com/rentora-app/rentora_backend/internal/core/ports/services"
	"github.com/rentora-app/rentora_backend/internal/middleware"
)

// Postgres error codes worth one more try: serialization failure, deadlock
// detected, lock not available.
var transientPgCodes = map[string]bool{
	"40001": true,
	"40P01": true,
	"55P03": true,
}

// staleClaimLease is how long an in-flight claim may go without a state
// update before another worker may recover it. Crashed workers never reach a
// terminal state, so their claims would otherwise block the event key forever.
const staleClaimLease = 5 * time.Minute

func isTransientPgError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && transientPgCodes[pgErr.Code]
}

// postingService drives a business event through the posting state machine:
// RECEIVED -> JOURNAL_POSTED -> SIDE_EFFECTS_APPLIED -> COMPLETE. A posted
// journal entry is never rolled back; when a side effect fails afterwards the
// event parks in NEEDS_RECONCILIATION for manual review instead.
type postingService struct {
	chartSvc       portssvc.ChartSvcFacade
	ledgerSvc      portssvc.LedgerSvcFacade
	stockSvc       portssvc.StockSvcFacade
	cardSvc        portssvc.AccountCardSvcFacade
	invoiceRepo    portsrepo.InvoiceRepository
	postingLogRepo portsrepo.PostingLogRepository
	maxRetries     int
	retryBackoff   time.Duration
}

// NewPostingService creates the event posting orchestrator. maxRetries and
// retryBackoff bound the retry loop around transient database failures during
// the journal posting step.
func NewPostingService(
	chartSvc portssvc.ChartSvcFacade,
	ledgerSvc portssvc.LedgerSvcFacade,
	stockSvc portssvc.StockSvcFacade,
	cardSvc portssvc.AccountCardSvcFacade,
	invoiceRepo portsrepo.InvoiceRepository,
	postingLogRepo portsrepo.PostingLogRepository,
	maxRetries int,
	retryBackoff time.Duration,
) portssvc.PostingSvcFacade {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if retryBackoff <= 0 {
		retryBackoff = 50 * time.Millisecond
	}
	return &postingService{
		chartSvc:       chartSvc,
		ledgerSvc:      ledgerSvc,
		stockSvc:       stockSvc,
		cardSvc:        cardSvc,
		invoiceRepo:    invoiceRepo,
		postingLogRepo: postingLogRepo,
		maxRetries:     maxRetries,
		retryBackoff:   retryBackoff,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

func (s *postingService) Process(ctx context.Context, event domain.BusinessEvent, userID string) (*portssvc.PostingOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(
		slog.String("event_type", string(event.Type())),
		slog.String("source_entity_id", event.SourceID()),
	)

	claimed, existing, err := s.postingLogRepo.ClaimEvent(ctx, event.Type(), event.SourceID(), event.Company(), time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to claim event: %w", err)
	}
	if !claimed {
		switch existing.State {
		case domain.PostingComplete, domain.PostingNeedsReconciliation:
			// Exactly-once: the event was already processed, hand back the
			// prior outcome without touching the ledger again.
			logger.Info("Replayed already-processed event", slog.String("state", string(existing.State)))
			return &portssvc.PostingOutcome{
				Record:   existing,
				Warning:  existing.FailureReason,
				Replayed: true,
			}, nil
		default:
			if time.Since(existing.LastUpdatedAt) < staleClaimLease {
				return nil, fmt.Errorf("%w: event %s/%s is already being processed",
					apperrors.ErrConflict, event.Type(), event.SourceID())
			}
			outcome, recovered, err := s.recoverStaleClaim(ctx, logger, event, existing)
			if err != nil || outcome != nil {
				return outcome, err
			}
			if !recovered {
				return nil, fmt.Errorf("%w: event %s/%s is already being processed",
					apperrors.ErrConflict, event.Type(), event.SourceID())
			}
		}
	}

	chart, err := s.chartSvc.ChartFor(ctx, event.Company())
	if err != nil {
		return nil, s.fail(ctx, logger, event, fmt.Errorf("failed to load chart: %w", err))
	}

	draft, err := BuildEntryDraft(event, chart)
	if err != nil {
		return nil, s.fail(ctx, logger, event, err)
	}

	// A nil draft is a valid outcome (zero-valuation stock adjustment): the
	// side effects still run, there is just no journal entry to post.
	var entry *domain.JournalEntry
	if draft != nil {
		entry, err = s.postWithRetry(ctx, logger, *draft, userID)
		if err != nil {
			return nil, s.fail(ctx, logger, event, err)
		}
		if err := s.postingLogRepo.UpdateEventState(ctx, event.Type(), event.SourceID(),
			domain.PostingJournalPosted, &entry.EntryID, &entry.EntryNumber, "", time.Now()); err != nil {
			logger.Error("Failed to record JOURNAL_POSTED state", slog.String("error", err.Error()))
		}
	}

	invoice, sideErr := s.applySideEffects(ctx, event, userID)
	if sideErr != nil {
		if entry != nil {
			// The journal entry is already committed and stays. Park the
			// event for manual review with the side-effect failure attached.
			reason := sideErr.Error()
			if err := s.postingLogRepo.UpdateEventState(ctx, event.Type(), event.SourceID(),
				domain.PostingNeedsReconciliation, &entry.EntryID, &entry.EntryNumber, reason, time.Now()); err != nil {
				logger.Error("Failed to record NEEDS_RECONCILIATION state", slog.String("error", err.Error()))
			}
			logger.Warn("Journal posted but side effect failed", slog.String("error", reason))
			record, findErr := s.postingLogRepo.FindEvent(ctx, event.Type(), event.SourceID())
			if findErr != nil {
				return nil, fmt.Errorf("failed to reload posting record: %w", findErr)
			}
			return &portssvc.PostingOutcome{Record: record, Invoice: invoice, Warning: reason}, nil
		}
		return nil, s.fail(ctx, logger, event, sideErr)
	}

	if entry != nil {
		if err := s.postingLogRepo.UpdateEventState(ctx, event.Type(), event.SourceID(),
			domain.PostingSideEffectsApplied, &entry.EntryID, &entry.EntryNumber, "", time.Now()); err != nil {
			logger.Error("Failed to record SIDE_EFFECTS_APPLIED state", slog.String("error", err.Error()))
		}
	}

	var entryID, entryNumber *string
	if entry != nil {
		entryID, entryNumber = &entry.EntryID, &entry.EntryNumber
	}
	if err := s.postingLogRepo.UpdateEventState(ctx, event.Type(), event.SourceID(),
		domain.PostingComplete, entryID, entryNumber, "", time.Now()); err != nil {
		logger.Error("Failed to record COMPLETE state", slog.String("error", err.Error()))
	}

	record, err := s.postingLogRepo.FindEvent(ctx, event.Type(), event.SourceID())
	if err != nil {
		return nil, fmt.Errorf("failed to reload posting record: %w", err)
	}
	logger.Info("Event processing complete")
	return &portssvc.PostingOutcome{Record: record, Invoice: invoice}, nil
}

// recoverStaleClaim handles an in-flight claim whose worker stopped
// reporting progress for longer than the lease. A stale RECEIVED row carries
// no committed work yet and is taken over (recovered=true lets processing
// continue). Once the state says a journal entry may exist, reprocessing
// could post it twice, so the event is parked in NEEDS_RECONCILIATION
// instead and the parked outcome is returned.
func (s *postingService) recoverStaleClaim(ctx context.Context, logger *slog.Logger, event domain.BusinessEvent, existing *domain.PostingRecord) (*portssvc.PostingOutcome, bool, error) {
	if existing.State == domain.PostingReceived {
		reclaimed, err := s.postingLogRepo.ReclaimEvent(ctx, event.Type(), event.SourceID(), existing.LastUpdatedAt, time.Now())
		if err != nil {
			return nil, false, fmt.Errorf("failed to re-claim stale event: %w", err)
		}
		if reclaimed {
			logger.Warn("Took over stale claim", slog.Time("abandoned_at", existing.LastUpdatedAt))
		}
		return nil, reclaimed, nil
	}

	reason := fmt.Sprintf("stale %s claim abandoned, journal state unknown", existing.State)
	if err := s.postingLogRepo.UpdateEventState(ctx, event.Type(), event.SourceID(),
		domain.PostingNeedsReconciliation, nil, nil, reason, time.Now()); err != nil {
		logger.Error("Failed to record NEEDS_RECONCILIATION state", slog.String("error", err.Error()))
	}
	logger.Warn("Parked stale in-flight event for manual review", slog.String("state", string(existing.State)))
	record, err := s.postingLogRepo.FindEvent(ctx, event.Type(), event.SourceID())
	if err != nil {
		return nil, false, fmt.Errorf("failed to reload posting record: %w", err)
	}
	return &portssvc.PostingOutcome{Record: record, Warning: reason}, false, nil
}

// fail records the FAILED state with the failure reason and passes the error
// through. A FAILED event can be claimed again on a later attempt.
func (s *postingService) fail(ctx context.Context, logger *slog.Logger, event domain.BusinessEvent, cause error) error {
	if err := s.postingLogRepo.UpdateEventState(ctx, event.Type(), event.SourceID(),
		domain.PostingFailed, nil, nil, cause.Error(), time.Now()); err != nil {
		logger.Error("Failed to record FAILED state", slog.String("error", err.Error()))
	}
	logger.Warn("Event processing failed", slog.String("error", cause.Error()))
	return cause
}

// postWithRetry posts the draft, retrying on transient database errors
// (serialization failures, deadlocks, lock timeouts) with bounded backoff.
// Validation and business errors are never retried.
func (s *postingService) postWithRetry(ctx context.Context, logger *slog.Logger, draft domain.JournalEntryDraft, userID string) (*domain.JournalEntry, error) {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.retryBackoff * time.Duration(attempt)):
			}
			logger.Info("Retrying journal posting", slog.Int("attempt", attempt))
		}
		entry, err := s.ledgerSvc.Post(ctx, draft, userID)
		if err == nil {
			return entry, nil
		}
		if !isTransientPgError(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("journal posting failed after %d retries: %w", s.maxRetries, lastErr)
}

// applySideEffects carries out the non-journal consequences of an event.
func (s *postingService) applySideEffects(ctx context.Context, event domain.BusinessEvent, userID string) (*domain.Invoice, error) {
	switch e := event.(type) {
	case domain.InvoiceIssued:
		for _, line := range e.Lines {
			invoiceID := e.InvoiceID
			_, err := s.stockSvc.RecordMovement(ctx, domain.StockMovement{
				CompanyID:      e.CompanyID,
				EquipmentID:    line.EquipmentID,
				InvoiceID:      &invoiceID,
				MovementType:   domain.MovementRentalOut,
				MovementReason: "rental_out",
				Quantity:       line.Quantity,
				Notes:          fmt.Sprintf("Invoice %s", e.InvoiceNumber),
			}, userID)
			if err != nil {
				return nil, fmt.Errorf("stock movement for equipment %s: %w", line.EquipmentID, err)
			}
		}
		if _, err := s.cardSvc.ApplyDelta(ctx, e.CompanyID, e.AccountCardID, e.GrandTotal, userID); err != nil {
			return nil, fmt.Errorf("account card delta: %w", err)
		}
		return nil, nil

	case domain.PaymentReceived:
		invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, e.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("invoice payment update: %w", err)
		}
		observedPaid := invoice.PaidAmount
		if err := invoice.RegisterPayment(e.Amount); err != nil {
			return nil, fmt.Errorf("invoice payment update: %w", err)
		}
		invoice, err = s.invoiceRepo.SettlePayment(ctx, invoice.InvoiceID, observedPaid, invoice.PaidAmount, invoice.Status, userID, time.Now())
		if err != nil {
			return nil, fmt.Errorf("invoice payment update: %w", err)
		}
		if _, err := s.cardSvc.ApplyDelta(ctx, e.CompanyID, e.AccountCardID, e.Amount.Neg(), userID); err != nil {
			return invoice, fmt.Errorf("account card delta: %w", err)
		}
		return invoice, nil

	case domain.StockAdjusted:
		_, err := s.stockSvc.RecordMovement(ctx, domain.StockMovement{
			CompanyID:      e.CompanyID,
			EquipmentID:    e.EquipmentID,
			MovementType:   domain.MovementAdjustment,
			Direction:      e.Direction,
			MovementReason: e.Reason,
			Quantity:       e.Quantity,
		}, userID)
		if err != nil {
			return nil, fmt.Errorf("adjustment movement: %w", err)
		}
		return nil, nil

	case domain.ExpenseRecorded:
		if e.AccountCardID != "" {
			gross := e.Amount.Add(e.VATAmount)
			if _, err := s.cardSvc.ApplyDelta(ctx, e.CompanyID, e.AccountCardID, gross.Neg(), userID); err != nil {
				return nil, fmt.Errorf("supplier card delta: %w", err)
			}
		}
		return nil, nil

	default:
		return nil, fmt.Errorf("%w: unsupported event type %s", apperrors.ErrInvalidEvent, event.Type())
	}
}
