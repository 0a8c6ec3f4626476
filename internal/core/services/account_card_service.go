package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentora-app/rentora_backend/internal/apperrors"
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	portsrepo "github.com/rentora-app/rentora_backend/internal/core/ports/repositories"
	portssvc "github.com/rentora-app/rentora_backend/internal/core/ports/services"
	"github.com/rentora-app/rentora_backend/internal/middleware"
)

// accountCardService maintains customer/supplier running balances. Balances
// are moved by signed deltas applied in-database so concurrent updates never
// lose increments.
type accountCardService struct {
	cardRepo portsrepo.AccountCardRepository
}

// NewAccountCardService creates a new account card service.
func NewAccountCardService(cardRepo portsrepo.AccountCardRepository) portssvc.AccountCardSvcFacade {
	return &accountCardService{cardRepo: cardRepo}
}

var _ portssvc.AccountCardSvcFacade = (*accountCardService)(nil)

func (s *accountCardService) GetCardByID(ctx context.Context, companyID, cardID string) (*domain.AccountCard, error) {
	card, err := s.cardRepo.FindCardByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account card %s not found", cardID))
	}
	return card, nil
}

func (s *accountCardService) ApplyDelta(ctx context.Context, companyID, cardID string, delta decimal.Decimal, userID string) (decimal.Decimal, error) {
	if delta.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: balance delta must not be zero", apperrors.ErrValidation)
	}

	card, err := s.GetCardByID(ctx, companyID, cardID)
	if err != nil {
		return decimal.Zero, err
	}

	newBalance, err := s.cardRepo.ApplyDelta(ctx, card.AccountCardID, delta, userID, time.Now())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to apply balance delta to card %s: %w", cardID, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Applied account card delta",
		slog.String("account_card_id", cardID),
		slog.String("delta", delta.String()),
		slog.String("new_balance", newBalance.String()),
	)
	return newBalance, nil
}
