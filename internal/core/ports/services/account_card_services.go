package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rentora-app/rentora_backend/internal/core/domain"
)

// AccountCardSvcFacade maintains customer/supplier running balances.
type AccountCardSvcFacade interface {
	// GetCardByID retrieves an account card.
	GetCardByID(ctx context.Context, companyID, cardID string) (*domain.AccountCard, error)

	// ApplyDelta adjusts a card's running balance by delta (positive or
	// negative) and returns the new balance.
	ApplyDelta(ctx context.Context, companyID, cardID string, delta decimal.Decimal, userID string) (decimal.Decimal, error)
}
