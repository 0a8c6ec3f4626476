package repositories

import (
	"context"
	"time"

	"github.com/rentora-app/rentora_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceRepository defines the invoice operations the posting pipeline
// needs. Full invoice CRUD lives with the surrounding billing layer.
type InvoiceRepository interface {
	// FindInvoiceByID retrieves a single invoice.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// SettlePayment persists a paid amount and status computed by
	// domain.Invoice.RegisterPayment. The update is guarded on the paid
	// amount observed at read time so a concurrent payment loses cleanly
	// instead of double-counting.
	SettlePayment(ctx context.Context, invoiceID string, observedPaid, newPaid decimal.Decimal, status domain.InvoiceStatus, userID string, now time.Time) (*domain.Invoice, error)
}

// AccountCardRepository defines the running-balance operations for
// customer/supplier cards.
type AccountCardRepository interface {
	// FindCardByID retrieves a single account card.
	FindCardByID(ctx context.Context, accountCardID string) (*domain.AccountCard, error)

	// ApplyDelta adds the signed amount to the card balance as an in-database
	// increment and returns the new balance.
	ApplyDelta(ctx context.Context, accountCardID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error)
}

// InstrumentRepository reads financial instruments for aging reports.
type InstrumentRepository interface {
	// ListInstruments retrieves a company's open instruments, optionally
	// filtered by kind, ordered by due date.
	ListInstruments(ctx context.Context, companyID string, kind *domain.InstrumentKind) ([]domain.FinancialInstrument, error)
}
