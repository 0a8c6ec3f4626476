package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType identifies the kind of business event driving a posting.
type EventType string

const (
	EventInvoiceIssued   EventType = "invoice_issued"
	EventPaymentReceived EventType = "payment_received"
	EventStockAdjusted   EventType = "stock_adjusted"
	EventExpenseRecorded EventType = "expense_recorded"
)

// BusinessEvent is the closed set of events the posting pipeline accepts.
// Each concrete event carries everything the journal entry builder needs;
// the (Type, SourceID) pair is the idempotency key.
type BusinessEvent interface {
	Type() EventType
	SourceID() string
	Company() string
}

// PaymentMethod selects the cash or bank account for payment postings.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentBank PaymentMethod = "bank"
)

// InvoiceLine describes one billed equipment position on an invoice.
type InvoiceLine struct {
	EquipmentID string
	Quantity    int64
}

// InvoiceIssued fires when an invoice leaves draft state.
type InvoiceIssued struct {
	InvoiceID     string
	CompanyID     string
	InvoiceNumber string
	AccountCardID string
	GrandTotal    decimal.Decimal
	VATAmount     decimal.Decimal
	IssuedAt      time.Time
	Lines         []InvoiceLine
}

func (e InvoiceIssued) Type() EventType { return EventInvoiceIssued }
func (e InvoiceIssued) SourceID() string {
	return e.InvoiceID
}
func (e InvoiceIssued) Company() string { return e.CompanyID }

// PaymentReceived fires when a payment is recorded against an invoice.
type PaymentReceived struct {
	PaymentID     string
	InvoiceID     string
	CompanyID     string
	InvoiceNumber string
	AccountCardID string
	Amount        decimal.Decimal
	Method        PaymentMethod
	ReceivedAt    time.Time
}

func (e PaymentReceived) Type() EventType { return EventPaymentReceived }
func (e PaymentReceived) SourceID() string {
	return e.PaymentID
}
func (e PaymentReceived) Company() string { return e.CompanyID }

// StockAdjusted fires on a manual stock correction. Valuation is the
// monetary value of the adjusted quantity; a zero valuation produces a stock
// movement but no journal entry.
type StockAdjusted struct {
	AdjustmentID string
	CompanyID    string
	EquipmentID  string
	Direction    MovementDirection
	Quantity     int64
	Reason       string
	Valuation    decimal.Decimal
	AdjustedAt   time.Time
}

func (e StockAdjusted) Type() EventType { return EventStockAdjusted }
func (e StockAdjusted) SourceID() string {
	return e.AdjustmentID
}
func (e StockAdjusted) Company() string { return e.CompanyID }

// ExpenseRecorded fires when an expense is booked against a supplier or paid
// in cash.
type ExpenseRecorded struct {
	ExpenseID     string
	CompanyID     string
	AccountCardID string // Supplier card; empty for cash expenses
	Amount        decimal.Decimal
	VATAmount     decimal.Decimal
	Description   string
	RecordedAt    time.Time
}

func (e ExpenseRecorded) Type() EventType { return EventExpenseRecorded }
func (e ExpenseRecorded) SourceID() string {
	return e.ExpenseID
}
func (e ExpenseRecorded) Company() string { return e.CompanyID }

// PostingState is the orchestrator state machine for one business event.
type PostingState string

const (
	PostingReceived            PostingState = "RECEIVED"
	PostingJournalPosted       PostingState = "JOURNAL_POSTED"
	PostingSideEffectsApplied  PostingState = "SIDE_EFFECTS_APPLIED"
	PostingComplete            PostingState = "COMPLETE"
	PostingFailed              PostingState = "FAILED"
	PostingNeedsReconciliation PostingState = "NEEDS_RECONCILIATION"
)

// PostingRecord is the durable per-event row backing idempotency and the
// manual-review flag.
type PostingRecord struct {
	EventType      EventType    `json:"eventType"`
	SourceEntityID string       `json:"sourceEntityID"`
	CompanyID      string       `json:"companyID"`
	State          PostingState `json:"state"`
	EntryID        *string      `json:"entryID,omitempty"`
	EntryNumber    *string      `json:"entryNumber,omitempty"`
	FailureReason  string       `json:"failureReason,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	LastUpdatedAt  time.Time    `json:"lastUpdatedAt"`
}
