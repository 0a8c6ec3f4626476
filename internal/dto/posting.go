package dto

import (
	"time"

	"github.com/rentora-app/rentora_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceLineRequest is one billed equipment position on an invoice.
type InvoiceLineRequest struct {
	EquipmentID string `json:"equipmentID" binding:"required"`
	Quantity    int64  `json:"quantity" binding:"required,gt=0"`
}

// PostInvoiceIssuedRequest asks the posting pipeline to book an issued
// invoice: journal entry, stock movements, and the customer card delta.
type PostInvoiceIssuedRequest struct {
	InvoiceID     string               `json:"invoiceID" binding:"required"`
	CompanyID     string               `json:"companyID" binding:"required"`
	InvoiceNumber string               `json:"invoiceNumber" binding:"required"`
	AccountCardID string               `json:"accountCardID" binding:"required"`
	GrandTotal    decimal.Decimal      `json:"grandTotal" binding:"dgt0"`
	VATAmount     decimal.Decimal      `json:"vatAmount" binding:"dgte0"`
	IssuedAt      *time.Time           `json:"issuedAt,omitempty"`
	Lines         []InvoiceLineRequest `json:"lines" binding:"dive"`
}

// ToDomainEvent converts the request into its business event.
func (r PostInvoiceIssuedRequest) ToDomainEvent(now time.Time) domain.InvoiceIssued {
	issuedAt := now
	if r.IssuedAt != nil {
		issuedAt = *r.IssuedAt
	}
	lines := make([]domain.InvoiceLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.InvoiceLine{EquipmentID: l.EquipmentID, Quantity: l.Quantity}
	}
	return domain.InvoiceIssued{
		InvoiceID:     r.InvoiceID,
		CompanyID:     r.CompanyID,
		InvoiceNumber: r.InvoiceNumber,
		AccountCardID: r.AccountCardID,
		GrandTotal:    r.GrandTotal,
		VATAmount:     r.VATAmount,
		IssuedAt:      issuedAt,
		Lines:         lines,
	}
}

// PostPaymentReceivedRequest asks the posting pipeline to book a received
// payment: journal entry, invoice paid-amount update, customer card delta.
type PostPaymentReceivedRequest struct {
	PaymentID     string          `json:"paymentID" binding:"required"`
	InvoiceID     string          `json:"invoiceID" binding:"required"`
	CompanyID     string          `json:"companyID" binding:"required"`
	InvoiceNumber string          `json:"invoiceNumber" binding:"required"`
	AccountCardID string          `json:"accountCardID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"dgt0"`
	Method        string          `json:"method" binding:"required,oneof=cash bank"`
	ReceivedAt    *time.Time      `json:"receivedAt,omitempty"`
}

// ToDomainEvent converts the request into its business event.
func (r PostPaymentReceivedRequest) ToDomainEvent(now time.Time) domain.PaymentReceived {
	receivedAt := now
	if r.ReceivedAt != nil {
		receivedAt = *r.ReceivedAt
	}
	return domain.PaymentReceived{
		PaymentID:     r.PaymentID,
		InvoiceID:     r.InvoiceID,
		CompanyID:     r.CompanyID,
		InvoiceNumber: r.InvoiceNumber,
		AccountCardID: r.AccountCardID,
		Amount:        r.Amount,
		Method:        domain.PaymentMethod(r.Method),
		ReceivedAt:    receivedAt,
	}
}

// PostStockAdjustedRequest asks the posting pipeline to book a manual stock
// correction: the movement always, a journal entry only when the correction
// carries a monetary valuation.
type PostStockAdjustedRequest struct {
	AdjustmentID string          `json:"adjustmentID" binding:"required"`
	CompanyID    string          `json:"companyID" binding:"required"`
	EquipmentID  string          `json:"equipmentID" binding:"required"`
	Direction    string          `json:"direction" binding:"required,oneof=in out"`
	Quantity     int64           `json:"quantity" binding:"required,gt=0"`
	Reason       string          `json:"reason" binding:"required"`
	Valuation    decimal.Decimal `json:"valuation" binding:"dgte0"`
}

// ToDomainEvent converts the request into its business event.
func (r PostStockAdjustedRequest) ToDomainEvent(now time.Time) domain.StockAdjusted {
	return domain.StockAdjusted{
		AdjustmentID: r.AdjustmentID,
		CompanyID:    r.CompanyID,
		EquipmentID:  r.EquipmentID,
		Direction:    domain.MovementDirection(r.Direction),
		Quantity:     r.Quantity,
		Reason:       r.Reason,
		Valuation:    r.Valuation,
		AdjustedAt:   now,
	}
}

// PostExpenseRecordedRequest asks the posting pipeline to book an expense.
type PostExpenseRecordedRequest struct {
	ExpenseID     string          `json:"expenseID" binding:"required"`
	CompanyID     string          `json:"companyID" binding:"required"`
	AccountCardID string          `json:"accountCardID"` // Supplier card; empty for cash expenses
	Amount        decimal.Decimal `json:"amount" binding:"dgt0"`
	VATAmount     decimal.Decimal `json:"vatAmount" binding:"dgte0"`
	Description   string          `json:"description" binding:"required"`
}

// ToDomainEvent converts the request into its business event.
func (r PostExpenseRecordedRequest) ToDomainEvent(now time.Time) domain.ExpenseRecorded {
	return domain.ExpenseRecorded{
		ExpenseID:     r.ExpenseID,
		CompanyID:     r.CompanyID,
		AccountCardID: r.AccountCardID,
		Amount:        r.Amount,
		VATAmount:     r.VATAmount,
		Description:   r.Description,
		RecordedAt:    now,
	}
}

// PostingResponse reports the outcome of a posting request. Warning is set
// when the journal entry posted but a downstream side effect needs manual
// reconciliation.
type PostingResponse struct {
	State       string           `json:"state"`
	EntryID     string           `json:"entryID,omitempty"`
	EntryNumber string           `json:"entryNumber,omitempty"`
	Warning     string           `json:"warning,omitempty"`
	Invoice     *InvoiceResponse `json:"invoice,omitempty"`
}

// InvoiceResponse is the invoice view returned after a payment posting.
type InvoiceResponse struct {
	InvoiceID  string          `json:"invoiceID"`
	PaidAmount decimal.Decimal `json:"paidAmount"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
	Status     string          `json:"status"`
}

// ToInvoiceResponse converts a domain invoice to its response view.
func ToInvoiceResponse(inv *domain.Invoice) *InvoiceResponse {
	if inv == nil {
		return nil
	}
	return &InvoiceResponse{
		InvoiceID:  inv.InvoiceID,
		PaidAmount: inv.PaidAmount,
		GrandTotal: inv.GrandTotal,
		Status:     string(inv.Status),
	}
}
