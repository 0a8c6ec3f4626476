package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rentora-app/rentora_backend/internal/apperrors"
)

// InvoiceStatus tracks how much of an invoice has been collected.
type InvoiceStatus string

const (
	InvoiceDraft         InvoiceStatus = "draft"
	InvoicePending       InvoiceStatus = "pending"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoicePaid          InvoiceStatus = "paid"
	InvoiceCancelled     InvoiceStatus = "cancelled"
)

// Invoice carries the billing totals the ledger engine needs.
// Invariant: PaidAmount <= GrandTotal; status flips to paid only on exact
// equality of the two decimals.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	CompanyID     string          `json:"companyID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	AccountCardID string          `json:"accountCardID"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	Status        InvoiceStatus   `json:"status"`
	AuditFields
}

// RegisterPayment applies a payment to the invoice's billing totals. The
// status flips to paid only when the new paid amount exactly equals the
// grand total; a payment that would overshoot it is rejected and the
// invoice is left unchanged.
func (inv *Invoice) RegisterPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: payment amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	if inv.Status == InvoicePaid || inv.Status == InvoiceCancelled {
		return fmt.Errorf("%w: invoice %s is %s and accepts no further payments",
			apperrors.ErrConflict, inv.InvoiceID, inv.Status)
	}
	newPaid := inv.PaidAmount.Add(amount)
	if newPaid.GreaterThan(inv.GrandTotal) {
		return fmt.Errorf("%w: payment of %s rejected for invoice %s (paid %s of %s)",
			apperrors.ErrConflict, amount, inv.InvoiceID, inv.PaidAmount, inv.GrandTotal)
	}
	inv.PaidAmount = newPaid
	if newPaid.Equal(inv.GrandTotal) {
		inv.Status = InvoicePaid
	} else {
		inv.Status = InvoicePartiallyPaid
	}
	return nil
}
