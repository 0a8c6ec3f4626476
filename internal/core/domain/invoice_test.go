package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentora-app/rentora_backend/internal/apperrors"
	"github.com/rentora-app/rentora_backend/internal/core/domain"
)

func pendingInvoice(grandTotal, paid string, status domain.InvoiceStatus) domain.Invoice {
	return domain.Invoice{
		InvoiceID:  "inv-1",
		GrandTotal: decimal.RequireFromString(grandTotal),
		PaidAmount: decimal.RequireFromString(paid),
		Status:     status,
	}
}

func TestInvoice_RegisterPayment(t *testing.T) {
	tests := []struct {
		name       string
		invoice    domain.Invoice
		amount     string
		wantErr    error
		wantPaid   string
		wantStatus domain.InvoiceStatus
	}{
		{
			name:       "partial payment",
			invoice:    pendingInvoice("118.00", "0", domain.InvoicePending),
			amount:     "50.00",
			wantPaid:   "50.00",
			wantStatus: domain.InvoicePartiallyPaid,
		},
		{
			name:       "second payment flips to paid on exact equality",
			invoice:    pendingInvoice("118.00", "50.00", domain.InvoicePartiallyPaid),
			amount:     "68.00",
			wantPaid:   "118.00",
			wantStatus: domain.InvoicePaid,
		},
		{
			name:       "a sub-cent short of the total stays partially paid",
			invoice:    pendingInvoice("118.00", "0", domain.InvoicePending),
			amount:     "117.9999",
			wantPaid:   "117.9999",
			wantStatus: domain.InvoicePartiallyPaid,
		},
		{
			name:    "overpayment rejected",
			invoice: pendingInvoice("118.00", "50.00", domain.InvoicePartiallyPaid),
			amount:  "68.01",
			wantErr: apperrors.ErrConflict,
		},
		{
			name:    "paid invoice accepts no further payments",
			invoice: pendingInvoice("118.00", "118.00", domain.InvoicePaid),
			amount:  "1.00",
			wantErr: apperrors.ErrConflict,
		},
		{
			name:    "cancelled invoice accepts no payments",
			invoice: pendingInvoice("118.00", "0", domain.InvoiceCancelled),
			amount:  "10.00",
			wantErr: apperrors.ErrConflict,
		},
		{
			name:    "zero amount rejected",
			invoice: pendingInvoice("118.00", "0", domain.InvoicePending),
			amount:  "0",
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "negative amount rejected",
			invoice: pendingInvoice("118.00", "0", domain.InvoicePending),
			amount:  "-5.00",
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := tt.invoice
			before := inv

			err := inv.RegisterPayment(decimal.RequireFromString(tt.amount))

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				// A rejected payment leaves the invoice untouched.
				assert.True(t, before.PaidAmount.Equal(inv.PaidAmount))
				assert.Equal(t, before.Status, inv.Status)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.wantPaid).Equal(inv.PaidAmount))
			assert.Equal(t, tt.wantStatus, inv.Status)
		})
	}
}
