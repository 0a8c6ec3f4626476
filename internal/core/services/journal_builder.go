package services

import (
	"fmt"

	"github.com/rentora-app/rentora_backend/internal/apperrors"
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	"github.com/rentora-app/rentora_backend/internal/utils/accounting"
)

// BuildEntryDraft turns a business event into a balanced journal entry draft
// against the given chart snapshot. It is a pure function: no I/O, no clock,
// no randomness, so the same event and chart always yield the same draft.
//
// A StockAdjusted event with zero valuation legitimately produces no entry;
// the function returns (nil, nil) in that case and callers must skip posting.
func BuildEntryDraft(event domain.BusinessEvent, chart domain.Chart) (*domain.JournalEntryDraft, error) {
	if event.Company() == "" || event.SourceID() == "" {
		return nil, fmt.Errorf("%w: missing company or source entity", apperrors.ErrInvalidEvent)
	}
	if chart.CompanyID != event.Company() {
		return nil, fmt.Errorf("%w: chart belongs to company %s, event to %s", apperrors.ErrInvalidEvent, chart.CompanyID, event.Company())
	}

	var (
		draft *domain.JournalEntryDraft
		err   error
	)
	switch e := event.(type) {
	case domain.InvoiceIssued:
		draft, err = buildInvoiceEntry(e, chart)
	case domain.PaymentReceived:
		draft, err = buildPaymentEntry(e, chart)
	case domain.StockAdjusted:
		draft, err = buildAdjustmentEntry(e, chart)
	case domain.ExpenseRecorded:
		draft, err = buildExpenseEntry(e, chart)
	default:
		return nil, fmt.Errorf("%w: unsupported event type %s", apperrors.ErrInvalidEvent, event.Type())
	}
	if err != nil || draft == nil {
		return nil, err
	}

	// The builder guarantees balanced output; a failure here is a bug in the
	// per-event construction above, surfaced before anything touches the
	// database.
	if err := accounting.ValidateBalanced(draft.Lines); err != nil {
		return nil, fmt.Errorf("%w: built entry is not balanced: %v", apperrors.ErrInvalidEvent, err)
	}
	return draft, nil
}

// resolveCode checks that the chart carries an active account for the code.
func resolveCode(chart domain.Chart, code string) (domain.Account, error) {
	acc, ok := chart.Lookup(code)
	if !ok {
		return domain.Account{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, code)
	}
	if !acc.IsActive {
		return domain.Account{}, fmt.Errorf("%w: %s is inactive", apperrors.ErrUnknownAccount, code)
	}
	return acc, nil
}

// buildInvoiceEntry books a sales invoice: the customer owes the gross total,
// revenue takes the net and VAT payable takes the tax.
//
//	Dr 120.001 Alıcılar         grandTotal
//	Cr 600.001 Yurtiçi Satışlar grandTotal - vat
//	Cr 391.001 Hesaplanan KDV   vat        (omitted when vat is zero)
func buildInvoiceEntry(e domain.InvoiceIssued, chart domain.Chart) (*domain.JournalEntryDraft, error) {
	if !e.GrandTotal.IsPositive() {
		return nil, fmt.Errorf("%w: invoice grand total must be positive, got %s", apperrors.ErrInvalidEvent, e.GrandTotal)
	}
	if e.VATAmount.IsNegative() {
		return nil, fmt.Errorf("%w: invoice VAT amount must not be negative, got %s", apperrors.ErrInvalidEvent, e.VATAmount)
	}
	net := e.GrandTotal.Sub(e.VATAmount)
	if !net.IsPositive() {
		return nil, fmt.Errorf("%w: invoice VAT %s must be less than grand total %s", apperrors.ErrInvalidEvent, e.VATAmount, e.GrandTotal)
	}

	for _, code := range []string{domain.CodeAccountsReceivable, domain.CodeSalesRevenue, domain.CodeVATPayable} {
		if _, err := resolveCode(chart, code); err != nil {
			return nil, err
		}
	}

	lines := []domain.DraftLine{
		{AccountCode: domain.CodeAccountsReceivable, Debit: e.GrandTotal, Description: fmt.Sprintf("Invoice %s receivable", e.InvoiceNumber)},
		{AccountCode: domain.CodeSalesRevenue, Credit: net, Description: fmt.Sprintf("Invoice %s sales revenue", e.InvoiceNumber)},
	}
	if e.VATAmount.IsPositive() {
		lines = append(lines, domain.DraftLine{AccountCode: domain.CodeVATPayable, Credit: e.VATAmount, Description: fmt.Sprintf("Invoice %s VAT", e.InvoiceNumber)})
	}

	return &domain.JournalEntryDraft{
		CompanyID:   e.CompanyID,
		EntryDate:   e.IssuedAt,
		EntryType:   domain.EntryAutoInvoice,
		Description: fmt.Sprintf("Sales invoice %s", e.InvoiceNumber),
		Reference:   e.InvoiceNumber,
		Lines:       lines,
	}, nil
}

// buildPaymentEntry books a collection against an invoice: cash or bank goes
// up, the customer's receivable goes down.
func buildPaymentEntry(e domain.PaymentReceived, chart domain.Chart) (*domain.JournalEntryDraft, error) {
	if !e.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive, got %s", apperrors.ErrInvalidEvent, e.Amount)
	}

	var debitCode string
	switch e.Method {
	case domain.PaymentCash:
		debitCode = domain.CodeCash
	case domain.PaymentBank:
		debitCode = domain.CodeBank
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrInvalidEvent, e.Method)
	}
	for _, code := range []string{debitCode, domain.CodeAccountsReceivable} {
		if _, err := resolveCode(chart, code); err != nil {
			return nil, err
		}
	}

	return &domain.JournalEntryDraft{
		CompanyID:   e.CompanyID,
		EntryDate:   e.ReceivedAt,
		EntryType:   domain.EntryAutoPayment,
		Description: fmt.Sprintf("Payment received for invoice %s", e.InvoiceNumber),
		Reference:   e.InvoiceNumber,
		Lines: []domain.DraftLine{
			{AccountCode: debitCode, Debit: e.Amount, Description: fmt.Sprintf("Collection via %s", e.Method)},
			{AccountCode: domain.CodeAccountsReceivable, Credit: e.Amount, Description: fmt.Sprintf("Invoice %s settled", e.InvoiceNumber)},
		},
	}, nil
}

// buildAdjustmentEntry books the monetary side of a stock correction. Inbound
// adjustments debit inventory against the adjustment expense account;
// outbound adjustments do the reverse. A zero valuation means the correction
// has no monetary impact and no entry is produced.
func buildAdjustmentEntry(e domain.StockAdjusted, chart domain.Chart) (*domain.JournalEntryDraft, error) {
	if e.Quantity <= 0 {
		return nil, fmt.Errorf("%w: adjustment quantity must be positive, got %d", apperrors.ErrInvalidEvent, e.Quantity)
	}
	if e.Direction != domain.DirectionIn && e.Direction != domain.DirectionOut {
		return nil, fmt.Errorf("%w: unknown adjustment direction %q", apperrors.ErrInvalidEvent, e.Direction)
	}
	if e.Valuation.IsNegative() {
		return nil, fmt.Errorf("%w: adjustment valuation must not be negative, got %s", apperrors.ErrInvalidEvent, e.Valuation)
	}
	if e.Valuation.IsZero() {
		return nil, nil
	}

	for _, code := range []string{domain.CodeInventory, domain.CodeInventoryAdjust} {
		if _, err := resolveCode(chart, code); err != nil {
			return nil, err
		}
	}

	inventory := domain.DraftLine{AccountCode: domain.CodeInventory, Description: fmt.Sprintf("Stock adjustment %s", e.Reason)}
	counter := domain.DraftLine{AccountCode: domain.CodeInventoryAdjust, Description: fmt.Sprintf("Stock adjustment %s", e.Reason)}
	if e.Direction == domain.DirectionIn {
		inventory.Debit = e.Valuation
		counter.Credit = e.Valuation
	} else {
		inventory.Credit = e.Valuation
		counter.Debit = e.Valuation
	}

	return &domain.JournalEntryDraft{
		CompanyID:   e.CompanyID,
		EntryDate:   e.AdjustedAt,
		EntryType:   domain.EntryAutoAdjustment,
		Description: fmt.Sprintf("Stock adjustment (%s) for equipment %s", e.Direction, e.EquipmentID),
		Reference:   e.AdjustmentID,
		Lines:       []domain.DraftLine{inventory, counter},
	}, nil
}

// buildExpenseEntry books an operating expense: the expense account takes the
// net amount, deductible VAT is a separate debit, and the credit goes to the
// supplier payable or to cash when no supplier card is involved.
func buildExpenseEntry(e domain.ExpenseRecorded, chart domain.Chart) (*domain.JournalEntryDraft, error) {
	if !e.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be positive, got %s", apperrors.ErrInvalidEvent, e.Amount)
	}
	if e.VATAmount.IsNegative() {
		return nil, fmt.Errorf("%w: expense VAT amount must not be negative, got %s", apperrors.ErrInvalidEvent, e.VATAmount)
	}

	creditCode := domain.CodeCash
	if e.AccountCardID != "" {
		creditCode = domain.CodeAccountsPayable
	}
	codes := []string{domain.CodeGeneralExpenses, creditCode}
	if e.VATAmount.IsPositive() {
		codes = append(codes, domain.CodeVATDeductible)
	}
	for _, code := range codes {
		if _, err := resolveCode(chart, code); err != nil {
			return nil, err
		}
	}

	gross := e.Amount.Add(e.VATAmount)
	lines := []domain.DraftLine{
		{AccountCode: domain.CodeGeneralExpenses, Debit: e.Amount, Description: e.Description},
	}
	if e.VATAmount.IsPositive() {
		lines = append(lines, domain.DraftLine{AccountCode: domain.CodeVATDeductible, Debit: e.VATAmount, Description: "Deductible VAT"})
	}
	lines = append(lines, domain.DraftLine{AccountCode: creditCode, Credit: gross, Description: e.Description})

	description := e.Description
	if description == "" {
		description = "Expense recorded"
	}
	return &domain.JournalEntryDraft{
		CompanyID:   e.CompanyID,
		EntryDate:   e.RecordedAt,
		EntryType:   domain.EntryAutoExpense,
		Description: description,
		Reference:   e.ExpenseID,
		Lines:       lines,
	}, nil
}
