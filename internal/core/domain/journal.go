package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
)

// EntryType is the closed set of journal entry origins.
type EntryType string

const (
	EntryManual         EntryType = "manual"
	EntryAutoInvoice    EntryType = "auto_invoice"
	EntryAutoPayment    EntryType = "auto_payment"
	EntryAutoAdjustment EntryType = "auto_adjustment"
	EntryAutoExpense    EntryType = "auto_expense"
)

// JournalEntry represents a single, balanced financial event.
// Once POSTED an entry is immutable; corrections are made by posting a
// reversing entry, never by editing in place.
type JournalEntry struct {
	EntryID     string          `json:"entryID"`
	CompanyID   string          `json:"companyID"`
	EntryNumber string          `json:"entryNumber"` // JE-<year>-<seq>, unique per company
	EntryDate   time.Time       `json:"entryDate"`
	EntryType   EntryType       `json:"entryType"`
	Description string          `json:"description"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Status      EntryStatus     `json:"status"`
	Reference   string          `json:"reference"` // e.g. INV-2026-17, PAY-42
	AuditFields
	Items []JournalEntryItem `json:"items,omitempty"`
}

// JournalEntryItem is a single debit or credit line within a journal entry.
// Exactly one of Debit/Credit is non-zero.
type JournalEntryItem struct {
	EntryID     string          `json:"entryID"`
	LineNumber  int             `json:"lineNumber"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// JournalEntryDraft is the candidate entry produced by the builder before
// the ledger writer assigns a number and persists it.
type JournalEntryDraft struct {
	CompanyID   string
	EntryDate   time.Time
	EntryType   EntryType
	Description string
	Reference   string
	Lines       []DraftLine
}

// DraftLine is a candidate journal entry line.
type DraftLine struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// TotalDebit sums the debit side of the draft.
func (d JournalEntryDraft) TotalDebit() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range d.Lines {
		sum = sum.Add(l.Debit)
	}
	return sum
}

// TotalCredit sums the credit side of the draft.
func (d JournalEntryDraft) TotalCredit() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range d.Lines {
		sum = sum.Add(l.Credit)
	}
	return sum
}
