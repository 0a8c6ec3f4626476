package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the journal header row.
type JournalEntry struct {
	EntryID     string          `db:"entry_id"`
	CompanyID   string          `db:"company_id"`
	EntryNumber string          `db:"entry_number"`
	EntryDate   time.Time       `db:"entry_date"`
	EntryType   string          `db:"entry_type"`
	Description string          `db:"description"`
	TotalDebit  decimal.Decimal `db:"total_debit"`
	TotalCredit decimal.Decimal `db:"total_credit"`
	Status      string          `db:"status"`
	Reference   string          `db:"reference"`
	AuditFields
}

// JournalEntryItem is a journal line row.
type JournalEntryItem struct {
	EntryID     string          `db:"entry_id"`
	LineNumber  int             `db:"line_number"`
	AccountCode string          `db:"account_code"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
}
