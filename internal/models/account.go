package models

import (
	"github.com/shopspring/decimal"
)

// Account is the chart-of-accounts row.
type Account struct {
	AccountID   string          `db:"account_id"`
	CompanyID   string          `db:"company_id"`
	Code        string          `db:"code"`
	Name        string          `db:"name"`
	AccountType string          `db:"account_type"`
	Category    string          `db:"category"`
	IsActive    bool            `db:"is_active"`
	TotalDebit  decimal.Decimal `db:"total_debit"`
	TotalCredit decimal.Decimal `db:"total_credit"`
	Balance     decimal.Decimal `db:"balance"`
	AuditFields
}
