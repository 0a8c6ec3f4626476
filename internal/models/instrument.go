package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialInstrument is a check or promissory note row.
type FinancialInstrument struct {
	InstrumentID string          `db:"instrument_id"`
	CompanyID    string          `db:"company_id"`
	Kind         string          `db:"kind"`
	Side         string          `db:"side"`
	Number       string          `db:"number"`
	DrawerName   string          `db:"drawer_name"`
	Amount       decimal.Decimal `db:"amount"`
	DueDate      time.Time       `db:"due_date"`
	Status       string          `db:"status"`
	AuditFields
}
