package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstrumentKind distinguishes the financial instrument types the aging
// classifier works over.
type InstrumentKind string

const (
	InstrumentCheck          InstrumentKind = "check"
	InstrumentPromissoryNote InstrumentKind = "promissory_note"
)

// InstrumentSide says whether an instrument is held as a receivable or owed
// as a payable.
type InstrumentSide string

const (
	SideReceivable InstrumentSide = "receivable"
	SidePayable    InstrumentSide = "payable"
)

// FinancialInstrument is a dated obligation (check or promissory note) used
// as read-only input to aging classification.
type FinancialInstrument struct {
	InstrumentID string          `json:"instrumentID"`
	CompanyID    string          `json:"companyID"`
	Kind         InstrumentKind  `json:"kind"`
	Side         InstrumentSide  `json:"side"`
	Number       string          `json:"number"`
	DrawerName   string          `json:"drawerName"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      time.Time       `json:"dueDate"`
	Status       string          `json:"status"` // portfolio | deposited | cleared | bounced
	AuditFields
}
