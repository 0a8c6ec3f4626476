package domain

import (
	"github.com/shopspring/decimal"
)

// CardKind distinguishes customer and supplier account cards.
type CardKind string

const (
	CardCustomer CardKind = "customer"
	CardSupplier CardKind = "supplier"
)

// AccountCard is a per-customer/supplier running balance, analogous to a
// sub-ledger. The balance is only ever mutated by signed deltas applied
// in-database, never overwritten wholesale.
type AccountCard struct {
	AccountCardID string          `json:"accountCardID"`
	CompanyID     string          `json:"companyID"`
	Kind          CardKind        `json:"kind"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"` // Positive: owes us; negative: we owe
	AuditFields
}
