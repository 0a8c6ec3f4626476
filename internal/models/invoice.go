package models

import (
	"github.com/shopspring/decimal"
)

// Invoice carries the billing totals consumed by the posting pipeline.
type Invoice struct {
	InvoiceID     string          `db:"invoice_id"`
	CompanyID     string          `db:"company_id"`
	InvoiceNumber string          `db:"invoice_number"`
	AccountCardID string          `db:"account_card_id"`
	GrandTotal    decimal.Decimal `db:"grand_total"`
	VATAmount     decimal.Decimal `db:"vat_amount"`
	PaidAmount    decimal.Decimal `db:"paid_amount"`
	Status        string          `db:"status"`
	AuditFields
}

// AccountCard is the customer/supplier running balance row.
type AccountCard struct {
	AccountCardID string          `db:"account_card_id"`
	CompanyID     string          `db:"company_id"`
	Kind          string          `db:"kind"`
	Name          string          `db:"name"`
	Balance       decimal.Decimal `db:"balance"`
	AuditFields
}
