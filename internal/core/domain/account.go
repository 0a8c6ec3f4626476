package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Well-known account codes from the Turkish uniform chart of accounts
// (Tekdüzen Hesap Planı). Seeded per company; the posting pipeline refers
// to accounts exclusively by these codes.
const (
	CodeCash               = "100.001" // Kasa
	CodeBank               = "102.001" // Bankalar
	CodeAccountsReceivable = "120.001" // Alıcılar
	CodeInventory          = "153.001" // Ticari Mallar
	CodeAccountsPayable    = "320.001" // Satıcılar
	CodeVATPayable         = "391.001" // Hesaplanan KDV
	CodeVATDeductible      = "391.002" // İndirilecek KDV
	CodeSalesRevenue       = "600.001" // Yurtiçi Satışlar
	CodeInventoryAdjust    = "689.001" // Diğer Olağandışı Gider ve Zararlar
	CodeGeneralExpenses    = "770.001" // Genel Yönetim Giderleri
)

// Account represents a chart-of-accounts entry for a company.
// An account is immutable once a posted journal entry references it.
type Account struct {
	AccountID   string          `json:"accountID"`
	CompanyID   string          `json:"companyID"`
	Code        string          `json:"code"` // Unique per company
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Category    string          `json:"category"`
	IsActive    bool            `json:"isActive"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"` // totalDebit - totalCredit
	AuditFields
}

// Chart is an immutable code-indexed snapshot of a company's chart of
// accounts, used by the journal entry builder for offline lookups.
type Chart struct {
	CompanyID string
	accounts  map[string]Account
}

// NewChart builds a Chart snapshot from a list of accounts.
func NewChart(companyID string, accounts []Account) Chart {
	m := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		m[a.Code] = a
	}
	return Chart{CompanyID: companyID, accounts: m}
}

// Lookup returns the account for the given code, if present.
func (c Chart) Lookup(code string) (Account, bool) {
	a, ok := c.accounts[code]
	return a, ok
}

// Len returns the number of accounts in the chart.
func (c Chart) Len() int {
	return len(c.accounts)
}
