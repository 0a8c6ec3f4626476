package dto

import (
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SeedAccountsRequest asks the chart service to create the default chart of
// accounts for a company.
type SeedAccountsRequest struct {
	CompanyID string `json:"companyID" binding:"required"`
}

// AccountResponse is the chart-of-accounts view returned to callers.
type AccountResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType string          `json:"accountType"`
	Category    string          `json:"category"`
	IsActive    bool            `json:"isActive"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain account to its view.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		Code:        a.Code,
		Name:        a.Name,
		AccountType: string(a.AccountType),
		Category:    a.Category,
		IsActive:    a.IsActive,
		TotalDebit:  a.TotalDebit,
		TotalCredit: a.TotalCredit,
		Balance:     a.Balance,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
