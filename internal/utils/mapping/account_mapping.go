package mapping

import (
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	"github.com/rentora-app/rentora_backend/internal/models"
)

// ToModelAccount converts a domain account to its DB row shape.
func ToModelAccount(a domain.Account) models.Account {
	return models.Account{
		AccountID:   a.AccountID,
		CompanyID:   a.CompanyID,
		Code:        a.Code,
		Name:        a.Name,
		AccountType: string(a.AccountType),
		Category:    a.Category,
		IsActive:    a.IsActive,
		TotalDebit:  a.TotalDebit,
		TotalCredit: a.TotalCredit,
		Balance:     a.Balance,
		AuditFields: ToModelAuditFields(a.AuditFields),
	}
}

// ToDomainAccount converts an account row to the domain shape.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		CompanyID:   m.CompanyID,
		Code:        m.Code,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		Category:    m.Category,
		IsActive:    m.IsActive,
		TotalDebit:  m.TotalDebit,
		TotalCredit: m.TotalCredit,
		Balance:     m.Balance,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountCard converts an account card row to the domain shape.
func ToDomainAccountCard(m models.AccountCard) domain.AccountCard {
	return domain.AccountCard{
		AccountCardID: m.AccountCardID,
		CompanyID:     m.CompanyID,
		Kind:          domain.CardKind(m.Kind),
		Name:          m.Name,
		Balance:       m.Balance,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
