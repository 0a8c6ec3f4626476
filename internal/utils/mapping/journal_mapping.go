package mapping

import (
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	"github.com/rentora-app/rentora_backend/internal/models"
)

// ToModelJournalEntry converts a domain journal entry to its DB row shape.
func ToModelJournalEntry(e domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     e.EntryID,
		CompanyID:   e.CompanyID,
		EntryNumber: e.EntryNumber,
		EntryDate:   e.EntryDate,
		EntryType:   string(e.EntryType),
		Description: e.Description,
		TotalDebit:  e.TotalDebit,
		TotalCredit: e.TotalCredit,
		Status:      string(e.Status),
		Reference:   e.Reference,
		AuditFields: ToModelAuditFields(e.AuditFields),
	}
}

// ToDomainJournalEntry converts a journal entry row to the domain shape.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		CompanyID:   m.CompanyID,
		EntryNumber: m.EntryNumber,
		EntryDate:   m.EntryDate,
		EntryType:   domain.EntryType(m.EntryType),
		Description: m.Description,
		TotalDebit:  m.TotalDebit,
		TotalCredit: m.TotalCredit,
		Status:      domain.EntryStatus(m.Status),
		Reference:   m.Reference,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryItem converts a domain journal line to its DB row shape.
func ToModelJournalEntryItem(i domain.JournalEntryItem) models.JournalEntryItem {
	return models.JournalEntryItem{
		EntryID:     i.EntryID,
		LineNumber:  i.LineNumber,
		AccountCode: i.AccountCode,
		Debit:       i.Debit,
		Credit:      i.Credit,
		Description: i.Description,
	}
}

// ToDomainJournalEntryItem converts a journal line row to the domain shape.
func ToDomainJournalEntryItem(m models.JournalEntryItem) domain.JournalEntryItem {
	return domain.JournalEntryItem{
		EntryID:     m.EntryID,
		LineNumber:  m.LineNumber,
		AccountCode: m.AccountCode,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
	}
}

// ToDomainJournalEntryItemSlice converts a slice of journal line rows.
func ToDomainJournalEntryItemSlice(ms []models.JournalEntryItem) []domain.JournalEntryItem {
	out := make([]domain.JournalEntryItem, len(ms))
	for i, m := range ms {
		out[i] = ToDomainJournalEntryItem(m)
	}
	return out
}
