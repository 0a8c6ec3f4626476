package mapping

import (
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	"github.com/rentora-app/rentora_backend/internal/models"
)

// ToDomainInvoice converts an invoice row to the domain shape.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		CompanyID:     m.CompanyID,
		InvoiceNumber: m.InvoiceNumber,
		AccountCardID: m.AccountCardID,
		GrandTotal:    m.GrandTotal,
		VATAmount:     m.VATAmount,
		PaidAmount:    m.PaidAmount,
		Status:        domain.InvoiceStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInstrument converts a financial instrument row to the domain shape.
func ToDomainInstrument(m models.FinancialInstrument) domain.FinancialInstrument {
	return domain.FinancialInstrument{
		InstrumentID: m.InstrumentID,
		CompanyID:    m.CompanyID,
		Kind:         domain.InstrumentKind(m.Kind),
		Side:         domain.InstrumentSide(m.Side),
		Number:       m.Number,
		DrawerName:   m.DrawerName,
		Amount:       m.Amount,
		DueDate:      m.DueDate,
		Status:       m.Status,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInstrumentSlice converts a slice of instrument rows.
func ToDomainInstrumentSlice(ms []models.FinancialInstrument) []domain.FinancialInstrument {
	out := make([]domain.FinancialInstrument, len(ms))
	for i, m := range ms {
		out[i] = ToDomainInstrument(m)
	}
	return out
}

// ToDomainPostingRecord converts a posting log row to the domain shape.
func ToDomainPostingRecord(m models.PostingLog) domain.PostingRecord {
	return domain.PostingRecord{
		EventType:      domain.EventType(m.EventType),
		SourceEntityID: m.SourceEntityID,
		CompanyID:      m.CompanyID,
		State:          domain.PostingState(m.State),
		EntryID:        m.EntryID,
		EntryNumber:    m.EntryNumber,
		FailureReason:  m.FailureReason,
		CreatedAt:      m.CreatedAt,
		LastUpdatedAt:  m.LastUpdatedAt,
	}
}
