package mapping

import (
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	"github.com/rentora-app/rentora_backend/internal/models"
)

// ToModelStockMovement converts a domain stock movement to its DB row shape.
func ToModelStockMovement(m domain.StockMovement) models.StockMovement {
	return models.StockMovement{
		MovementID:     m.MovementID,
		CompanyID:      m.CompanyID,
		EquipmentID:    m.EquipmentID,
		InvoiceID:      m.InvoiceID,
		MovementType:   string(m.MovementType),
		Direction:      string(m.Direction),
		MovementReason: m.MovementReason,
		Quantity:       m.Quantity,
		StockBefore:    m.StockBefore,
		StockAfter:     m.StockAfter,
		Notes:          m.Notes,
		AuditFields:    ToModelAuditFields(m.AuditFields),
	}
}

// ToDomainStockMovement converts a stock movement row to the domain shape.
func ToDomainStockMovement(m models.StockMovement) domain.StockMovement {
	return domain.StockMovement{
		MovementID:     m.MovementID,
		CompanyID:      m.CompanyID,
		EquipmentID:    m.EquipmentID,
		InvoiceID:      m.InvoiceID,
		MovementType:   domain.MovementType(m.MovementType),
		Direction:      domain.MovementDirection(m.Direction),
		MovementReason: m.MovementReason,
		Quantity:       m.Quantity,
		StockBefore:    m.StockBefore,
		StockAfter:     m.StockAfter,
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStockMovementSlice converts a slice of stock movement rows.
func ToDomainStockMovementSlice(ms []models.StockMovement) []domain.StockMovement {
	out := make([]domain.StockMovement, len(ms))
	for i, m := range ms {
		out[i] = ToDomainStockMovement(m)
	}
	return out
}

// ToDomainEquipment converts an equipment row to the domain shape.
func ToDomainEquipment(m models.Equipment) domain.Equipment {
	return domain.Equipment{
		EquipmentID: m.EquipmentID,
		CompanyID:   m.CompanyID,
		Code:        m.Code,
		Name:        m.Name,
		Quantity:    m.Quantity,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStockAlert converts a stock alert row to the domain shape.
func ToDomainStockAlert(m models.StockAlert) domain.StockAlert {
	return domain.StockAlert{
		AlertID:      m.AlertID,
		CompanyID:    m.CompanyID,
		EquipmentID:  m.EquipmentID,
		AlertType:    domain.AlertType(m.AlertType),
		Severity:     domain.AlertSeverity(m.Severity),
		Message:      m.Message,
		CurrentStock: m.CurrentStock,
		Status:       m.Status,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
