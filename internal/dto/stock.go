package dto

import (
	"github.com/rentora-app/rentora_backend/internal/core/domain"
)

// RecordMovementRequest asks the stock recorder for a discrete quantity
// change on one equipment item.
type RecordMovementRequest struct {
	CompanyID      string  `json:"companyID" binding:"required"`
	EquipmentID    string  `json:"equipmentID" binding:"required"`
	MovementType   string  `json:"movementType" binding:"required,oneof=rental_out rental_return adjustment"`
	MovementReason string  `json:"movementReason" binding:"required"`
	Quantity       int64   `json:"quantity" binding:"required,gt=0"`
	Direction      string  `json:"direction" binding:"omitempty,oneof=in out"` // Only meaningful for adjustments
	InvoiceID      *string `json:"invoiceID,omitempty"`
	Notes          string  `json:"notes"`
}

// ReconcileMovementRequest links a pending movement to an invoice.
type ReconcileMovementRequest struct {
	InvoiceID string `json:"invoiceID" binding:"required"`
}

// StockMovementResponse is the stock movement view returned to callers.
type StockMovementResponse struct {
	MovementID     string  `json:"movementID"`
	EquipmentID    string  `json:"equipmentID"`
	InvoiceID      *string `json:"invoiceID,omitempty"`
	MovementType   string  `json:"movementType"`
	Direction      string  `json:"direction"`
	MovementReason string  `json:"movementReason"`
	Quantity       int64   `json:"quantity"`
	StockBefore    int64   `json:"stockBefore"`
	StockAfter     int64   `json:"stockAfter"`
}

// ToStockMovementResponse converts a domain movement to its view.
func ToStockMovementResponse(m *domain.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		MovementID:     m.MovementID,
		EquipmentID:    m.EquipmentID,
		InvoiceID:      m.InvoiceID,
		MovementType:   string(m.MovementType),
		Direction:      string(m.Direction),
		MovementReason: m.MovementReason,
		Quantity:       m.Quantity,
		StockBefore:    m.StockBefore,
		StockAfter:     m.StockAfter,
	}
}

// ToStockMovementResponses converts a slice of domain movements.
func ToStockMovementResponses(ms []domain.StockMovement) []StockMovementResponse {
	out := make([]StockMovementResponse, len(ms))
	for i := range ms {
		out[i] = ToStockMovementResponse(&ms[i])
	}
	return out
}

// StockAlertResponse is the stock alert view returned to callers.
type StockAlertResponse struct {
	AlertID      string `json:"alertID"`
	EquipmentID  string `json:"equipmentID"`
	AlertType    string `json:"alertType"`
	Severity     string `json:"severity"`
	Message      string `json:"message"`
	CurrentStock int64  `json:"currentStock"`
}

// ToStockAlertResponses converts domain alerts to their views.
func ToStockAlertResponses(alerts []domain.StockAlert) []StockAlertResponse {
	out := make([]StockAlertResponse, len(alerts))
	for i, a := range alerts {
		out[i] = StockAlertResponse{
			AlertID:      a.AlertID,
			EquipmentID:  a.EquipmentID,
			AlertType:    string(a.AlertType),
			Severity:     string(a.Severity),
			Message:      a.Message,
			CurrentStock: a.CurrentStock,
		}
	}
	return out
}
