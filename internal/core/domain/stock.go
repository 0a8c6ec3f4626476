package domain

// MovementType is the closed set of stock movement kinds.
type MovementType string

const (
	MovementRentalOut    MovementType = "rental_out"
	MovementRentalReturn MovementType = "rental_return"
	MovementAdjustment   MovementType = "adjustment"
)

// MovementDirection says which way a movement changes the equipment quantity.
type MovementDirection string

const (
	DirectionOut MovementDirection = "out"
	DirectionIn  MovementDirection = "in"
)

// DefaultDirection returns the quantity direction implied by the movement
// type. Adjustments have no implied direction; callers must set it
// explicitly.
func (t MovementType) DefaultDirection() (MovementDirection, bool) {
	switch t {
	case MovementRentalOut:
		return DirectionOut, true
	case MovementRentalReturn:
		return DirectionIn, true
	default:
		return "", false
	}
}

// StockMovement is an atomic record of one equipment quantity change with a
// before/after snapshot. Movements are never mutated; corrections are new
// movements. A nil InvoiceID marks a pending movement not yet reconciled to
// a billing event.
type StockMovement struct {
	MovementID     string            `json:"movementID"`
	CompanyID      string            `json:"companyID"`
	EquipmentID    string            `json:"equipmentID"`
	InvoiceID      *string           `json:"invoiceID,omitempty"`
	MovementType   MovementType      `json:"movementType"`
	Direction      MovementDirection `json:"direction"`
	MovementReason string            `json:"movementReason"`
	Quantity       int64             `json:"quantity"` // Always positive; Direction says which way
	StockBefore    int64             `json:"stockBefore"`
	StockAfter     int64             `json:"stockAfter"`
	Notes          string            `json:"notes"`
	AuditFields
}

// Equipment holds the denormalized current quantity for a rental item.
// Quantity is mutated only through the stock movement recorder.
type Equipment struct {
	EquipmentID string `json:"equipmentID"`
	CompanyID   string `json:"companyID"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Quantity    int64  `json:"quantity"`
	AuditFields
}

// AlertSeverity grades a stock alert.
type AlertSeverity string

const (
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

// AlertType classifies a stock alert.
type AlertType string

const (
	AlertLowStock   AlertType = "low_stock"
	AlertOutOfStock AlertType = "out_of_stock"
)

// StockAlert flags equipment whose quantity dropped below a threshold.
type StockAlert struct {
	AlertID      string        `json:"alertID"`
	CompanyID    string        `json:"companyID"`
	EquipmentID  string        `json:"equipmentID"`
	AlertType    AlertType     `json:"alertType"`
	Severity     AlertSeverity `json:"severity"`
	Message      string        `json:"message"`
	CurrentStock int64         `json:"currentStock"`
	Status       string        `json:"status"` // active | resolved
	AuditFields
}
