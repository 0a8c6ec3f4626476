package models

// StockMovement is one equipment quantity change row.
type StockMovement struct {
	MovementID     string  `db:"movement_id"`
	CompanyID      string  `db:"company_id"`
	EquipmentID    string  `db:"equipment_id"`
	InvoiceID      *string `db:"invoice_id"`
	MovementType   string  `db:"movement_type"`
	Direction      string  `db:"direction"`
	MovementReason string  `db:"movement_reason"`
	Quantity       int64   `db:"quantity"`
	StockBefore    int64   `db:"stock_before"`
	StockAfter     int64   `db:"stock_after"`
	Notes          string  `db:"notes"`
	AuditFields
}

// Equipment is a rental item row with its denormalized quantity.
type Equipment struct {
	EquipmentID string `db:"equipment_id"`
	CompanyID   string `db:"company_id"`
	Code        string `db:"code"`
	Name        string `db:"name"`
	Quantity    int64  `db:"quantity"`
	AuditFields
}

// StockAlert is a low-stock/out-of-stock alert row.
type StockAlert struct {
	AlertID      string `db:"alert_id"`
	CompanyID    string `db:"company_id"`
	EquipmentID  string `db:"equipment_id"`
	AlertType    string `db:"alert_type"`
	Severity     string `db:"severity"`
	Message      string `db:"message"`
	CurrentStock int64  `db:"current_stock"`
	Status       string `db:"status"`
	AuditFields
}
