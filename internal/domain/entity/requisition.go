package entity

import "time"

// Prioridades y estados de una requisición de compra.
const (
	RequisitionPriorityLOW    = "LOW"
	RequisitionPriorityMEDIUM = "MEDIUM"
	RequisitionPriorityHIGH   = "HIGH"

	RequisitionStatusDRAFT     = "DRAFT"
	RequisitionStatusSUBMITTED = "SUBMITTED"
	RequisitionStatusCONVERTED = "CONVERTED"
)

// Requisition es una requisición de compra. Al convertirse genera un
// movimiento PURCHASE a través del libro mayor y queda en CONVERTED.
type Requisition struct {
	ID          string
	ProductID   string
	ProductName string // snapshot al momento de crear
	WarehouseID string
	Quantity    int64 // siempre > 0
	Priority    string
	Status      string
	RequestedBy string
	CreatedAt   time.Time
	MovementID  string // movimiento PURCHASE generado por la conversión
}

// IsConverted indica si la requisición ya generó su movimiento PURCHASE.
func (r *Requisition) IsConverted() bool {
	return r.Status == RequisitionStatusCONVERTED
}
