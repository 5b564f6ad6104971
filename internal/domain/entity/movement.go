package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario. La dirección la define el tipo,
// nunca el signo de la cantidad (Quantity siempre > 0).
const (
	MovementTypeIN          = "IN"
	MovementTypeOUT         = "OUT"
	MovementTypeADJUST      = "ADJUST"
	MovementTypeTRANSFERIN  = "TRANSFER_IN"
	MovementTypeTRANSFEROUT = "TRANSFER_OUT"
	MovementTypePURCHASE    = "PURCHASE"
)

// Estados de un movimiento. IN_TRANSIT y RECEIVED existen por compatibilidad
// con la consola; el motor no los produce.
const (
	MovementStatusPENDING        = "PENDING"
	MovementStatusAPPROVED       = "APPROVED"
	MovementStatusREJECTED       = "REJECTED"
	MovementStatusINTRANSIT      = "IN_TRANSIT"
	MovementStatusRECEIVED       = "RECEIVED"
	MovementStatusREVIEWREQUIRED = "REVIEW_REQUIRED"
)

// Movement es un evento de stock inmutable del libro mayor. Una vez creado,
// los hechos originales (quién, qué, cuánto, cuándo) no cambian: la resolución
// solo adjunta Status, ApprovedBy/ApprovedAt.
type Movement struct {
	ID          string
	TransferID  string // vacío salvo TRANSFER_IN/TRANSFER_OUT
	ProductID   string
	SKU         string // snapshot al momento de crear
	ProductName string // snapshot al momento de crear
	WarehouseID string
	Type        string
	Quantity    int64 // siempre > 0; la dirección la da Type
	UOM         string
	UnitCost    decimal.Decimal // costo unitario al momento de la transacción
	TotalCost   decimal.Decimal
	Status      string
	Reason      string
	CreatedBy   string
	CreatedAt   time.Time
	ApprovedBy  string
	ApprovedAt  *time.Time
}

// IsOutbound indica si el movimiento descuenta stock de la bodega.
func (m *Movement) IsOutbound() bool {
	return m.Type == MovementTypeOUT || m.Type == MovementTypeTRANSFEROUT
}

// IsTerminal indica si el movimiento ya no admite transiciones.
func (m *Movement) IsTerminal() bool {
	return m.Status == MovementStatusAPPROVED || m.Status == MovementStatusREJECTED
}

// IsHeld indica si el movimiento espera resolución humana.
func (m *Movement) IsHeld() bool {
	return m.Status == MovementStatusPENDING || m.Status == MovementStatusREVIEWREQUIRED
}

// StockDelta devuelve el efecto sobre el saldo de la bodega al aplicarse.
// IN, PURCHASE, ADJUST y TRANSFER_IN suman; OUT y TRANSFER_OUT restan.
// Las correcciones a la baja se expresan como OUT.
func (m *Movement) StockDelta() int64 {
	if m.IsOutbound() {
		return -m.Quantity
	}
	return m.Quantity
}
