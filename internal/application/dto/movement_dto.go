package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexuswms/nexus-api/internal/domain/entity"
)

// SubmitMovementRequest body para POST /api/inventory/movements.
type SubmitMovementRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Type        string `json:"type"`
	Quantity    int64  `json:"quantity"`
	Reason      string `json:"reason,omitempty"`
}

// ResolveMovementRequest body para POST /api/inventory/movements/:id/resolve.
type ResolveMovementRequest struct {
	Decision string `json:"decision"` // APPROVED o REJECTED
}

// MovementDTO representación de un movimiento del libro mayor.
type MovementDTO struct {
	ID          string          `json:"id"`
	TransferID  string          `json:"transfer_id,omitempty"`
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	WarehouseID string          `json:"warehouse_id"`
	Type        string          `json:"type"`
	Quantity    int64           `json:"quantity"`
	UOM         string          `json:"uom"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Status      string          `json:"status"`
	Reason      string          `json:"reason,omitempty"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	ApprovedBy  string          `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time      `json:"approved_at,omitempty"`
}

// NewMovementDTO mapea la entidad al DTO de respuesta.
func NewMovementDTO(m *entity.Movement) MovementDTO {
	return MovementDTO{
		ID:          m.ID,
		TransferID:  m.TransferID,
		ProductID:   m.ProductID,
		SKU:         m.SKU,
		ProductName: m.ProductName,
		WarehouseID: m.WarehouseID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		UOM:         m.UOM,
		UnitCost:    m.UnitCost,
		TotalCost:   m.TotalCost,
		Status:      m.Status,
		Reason:      m.Reason,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		ApprovedBy:  m.ApprovedBy,
		ApprovedAt:  m.ApprovedAt,
	}
}
