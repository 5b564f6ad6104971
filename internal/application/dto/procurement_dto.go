package dto

import (
	"time"

	"github.com/nexuswms/nexus-api/internal/domain/entity"
)

// CreateRequisitionRequest body para POST /api/requisitions.
type CreateRequisitionRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
	Priority    string `json:"priority,omitempty"` // LOW, MEDIUM, HIGH
}

// RequisitionDTO representación de una requisición de compra.
type RequisitionDTO struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	WarehouseID string    `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	RequestedBy string    `json:"requested_by"`
	CreatedAt   time.Time `json:"created_at"`
	MovementID  string    `json:"movement_id,omitempty"`
}

// NewRequisitionDTO mapea la entidad al DTO de respuesta.
func NewRequisitionDTO(r *entity.Requisition) RequisitionDTO {
	return RequisitionDTO{
		ID:          r.ID,
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		WarehouseID: r.WarehouseID,
		Quantity:    r.Quantity,
		Priority:    r.Priority,
		Status:      r.Status,
		RequestedBy: r.RequestedBy,
		CreatedAt:   r.CreatedAt,
		MovementID:  r.MovementID,
	}
}
