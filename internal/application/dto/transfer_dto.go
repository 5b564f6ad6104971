package dto

import (
	"time"

	"github.com/nexuswms/nexus-api/internal/domain/entity"
)

// RequestTransferRequest body para POST /api/transfers.
type RequestTransferRequest struct {
	SourceWarehouseID      string `json:"source_warehouse_id"`
	DestinationWarehouseID string `json:"destination_warehouse_id"`
	ProductID              string `json:"product_id"`
	Quantity               int64  `json:"quantity"`
	Reason                 string `json:"reason,omitempty"`
}

// DecideTransferRequest body para POST /api/transfers/:id/decision.
type DecideTransferRequest struct {
	Decision string `json:"decision"` // APPROVED o REJECTED
}

// TransferDTO representación de una solicitud de traslado.
type TransferDTO struct {
	ID                     string     `json:"id"`
	SourceWarehouseID      string     `json:"source_warehouse_id"`
	DestinationWarehouseID string     `json:"destination_warehouse_id"`
	ProductID              string     `json:"product_id"`
	SKU                    string     `json:"sku"`
	ProductName            string     `json:"product_name"`
	Quantity               int64      `json:"quantity"`
	Status                 string     `json:"status"`
	Reason                 string     `json:"reason,omitempty"`
	RejectionReason        string     `json:"rejection_reason,omitempty"`
	RequestedBy            string     `json:"requested_by"`
	CreatedAt              time.Time  `json:"created_at"`
	ApprovedBy             string     `json:"approved_by,omitempty"`
	ApprovedAt             *time.Time `json:"approved_at,omitempty"`
}

// NewTransferDTO mapea la entidad al DTO de respuesta.
func NewTransferDTO(t *entity.Transfer) TransferDTO {
	return TransferDTO{
		ID:                     t.ID,
		SourceWarehouseID:      t.SourceWarehouseID,
		DestinationWarehouseID: t.DestinationWarehouseID,
		ProductID:              t.ProductID,
		SKU:                    t.SKU,
		ProductName:            t.ProductName,
		Quantity:               t.Quantity,
		Status:                 t.Status,
		Reason:                 t.Reason,
		RejectionReason:        t.RejectionReason,
		RequestedBy:            t.RequestedBy,
		CreatedAt:              t.CreatedAt,
		ApprovedBy:             t.ApprovedBy,
		ApprovedAt:             t.ApprovedAt,
	}
}
