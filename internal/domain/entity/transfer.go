package entity

import "time"

// Estados de una solicitud de traslado entre bodegas.
const (
	TransferStatusPENDING  = "PENDING"
	TransferStatusAPPROVED = "APPROVED"
	TransferStatusREJECTED = "REJECTED"
)

// Transfer es una solicitud de reubicar stock entre dos bodegas. Al aprobarse
// produce exactamente dos Movement enlazados (TRANSFER_OUT en origen,
// TRANSFER_IN en destino) con el mismo TransferID y costo unitario; ambos
// aparecen o fallan juntos. El registro nunca se borra: la resolución solo
// adjunta Status, ApprovedBy/ApprovedAt y RejectionReason.
type Transfer struct {
	ID                     string
	SourceWarehouseID      string
	DestinationWarehouseID string
	ProductID              string
	SKU                    string // snapshot al momento de solicitar
	ProductName            string // snapshot al momento de solicitar
	Quantity               int64  // siempre > 0
	Status                 string
	Reason                 string
	RejectionReason        string // motivo cuando el commit lo fuerza a REJECTED
	RequestedBy            string
	CreatedAt              time.Time
	ApprovedBy             string
	ApprovedAt             *time.Time
}

// IsTerminal indica si el traslado ya fue decidido.
func (t *Transfer) IsTerminal() bool {
	return t.Status == TransferStatusAPPROVED || t.Status == TransferStatusREJECTED
}
