package dto

// Tipos de ítem en la cola de aprobaciones.
const (
	PendingItemMovement = "MOVEMENT"
	PendingItemTransfer = "TRANSFER"
)

// PendingItemDTO un ítem pendiente anotado con si el rol consultante puede
// decidirlo. La anotación es solo informativa: ver no implica decidir.
type PendingItemDTO struct {
	Kind      string       `json:"kind"` // MOVEMENT o TRANSFER
	CanDecide bool         `json:"can_decide"`
	Movement  *MovementDTO `json:"movement,omitempty"`
	Transfer  *TransferDTO `json:"transfer,omitempty"`
}
