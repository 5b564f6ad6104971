package repository

import "github.com/nexuswms/nexus-api/internal/domain/entity"

// RequisitionRepository define el puerto de persistencia de requisiciones de compra.
type RequisitionRepository interface {
	Create(requisition *entity.Requisition) error
	GetByID(id string) (*entity.Requisition, error)
	// GetForUpdate bloquea el registro mientras dura la transacción (FOR UPDATE).
	GetForUpdate(id string) (*entity.Requisition, error)
	Update(requisition *entity.Requisition) error
	List(limit, offset int) ([]*entity.Requisition, error)
}
