package repository

import "github.com/nexuswms/nexus-api/internal/domain/entity"

// TransferRepository define el puerto de persistencia de traslados. Los
// registros nunca se borran; la decisión solo actualiza status/aprobador.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	// GetForUpdate bloquea el registro mientras dura la transacción (FOR UPDATE).
	GetForUpdate(id string) (*entity.Transfer, error)
	UpdateResolution(transfer *entity.Transfer) error
	ListPending() ([]*entity.Transfer, error)
	List(limit, offset int) ([]*entity.Transfer, error)
}
