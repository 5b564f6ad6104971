package repository

import (
	"time"

	"github.com/nexuswms/nexus-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del libro mayor.
// El libro es append-only: Create nunca se revierte y UpdateResolution solo
// toca status, aprobador y fecha de resolución.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// GetForUpdate bloquea el registro mientras dura la transacción (FOR UPDATE).
	GetForUpdate(id string) (*entity.Movement, error)
	UpdateResolution(movement *entity.Movement) error
	ListPending() ([]*entity.Movement, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
}
