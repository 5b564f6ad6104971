package repository

import "github.com/nexuswms/nexus-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia del registro de bodegas.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	List() ([]*entity.Warehouse, error)
}
