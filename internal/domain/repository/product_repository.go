package repository

import "github.com/nexuswms/nexus-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia del catálogo maestro (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
}
