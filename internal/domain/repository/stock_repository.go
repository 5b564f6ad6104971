package repository

import "github.com/nexuswms/nexus-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar el saldo por
// bodega+producto. Las mutaciones siempre ocurren dentro de una transacción.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ListByWarehouse(warehouseID string) ([]*entity.Stock, error)
}
