package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexuswms/nexus-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Category      string          `json:"category,omitempty"`
	UOM           string          `json:"uom,omitempty"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	ABCCategory   string          `json:"abc_category,omitempty"`
	MinStockLevel int64           `json:"min_stock_level,omitempty"`
	SafetyStock   int64           `json:"safety_stock,omitempty"`
}

// ProductDTO representación de un producto del catálogo.
type ProductDTO struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Category      string          `json:"category,omitempty"`
	UOM           string          `json:"uom"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	ABCCategory   string          `json:"abc_category"`
	MinStockLevel int64           `json:"min_stock_level"`
	SafetyStock   int64           `json:"safety_stock"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewProductDTO mapea la entidad al DTO de respuesta.
func NewProductDTO(p *entity.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Category:      p.Category,
		UOM:           p.UOM,
		UnitCost:      p.UnitCost,
		ABCCategory:   p.ABCCategory,
		MinStockLevel: p.MinStockLevel,
		SafetyStock:   p.SafetyStock,
		CreatedAt:     p.CreatedAt,
	}
}

// StockDTO saldo de un producto en una bodega.
type StockDTO struct {
	ProductID   string    `json:"product_id"`
	WarehouseID string    `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LowStockItemDTO producto por debajo de su punto de reorden en una bodega.
type LowStockItemDTO struct {
	ProductID     string `json:"product_id"`
	SKU           string `json:"sku"`
	ProductName   string `json:"product_name"`
	WarehouseID   string `json:"warehouse_id"`
	CurrentStock  int64  `json:"current_stock"`
	MinStockLevel int64  `json:"min_stock_level"`
	SafetyStock   int64  `json:"safety_stock"`
	Critical      bool   `json:"critical"` // bajo el colchón de seguridad
}
