// Package catalog maneja el maestro de productos, el registro de bodegas y
// las lecturas de saldo. El saldo solo lo mutan el libro mayor y el
// orquestador; aquí no hay escritura de stock.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexuswms/nexus-api/internal/application/dto"
	"github.com/nexuswms/nexus-api/internal/domain"
	"github.com/nexuswms/nexus-api/internal/domain/entity"
	"github.com/nexuswms/nexus-api/internal/domain/repository"
)

// UseCase catálogo de productos y bodegas.
type UseCase struct {
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	stockRepo     repository.StockRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	stockRepo repository.StockRepository,
) *UseCase {
	return &UseCase{
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		stockRepo:     stockRepo,
	}
}

// CreateProduct da de alta un SKU en el catálogo maestro.
func (uc *UseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: sku y nombre son obligatorios", domain.ErrValidation)
	}
	if in.UnitCost.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el costo unitario no puede ser negativo", domain.ErrValidation)
	}
	if existing, err := uc.productRepo.GetBySKU(in.SKU); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: sku %s ya registrado", domain.ErrConflict, in.SKU)
	}

	abc := in.ABCCategory
	if abc == "" {
		abc = entity.ABCCategoryC
	}
	uom := in.UOM
	if uom == "" {
		uom = "Units"
	}
	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           in.SKU,
		Name:          in.Name,
		Category:      in.Category,
		UOM:           uom,
		UnitCost:      in.UnitCost,
		ABCCategory:   abc,
		MinStockLevel: in.MinStockLevel,
		SafetyStock:   in.SafetyStock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProduct obtiene un producto por ID.
func (uc *UseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return p, nil
}

// ListProducts lista el catálogo con paginación.
func (uc *UseCase) ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(limit, offset)
}

// CreateWarehouse da de alta una bodega en el registro.
func (uc *UseCase) CreateWarehouse(ctx context.Context, name, address string, lat, lon float64) (*entity.Warehouse, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre de la bodega es obligatorio", domain.ErrValidation)
	}
	now := time.Now()
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      name,
		Address:   address,
		Latitude:  lat,
		Longitude: lon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouseRepo.Create(w); err != nil {
		return nil, err
	}
	return w, nil
}

// ListWarehouses lista el registro de bodegas.
func (uc *UseCase) ListWarehouses(ctx context.Context) ([]*entity.Warehouse, error) {
	return uc.warehouseRepo.List()
}

// GetStock devuelve el saldo de un producto en una bodega (cero si no hay fila).
func (uc *UseCase) GetStock(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	if p, err := uc.productRepo.GetByID(productID); err != nil {
		return nil, err
	} else if p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	return uc.stockRepo.Get(productID, warehouseID)
}

// ListLowStock devuelve los productos de una bodega en o bajo su punto de
// reorden; Critical marca los que además están bajo el colchón de seguridad.
// Alimenta el feed de alertas de la consola.
func (uc *UseCase) ListLowStock(ctx context.Context, warehouseID string) ([]dto.LowStockItemDTO, error) {
	stocks, err := uc.stockRepo.ListByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	var out []dto.LowStockItemDTO
	for _, s := range stocks {
		p, err := uc.productRepo.GetByID(s.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil || p.MinStockLevel <= 0 {
			continue
		}
		if s.Quantity > p.MinStockLevel {
			continue
		}
		out = append(out, dto.LowStockItemDTO{
			ProductID:     p.ID,
			SKU:           p.SKU,
			ProductName:   p.Name,
			WarehouseID:   warehouseID,
			CurrentStock:  s.Quantity,
			MinStockLevel: p.MinStockLevel,
			SafetyStock:   p.SafetyStock,
			Critical:      s.Quantity < p.SafetyStock,
		})
	}
	return out, nil
}
