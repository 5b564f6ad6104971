package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clasificación ABC del producto (contexto informativo de umbrales).
const (
	ABCCategoryA = "A"
	ABCCategoryB = "B"
	ABCCategoryC = "C"
)

// Product representa un SKU del catálogo maestro. El saldo por bodega vive en
// Stock; el catálogo solo lo mutan el libro mayor y el orquestador de
// traslados, nunca un caller directo.
type Product struct {
	ID            string
	SKU           string // código único
	Name          string
	Category      string
	UOM           string
	UnitCost      decimal.Decimal // >= 0
	ABCCategory   string          // A, B o C
	MinStockLevel int64           // punto de reorden
	SafetyStock   int64           // colchón crítico
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
