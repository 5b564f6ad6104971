package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexuswms/nexus-api/internal/application/approvals"
	"github.com/nexuswms/nexus-api/internal/application/catalog"
	"github.com/nexuswms/nexus-api/internal/application/ledger"
	"github.com/nexuswms/nexus-api/internal/application/procurement"
	"github.com/nexuswms/nexus-api/internal/application/transfer"
	"github.com/nexuswms/nexus-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC      *ledger.UseCase
	TransferUC    *transfer.UseCase
	ApprovalQueue *approvals.Queue
	CatalogUC     *catalog.UseCase
	ProcurementUC *procurement.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Todas las rutas de negocio exigen
// Bearer Token; la autoridad fina (quién decide qué) la aplica el dominio,
// el RBAC de rutas solo corta lo que ningún caso permite.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Libro mayor de movimientos
	movementHandler := NewMovementHandler(deps.LedgerUC)
	inv := protected.Group("/inventory")
	inv.Post("/movements", movementHandler.Submit)
	inv.Post("/movements/:id/resolve",
		RequireRole(entity.RoleManager, entity.RoleAdmin),
		movementHandler.Resolve)

	// Traslados entre bodegas
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers := protected.Group("/transfers")
	transfers.Post("/", transferHandler.Request)
	transfers.Get("/", transferHandler.List)
	transfers.Post("/:id/decision",
		RequireRole(entity.RoleManager, entity.RoleAdmin),
		transferHandler.Decide)

	// Cola de aprobaciones
	approvalsHandler := NewApprovalsHandler(deps.ApprovalQueue)
	protected.Get("/approvals", approvalsHandler.ListPending)

	// Catálogo: productos, bodegas, saldos
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	products := protected.Group("/products")
	products.Post("/", RequireRole(entity.RoleManager, entity.RoleAdmin), catalogHandler.CreateProduct)
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)
	products.Get("/:id/stock", catalogHandler.GetStock)
	products.Get("/:id/movements", movementHandler.ListByProduct)

	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", RequireRole(entity.RoleAdmin), catalogHandler.CreateWarehouse)
	warehouses.Get("/", catalogHandler.ListWarehouses)
	warehouses.Get("/:id/low-stock", catalogHandler.ListLowStock)
	warehouses.Get("/:id/movements", movementHandler.ListByWarehouse)

	// Requisiciones de compra
	procurementHandler := NewProcurementHandler(deps.ProcurementUC)
	requisitions := protected.Group("/requisitions")
	requisitions.Post("/", procurementHandler.Create)
	requisitions.Get("/", procurementHandler.List)
	requisitions.Post("/:id/convert",
		RequireRole(entity.RoleOperator, entity.RoleManager),
		procurementHandler.Convert)
}
