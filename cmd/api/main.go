package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/nexuswms/nexus-api/internal/application/approvals"
	"github.com/nexuswms/nexus-api/internal/application/catalog"
	"github.com/nexuswms/nexus-api/internal/application/ledger"
	"github.com/nexuswms/nexus-api/internal/application/procurement"
	"github.com/nexuswms/nexus-api/internal/application/transfer"
	"github.com/nexuswms/nexus-api/internal/domain/policy"
	"github.com/nexuswms/nexus-api/internal/domain/repository"
	"github.com/nexuswms/nexus-api/internal/infrastructure/memory"
	"github.com/nexuswms/nexus-api/internal/infrastructure/postgres"
	httpRouter "github.com/nexuswms/nexus-api/internal/interfaces/http"
	"github.com/nexuswms/nexus-api/pkg/config"
	"github.com/nexuswms/nexus-api/pkg/logger"
)

// storage agrupa los repositorios y el runner transaccional del backend elegido.
type storage struct {
	txRunner        ledger.TxRunner
	productRepo     repository.ProductRepository
	warehouseRepo   repository.WarehouseRepository
	stockRepo       repository.StockRepository
	requisitionRepo repository.RequisitionRepository
	close           func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := buildStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	thresholds := policy.Thresholds{
		ReviewQuantity: cfg.Policy.ReviewQuantity,
		ReviewExposure: decimal.NewFromInt(cfg.Policy.ReviewExposure),
	}

	ledgerUC := ledger.NewUseCase(st.txRunner, st.productRepo, st.warehouseRepo, thresholds)
	transferUC := transfer.NewUseCase(st.txRunner, st.productRepo, st.warehouseRepo, thresholds)
	approvalQueue := approvals.NewQueue(st.txRunner)
	catalogUC := catalog.NewUseCase(st.productRepo, st.warehouseRepo, st.stockRepo)
	procurementUC := procurement.NewUseCase(st.txRunner, st.requisitionRepo, st.productRepo, ledgerUC)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Nexus WMS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:      ledgerUC,
		TransferUC:    transferUC,
		ApprovalQueue: approvalQueue,
		CatalogUC:     catalogUC,
		ProcurementUC: procurementUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// buildStorage selecciona el backend según STORAGE_DRIVER: "postgres" para
// producción (con migraciones al arranque) o "memory" para demo y pruebas.
func buildStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		store := memory.NewStore()
		return &storage{
			txRunner:        memory.NewTxRunner(store),
			productRepo:     store.ProductRepository(),
			warehouseRepo:   store.WarehouseRepository(),
			stockRepo:       store.StockRepository(),
			requisitionRepo: store.RequisitionRepository(),
			close:           func() {},
		}, nil
	}

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		return nil, err
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		txRunner:        postgres.NewTxRunner(pool),
		productRepo:     postgres.NewProductRepository(pool),
		warehouseRepo:   postgres.NewWarehouseRepository(pool),
		stockRepo:       postgres.NewStockRepository(pool),
		requisitionRepo: postgres.NewRequisitionRepository(pool),
		close:           pool.Close,
	}, nil
}
