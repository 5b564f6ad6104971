package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuswms/nexus-api/internal/application/ledger"
	"github.com/nexuswms/nexus-api/internal/domain"
	"github.com/nexuswms/nexus-api/internal/domain/entity"
	"github.com/nexuswms/nexus-api/internal/domain/policy"
	"github.com/nexuswms/nexus-api/internal/infrastructure/memory"
)

const (
	productoCPU = "prod-cpu"
	bodegaHubA  = "wh-hub-a"
	bodegaHubB  = "wh-hub-b"
	operador    = "user-op"
	gerente     = "user-mgr"
	admin       = "user-admin"
)

// entorno arma un store con el producto CPU (costo 450) en dos bodegas y el
// caso de uso del libro mayor encima.
func entorno(t *testing.T, stockHubA int64) (*ledger.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	require.NoError(t, store.ProductRepository().Create(&entity.Product{
		ID:            productoCPU,
		SKU:           "CPU-INT-001",
		Name:          "Intel Core i9 Processor",
		UOM:           "Units",
		UnitCost:      decimal.NewFromInt(450),
		ABCCategory:   entity.ABCCategoryA,
		MinStockLevel: 50,
		SafetyStock:   20,
		CreatedAt:     now,
	}))
	require.NoError(t, store.WarehouseRepository().Create(&entity.Warehouse{ID: bodegaHubA, Name: "HZIMS HQ (Main Hub)"}))
	require.NoError(t, store.WarehouseRepository().Create(&entity.Warehouse{ID: bodegaHubB, Name: "HZIMS Industrial Center"}))
	require.NoError(t, store.StockRepository().Upsert(&entity.Stock{
		ProductID: productoCPU, WarehouseID: bodegaHubA, Quantity: stockHubA, UpdatedAt: now,
	}))

	uc := ledger.NewUseCase(memory.NewTxRunner(store), store.ProductRepository(), store.WarehouseRepository(), policy.DefaultThresholds())
	return uc, store
}

func saldo(t *testing.T, store *memory.Store, warehouseID string) int64 {
	t.Helper()
	s, err := store.StockRepository().Get(productoCPU, warehouseID)
	require.NoError(t, err)
	return s.Quantity
}

func submit(tipo string, qty int64, role string) ledger.SubmitInput {
	return ledger.SubmitInput{
		ProductID:   productoCPU,
		WarehouseID: bodegaHubA,
		Type:        tipo,
		Quantity:    qty,
		ActorID:     operador,
		ActorRole:   role,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// SubmitMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_EntradaApruebaYSumaSaldo(t *testing.T) {
	uc, store := entorno(t, 120)
	for _, tipo := range []string{entity.MovementTypeIN, entity.MovementTypePURCHASE} {
		mov, err := uc.SubmitMovement(context.Background(), submit(tipo, 30, entity.RoleOperator))
		require.NoError(t, err, "tipo %s", tipo)
		assert.Equal(t, entity.MovementStatusAPPROVED, mov.Status)
		assert.Equal(t, "CPU-INT-001", mov.SKU, "snapshot del sku al crear")
		assert.True(t, mov.TotalCost.Equal(decimal.NewFromInt(30*450)))
	}
	assert.Equal(t, int64(180), saldo(t, store, bodegaHubA))
}

// Escenario: stock 120, OUT de 150 falla y el saldo no cambia; OUT de 50
// aprueba y deja 70.
func TestSubmit_SalidaSobreSaldoFallaSinEfectos(t *testing.T) {
	uc, store := entorno(t, 120)

	_, err := uc.SubmitMovement(context.Background(), submit(entity.MovementTypeOUT, 150, entity.RoleOperator))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(120), saldo(t, store, bodegaHubA))

	pendientes, err := store.MovementRepository().ListPending()
	require.NoError(t, err)
	assert.Empty(t, pendientes, "un rechazo no crea registro alguno")

	mov, err := uc.SubmitMovement(context.Background(), submit(entity.MovementTypeOUT, 50, entity.RoleOperator))
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusAPPROVED, mov.Status)
	assert.Equal(t, int64(70), saldo(t, store, bodegaHubA))
}

func TestSubmit_CantidadInvalidaFalla(t *testing.T) {
	uc, store := entorno(t, 120)
	_, err := uc.SubmitMovement(context.Background(), submit(entity.MovementTypeIN, 0, entity.RoleOperator))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, int64(120), saldo(t, store, bodegaHubA))
}

func TestSubmit_AdminBloqueadoPorPolitica(t *testing.T) {
	uc, store := entorno(t, 120)
	_, err := uc.SubmitMovement(context.Background(), submit(entity.MovementTypeIN, 10, entity.RoleAdmin))
	assert.ErrorIs(t, err, domain.ErrPolicy)
	assert.Equal(t, int64(120), saldo(t, store, bodegaHubA))
}

func TestSubmit_TiposDeTrasladoNoSeOriginanAqui(t *testing.T) {
	uc, _ := entorno(t, 120)
	for _, tipo := range []string{entity.MovementTypeTRANSFERIN, entity.MovementTypeTRANSFEROUT} {
		_, err := uc.SubmitMovement(context.Background(), submit(tipo, 10, entity.RoleOperator))
		assert.ErrorIs(t, err, domain.ErrValidation, "tipo %s", tipo)
	}
}

func TestSubmit_ProductoOBodegaInexistente(t *testing.T) {
	uc, _ := entorno(t, 120)

	in := submit(entity.MovementTypeIN, 10, entity.RoleOperator)
	in.ProductID = "prod-nope"
	_, err := uc.SubmitMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in = submit(entity.MovementTypeIN, 10, entity.RoleOperator)
	in.WarehouseID = "wh-nope"
	_, err = uc.SubmitMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmit_AjusteChicoQuedaPendienteSinTocarSaldo(t *testing.T) {
	uc, store := entorno(t, 120)
	mov, err := uc.SubmitMovement(context.Background(), submit(entity.MovementTypeADJUST, 10, entity.RoleOperator))
	require.NoError(t, err)
	// 10 × 450 = 4500, bajo ambos umbrales
	assert.Equal(t, entity.MovementStatusPENDING, mov.Status)
	assert.Equal(t, int64(120), saldo(t, store, bodegaHubA))
}

func TestSubmit_AjusteGrandeEscalaARevision(t *testing.T) {
	uc, store := entorno(t, 120)
	mov, err := uc.SubmitMovement(context.Background(), submit(entity.MovementTypeADJUST, 500, entity.RoleOperator))
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusREVIEWREQUIRED, mov.Status)
	assert.Equal(t, int64(120), saldo(t, store, bodegaHubA))
}

// ──────────────────────────────────────────────────────────────────────────────
// ResolveMovement
// ──────────────────────────────────────────────────────────────────────────────

// Escenario: ADJUST de 500 a $450 (exposición $225.000) queda en revisión; el
// gerente no puede decidirlo, el admin sí, y el saldo se ajusta en 500.
func TestResolve_RevisionSoloAdmin(t *testing.T) {
	uc, store := entorno(t, 120)
	mov, err := uc.SubmitMovement(context.Background(), submit(entity.MovementTypeADJUST, 500, entity.RoleOperator))
	require.NoError(t, err)
	require.Equal(t, entity.MovementStatusREVIEWREQUIRED, mov.Status)

	_, err = uc.ResolveMovement(context.Background(), mov.ID, entity.MovementStatusAPPROVED, entity.RoleManager, gerente)
	assert.ErrorIs(t, err, domain.ErrAuthority)
	assert.Equal(t, int64(120), saldo(t, store, bodegaHubA))

	res, err := uc.ResolveMovement(context.Background(), mov.ID, entity.MovementStatusAPPROVED, entity.RoleAdmin, admin)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusAPPROVED, res.Status)
	assert.Equal(t, admin, res.ApprovedBy)
	assert.Equal(t, int64(620), saldo(t, store, bodegaHubA))
}

func TestResolve_PendienteDecideGerenteOAdminNoOperador(t *testing.T) {
	uc, store := entorno(t, 120)
	mov, err := uc.SubmitMovement(context.Background(), submit(entity.MovementTypeADJUST, 10, entity.RoleOperator))
	require.NoError(t, err)

	_, err = uc.ResolveMovement(context.Background(), mov.ID, entity.MovementStatusAPPROVED, entity.RoleOperator, operador)
	assert.ErrorIs(t, err, domain.ErrAuthority)

	res, err := uc.ResolveMovement(context.Background(), mov.ID, entity.MovementStatusAPPROVED, entity.RoleManager, gerente)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusAPPROVED, res.Status)
	assert.Equal(t, int64(130), saldo(t, store, bodegaHubA))
}

func TestResolve_RechazoNoTocaSaldo(t *testing.T) {
	uc, store := entorno(t, 120)
	mov, err := uc.SubmitMovement(context.Background(), submit(entity.MovementTypeADJUST, 10, entity.RoleOperator))
	require.NoError(t, err)

	res, err := uc.ResolveMovement(context.Background(), mov.ID, entity.MovementStatusREJECTED, entity.RoleManager, gerente)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusREJECTED, res.Status)
	assert.Equal(t, int64(120), saldo(t, store, bodegaHubA))
}

// Re-resolver un ítem terminal es un no-op: mismo estado, cero efecto de
// saldo adicional (tolerancia a entrega al-menos-una-vez).
func TestResolve_IdempotenteSobreTerminal(t *testing.T) {
	uc, store := entorno(t, 120)
	mov, err := uc.SubmitMovement(context.Background(), submit(entity.MovementTypeADJUST, 10, entity.RoleOperator))
	require.NoError(t, err)

	primera, err := uc.ResolveMovement(context.Background(), mov.ID, entity.MovementStatusAPPROVED, entity.RoleAdmin, admin)
	require.NoError(t, err)
	require.Equal(t, int64(130), saldo(t, store, bodegaHubA))

	segunda, err := uc.ResolveMovement(context.Background(), mov.ID, entity.MovementStatusAPPROVED, entity.RoleAdmin, admin)
	require.NoError(t, err)
	assert.Equal(t, primera.Status, segunda.Status)
	assert.Equal(t, primera.ApprovedBy, segunda.ApprovedBy)
	assert.Equal(t, int64(130), saldo(t, store, bodegaHubA), "el saldo se aplica exactamente una vez")

	// Incluso con la decisión contraria sigue siendo no-op.
	tercera, err := uc.ResolveMovement(context.Background(), mov.ID, entity.MovementStatusREJECTED, entity.RoleAdmin, admin)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusAPPROVED, tercera.Status)
	assert.Equal(t, int64(130), saldo(t, store, bodegaHubA))
}

func TestResolve_MovimientoDesconocido(t *testing.T) {
	uc, _ := entorno(t, 120)
	_, err := uc.ResolveMovement(context.Background(), "mov-nope", entity.MovementStatusAPPROVED, entity.RoleAdmin, admin)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolve_DecisionInvalida(t *testing.T) {
	uc, _ := entorno(t, 120)
	_, err := uc.ResolveMovement(context.Background(), "mov-x", "MAYBE", entity.RoleAdmin, admin)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auditoría
// ──────────────────────────────────────────────────────────────────────────────

func TestListByWarehouse_HistorialInmutable(t *testing.T) {
	uc, _ := entorno(t, 120)
	_, err := uc.SubmitMovement(context.Background(), submit(entity.MovementTypeIN, 5, entity.RoleOperator))
	require.NoError(t, err)
	_, err = uc.SubmitMovement(context.Background(), submit(entity.MovementTypeOUT, 3, entity.RoleOperator))
	require.NoError(t, err)

	list, err := uc.ListByWarehouse(context.Background(), bodegaHubA, nil, nil, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.MovementTypeOUT, list[0].Type, "orden del más reciente al más antiguo")
	for _, m := range list {
		assert.Equal(t, operador, m.CreatedBy, "el autor original se retiene")
	}
}
