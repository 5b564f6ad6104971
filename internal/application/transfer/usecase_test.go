package transfer_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuswms/nexus-api/internal/application/ledger"
	"github.com/nexuswms/nexus-api/internal/application/transfer"
	"github.com/nexuswms/nexus-api/internal/domain"
	"github.com/nexuswms/nexus-api/internal/domain/entity"
	"github.com/nexuswms/nexus-api/internal/domain/policy"
	"github.com/nexuswms/nexus-api/internal/infrastructure/memory"
)

const (
	productoCPU = "prod-cpu"
	hubA        = "wh-hub-a"
	hubB        = "wh-hub-b"
	operador    = "user-op"
	gerente     = "user-mgr"
)

func entorno(t *testing.T, stockHubA int64) (*transfer.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	require.NoError(t, store.ProductRepository().Create(&entity.Product{
		ID:       productoCPU,
		SKU:      "CPU-INT-001",
		Name:     "Intel Core i9 Processor",
		UOM:      "Units",
		UnitCost: decimal.NewFromInt(450),
	}))
	require.NoError(t, store.WarehouseRepository().Create(&entity.Warehouse{ID: hubA, Name: "HZIMS HQ (Main Hub)"}))
	require.NoError(t, store.WarehouseRepository().Create(&entity.Warehouse{ID: hubB, Name: "HZIMS Industrial Center"}))
	require.NoError(t, store.StockRepository().Upsert(&entity.Stock{
		ProductID: productoCPU, WarehouseID: hubA, Quantity: stockHubA, UpdatedAt: now,
	}))

	uc := transfer.NewUseCase(memory.NewTxRunner(store), store.ProductRepository(), store.WarehouseRepository(), policy.DefaultThresholds())
	return uc, store
}

func saldo(t *testing.T, store *memory.Store, warehouseID string) int64 {
	t.Helper()
	s, err := store.StockRepository().Get(productoCPU, warehouseID)
	require.NoError(t, err)
	return s.Quantity
}

func solicitud(qty int64) transfer.RequestInput {
	return transfer.RequestInput{
		SourceWarehouseID:      hubA,
		DestinationWarehouseID: hubB,
		ProductID:              productoCPU,
		Quantity:               qty,
		RequesterID:            operador,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Request
// ──────────────────────────────────────────────────────────────────────────────

func TestRequest_CreaPendienteSinTocarSaldos(t *testing.T) {
	uc, store := entorno(t, 120)
	tr, err := uc.Request(context.Background(), solicitud(20))
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusPENDING, tr.Status)
	assert.Equal(t, "CPU-INT-001", tr.SKU, "snapshot del sku al solicitar")
	assert.Equal(t, int64(120), saldo(t, store, hubA))
	assert.Equal(t, int64(0), saldo(t, store, hubB))
}

func TestRequest_MismaBodegaFalla(t *testing.T) {
	uc, _ := entorno(t, 120)
	in := solicitud(20)
	in.DestinationWarehouseID = hubA
	_, err := uc.Request(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRequest_CantidadNoPositivaFalla(t *testing.T) {
	uc, _ := entorno(t, 120)
	_, err := uc.Request(context.Background(), solicitud(0))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRequest_ProductoInexistenteFalla(t *testing.T) {
	uc, _ := entorno(t, 120)
	in := solicitud(20)
	in.ProductID = "prod-nope"
	_, err := uc.Request(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Decide
// ──────────────────────────────────────────────────────────────────────────────

// Escenario: traslado de 20 de Hub A (120) a Hub B (0); el gerente aprueba y
// quedan 100/20, con el par TRANSFER_OUT/TRANSFER_IN compartiendo transferId
// y costo unitario.
func TestDecide_AprobacionMueveSaldoYCreaParEnlazado(t *testing.T) {
	uc, store := entorno(t, 120)
	tr, err := uc.Request(context.Background(), solicitud(20))
	require.NoError(t, err)

	res, err := uc.Decide(context.Background(), tr.ID, entity.TransferStatusAPPROVED, entity.RoleManager, gerente)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusAPPROVED, res.Status)
	assert.Equal(t, gerente, res.ApprovedBy)

	assert.Equal(t, int64(100), saldo(t, store, hubA))
	assert.Equal(t, int64(20), saldo(t, store, hubB))

	salidaHist, err := store.MovementRepository().ListByWarehouse(hubA, nil, nil, 10, 0)
	require.NoError(t, err)
	entradaHist, err := store.MovementRepository().ListByWarehouse(hubB, nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, salidaHist, 1)
	require.Len(t, entradaHist, 1)

	out, in := salidaHist[0], entradaHist[0]
	assert.Equal(t, entity.MovementTypeTRANSFEROUT, out.Type)
	assert.Equal(t, entity.MovementTypeTRANSFERIN, in.Type)
	assert.Equal(t, tr.ID, out.TransferID)
	assert.Equal(t, tr.ID, in.TransferID)
	assert.Equal(t, out.Quantity, in.Quantity)
	assert.True(t, out.UnitCost.Equal(in.UnitCost), "mismo costo unitario en ambos lados")
	assert.Equal(t, entity.MovementStatusAPPROVED, out.Status)
	assert.Equal(t, entity.MovementStatusAPPROVED, in.Status)
}

// ADMIN no puede originar movimientos directos, pero el par de un traslado que
// él mismo aprueba nace exento de esa regla: la tabla de decisión lo evalúa
// como movimiento originado por traslado y lo despacha APPROVED.
func TestDecide_AdminApruebaYElParNoChocaConSuBloqueo(t *testing.T) {
	uc, store := entorno(t, 120)
	tr, err := uc.Request(context.Background(), solicitud(20))
	require.NoError(t, err)

	res, err := uc.Decide(context.Background(), tr.ID, entity.TransferStatusAPPROVED, entity.RoleAdmin, "user-admin")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusAPPROVED, res.Status)

	assert.Equal(t, int64(100), saldo(t, store, hubA))
	assert.Equal(t, int64(20), saldo(t, store, hubB))

	histA, err := store.MovementRepository().ListByWarehouse(hubA, nil, nil, 10, 0)
	require.NoError(t, err)
	histB, err := store.MovementRepository().ListByWarehouse(hubB, nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, histA, 1)
	require.Len(t, histB, 1)
	assert.Equal(t, entity.MovementStatusAPPROVED, histA[0].Status)
	assert.Equal(t, entity.MovementStatusAPPROVED, histB[0].Status)
}

func TestDecide_OperadorSinAutoridad(t *testing.T) {
	uc, store := entorno(t, 120)
	tr, err := uc.Request(context.Background(), solicitud(20))
	require.NoError(t, err)

	_, err = uc.Decide(context.Background(), tr.ID, entity.TransferStatusAPPROVED, entity.RoleOperator, operador)
	assert.ErrorIs(t, err, domain.ErrAuthority)
	assert.Equal(t, int64(120), saldo(t, store, hubA))
}

func TestDecide_RechazoNoCreaMovimientos(t *testing.T) {
	uc, store := entorno(t, 120)
	tr, err := uc.Request(context.Background(), solicitud(20))
	require.NoError(t, err)

	res, err := uc.Decide(context.Background(), tr.ID, entity.TransferStatusREJECTED, entity.RoleManager, gerente)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusREJECTED, res.Status)
	assert.Equal(t, int64(120), saldo(t, store, hubA))

	hist, err := store.MovementRepository().ListByWarehouse(hubA, nil, nil, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

// El saldo se drena entre la solicitud y la decisión: el re-chequeo al commit
// fuerza REJECTED, cero movimientos, saldos intactos. Es un resultado de
// negocio, no un error.
func TestDecide_RecheckInsuficienteAutoRechaza(t *testing.T) {
	uc, store := entorno(t, 120)
	tr, err := uc.Request(context.Background(), solicitud(20))
	require.NoError(t, err)

	// Se drena el origen después de solicitar.
	require.NoError(t, store.StockRepository().Upsert(&entity.Stock{
		ProductID: productoCPU, WarehouseID: hubA, Quantity: 5, UpdatedAt: time.Now(),
	}))

	res, err := uc.Decide(context.Background(), tr.ID, entity.TransferStatusAPPROVED, entity.RoleManager, gerente)
	require.NoError(t, err, "el faltante al commit no es un error del sistema")
	assert.Equal(t, entity.TransferStatusREJECTED, res.Status)
	assert.NotEmpty(t, res.RejectionReason, "el rechazo explica qué regla disparó")

	assert.Equal(t, int64(5), saldo(t, store, hubA))
	assert.Equal(t, int64(0), saldo(t, store, hubB))
	histA, err := store.MovementRepository().ListByWarehouse(hubA, nil, nil, 10, 0)
	require.NoError(t, err)
	histB, err := store.MovementRepository().ListByWarehouse(hubB, nil, nil, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, histA, "atómico: ningún lado del par existe")
	assert.Empty(t, histB)
}

// Decidir dos veces con la misma decisión terminal devuelve el mismo estado y
// no duplica movimientos ni saldo.
func TestDecide_IdempotenteSobreTerminal(t *testing.T) {
	uc, store := entorno(t, 120)
	tr, err := uc.Request(context.Background(), solicitud(20))
	require.NoError(t, err)

	primera, err := uc.Decide(context.Background(), tr.ID, entity.TransferStatusAPPROVED, entity.RoleManager, gerente)
	require.NoError(t, err)
	require.Equal(t, entity.TransferStatusAPPROVED, primera.Status)

	segunda, err := uc.Decide(context.Background(), tr.ID, entity.TransferStatusAPPROVED, entity.RoleManager, gerente)
	require.NoError(t, err)
	assert.Equal(t, primera.Status, segunda.Status)

	assert.Equal(t, int64(100), saldo(t, store, hubA))
	assert.Equal(t, int64(20), saldo(t, store, hubB))
	histA, err := store.MovementRepository().ListByWarehouse(hubA, nil, nil, 10, 0)
	require.NoError(t, err)
	assert.Len(t, histA, 1, "un solo TRANSFER_OUT aunque se decida dos veces")
}

func TestDecide_TrasladoDesconocido(t *testing.T) {
	uc, _ := entorno(t, 120)
	_, err := uc.Decide(context.Background(), "tr-nope", entity.TransferStatusAPPROVED, entity.RoleManager, gerente)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecide_DecisionInvalida(t *testing.T) {
	uc, _ := entorno(t, 120)
	_, err := uc.Decide(context.Background(), "tr-x", "MAYBE", entity.RoleManager, gerente)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// El libro mayor rechaza la salida pero el traslado del mismo producto sigue
// operando sobre los saldos por bodega de forma independiente.
func TestDecide_ConviveConLibroMayor(t *testing.T) {
	trUC, store := entorno(t, 120)
	ledUC := ledger.NewUseCase(memory.NewTxRunner(store), store.ProductRepository(), store.WarehouseRepository(), policy.DefaultThresholds())

	tr, err := trUC.Request(context.Background(), solicitud(20))
	require.NoError(t, err)

	_, err = ledUC.SubmitMovement(context.Background(), ledger.SubmitInput{
		ProductID: productoCPU, WarehouseID: hubA,
		Type: entity.MovementTypeOUT, Quantity: 110,
		ActorID: operador, ActorRole: entity.RoleOperator,
	})
	require.NoError(t, err)
	require.Equal(t, int64(10), saldo(t, store, hubA))

	res, err := trUC.Decide(context.Background(), tr.ID, entity.TransferStatusAPPROVED, entity.RoleManager, gerente)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusREJECTED, res.Status, "el re-chequeo ve el saldo drenado por el libro mayor")
}
