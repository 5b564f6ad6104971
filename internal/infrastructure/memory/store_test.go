package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuswms/nexus-api/internal/domain/entity"
	"github.com/nexuswms/nexus-api/internal/domain/repository"
	"github.com/nexuswms/nexus-api/internal/infrastructure/memory"
)

// El TxRunner revierte todo lo escrito por el callback cuando este falla:
// mismo contrato que el Rollback de la transacción pgx.
func TestTxRunner_RevierteTodoSiElCallbackFalla(t *testing.T) {
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	now := time.Now()
	boom := errors.New("boom")

	err := runner.Run(context.Background(), func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		_ repository.TransferRepository,
		_ repository.RequisitionRepository,
	) error {
		require.NoError(t, movRepo.Create(&entity.Movement{
			ID: "m1", ProductID: "p1", WarehouseID: "w1",
			Type: entity.MovementTypeIN, Quantity: 5,
			Status: entity.MovementStatusAPPROVED, CreatedAt: now,
		}))
		require.NoError(t, stockRepo.Upsert(&entity.Stock{ProductID: "p1", WarehouseID: "w1", Quantity: 5, UpdatedAt: now}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	m, err := store.MovementRepository().GetByID("m1")
	require.NoError(t, err)
	assert.Nil(t, m, "el movimiento no sobrevive al rollback")
	s, err := store.StockRepository().Get("p1", "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), s.Quantity, "el saldo no sobrevive al rollback")
}

func TestTxRunner_CommitPersiste(t *testing.T) {
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)

	err := runner.Run(context.Background(), func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		_ repository.TransferRepository,
		_ repository.RequisitionRepository,
	) error {
		return stockRepo.Upsert(&entity.Stock{ProductID: "p1", WarehouseID: "w1", Quantity: 7, UpdatedAt: time.Now()})
	})
	require.NoError(t, err)

	s, err := store.StockRepository().Get("p1", "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.Quantity)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runner.Run(ctx, func(repository.MovementRepository, repository.StockRepository, repository.TransferRepository, repository.RequisitionRepository) error {
		t.Fatal("el callback no debe ejecutarse con contexto cancelado")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

// Las lecturas devuelven copias: mutar el resultado no toca el store.
func TestRepos_DevuelvenCopias(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.StockRepository().Upsert(&entity.Stock{ProductID: "p1", WarehouseID: "w1", Quantity: 10, UpdatedAt: time.Now()}))

	s, err := store.StockRepository().Get("p1", "w1")
	require.NoError(t, err)
	s.Quantity = 999

	again, err := store.StockRepository().Get("p1", "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), again.Quantity)
}

func TestStockRepo_FilaInexistenteDevuelveCero(t *testing.T) {
	store := memory.NewStore()
	s, err := store.StockRepository().Get("p1", "w1")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, int64(0), s.Quantity)
}
