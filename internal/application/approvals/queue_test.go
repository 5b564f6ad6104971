package approvals_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuswms/nexus-api/internal/application/approvals"
	"github.com/nexuswms/nexus-api/internal/application/dto"
	"github.com/nexuswms/nexus-api/internal/application/ledger"
	"github.com/nexuswms/nexus-api/internal/application/transfer"
	"github.com/nexuswms/nexus-api/internal/domain/entity"
	"github.com/nexuswms/nexus-api/internal/domain/policy"
	"github.com/nexuswms/nexus-api/internal/infrastructure/memory"
)

// entorno deja en cola: un ADJUST chico (PENDING), un ADJUST grande
// (REVIEW_REQUIRED) y un traslado PENDING.
func entorno(t *testing.T) *approvals.Queue {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	require.NoError(t, store.ProductRepository().Create(&entity.Product{
		ID: "prod-cpu", SKU: "CPU-INT-001", Name: "Intel Core i9 Processor",
		UnitCost: decimal.NewFromInt(450),
	}))
	require.NoError(t, store.WarehouseRepository().Create(&entity.Warehouse{ID: "wh-a", Name: "Hub A"}))
	require.NoError(t, store.WarehouseRepository().Create(&entity.Warehouse{ID: "wh-b", Name: "Hub B"}))
	require.NoError(t, store.StockRepository().Upsert(&entity.Stock{ProductID: "prod-cpu", WarehouseID: "wh-a", Quantity: 120, UpdatedAt: now}))

	runner := memory.NewTxRunner(store)
	ledUC := ledger.NewUseCase(runner, store.ProductRepository(), store.WarehouseRepository(), policy.DefaultThresholds())
	trUC := transfer.NewUseCase(runner, store.ProductRepository(), store.WarehouseRepository(), policy.DefaultThresholds())

	_, err := ledUC.SubmitMovement(context.Background(), ledger.SubmitInput{
		ProductID: "prod-cpu", WarehouseID: "wh-a", Type: entity.MovementTypeADJUST,
		Quantity: 5, ActorID: "op", ActorRole: entity.RoleOperator,
	})
	require.NoError(t, err)
	_, err = ledUC.SubmitMovement(context.Background(), ledger.SubmitInput{
		ProductID: "prod-cpu", WarehouseID: "wh-a", Type: entity.MovementTypeADJUST,
		Quantity: 500, ActorID: "op", ActorRole: entity.RoleOperator,
	})
	require.NoError(t, err)
	_, err = trUC.Request(context.Background(), transfer.RequestInput{
		SourceWarehouseID: "wh-a", DestinationWarehouseID: "wh-b",
		ProductID: "prod-cpu", Quantity: 20, RequesterID: "op",
	})
	require.NoError(t, err)

	return approvals.NewQueue(runner)
}

func porTipo(items []dto.PendingItemDTO) (pendiente, revision, traslado *dto.PendingItemDTO) {
	for i := range items {
		it := &items[i]
		switch {
		case it.Kind == dto.PendingItemTransfer:
			traslado = it
		case it.Movement.Status == entity.MovementStatusREVIEWREQUIRED:
			revision = it
		default:
			pendiente = it
		}
	}
	return
}

func TestListPending_TodosVenTodo(t *testing.T) {
	q := entorno(t)
	for _, role := range []string{entity.RoleOperator, entity.RoleManager, entity.RoleAdmin} {
		items, err := q.ListPending(context.Background(), role)
		require.NoError(t, err)
		assert.Len(t, items, 3, "la visibilidad no depende del rol (%s)", role)
	}
}

func TestListPending_AnotacionPorRol(t *testing.T) {
	q := entorno(t)

	casos := []struct {
		role                          string
		pendiente, revision, traslado bool
	}{
		{entity.RoleOperator, false, false, false},
		{entity.RoleManager, true, false, true},
		{entity.RoleAdmin, true, true, true},
	}
	for _, c := range casos {
		items, err := q.ListPending(context.Background(), c.role)
		require.NoError(t, err)
		pendiente, revision, traslado := porTipo(items)
		require.NotNil(t, pendiente)
		require.NotNil(t, revision)
		require.NotNil(t, traslado)
		assert.Equal(t, c.pendiente, pendiente.CanDecide, "%s sobre PENDING", c.role)
		assert.Equal(t, c.revision, revision.CanDecide, "%s sobre REVIEW_REQUIRED", c.role)
		assert.Equal(t, c.traslado, traslado.CanDecide, "%s sobre traslado", c.role)
	}
}
