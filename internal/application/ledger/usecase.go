package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexuswms/nexus-api/internal/domain"
	"github.com/nexuswms/nexus-api/internal/domain/entity"
	"github.com/nexuswms/nexus-api/internal/domain/policy"
	"github.com/nexuswms/nexus-api/internal/domain/repository"
)

// UseCase es el libro mayor de movimientos: registra cada evento de stock,
// lo pasa por la tabla de decisión y aplica el efecto al saldo de forma
// transaccional. Los movimientos retenidos (PENDING/REVIEW_REQUIRED) no tocan
// saldo hasta resolverse.
type UseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	thresholds    policy.Thresholds
}

// NewUseCase construye el caso de uso del libro mayor.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	thresholds policy.Thresholds,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		thresholds:    thresholds,
	}
}

// SubmitInput entrada para registrar un movimiento directo (IN, OUT, ADJUST,
// PURCHASE). Los TRANSFER_IN/TRANSFER_OUT solo los crea el orquestador de
// traslados, nunca este punto de entrada.
type SubmitInput struct {
	ProductID   string
	WarehouseID string
	Type        string
	Quantity    int64
	Reason      string
	ActorID     string
	ActorRole   string
}

// Submission es un movimiento validado, con sus maestros resueltos, listo para
// registrarse dentro de una transacción. La separación existe porque las
// lecturas de catálogo van fuera de la transacción y la escritura dentro; otros
// casos de uso (la conversión de requisiciones) registran dentro de la suya.
type Submission struct {
	input   SubmitInput
	product *entity.Product
}

// Prepare valida la entrada y resuelve producto y bodega. Va fuera de la
// transacción.
func (uc *UseCase) Prepare(input SubmitInput) (*Submission, error) {
	if !entity.ValidRole(input.ActorRole) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrValidation, input.ActorRole)
	}
	switch input.Type {
	case entity.MovementTypeTRANSFERIN, entity.MovementTypeTRANSFEROUT:
		return nil, fmt.Errorf("%w: los movimientos de traslado se originan desde el orquestador", domain.ErrValidation)
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, input.ProductID)
	}
	warehouse, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, input.WarehouseID)
	}

	return &Submission{input: input, product: product}, nil
}

// Record pasa la sumisión por la tabla de decisión y la escribe usando los
// repositorios de una transacción ya abierta. Según la disposición aplica el
// saldo de inmediato (APPROVED) o deja el movimiento retenido; si la política
// rechaza, no se crea registro ni cambia saldo alguno.
func (uc *UseCase) Record(movRepo repository.MovementRepository, stockRepo repository.StockRepository, sub *Submission) (*entity.Movement, error) {
	input := sub.input
	now := time.Now()

	// El saldo se lee bajo bloqueo de fila: la decisión de la política y la
	// aplicación del efecto ven el mismo valor.
	stock, err := stockRepo.GetForUpdate(input.ProductID, input.WarehouseID)
	if err != nil {
		return nil, err
	}

	disposition, err := policy.Evaluate(policy.Candidate{
		ActorRole:      input.ActorRole,
		Type:           input.Type,
		Quantity:       input.Quantity,
		UnitCost:       sub.product.UnitCost,
		AvailableStock: stock.Quantity,
	}, uc.thresholds)
	if err != nil {
		return nil, err
	}

	mov := newMovement(sub.product, input.WarehouseID, input.Type, input.Quantity, input.Reason, input.ActorID, now)
	mov.Status = string(disposition)

	if disposition == policy.DispositionApproved {
		if err := stock.Apply(mov.StockDelta(), now); err != nil {
			return nil, err
		}
		if err := stockRepo.Upsert(stock); err != nil {
			return nil, err
		}
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// SubmitMovement valida, abre la transacción y registra. Equivale a Prepare
// seguido de Record dentro de un Run propio.
func (uc *UseCase) SubmitMovement(ctx context.Context, input SubmitInput) (*entity.Movement, error) {
	sub, err := uc.Prepare(input)
	if err != nil {
		return nil, err
	}

	var created *entity.Movement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		_ repository.TransferRepository,
		_ repository.RequisitionRepository,
	) error {
		created, err = uc.Record(movRepo, stockRepo, sub)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ResolveMovement decide un movimiento retenido. Resolver un ítem ya terminal
// devuelve el estado actual sin cambios (idempotente frente a reintentos o
// entrega al-menos-una-vez); un rol sin autoridad recibe ErrAuthority.
func (uc *UseCase) ResolveMovement(ctx context.Context, movementID, decision, resolverRole, resolverID string) (*entity.Movement, error) {
	if decision != entity.MovementStatusAPPROVED && decision != entity.MovementStatusREJECTED {
		return nil, fmt.Errorf("%w: decisión %q (se espera APPROVED o REJECTED)", domain.ErrValidation, decision)
	}

	now := time.Now()
	var resolved *entity.Movement

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		_ repository.TransferRepository,
		_ repository.RequisitionRepository,
	) error {
		mov, err := movRepo.GetForUpdate(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, movementID)
		}
		if mov.IsTerminal() {
			resolved = mov
			return nil
		}
		if !policy.CanResolve(resolverRole, mov.Status) {
			return fmt.Errorf("%w: %s no puede decidir un movimiento %s", domain.ErrAuthority, resolverRole, mov.Status)
		}

		if decision == entity.MovementStatusAPPROVED {
			stock, err := stockRepo.GetForUpdate(mov.ProductID, mov.WarehouseID)
			if err != nil {
				return err
			}
			// El saldo pudo haber cambiado desde que el movimiento quedó
			// retenido; la entidad Stock vuelve a custodiar la no-negatividad.
			if err := stock.Apply(mov.StockDelta(), now); err != nil {
				return err
			}
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}
		}

		mov.Status = decision
		mov.ApprovedBy = resolverID
		mov.ApprovedAt = &now
		if err := movRepo.UpdateResolution(mov); err != nil {
			return err
		}
		resolved = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

// ListByWarehouse historial de movimientos de una bodega (vista de auditoría).
func (uc *UseCase) ListByWarehouse(ctx context.Context, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var list []*entity.Movement
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, _ repository.StockRepository, _ repository.TransferRepository, _ repository.RequisitionRepository) error {
		var err error
		list, err = movRepo.ListByWarehouse(warehouseID, from, to, limit, offset)
		return err
	})
	return list, err
}

// ListByProduct historial de movimientos de un producto (vista de auditoría).
func (uc *UseCase) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var list []*entity.Movement
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, _ repository.StockRepository, _ repository.TransferRepository, _ repository.RequisitionRepository) error {
		var err error
		list, err = movRepo.ListByProduct(productID, from, to, limit, offset)
		return err
	})
	return list, err
}

// newMovement arma el registro con los snapshots de producto al momento de crear.
func newMovement(product *entity.Product, warehouseID, movType string, quantity int64, reason, actorID string, now time.Time) *entity.Movement {
	qty := decimal.NewFromInt(quantity)
	uom := product.UOM
	if uom == "" {
		uom = "Units"
	}
	return &entity.Movement{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		SKU:         product.SKU,
		ProductName: product.Name,
		WarehouseID: warehouseID,
		Type:        movType,
		Quantity:    quantity,
		UOM:         uom,
		UnitCost:    product.UnitCost,
		TotalCost:   qty.Mul(product.UnitCost),
		Reason:      reason,
		CreatedBy:   actorID,
		CreatedAt:   now,
	}
}
