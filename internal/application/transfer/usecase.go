// Package transfer orquesta reubicaciones de stock entre dos bodegas con
// semántica todo-o-nada: el par TRANSFER_OUT/TRANSFER_IN y los dos ajustes de
// saldo comparten una sola transacción.
package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexuswms/nexus-api/internal/application/ledger"
	"github.com/nexuswms/nexus-api/internal/domain"
	"github.com/nexuswms/nexus-api/internal/domain/entity"
	"github.com/nexuswms/nexus-api/internal/domain/policy"
	"github.com/nexuswms/nexus-api/internal/domain/repository"
)

// UseCase es el orquestador de traslados.
type UseCase struct {
	txRunner      ledger.TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	thresholds    policy.Thresholds
}

// NewUseCase construye el orquestador.
func NewUseCase(
	txRunner ledger.TxRunner,
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

// RequestInput entrada para solicitar un traslado.
type RequestInput struct {
	SourceWarehouseID      string
	DestinationWarehouseID string
	ProductID              string
	Quantity               int64
	Reason                 string
	RequesterID            string
}

// Request crea la solicitud en PENDING. No toca el catálogo: el saldo solo se
// valida y se mueve al momento de la decisión.
func (uc *UseCase) Request(ctx context.Context, input RequestInput) (*entity.Transfer, error) {
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrValidation)
	}
	if input.SourceWarehouseID == input.DestinationWarehouseID {
		return nil, fmt.Errorf("%w: bodega origen y destino no pueden ser la misma", domain.ErrValidation)
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, input.ProductID)
	}
	for _, whID := range []string{input.SourceWarehouseID, input.DestinationWarehouseID} {
		wh, err := uc.warehouseRepo.GetByID(whID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, whID)
		}
	}

	tr := &entity.Transfer{
		ID:                     uuid.New().String(),
		SourceWarehouseID:      input.SourceWarehouseID,
		DestinationWarehouseID: input.DestinationWarehouseID,
		ProductID:              input.ProductID,
		SKU:                    product.SKU,
		ProductName:            product.Name,
		Quantity:               input.Quantity,
		Status:                 entity.TransferStatusPENDING,
		Reason:                 input.Reason,
		RequestedBy:            input.RequesterID,
		CreatedAt:              time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(
		_ repository.MovementRepository,
		_ repository.StockRepository,
		transferRepo repository.TransferRepository,
		_ repository.RequisitionRepository,
	) error {
		return transferRepo.Create(tr)
	})
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// Decide resuelve un traslado pendiente. Decidir un traslado ya terminal
// devuelve el estado actual sin cambios. Al aprobar se re-valida el saldo en
// origen bajo bloqueo: si ya no alcanza, el traslado queda REJECTED con el
// motivo registrado; eso es un resultado de negocio, no un error.
func (uc *UseCase) Decide(ctx context.Context, transferID, decision, resolverRole, resolverID string) (*entity.Transfer, error) {
	if decision != entity.TransferStatusAPPROVED && decision != entity.TransferStatusREJECTED {
		return nil, fmt.Errorf("%w: decisión %q (se espera APPROVED o REJECTED)", domain.ErrValidation, decision)
	}

	now := time.Now()
	var resolved *entity.Transfer

	// El costo unitario vigente se lee antes de abrir la transacción, igual
	// que la validación de maestros en el libro mayor.
	var product *entity.Product
	if decision == entity.TransferStatusAPPROVED {
		existing, err := uc.txGet(ctx, transferID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("%w: traslado %s", domain.ErrNotFound, transferID)
		}
		product, err = uc.productRepo.GetByID(existing.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, existing.ProductID)
		}
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
		_ repository.RequisitionRepository,
	) error {
		tr, err := transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if tr == nil {
			return fmt.Errorf("%w: traslado %s", domain.ErrNotFound, transferID)
		}
		if tr.IsTerminal() {
			resolved = tr
			return nil
		}
		if !policy.CanDecideTransfer(resolverRole) {
			return fmt.Errorf("%w: %s no puede decidir traslados", domain.ErrAuthority, resolverRole)
		}

		if decision == entity.TransferStatusREJECTED {
			tr.Status = entity.TransferStatusREJECTED
			tr.ApprovedBy = resolverID
			tr.ApprovedAt = &now
			if err := transferRepo.UpdateResolution(tr); err != nil {
				return err
			}
			resolved = tr
			return nil
		}

		// Re-chequeo al momento del commit: el saldo pudo drenarse desde que
		// se presentó la solicitud. Insuficiente -> rechazo automático, cero
		// movimientos creados.
		source, err := stockRepo.GetForUpdate(tr.ProductID, tr.SourceWarehouseID)
		if err != nil {
			return err
		}
		if source.Quantity < tr.Quantity {
			tr.Status = entity.TransferStatusREJECTED
			tr.RejectionReason = fmt.Sprintf("stock en origen agotado antes de aprobar: saldo %d, solicitado %d", source.Quantity, tr.Quantity)
			tr.ApprovedBy = resolverID
			tr.ApprovedAt = &now
			if err := transferRepo.UpdateResolution(tr); err != nil {
				return err
			}
			resolved = tr
			return nil
		}

		dest, err := stockRepo.GetForUpdate(tr.ProductID, tr.DestinationWarehouseID)
		if err != nil {
			return err
		}

		// El par pasa por la misma tabla de decisión que cualquier movimiento.
		// ViaTransfer exime al aprobador de la regla que bloquea a ADMIN como
		// originador directo: estos movimientos nacen de un traslado aprobado.
		outDisp, err := policy.Evaluate(policy.Candidate{
			ActorRole:      resolverRole,
			Type:           entity.MovementTypeTRANSFEROUT,
			Quantity:       tr.Quantity,
			UnitCost:       product.UnitCost,
			AvailableStock: source.Quantity,
			ViaTransfer:    true,
		}, uc.thresholds)
		if err != nil {
			return err
		}
		inDisp, err := policy.Evaluate(policy.Candidate{
			ActorRole:   resolverRole,
			Type:        entity.MovementTypeTRANSFERIN,
			Quantity:    tr.Quantity,
			UnitCost:    product.UnitCost,
			ViaTransfer: true,
		}, uc.thresholds)
		if err != nil {
			return err
		}

		if err := source.Apply(-tr.Quantity, now); err != nil {
			return err
		}
		if err := dest.Apply(tr.Quantity, now); err != nil {
			return err
		}
		if err := stockRepo.Upsert(source); err != nil {
			return err
		}
		if err := stockRepo.Upsert(dest); err != nil {
			return err
		}

		outMov := trasladoMovement(tr, product, entity.MovementTypeTRANSFEROUT, tr.SourceWarehouseID, resolverID, string(outDisp), now)
		inMov := trasladoMovement(tr, product, entity.MovementTypeTRANSFERIN, tr.DestinationWarehouseID, resolverID, string(inDisp), now)
		if err := movRepo.Create(outMov); err != nil {
			return err
		}
		if err := movRepo.Create(inMov); err != nil {
			return err
		}

		tr.Status = entity.TransferStatusAPPROVED
		tr.ApprovedBy = resolverID
		tr.ApprovedAt = &now
		if err := transferRepo.UpdateResolution(tr); err != nil {
			return err
		}
		resolved = tr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

// txGet lee un traslado fuera de la transacción de decisión.
func (uc *UseCase) txGet(ctx context.Context, transferID string) (*entity.Transfer, error) {
	var tr *entity.Transfer
	err := uc.txRunner.Run(ctx, func(_ repository.MovementRepository, _ repository.StockRepository, transferRepo repository.TransferRepository, _ repository.RequisitionRepository) error {
		var err error
		tr, err = transferRepo.GetByID(transferID)
		return err
	})
	return tr, err
}

// List traslados ordenados por fecha (vista de la consola).
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.Transfer, error) {
	var list []*entity.Transfer
	err := uc.txRunner.Run(ctx, func(_ repository.MovementRepository, _ repository.StockRepository, transferRepo repository.TransferRepository, _ repository.RequisitionRepository) error {
		var err error
		list, err = transferRepo.List(limit, offset)
		return err
	})
	return list, err
}

// trasladoMovement arma uno de los dos movimientos del par, ambos con el mismo
// TransferID y el costo unitario vigente del producto.
func trasladoMovement(tr *entity.Transfer, product *entity.Product, movType, warehouseID, approverID, status string, now time.Time) *entity.Movement {
	qty := decimal.NewFromInt(tr.Quantity)
	uom := product.UOM
	if uom == "" {
		uom = "Units"
	}
	return &entity.Movement{
		ID:          uuid.New().String(),
		TransferID:  tr.ID,
		ProductID:   tr.ProductID,
		SKU:         tr.SKU,
		ProductName: tr.ProductName,
		WarehouseID: warehouseID,
		Type:        movType,
		Quantity:    tr.Quantity,
		UOM:         uom,
		UnitCost:    product.UnitCost,
		TotalCost:   qty.Mul(product.UnitCost),
		Status:      status,
		Reason:      tr.Reason,
		CreatedBy:   tr.RequestedBy,
		CreatedAt:   now,
		ApprovedBy:  approverID,
		ApprovedAt:  &now,
	}
}
