// Package procurement maneja las requisiciones de compra. La conversión de
// una requisición genera un movimiento PURCHASE a través del libro mayor, de
// modo que la entrada de stock queda sujeta a la misma tabla de decisión que
// cualquier otro movimiento.
package procurement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nexuswms/nexus-api/internal/application/ledger"
	"github.com/nexuswms/nexus-api/internal/domain"
	"github.com/nexuswms/nexus-api/internal/domain/entity"
	"github.com/nexuswms/nexus-api/internal/domain/repository"
)

// UseCase requisiciones de compra.
type UseCase struct {
	txRunner        ledger.TxRunner
	requisitionRepo repository.RequisitionRepository
	productRepo     repository.ProductRepository
	ledgerUC        *ledger.UseCase
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ledger.TxRunner,
	requisitionRepo repository.RequisitionRepository,
	productRepo repository.ProductRepository,
	ledgerUC *ledger.UseCase,
) *UseCase {
	return &UseCase{
		txRunner:        txRunner,
		requisitionRepo: requisitionRepo,
		productRepo:     productRepo,
		ledgerUC:        ledgerUC,
	}
}

// CreateInput entrada para crear una requisición.
type CreateInput struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	Priority    string
	RequesterID string
}

// Create registra una requisición en SUBMITTED.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Requisition, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrValidation)
	}
	switch in.Priority {
	case "":
		in.Priority = entity.RequisitionPriorityMEDIUM
	case entity.RequisitionPriorityLOW, entity.RequisitionPriorityMEDIUM, entity.RequisitionPriorityHIGH:
	default:
		return nil, fmt.Errorf("%w: prioridad %q", domain.ErrValidation, in.Priority)
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}

	r := &entity.Requisition{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		ProductName: product.Name,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		Priority:    in.Priority,
		Status:      entity.RequisitionStatusSUBMITTED,
		RequestedBy: in.RequesterID,
		CreatedAt:   time.Now(),
	}
	if err := uc.requisitionRepo.Create(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Convert convierte la requisición en un movimiento PURCHASE. Convertir una
// requisición ya convertida devuelve el estado actual sin crear un segundo
// movimiento (idempotente frente a reintentos). La requisición se re-lee bajo
// bloqueo dentro de la misma transacción que escribe el movimiento: dos
// reintentos concurrentes no pueden producir dos PURCHASE.
func (uc *UseCase) Convert(ctx context.Context, requisitionID, actorID, actorRole string) (*entity.Requisition, error) {
	r, err := uc.requisitionRepo.GetByID(requisitionID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: requisición %s", domain.ErrNotFound, requisitionID)
	}
	if r.IsConverted() {
		return r, nil
	}

	// Validación y maestros fuera de la transacción, igual que el libro mayor.
	sub, err := uc.ledgerUC.Prepare(ledger.SubmitInput{
		ProductID:   r.ProductID,
		WarehouseID: r.WarehouseID,
		Type:        entity.MovementTypePURCHASE,
		Quantity:    r.Quantity,
		Reason:      fmt.Sprintf("requisición %s", r.ID),
		ActorID:     actorID,
		ActorRole:   actorRole,
	})
	if err != nil {
		return nil, err
	}

	var converted *entity.Requisition
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		_ repository.TransferRepository,
		requisitionRepo repository.RequisitionRepository,
	) error {
		locked, err := requisitionRepo.GetForUpdate(requisitionID)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("%w: requisición %s", domain.ErrNotFound, requisitionID)
		}
		if locked.IsConverted() {
			converted = locked
			return nil
		}

		mov, err := uc.ledgerUC.Record(movRepo, stockRepo, sub)
		if err != nil {
			return err
		}

		locked.Status = entity.RequisitionStatusCONVERTED
		locked.MovementID = mov.ID
		if err := requisitionRepo.Update(locked); err != nil {
			return err
		}
		converted = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return converted, nil
}

// List requisiciones con paginación.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.Requisition, error) {
	return uc.requisitionRepo.List(limit, offset)
}
