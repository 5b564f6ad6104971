// Package approvals expone la cola de aprobaciones: una vista de solo lectura
// sobre el libro mayor y los traslados. No muta nada; solo anota cada ítem con
// si el rol consultante tiene autoridad para decidirlo.
package approvals

import (
	"context"

	"github.com/nexuswms/nexus-api/internal/application/dto"
	"github.com/nexuswms/nexus-api/internal/application/ledger"
	"github.com/nexuswms/nexus-api/internal/domain/policy"
	"github.com/nexuswms/nexus-api/internal/domain/repository"
)

// Queue vista de pendientes.
type Queue struct {
	txRunner ledger.TxRunner
}

// NewQueue construye la vista.
func NewQueue(txRunner ledger.TxRunner) *Queue {
	return &Queue{txRunner: txRunner}
}

// ListPending devuelve movimientos PENDING/REVIEW_REQUIRED y traslados
// PENDING, cada uno con can_decide según la matriz de autoridad del rol.
func (q *Queue) ListPending(ctx context.Context, viewerRole string) ([]dto.PendingItemDTO, error) {
	var items []dto.PendingItemDTO
	err := q.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		_ repository.StockRepository,
		transferRepo repository.TransferRepository,
		_ repository.RequisitionRepository,
	) error {
		movements, err := movRepo.ListPending()
		if err != nil {
			return err
		}
		for _, m := range movements {
			d := dto.NewMovementDTO(m)
			items = append(items, dto.PendingItemDTO{
				Kind:      dto.PendingItemMovement,
				CanDecide: policy.CanResolve(viewerRole, m.Status),
				Movement:  &d,
			})
		}

		transfers, err := transferRepo.ListPending()
		if err != nil {
			return err
		}
		for _, t := range transfers {
			d := dto.NewTransferDTO(t)
			items = append(items, dto.PendingItemDTO{
				Kind:      dto.PendingItemTransfer,
				CanDecide: policy.CanDecideTransfer(viewerRole),
				Transfer:  &d,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
