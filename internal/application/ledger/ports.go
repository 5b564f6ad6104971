package ledger

import (
	"context"

	"github.com/nexuswms/nexus-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios
// atados a esa transacción. Es el punto único de serialización del motor: el
// par de movimientos de un traslado y sus dos ajustes de saldo comparten un
// mismo Run, igual que la aplicación exactamente-una-vez de una resolución y
// la conversión de una requisición en su movimiento PURCHASE.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
		requisitionRepo repository.RequisitionRepository,
	) error) error
}
