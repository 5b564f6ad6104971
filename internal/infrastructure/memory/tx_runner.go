package memory

import (
	"context"

	"github.com/nexuswms/nexus-api/internal/application/ledger"
	"github.com/nexuswms/nexus-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks de forma atómica sobre el store: sostiene el
// mutex durante todo el callback (punto único de serialización) y, si el
// callback falla, restaura el snapshot previo. Mismo contrato todo-o-nada que
// la transacción pgx del driver postgres.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run toma el snapshot, ejecuta fn con repos atados al estado en curso y
// revierte si fn devuelve error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	transferRepo repository.TransferRepository,
	requisitionRepo repository.RequisitionRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	before := r.store.st.snapshot()
	bound := repoBase{store: r.store, st: r.store.st}

	err := fn(&MovementRepo{bound}, &StockRepo{bound}, &TransferRepo{bound}, &RequisitionRepo{bound})
	if err != nil {
		r.store.st = before
		return err
	}
	return nil
}
