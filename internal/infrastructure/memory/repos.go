package memory

import (
	"time"

	"github.com/nexuswms/nexus-api/internal/domain/entity"
	"github.com/nexuswms/nexus-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository     = (*ProductRepo)(nil)
	_ repository.WarehouseRepository   = (*WarehouseRepo)(nil)
	_ repository.StockRepository       = (*StockRepo)(nil)
	_ repository.MovementRepository    = (*MovementRepo)(nil)
	_ repository.TransferRepository    = (*TransferRepo)(nil)
	_ repository.RequisitionRepository = (*RequisitionRepo)(nil)
)

// repoBase resuelve sobre qué estado opera el repo: el de una transacción en
// curso (sin bloquear: el TxRunner ya sostiene el mutex) o el del store.
type repoBase struct {
	store *Store
	st    *state // no-nil cuando el repo está atado a una transacción
}

func (b repoBase) view() (*state, func()) {
	if b.st != nil {
		return b.st, func() {}
	}
	b.store.mu.Lock()
	return b.store.st, b.store.mu.Unlock
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	return &cp
}

func cloneWarehouse(w *entity.Warehouse) *entity.Warehouse {
	cp := *w
	return &cp
}

func cloneStock(s *entity.Stock) *entity.Stock {
	cp := *s
	return &cp
}

func cloneMovement(m *entity.Movement) *entity.Movement {
	cp := *m
	if m.ApprovedAt != nil {
		at := *m.ApprovedAt
		cp.ApprovedAt = &at
	}
	return &cp
}

func cloneTransfer(t *entity.Transfer) *entity.Transfer {
	cp := *t
	if t.ApprovedAt != nil {
		at := *t.ApprovedAt
		cp.ApprovedAt = &at
	}
	return &cp
}

func cloneRequisition(r *entity.Requisition) *entity.Requisition {
	cp := *r
	return &cp
}

// ─────────────────────────────────────────────────────────────────────────────
// Productos
// ─────────────────────────────────────────────────────────────────────────────

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct{ repoBase }

// Create registra el producto.
func (r *ProductRepo) Create(p *entity.Product) error {
	st, done := r.view()
	defer done()
	st.products[p.ID] = cloneProduct(p)
	return nil
}

// GetByID devuelve el producto o nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	st, done := r.view()
	defer done()
	p, ok := st.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

// GetBySKU devuelve el producto con ese SKU o nil.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	st, done := r.view()
	defer done()
	for _, p := range st.products {
		if p.SKU == sku {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

// List lista productos con paginación (orden no garantizado).
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	st, done := r.view()
	defer done()
	var all []*entity.Product
	for _, p := range st.products {
		all = append(all, cloneProduct(p))
	}
	return page(all, limit, offset), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Bodegas
// ─────────────────────────────────────────────────────────────────────────────

// WarehouseRepo repositorio de bodegas en memoria.
type WarehouseRepo struct{ repoBase }

// Create registra la bodega.
func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	st, done := r.view()
	defer done()
	st.warehouses[w.ID] = cloneWarehouse(w)
	return nil
}

// GetByID devuelve la bodega o nil si no existe.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	st, done := r.view()
	defer done()
	w, ok := st.warehouses[id]
	if !ok {
		return nil, nil
	}
	return cloneWarehouse(w), nil
}

// List lista las bodegas.
func (r *WarehouseRepo) List() ([]*entity.Warehouse, error) {
	st, done := r.view()
	defer done()
	var all []*entity.Warehouse
	for _, w := range st.warehouses {
		all = append(all, cloneWarehouse(w))
	}
	return all, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Saldos
// ─────────────────────────────────────────────────────────────────────────────

// StockRepo repositorio de saldos en memoria.
type StockRepo struct{ repoBase }

func (r *StockRepo) get(st *state, productID, warehouseID string) *entity.Stock {
	s, ok := st.stocks[stockKey{productID, warehouseID}]
	if !ok {
		return &entity.Stock{ProductID: productID, WarehouseID: warehouseID}
	}
	return cloneStock(s)
}

// Get devuelve el saldo (cero si no hay fila, igual que el driver postgres).
func (r *StockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	st, done := r.view()
	defer done()
	return r.get(st, productID, warehouseID), nil
}

// GetForUpdate en memoria equivale a Get: el mutex del TxRunner ya serializa.
func (r *StockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	st, done := r.view()
	defer done()
	return r.get(st, productID, warehouseID), nil
}

// Upsert reemplaza la fila de saldo.
func (r *StockRepo) Upsert(s *entity.Stock) error {
	st, done := r.view()
	defer done()
	st.stocks[stockKey{s.ProductID, s.WarehouseID}] = cloneStock(s)
	return nil
}

// ListByWarehouse devuelve las filas de saldo de una bodega.
func (r *StockRepo) ListByWarehouse(warehouseID string) ([]*entity.Stock, error) {
	st, done := r.view()
	defer done()
	var out []*entity.Stock
	for k, s := range st.stocks {
		if k.warehouseID == warehouseID {
			out = append(out, cloneStock(s))
		}
	}
	return out, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Libro mayor
// ─────────────────────────────────────────────────────────────────────────────

// MovementRepo repositorio del libro mayor en memoria.
type MovementRepo struct{ repoBase }

// Create agrega el movimiento al libro (append-only).
func (r *MovementRepo) Create(m *entity.Movement) error {
	st, done := r.view()
	defer done()
	st.movements[m.ID] = cloneMovement(m)
	st.movementIDs = append(st.movementIDs, m.ID)
	return nil
}

// GetByID devuelve el movimiento o nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	st, done := r.view()
	defer done()
	m, ok := st.movements[id]
	if !ok {
		return nil, nil
	}
	return cloneMovement(m), nil
}

// GetForUpdate en memoria equivale a GetByID.
func (r *MovementRepo) GetForUpdate(id string) (*entity.Movement, error) {
	return r.GetByID(id)
}

// UpdateResolution actualiza solo la proyección de resolución del registro.
func (r *MovementRepo) UpdateResolution(m *entity.Movement) error {
	st, done := r.view()
	defer done()
	cur, ok := st.movements[m.ID]
	if !ok {
		return nil
	}
	cp := cloneMovement(cur)
	cp.Status = m.Status
	cp.ApprovedBy = m.ApprovedBy
	if m.ApprovedAt != nil {
		at := *m.ApprovedAt
		cp.ApprovedAt = &at
	}
	st.movements[m.ID] = cp
	return nil
}

// ListPending devuelve los movimientos retenidos en orden de inserción.
func (r *MovementRepo) ListPending() ([]*entity.Movement, error) {
	st, done := r.view()
	defer done()
	var out []*entity.Movement
	for _, id := range st.movementIDs {
		if m := st.movements[id]; m.IsHeld() {
			out = append(out, cloneMovement(m))
		}
	}
	return out, nil
}

// ListByWarehouse historial de una bodega, del más reciente al más antiguo.
func (r *MovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return r.list(func(m *entity.Movement) bool { return m.WarehouseID == warehouseID }, from, to, limit, offset)
}

// ListByProduct historial de un producto, del más reciente al más antiguo.
func (r *MovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return r.list(func(m *entity.Movement) bool { return m.ProductID == productID }, from, to, limit, offset)
}

func (r *MovementRepo) list(match func(*entity.Movement) bool, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	st, done := r.view()
	defer done()
	var out []*entity.Movement
	for i := len(st.movementIDs) - 1; i >= 0; i-- {
		m := st.movements[st.movementIDs[i]]
		if !match(m) {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		out = append(out, cloneMovement(m))
	}
	return page(out, limit, offset), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Traslados
// ─────────────────────────────────────────────────────────────────────────────

// TransferRepo repositorio de traslados en memoria.
type TransferRepo struct{ repoBase }

// Create registra la solicitud.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	st, done := r.view()
	defer done()
	st.transfers[t.ID] = cloneTransfer(t)
	st.transferIDs = append(st.transferIDs, t.ID)
	return nil
}

// GetByID devuelve el traslado o nil si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	st, done := r.view()
	defer done()
	t, ok := st.transfers[id]
	if !ok {
		return nil, nil
	}
	return cloneTransfer(t), nil
}

// GetForUpdate en memoria equivale a GetByID.
func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	return r.GetByID(id)
}

// UpdateResolution actualiza solo la proyección de resolución del registro.
func (r *TransferRepo) UpdateResolution(t *entity.Transfer) error {
	st, done := r.view()
	defer done()
	cur, ok := st.transfers[t.ID]
	if !ok {
		return nil
	}
	cp := cloneTransfer(cur)
	cp.Status = t.Status
	cp.RejectionReason = t.RejectionReason
	cp.ApprovedBy = t.ApprovedBy
	if t.ApprovedAt != nil {
		at := *t.ApprovedAt
		cp.ApprovedAt = &at
	}
	st.transfers[t.ID] = cp
	return nil
}

// ListPending devuelve los traslados PENDING en orden de inserción.
func (r *TransferRepo) ListPending() ([]*entity.Transfer, error) {
	st, done := r.view()
	defer done()
	var out []*entity.Transfer
	for _, id := range st.transferIDs {
		if t := st.transfers[id]; t.Status == entity.TransferStatusPENDING {
			out = append(out, cloneTransfer(t))
		}
	}
	return out, nil
}

// List traslados del más reciente al más antiguo.
func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	st, done := r.view()
	defer done()
	var out []*entity.Transfer
	for i := len(st.transferIDs) - 1; i >= 0; i-- {
		out = append(out, cloneTransfer(st.transfers[st.transferIDs[i]]))
	}
	return page(out, limit, offset), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Requisiciones
// ─────────────────────────────────────────────────────────────────────────────

// RequisitionRepo repositorio de requisiciones en memoria.
type RequisitionRepo struct{ repoBase }

// Create registra la requisición.
func (r *RequisitionRepo) Create(q *entity.Requisition) error {
	st, done := r.view()
	defer done()
	st.requisitions[q.ID] = cloneRequisition(q)
	st.reqIDs = append(st.reqIDs, q.ID)
	return nil
}

// GetByID devuelve la requisición o nil si no existe.
func (r *RequisitionRepo) GetByID(id string) (*entity.Requisition, error) {
	st, done := r.view()
	defer done()
	q, ok := st.requisitions[id]
	if !ok {
		return nil, nil
	}
	return cloneRequisition(q), nil
}

// GetForUpdate en memoria equivale a GetByID.
func (r *RequisitionRepo) GetForUpdate(id string) (*entity.Requisition, error) {
	return r.GetByID(id)
}

// Update reemplaza la requisición.
func (r *RequisitionRepo) Update(q *entity.Requisition) error {
	st, done := r.view()
	defer done()
	if _, ok := st.requisitions[q.ID]; !ok {
		return nil
	}
	st.requisitions[q.ID] = cloneRequisition(q)
	return nil
}

// List requisiciones del más reciente al más antiguo.
func (r *RequisitionRepo) List(limit, offset int) ([]*entity.Requisition, error) {
	st, done := r.view()
	defer done()
	var out []*entity.Requisition
	for i := len(st.reqIDs) - 1; i >= 0; i-- {
		out = append(out, cloneRequisition(st.requisitions[st.reqIDs[i]]))
	}
	return page(out, limit, offset), nil
}

func page[T any](in []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
