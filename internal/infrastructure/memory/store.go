// Package memory implementa los repositorios sobre mapas en memoria, con un
// TxRunner de commit-por-snapshot: la transacción corre bajo el mutex del
// store y, si falla, el estado se restaura completo. Ningún estado intermedio
// es observable desde afuera. Se usa como driver de demo y como doble de
// pruebas de los casos de uso.
package memory

import (
	"sync"

	"github.com/nexuswms/nexus-api/internal/domain/entity"
)

type stockKey struct {
	productID   string
	warehouseID string
}

// state es el contenido del store, sin sincronización. Los repos atados a una
// transacción operan directo sobre él mientras el Store sostiene el mutex.
type state struct {
	products     map[string]*entity.Product
	warehouses   map[string]*entity.Warehouse
	stocks       map[stockKey]*entity.Stock
	movements    map[string]*entity.Movement
	movementIDs  []string // orden de inserción (el libro es append-only)
	transfers    map[string]*entity.Transfer
	transferIDs  []string
	requisitions map[string]*entity.Requisition
	reqIDs       []string
}

func newState() *state {
	return &state{
		products:     make(map[string]*entity.Product),
		warehouses:   make(map[string]*entity.Warehouse),
		stocks:       make(map[stockKey]*entity.Stock),
		movements:    make(map[string]*entity.Movement),
		transfers:    make(map[string]*entity.Transfer),
		requisitions: make(map[string]*entity.Requisition),
	}
}

// snapshot copia los encabezados de mapa y los slices de orden. Basta para
// revertir: los repos nunca mutan entidades almacenadas en el sitio, siempre
// reemplazan la entrada con una copia.
func (st *state) snapshot() *state {
	cp := &state{
		products:     make(map[string]*entity.Product, len(st.products)),
		warehouses:   make(map[string]*entity.Warehouse, len(st.warehouses)),
		stocks:       make(map[stockKey]*entity.Stock, len(st.stocks)),
		movements:    make(map[string]*entity.Movement, len(st.movements)),
		movementIDs:  append([]string(nil), st.movementIDs...),
		transfers:    make(map[string]*entity.Transfer, len(st.transfers)),
		transferIDs:  append([]string(nil), st.transferIDs...),
		requisitions: make(map[string]*entity.Requisition, len(st.requisitions)),
		reqIDs:       append([]string(nil), st.reqIDs...),
	}
	for k, v := range st.products {
		cp.products[k] = v
	}
	for k, v := range st.warehouses {
		cp.warehouses[k] = v
	}
	for k, v := range st.stocks {
		cp.stocks[k] = v
	}
	for k, v := range st.movements {
		cp.movements[k] = v
	}
	for k, v := range st.transfers {
		cp.transfers[k] = v
	}
	for k, v := range st.requisitions {
		cp.requisitions[k] = v
	}
	return cp
}

// Store contenedor sincronizado del estado.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Repositorios atados al store (bloquean por operación; para uso fuera de
// transacciones, como las lecturas del catálogo).

// ProductRepository devuelve el repositorio de productos.
func (s *Store) ProductRepository() *ProductRepo { return &ProductRepo{repoBase{store: s}} }

// WarehouseRepository devuelve el repositorio de bodegas.
func (s *Store) WarehouseRepository() *WarehouseRepo { return &WarehouseRepo{repoBase{store: s}} }

// StockRepository devuelve el repositorio de saldos.
func (s *Store) StockRepository() *StockRepo { return &StockRepo{repoBase{store: s}} }

// MovementRepository devuelve el repositorio del libro mayor.
func (s *Store) MovementRepository() *MovementRepo { return &MovementRepo{repoBase{store: s}} }

// TransferRepository devuelve el repositorio de traslados.
func (s *Store) TransferRepository() *TransferRepo { return &TransferRepo{repoBase{store: s}} }

// RequisitionRepository devuelve el repositorio de requisiciones.
func (s *Store) RequisitionRepository() *RequisitionRepo { return &RequisitionRepo{repoBase{store: s}} }
