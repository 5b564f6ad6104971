package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nexuswms/nexus-api/internal/domain/entity"
	"github.com/nexuswms/nexus-api/internal/domain/repository"
)

var _ repository.RequisitionRepository = (*RequisitionRepo)(nil)

// RequisitionRepo implementación de RequisitionRepository sobre PostgreSQL.
type RequisitionRepo struct {
	q Querier
}

// NewRequisitionRepository construye el adaptador de requisiciones. Pasar pool o tx.
func NewRequisitionRepository(q Querier) *RequisitionRepo {
	return &RequisitionRepo{q: q}
}

const requisitionColumns = `
	id, product_id, product_name, warehouse_id, quantity, priority,
	status, requested_by, created_at, movement_id`

// Create inserta una requisición de compra.
func (r *RequisitionRepo) Create(req *entity.Requisition) error {
	query := `
		INSERT INTO requisitions (` + requisitionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.ProductID, req.ProductName, req.WarehouseID, req.Quantity, req.Priority,
		req.Status, req.RequestedBy, req.CreatedAt, req.MovementID,
	)
	if err != nil {
		return fmt.Errorf("create requisition: %w", err)
	}
	return nil
}

// GetByID obtiene una requisición por id (nil si no existe).
func (r *RequisitionRepo) GetByID(id string) (*entity.Requisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM requisitions WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene una requisición bloqueando la fila (SELECT FOR UPDATE).
func (r *RequisitionRepo) GetForUpdate(id string) (*entity.Requisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM requisitions WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *RequisitionRepo) scanOne(query string, args ...any) (*entity.Requisition, error) {
	var req entity.Requisition
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&req.ID, &req.ProductID, &req.ProductName, &req.WarehouseID, &req.Quantity, &req.Priority,
		&req.Status, &req.RequestedBy, &req.CreatedAt, &req.MovementID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get requisition: %w", err)
	}
	return &req, nil
}

// Update guarda el estado de conversión (status y movimiento enlazado).
func (r *RequisitionRepo) Update(req *entity.Requisition) error {
	query := `
		UPDATE requisitions
		SET status = $2, movement_id = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, req.ID, req.Status, req.MovementID)
	if err != nil {
		return fmt.Errorf("update requisition: %w", err)
	}
	return nil
}

// List devuelve las requisiciones, la más reciente primero.
func (r *RequisitionRepo) List(limit, offset int) ([]*entity.Requisition, error) {
	query := `
		SELECT ` + requisitionColumns + `
		FROM requisitions
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list requisitions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Requisition
	for rows.Next() {
		var req entity.Requisition
		if err := rows.Scan(
			&req.ID, &req.ProductID, &req.ProductName, &req.WarehouseID, &req.Quantity, &req.Priority,
			&req.Status, &req.RequestedBy, &req.CreatedAt, &req.MovementID,
		); err != nil {
			return nil, fmt.Errorf("scan requisition: %w", err)
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}
