package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nexuswms/nexus-api/internal/domain/entity"
	"github.com/nexuswms/nexus-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de traslados. Pasar pool o tx.
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `
	id, source_warehouse_id, destination_warehouse_id, product_id, sku,
	product_name, quantity, status, reason, rejection_reason,
	requested_by, created_at, approved_by, approved_at`

// Create inserta la solicitud de traslado.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.SourceWarehouseID, t.DestinationWarehouseID, t.ProductID, t.SKU,
		t.ProductName, t.Quantity, t.Status, t.Reason, t.RejectionReason,
		t.RequestedBy, t.CreatedAt, t.ApprovedBy, t.ApprovedAt,
	)
	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por id (nil si no existe).
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene un traslado bloqueando la fila (SELECT FOR UPDATE).
func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *TransferRepo) scanOne(query string, args ...any) (*entity.Transfer, error) {
	row := r.q.QueryRow(context.Background(), query, args...)
	t, err := scanTransfer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

// UpdateResolution adjunta la decisión al traslado (status, aprobador, fecha
// y motivo de rechazo). Los hechos de la solicitud no cambian.
func (r *TransferRepo) UpdateResolution(t *entity.Transfer) error {
	query := `
		UPDATE transfers
		SET status = $2, approved_by = $3, approved_at = $4, rejection_reason = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, t.ID, t.Status, t.ApprovedBy, t.ApprovedAt, t.RejectionReason)
	if err != nil {
		return fmt.Errorf("update transfer resolution: %w", err)
	}
	return nil
}

// ListPending devuelve los traslados PENDING, los más antiguos primero.
func (r *TransferRepo) ListPending() ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers WHERE status = $1
		ORDER BY created_at ASC, id ASC`
	return r.list(query, entity.TransferStatusPENDING)
}

// List devuelve los traslados, el más reciente primero.
func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *TransferRepo) list(query string, args ...any) ([]*entity.Transfer, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	err := row.Scan(
		&t.ID, &t.SourceWarehouseID, &t.DestinationWarehouseID, &t.ProductID, &t.SKU,
		&t.ProductName, &t.Quantity, &t.Status, &t.Reason, &t.RejectionReason,
		&t.RequestedBy, &t.CreatedAt, &t.ApprovedBy, &t.ApprovedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
