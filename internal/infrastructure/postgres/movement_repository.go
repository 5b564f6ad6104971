package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nexuswms/nexus-api/internal/domain/entity"
	"github.com/nexuswms/nexus-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL.
// El libro mayor es append-only: nunca hay DELETE y el único UPDATE es la
// resolución (status, aprobador, fecha).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del libro mayor. Pasar pool o tx.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `
	id, transfer_id, product_id, sku, product_name, warehouse_id, type,
	quantity, uom, unit_cost, total_cost, status, reason,
	created_by, created_at, approved_by, approved_at`

// Create inserta el registro inmutable del movimiento.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.TransferID, m.ProductID, m.SKU, m.ProductName, m.WarehouseID, m.Type,
		m.Quantity, m.UOM, m.UnitCost, m.TotalCost, m.Status, m.Reason,
		m.CreatedBy, m.CreatedAt, m.ApprovedBy, m.ApprovedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por id (nil si no existe).
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene un movimiento bloqueando la fila (SELECT FOR UPDATE).
func (r *MovementRepo) GetForUpdate(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *MovementRepo) scanOne(query string, args ...any) (*entity.Movement, error) {
	row := r.q.QueryRow(context.Background(), query, args...)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// UpdateResolution adjunta la resolución al movimiento. Solo toca status,
// aprobador y fecha; los hechos originales quedan intactos.
func (r *MovementRepo) UpdateResolution(m *entity.Movement) error {
	query := `
		UPDATE movements
		SET status = $2, approved_by = $3, approved_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, m.ID, m.Status, m.ApprovedBy, m.ApprovedAt)
	if err != nil {
		return fmt.Errorf("update movement resolution: %w", err)
	}
	return nil
}

// ListPending devuelve los movimientos retenidos (PENDING o REVIEW_REQUIRED),
// los más antiguos primero.
func (r *MovementRepo) ListPending() ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE status IN ($1, $2)
		ORDER BY created_at ASC, id ASC`
	return r.list(query, entity.MovementStatusPENDING, entity.MovementStatusREVIEWREQUIRED)
}

// ListByWarehouse devuelve el historial de una bodega, el más reciente primero.
func (r *MovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return r.listFiltered("warehouse_id", warehouseID, from, to, limit, offset)
}

// ListByProduct devuelve el historial de un producto, el más reciente primero.
func (r *MovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return r.listFiltered("product_id", productID, from, to, limit, offset)
}

func (r *MovementRepo) listFiltered(column, value string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + movementColumns + ` FROM movements WHERE ` + column + ` = $1`)
	args := []any{value}
	if from != nil {
		args = append(args, *from)
		fmt.Fprintf(&sb, " AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		fmt.Fprintf(&sb, " AND created_at <= $%d", len(args))
	}
	sb.WriteString(" ORDER BY created_at DESC, id DESC")
	args = append(args, limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	args = append(args, offset)
	fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	return r.list(sb.String(), args...)
}

func (r *MovementRepo) list(query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.TransferID, &m.ProductID, &m.SKU, &m.ProductName, &m.WarehouseID, &m.Type,
		&m.Quantity, &m.UOM, &m.UnitCost, &m.TotalCost, &m.Status, &m.Reason,
		&m.CreatedBy, &m.CreatedAt, &m.ApprovedBy, &m.ApprovedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
