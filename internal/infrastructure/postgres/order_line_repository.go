package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/verone/stock-api/internal/domain/entity"
	"github.com/verone/stock-api/internal/domain/repository"
)

var _ repository.OrderLineRepository = (*OrderLineRepo)(nil)

// OrderLineRepo implementación de OrderLineRepository sobre PostgreSQL (usable con pool o tx).
type OrderLineRepo struct {
	q Querier
}

// NewOrderLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderLineRepository(q Querier) *OrderLineRepo {
	return &OrderLineRepo{q: q}
}

const orderLineColumns = `id, order_id, product_id, ordered_qty, fulfilled_qty, unit_price, created_at, updated_at`

// CreateBatch persiste las líneas de una orden.
func (r *OrderLineRepo) CreateBatch(lines []*entity.OrderLine) error {
	query := `
		INSERT INTO order_lines (id, order_id, product_id, ordered_qty, fulfilled_qty, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, l := range lines {
		_, err := r.q.Exec(context.Background(), query,
			l.ID, l.OrderID, l.ProductID, l.OrderedQty, l.FulfilledQty, l.UnitPrice, l.CreatedAt, l.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

// ListByOrder lista las líneas de una orden en orden de creación.
func (r *OrderLineRepo) ListByOrder(orderID string) ([]*entity.OrderLine, error) {
	query := `SELECT ` + orderLineColumns + ` FROM order_lines WHERE order_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.OrderedQty, &l.FulfilledQty, &l.UnitPrice, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// GetForUpdate obtiene la línea y bloquea la fila (SELECT FOR UPDATE).
func (r *OrderLineRepo) GetForUpdate(id string) (*entity.OrderLine, error) {
	query := `SELECT ` + orderLineColumns + ` FROM order_lines WHERE id = $1 FOR UPDATE`
	var l entity.OrderLine
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.OrderID, &l.ProductID, &l.OrderedQty, &l.FulfilledQty, &l.UnitPrice, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order line for update: %w", err)
	}
	return &l, nil
}

// UpdateFulfilled fija el acumulado cumplido de la línea.
func (r *OrderLineRepo) UpdateFulfilled(id string, fulfilled decimal.Decimal) error {
	query := `UPDATE order_lines SET fulfilled_qty = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, fulfilled)
	if err != nil {
		return fmt.Errorf("update fulfilled qty: %w", err)
	}
	return nil
}
