package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-management-api/internal/domain/entity"
	"github.com/jhoicas/stock-management-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const poColumns = "id, item_id, item_name, quantity, unit_price, total_value, status, stock_at_window, created_at, approved_at, approved_by"

// PurchaseOrderRepo persistencia de órdenes de compra.
type PurchaseOrderRepo struct {
	q Querier
}

func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste una orden de compra.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, item_id, item_name, quantity, unit_price, total_value, status, stock_at_window, created_at, approved_at, approved_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.ItemID, po.ItemName, po.Quantity, po.UnitPrice, po.TotalValue,
		po.Status, po.StockAtWindow, po.CreatedAt, po.ApprovedAt, nullableString(po.ApprovedBy),
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID. Devuelve (nil, nil) si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	var (
		po         entity.PurchaseOrder
		approvedBy *string
	)
	err := r.q.QueryRow(ctx,
		`SELECT `+poColumns+` FROM purchase_orders WHERE id = $1`, id,
	).Scan(
		&po.ID, &po.ItemID, &po.ItemName, &po.Quantity, &po.UnitPrice, &po.TotalValue,
		&po.Status, &po.StockAtWindow, &po.CreatedAt, &po.ApprovedAt, &approvedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if approvedBy != nil {
		po.ApprovedBy = *approvedBy
	}
	return &po, nil
}

// ListByStatus lista órdenes por estado.
func (r *PurchaseOrderRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+poColumns+` FROM purchase_orders WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		status, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var (
			po         entity.PurchaseOrder
			approvedBy *string
		)
		if err := rows.Scan(
			&po.ID, &po.ItemID, &po.ItemName, &po.Quantity, &po.UnitPrice, &po.TotalValue,
			&po.Status, &po.StockAtWindow, &po.CreatedAt, &po.ApprovedAt, &approvedBy,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		if approvedBy != nil {
			po.ApprovedBy = *approvedBy
		}
		list = append(list, &po)
	}
	return list, rows.Err()
}

// Update persiste el estado y los datos de aprobación de una orden.
func (r *PurchaseOrderRepo) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx,
		`UPDATE purchase_orders SET status = $2, approved_at = $3, approved_by = $4 WHERE id = $1`,
		po.ID, po.Status, po.ApprovedAt, nullableString(po.ApprovedBy),
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}
