package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-management-api/internal/domain/entity"
	"github.com/jhoicas/stock-management-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo persistencia de facturas y sus líneas.
type BillRepo struct {
	q Querier
}

func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

// Create persiste la factura con sus líneas.
func (r *BillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO bills (id, customer_name, total, created_at, created_by)
		 VALUES ($1, $2, $3, $4, $5)`,
		bill.ID, bill.CustomerName, bill.Total, bill.CreatedAt, bill.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}
	for _, line := range bill.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO bill_items (id, bill_id, item_id, item_name, quantity, unit_price, subtotal)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			line.ID, line.BillID, line.ItemID, line.ItemName, line.Quantity, line.UnitPrice, line.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert bill item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la factura con sus líneas. Devuelve (nil, nil) si no existe.
func (r *BillRepo) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	var b entity.Bill
	err := r.q.QueryRow(ctx,
		`SELECT id, customer_name, total, created_at, created_by FROM bills WHERE id = $1`, id,
	).Scan(&b.ID, &b.CustomerName, &b.Total, &b.CreatedAt, &b.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT id, bill_id, item_id, item_name, quantity, unit_price, subtotal
		 FROM bill_items WHERE bill_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list bill items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var li entity.BillItem
		if err := rows.Scan(&li.ID, &li.BillID, &li.ItemID, &li.ItemName, &li.Quantity, &li.UnitPrice, &li.Subtotal); err != nil {
			return nil, fmt.Errorf("scan bill item: %w", err)
		}
		b.Items = append(b.Items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &b, nil
}

// List lista facturas (encabezados, sin líneas) con paginación.
func (r *BillRepo) List(ctx context.Context, limit, offset int) ([]*entity.Bill, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, customer_name, total, created_at, created_by
		 FROM bills ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bill
	for rows.Next() {
		var b entity.Bill
		if err := rows.Scan(&b.ID, &b.CustomerName, &b.Total, &b.CreatedAt, &b.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
