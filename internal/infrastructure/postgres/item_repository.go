package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-management-api/internal/domain"
	"github.com/jhoicas/stock-management-api/internal/domain/entity"
	"github.com/jhoicas/stock-management-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = "id, name, sku, category, quantity, price, created_at, updated_at"

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, name, sku, category, quantity, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, nullableString(item.SKU), item.Category,
		item.Quantity, item.Price, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.scanOne(r.q.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = $1`, id), "get item")
}

// GetBySKU obtiene un artículo por SKU. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	return r.scanOne(r.q.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE sku = $1`, sku), "get item by sku")
}

// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE). Solo tiene
// efecto dentro de una transacción.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.scanOne(r.q.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id), "lock item")
}

// Update actualiza los campos del artículo que no son cantidad.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, sku = $3, category = $4, price = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, nullableString(item.SKU), item.Category, item.Price, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateQuantity persiste solo la cantidad (usado por el notificador de stock).
func (r *ItemRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE items SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	return nil
}

// List lista artículos con paginación.
func (r *ItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return r.scanMany(rows)
}

// ListBelowThreshold lista artículos con cantidad igual o inferior al umbral.
func (r *ItemRepo) ListBelowThreshold(ctx context.Context, threshold, limit, offset int) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+itemColumns+` FROM items WHERE quantity <= $1 ORDER BY quantity ASC, name ASC LIMIT $2 OFFSET $3`,
		threshold, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list low stock items: %w", err)
	}
	return r.scanMany(rows)
}

// Delete elimina un artículo. Devuelve domain.ErrConflict si está referenciado
// por facturas o historial de auditoría (FK).
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.Item, error) {
	var (
		i   entity.Item
		sku *string
	)
	err := row.Scan(&i.ID, &i.Name, &sku, &i.Category, &i.Quantity, &i.Price, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sku != nil {
		i.SKU = *sku
	}
	return &i, nil
}

func (r *ItemRepo) scanMany(rows pgx.Rows) ([]*entity.Item, error) {
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var (
			i   entity.Item
			sku *string
		)
		if err := rows.Scan(&i.ID, &i.Name, &sku, &i.Category, &i.Quantity, &i.Price, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if sku != nil {
			i.SKU = *sku
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// nullableString convierte "" a NULL para columnas con constraint UNIQUE.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
