package repository

import (
	"context"

	"github.com/jhoicas/stock-management-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// GetByID devuelve (nil, nil) si el artículo no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Item, error)

	// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE). Solo tiene
	// sentido dentro de una transacción; serializa mutaciones por artículo.
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)

	Update(ctx context.Context, item *entity.Item) error

	// UpdateQuantity persiste solo la cantidad (usada por el notificador de stock).
	UpdateQuantity(ctx context.Context, id string, quantity int) error

	List(ctx context.Context, limit, offset int) ([]*entity.Item, error)

	// ListBelowThreshold lista artículos con cantidad igual o inferior al umbral.
	ListBelowThreshold(ctx context.Context, threshold, limit, offset int) ([]*entity.Item, error)

	Delete(ctx context.Context, id string) error
}
