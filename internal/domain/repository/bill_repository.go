package repository

import (
	"context"

	"github.com/jhoicas/stock-management-api/internal/domain/entity"
)

// BillRepository define el puerto de persistencia para facturas (DIP).
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id string) (*entity.Bill, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Bill, error)
}
