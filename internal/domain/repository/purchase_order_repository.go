package repository

import (
	"context"

	"github.com/jhoicas/stock-management-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de
// compra generadas por el reorden automático (DIP).
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	Update(ctx context.Context, po *entity.PurchaseOrder) error
}
