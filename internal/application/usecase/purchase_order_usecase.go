package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/stock-management-api/internal/application/dto"
	"github.com/jhoicas/stock-management-api/internal/domain"
	"github.com/jhoicas/stock-management-api/internal/domain/entity"
	"github.com/jhoicas/stock-management-api/internal/domain/repository"
)

// PurchaseOrderUseCase consultas y aprobación de órdenes de compra generadas
// por el reorden automático.
type PurchaseOrderUseCase struct {
	repo repository.PurchaseOrderRepository
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(repo repository.PurchaseOrderRepository) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{repo: repo}
}

// ListByStatus lista órdenes por estado (PENDING o APPROVED).
func (uc *PurchaseOrderUseCase) ListByStatus(ctx context.Context, status string, limit, offset int) ([]dto.PurchaseOrderResponse, error) {
	if status != entity.PurchaseOrderPending && status != entity.PurchaseOrderApproved {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListByStatus(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, toPurchaseOrderResponse(po))
	}
	return out, nil
}

// Approve marca una orden pendiente como aprobada.
func (uc *PurchaseOrderUseCase) Approve(ctx context.Context, id, approvedBy string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	if po.Status != entity.PurchaseOrderPending {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	po.Status = entity.PurchaseOrderApproved
	po.ApprovedAt = &now
	po.ApprovedBy = approvedBy
	if err := uc.repo.Update(ctx, po); err != nil {
		return nil, err
	}
	resp := toPurchaseOrderResponse(po)
	return &resp, nil
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	return dto.PurchaseOrderResponse{
		ID:         po.ID,
		ItemID:     po.ItemID,
		ItemName:   po.ItemName,
		Quantity:   po.Quantity,
		UnitPrice:  po.UnitPrice,
		TotalValue: po.TotalValue,
		Status:     po.Status,
		CreatedAt:  po.CreatedAt,
		ApprovedAt: po.ApprovedAt,
		ApprovedBy: po.ApprovedBy,
	}
}
