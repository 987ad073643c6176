package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appstock "github.com/jhoicas/stock-management-api/internal/application/stock"
	"github.com/jhoicas/stock-management-api/internal/application/dto"
	"github.com/jhoicas/stock-management-api/internal/domain"
	"github.com/jhoicas/stock-management-api/internal/domain/entity"
	"github.com/jhoicas/stock-management-api/internal/domain/repository"
)

// ItemUseCase fachada de inventario: CRUD de artículos y ajustes de cantidad.
// Todo cambio de cantidad pasa por el notificador de stock; Update solo toca
// campos que no son cantidad, de modo que la notificación nunca se omite.
type ItemUseCase struct {
	repo     repository.ItemRepository
	notifier *appstock.Notifier
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, notifier *appstock.Notifier) *ItemUseCase {
	return &ItemUseCase{repo: repo, notifier: notifier}
}

// Create crea un artículo. Name es obligatorio; Price no puede ser negativo;
// SKU es único si está presente.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" || in.Quantity < 0 || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.SKU != "" {
		existing, err := uc.repo.GetBySKU(ctx, in.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	item := &entity.Item{
		ID:        uuid.New().String(),
		Name:      in.Name,
		SKU:       in.SKU,
		Category:  in.Category,
		Quantity:  in.Quantity,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo por ID. Devuelve (nil, nil) si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// Update actualiza campos del artículo que no son cantidad.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = *in.Name
	}
	if in.SKU != nil && *in.SKU != item.SKU {
		if *in.SKU != "" {
			existing, err := uc.repo.GetBySKU(ctx, *in.SKU)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != item.ID {
				return nil, domain.ErrDuplicate
			}
		}
		item.SKU = *in.SKU
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item.Price = *in.Price
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// AdjustStock aplica un delta de cantidad a través del notificador de stock.
// Delta positivo = entrada, negativo = salida.
func (uc *ItemUseCase) AdjustStock(ctx context.Context, id string, delta int, actor string) (*dto.AdjustStockResponse, error) {
	if delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.notifier.ApplyDelta(ctx, id, delta, actor)
	if err != nil {
		return nil, err
	}
	return &dto.AdjustStockResponse{
		Item:             *toItemResponse(item),
		PreviousQuantity: item.Quantity - delta,
	}, nil
}

// List lista artículos con paginación. Si lowStockThreshold > 0, filtra los
// que tienen cantidad igual o inferior al umbral.
func (uc *ItemUseCase) List(ctx context.Context, lowStockThreshold, limit, offset int) (*dto.ItemListResponse, error) {
	var (
		list []*entity.Item
		err  error
	)
	if lowStockThreshold > 0 {
		list, err = uc.repo.ListBelowThreshold(ctx, lowStockThreshold, limit, offset)
	} else {
		list, err = uc.repo.List(ctx, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un artículo. Devuelve domain.ErrConflict si está referenciado
// por facturas o historial de auditoría.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:        i.ID,
		Name:      i.Name,
		SKU:       i.SKU,
		Category:  i.Category,
		Quantity:  i.Quantity,
		Price:     i.Price,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
