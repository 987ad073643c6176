// Package billing contiene los casos de uso de facturación de ventas.
package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-management-api/internal/application/dto"
	appstock "github.com/jhoicas/stock-management-api/internal/application/stock"
	"github.com/jhoicas/stock-management-api/internal/domain"
	"github.com/jhoicas/stock-management-api/internal/domain/entity"
	"github.com/jhoicas/stock-management-api/internal/domain/repository"
)

// CreateBillUseCase crea facturas de venta. El descuento de stock de todas las
// líneas y la inserción de la factura van por el notificador en una sola
// transacción: si alguna línea no tiene stock suficiente o la factura no se
// puede persistir, no se descuenta nada y no hay notificaciones.
type CreateBillUseCase struct {
	billRepo repository.BillRepository
	notifier *appstock.Notifier
}

// NewCreateBillUseCase construye el caso de uso.
func NewCreateBillUseCase(billRepo repository.BillRepository, notifier *appstock.Notifier) *CreateBillUseCase {
	return &CreateBillUseCase{billRepo: billRepo, notifier: notifier}
}

// Create valida las líneas, descuenta stock a través del notificador y
// persiste la factura con los precios congelados al momento de la venta.
func (uc *CreateBillUseCase) Create(ctx context.Context, userID string, in dto.CreateBillRequest) (*dto.BillResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Consolidar cantidades por artículo (una misma línea repetida suma).
	quantities := make(map[string]int, len(in.Items))
	order := make([]string, 0, len(in.Items))
	for _, line := range in.Items {
		if line.ItemID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if _, seen := quantities[line.ItemID]; !seen {
			order = append(order, line.ItemID)
		}
		quantities[line.ItemID] += line.Quantity
	}

	adjustments := make([]appstock.Adjustment, 0, len(order))
	for _, itemID := range order {
		adjustments = append(adjustments, appstock.Adjustment{
			ItemID: itemID,
			Delta:  -quantities[itemID], // venta = salida
		})
	}

	// Descuento de stock y persistencia de la factura en la misma
	// transacción; el fan-out por artículo ocurre tras el commit.
	var bill *entity.Bill
	_, err := uc.notifier.ApplyDeltasWithin(ctx, adjustments, userID, func(repos appstock.TxRepos, updated []*entity.Item) error {
		bill = &entity.Bill{
			ID:           uuid.New().String(),
			CustomerName: in.CustomerName,
			Total:        decimal.Zero,
			CreatedAt:    time.Now(),
			CreatedBy:    userID,
		}
		for _, item := range updated {
			qty := quantities[item.ID]
			subtotal := item.Price.Mul(decimal.NewFromInt(int64(qty)))
			bill.Items = append(bill.Items, entity.BillItem{
				ID:        uuid.New().String(),
				BillID:    bill.ID,
				ItemID:    item.ID,
				ItemName:  item.Name,
				Quantity:  qty,
				UnitPrice: item.Price,
				Subtotal:  subtotal,
			})
			bill.Total = bill.Total.Add(subtotal)
		}
		return repos.Bills.Create(ctx, bill)
	})
	if err != nil {
		return nil, err
	}
	return toBillResponse(bill), nil
}

// GetByID obtiene una factura por ID. Devuelve (nil, nil) si no existe.
func (uc *CreateBillUseCase) GetByID(ctx context.Context, id string) (*dto.BillResponse, error) {
	bill, err := uc.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, nil
	}
	return toBillResponse(bill), nil
}

// List lista facturas con paginación.
func (uc *CreateBillUseCase) List(ctx context.Context, limit, offset int) (*dto.BillListResponse, error) {
	list, err := uc.billRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BillResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBillResponse(b))
	}
	return &dto.BillListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toBillResponse(b *entity.Bill) *dto.BillResponse {
	items := make([]dto.BillItemResponse, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, dto.BillItemResponse{
			ItemID:    it.ItemID,
			ItemName:  it.ItemName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return &dto.BillResponse{
		ID:           b.ID,
		CustomerName: b.CustomerName,
		Total:        b.Total,
		CreatedAt:    b.CreatedAt,
		CreatedBy:    b.CreatedBy,
		Items:        items,
	}
}
