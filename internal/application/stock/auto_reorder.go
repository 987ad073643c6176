package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-management-api/internal/domain/entity"
	"github.com/jhoicas/stock-management-api/internal/domain/repository"
	"github.com/jhoicas/stock-management-api/internal/domain/stock"
	"github.com/jhoicas/stock-management-api/pkg/logger"
)

// AutoReorderObserver genera una orden de compra cuando el stock cruza el
// punto de reorden hacia abajo (old >= punto, new < punto). El cruce inverso
// solo se registra en el log, sin acción.
type AutoReorderObserver struct {
	poRepo       repository.PurchaseOrderRepository
	mailer       Mailer
	log          *logger.Logger
	reorderPoint int
	targetStock  int
	standardQty  int
}

// NewAutoReorderObserver construye el observador.
func NewAutoReorderObserver(
	poRepo repository.PurchaseOrderRepository,
	mailer Mailer,
	log *logger.Logger,
	reorderPoint, targetStock, standardQty int,
) *AutoReorderObserver {
	return &AutoReorderObserver{
		poRepo:       poRepo,
		mailer:       mailer,
		log:          log,
		reorderPoint: reorderPoint,
		targetStock:  targetStock,
		standardQty:  standardQty,
	}
}

// Name implementa stock.Observer.
func (o *AutoReorderObserver) Name() string { return "AutoReorder" }

// ReorderQuantity calcula la cantidad a pedir: lo necesario para alcanzar el
// stock objetivo, con un mínimo de la cantidad estándar de reorden.
func (o *AutoReorderObserver) ReorderQuantity(currentQty int) int {
	needed := o.targetStock - currentQty
	if needed < o.standardQty {
		return o.standardQty
	}
	return needed
}

// OnStockChange implementa stock.Observer.
func (o *AutoReorderObserver) OnStockChange(ctx context.Context, event stock.ChangeEvent) error {
	oldQty, newQty := event.PreviousQuantity, event.NewQuantity

	// Cruce hacia abajo del punto de reorden: generar orden de compra.
	if oldQty >= o.reorderPoint && newQty < o.reorderPoint {
		return o.triggerReorder(ctx, event)
	}

	// Cruce inverso: solo informativo.
	if oldQty < o.reorderPoint && newQty >= o.reorderPoint {
		o.log.Info().
			Str("item_id", event.Item.ID).
			Str("item", event.Item.Name).
			Int("quantity", newQty).
			Int("reorder_point", o.reorderPoint).
			Msg("stock restaurado sobre el punto de reorden")
	}
	return nil
}

func (o *AutoReorderObserver) triggerReorder(ctx context.Context, event stock.ChangeEvent) error {
	qty := o.ReorderQuantity(event.NewQuantity)
	total := event.Item.Price.Mul(decimal.NewFromInt(int64(qty)))

	po := &entity.PurchaseOrder{
		ID:            uuid.New().String(),
		ItemID:        event.Item.ID,
		ItemName:      event.Item.Name,
		Quantity:      qty,
		UnitPrice:     event.Item.Price,
		TotalValue:    total,
		Status:        entity.PurchaseOrderPending,
		StockAtWindow: event.NewQuantity,
		CreatedAt:     time.Now(),
	}

	o.log.Warn().
		Str("item_id", po.ItemID).
		Str("item", po.ItemName).
		Int("current_stock", event.NewQuantity).
		Int("reorder_point", o.reorderPoint).
		Int("order_quantity", qty).
		Str("order_value", total.StringFixed(2)).
		Msg("reorden automático disparado: orden de compra generada")

	if err := o.poRepo.Create(ctx, po); err != nil {
		return fmt.Errorf("guardar orden de compra: %w", err)
	}

	subject := fmt.Sprintf("Reorden automático - %s", event.Item.Name)
	body := fmt.Sprintf(
		"Se generó la orden de compra %s por %d unidades de %s (valor $%s).\nStock actual: %d unidades, punto de reorden: %d.\nAcción requerida: revisar y aprobar la orden.",
		po.ID, qty, event.Item.Name, total.StringFixed(2),
		event.NewQuantity, o.reorderPoint,
	)
	if err := o.mailer.Send(mailPurchasing, subject, body); err != nil {
		return fmt.Errorf("notificar a compras: %w", err)
	}
	return nil
}
