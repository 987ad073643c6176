package stock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-management-api/internal/application/dto"
	"github.com/jhoicas/stock-management-api/internal/domain/stock"
	"github.com/jhoicas/stock-management-api/pkg/logger"
)

// DashboardObserver mantiene los contadores agregados del dashboard de stock
// y publica cada actualización al canal en tiempo real.
//
// Los contadores son estado propio de esta instancia (no globales) y están
// protegidos con mutex: el fan-out puede llegar desde requests concurrentes.
type DashboardObserver struct {
	publisher    RealtimePublisher
	log          *logger.Logger
	topic        string
	lowThreshold int

	mu             sync.Mutex
	lowStockItems  int
	outOfStock     int
	inventoryValue decimal.Decimal
	updatedAt      time.Time
}

// NewDashboardObserver construye el observador con contadores en cero.
func NewDashboardObserver(publisher RealtimePublisher, log *logger.Logger, topic string, lowThreshold int) *DashboardObserver {
	return &DashboardObserver{
		publisher:      publisher,
		log:            log,
		topic:          topic,
		lowThreshold:   lowThreshold,
		inventoryValue: decimal.Zero,
	}
}

// Name implementa stock.Observer.
func (o *DashboardObserver) Name() string { return "DashboardUpdate" }

// OnStockChange implementa stock.Observer: ajusta los contadores según el
// cruce de umbral y publica el snapshot resultante.
func (o *DashboardObserver) OnStockChange(ctx context.Context, event stock.ChangeEvent) error {
	oldQty, newQty := event.PreviousQuantity, event.NewQuantity

	o.mu.Lock()
	// Conteo de artículos bajo el umbral (cruces, no estados)
	if oldQty >= o.lowThreshold && newQty < o.lowThreshold && newQty > 0 {
		o.lowStockItems++
	} else if oldQty < o.lowThreshold && newQty >= o.lowThreshold {
		if o.lowStockItems > 0 {
			o.lowStockItems--
		}
	}
	// Conteo de agotados
	if oldQty > 0 && newQty == 0 {
		o.outOfStock++
	} else if oldQty == 0 && newQty > 0 {
		if o.outOfStock > 0 {
			o.outOfStock--
		}
	}
	// Valor del inventario: precio × (new - old)
	valueDelta := event.Item.Price.Mul(decimal.NewFromInt(int64(newQty - oldQty)))
	o.inventoryValue = o.inventoryValue.Add(valueDelta)
	o.updatedAt = time.Now()

	msg := dto.StockUpdateMessage{
		ItemID:          event.Item.ID,
		ItemName:        event.Item.Name,
		NewQuantity:     newQty,
		LowStockItems:   o.lowStockItems,
		OutOfStockItems: o.outOfStock,
		InventoryValue:  o.inventoryValue,
	}
	o.mu.Unlock()

	o.log.Debug().
		Int("low_stock_items", msg.LowStockItems).
		Int("out_of_stock_items", msg.OutOfStockItems).
		Str("inventory_value", msg.InventoryValue.StringFixed(2)).
		Msg("dashboard actualizado")

	if err := o.publisher.Publish(ctx, o.topic, msg); err != nil {
		return fmt.Errorf("publicar actualización de dashboard: %w", err)
	}
	return nil
}

// Snapshot devuelve el estado actual de los contadores.
func (o *DashboardObserver) Snapshot() dto.DashboardStockDTO {
	o.mu.Lock()
	defer o.mu.Unlock()
	return dto.DashboardStockDTO{
		LowStockItems:   o.lowStockItems,
		OutOfStockItems: o.outOfStock,
		InventoryValue:  o.inventoryValue,
		UpdatedAt:       o.updatedAt,
	}
}
