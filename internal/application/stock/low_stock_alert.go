package stock

import (
	"context"

	"github.com/jhoicas/stock-management-api/internal/domain/stock"
	"github.com/jhoicas/stock-management-api/pkg/logger"
)

// Clasificaciones de una transición para la alerta de stock bajo.
// Mutuamente excluyentes: cada una verifica un cruce de frontera distinto.
const (
	AlertOutOfStock  = "OUT_OF_STOCK"
	AlertCritical    = "CRITICAL_STOCK"
	AlertLow         = "LOW_STOCK"
	AlertReplenished = "REPLENISHED"
)

// LowStockAlertObserver clasifica cada transición de stock y emite a lo sumo
// una alerta por evento, con prioridad agotado > crítico > bajo > repuesto.
type LowStockAlertObserver struct {
	log          *logger.Logger
	lowThreshold int
	critical     int
}

// NewLowStockAlertObserver construye el observador con los umbrales dados.
func NewLowStockAlertObserver(log *logger.Logger, lowThreshold, criticalThreshold int) *LowStockAlertObserver {
	return &LowStockAlertObserver{
		log:          log,
		lowThreshold: lowThreshold,
		critical:     criticalThreshold,
	}
}

// Name implementa stock.Observer.
func (o *LowStockAlertObserver) Name() string { return "LowStockAlert" }

// Classify devuelve la clasificación de la transición, o "" si ninguna aplica.
func (o *LowStockAlertObserver) Classify(oldQty, newQty int) string {
	switch {
	case newQty == 0 && oldQty > 0:
		return AlertOutOfStock
	case oldQty >= o.critical && newQty < o.critical && newQty > 0:
		return AlertCritical
	case oldQty >= o.lowThreshold && newQty < o.lowThreshold && newQty > 0:
		return AlertLow
	case oldQty < o.lowThreshold && newQty >= o.lowThreshold:
		return AlertReplenished
	}
	return ""
}

// OnStockChange implementa stock.Observer.
func (o *LowStockAlertObserver) OnStockChange(_ context.Context, event stock.ChangeEvent) error {
	item := event.Item
	switch o.Classify(event.PreviousQuantity, event.NewQuantity) {
	case AlertOutOfStock:
		o.log.Error().
			Str("alert", AlertOutOfStock).
			Str("item_id", item.ID).
			Str("item", item.Name).
			Msg("artículo agotado: reposición urgente requerida")
	case AlertCritical:
		o.log.Warn().
			Str("alert", AlertCritical).
			Str("item_id", item.ID).
			Str("item", item.Name).
			Int("quantity", event.NewQuantity).
			Int("threshold", o.critical).
			Msg("nivel de stock crítico")
	case AlertLow:
		o.log.Warn().
			Str("alert", AlertLow).
			Str("item_id", item.ID).
			Str("item", item.Name).
			Int("quantity", event.NewQuantity).
			Int("threshold", o.lowThreshold).
			Msg("stock bajo: considerar reposición")
	case AlertReplenished:
		o.log.Info().
			Str("alert", AlertReplenished).
			Str("item_id", item.ID).
			Str("item", item.Name).
			Int("old", event.PreviousQuantity).
			Int("new", event.NewQuantity).
			Msg("stock repuesto sobre el umbral")
	}
	return nil
}
