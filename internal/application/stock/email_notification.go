package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/stock-management-api/internal/domain/stock"
	"github.com/jhoicas/stock-management-api/pkg/logger"
)

// Destinatarios de las notificaciones por correo.
const (
	mailInventory  = "inventario@empresa.com"
	mailPurchasing = "compras@empresa.com"
	mailWarehouse  = "bodega@empresa.com"
)

// EmailNotificationObserver envía correos ante cambios de stock:
//   - cambio significativo (|delta| >= umbral)
//   - agotamiento (cantidad llega a 0)
//   - entrada grande (pedido recibido)
//
// Las tres condiciones son independientes; un mismo evento puede disparar más de una.
type EmailNotificationObserver struct {
	mailer            Mailer
	log               *logger.Logger
	significantChange int
	largeIncrease     int
}

// NewEmailNotificationObserver construye el observador.
func NewEmailNotificationObserver(mailer Mailer, log *logger.Logger, significantChange, largeIncrease int) *EmailNotificationObserver {
	return &EmailNotificationObserver{
		mailer:            mailer,
		log:               log,
		significantChange: significantChange,
		largeIncrease:     largeIncrease,
	}
}

// Name implementa stock.Observer.
func (o *EmailNotificationObserver) Name() string { return "EmailNotification" }

// OnStockChange implementa stock.Observer.
func (o *EmailNotificationObserver) OnStockChange(_ context.Context, event stock.ChangeEvent) error {
	var errs []error

	if event.AbsDelta() >= o.significantChange {
		if err := o.sendChangeNotice(event); err != nil {
			errs = append(errs, fmt.Errorf("aviso de cambio: %w", err))
		}
	}
	if event.IsDepleted() {
		if err := o.sendDepletionNotice(event); err != nil {
			errs = append(errs, fmt.Errorf("aviso de agotamiento: %w", err))
		}
	}
	if event.Delta() >= o.largeIncrease {
		if err := o.sendShipmentNotice(event); err != nil {
			errs = append(errs, fmt.Errorf("aviso de pedido recibido: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (o *EmailNotificationObserver) sendChangeNotice(event stock.ChangeEvent) error {
	direction := "disminuyó"
	if event.Direction() == stock.Increase {
		direction = "aumentó"
	}
	subject := fmt.Sprintf("Actualización de stock - %s", event.Item.Name)
	body := fmt.Sprintf(
		"El stock de %s (ID %s) %s de %d a %d unidades.\nCambio: %+d unidades.\nImpacto en valor: $%s.",
		event.Item.Name, event.Item.ID, direction,
		event.PreviousQuantity, event.NewQuantity,
		event.Delta(), event.ValueImpact().StringFixed(2),
	)
	return o.mailer.Send(mailInventory, subject, body)
}

func (o *EmailNotificationObserver) sendDepletionNotice(event stock.ChangeEvent) error {
	subject := fmt.Sprintf("URGENTE - %s AGOTADO", event.Item.Name)
	body := fmt.Sprintf(
		"El artículo %s (ID %s) se quedó sin stock. Se requiere reposición inmediata.",
		event.Item.Name, event.Item.ID,
	)
	return o.mailer.Send(mailPurchasing, subject, body)
}

func (o *EmailNotificationObserver) sendShipmentNotice(event stock.ChangeEvent) error {
	subject := fmt.Sprintf("Pedido recibido - %s", event.Item.Name)
	body := fmt.Sprintf(
		"Se recibió una entrada de %d unidades de %s. Stock actual: %d unidades.",
		event.Delta(), event.Item.Name, event.NewQuantity,
	)
	return o.mailer.Send(mailWarehouse, subject, body)
}
