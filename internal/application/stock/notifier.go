// Package stock implementa el notificador de cambios de stock: el único punto
// de mutación de cantidades y el fan-out síncrono a los observadores
// registrados (alertas, correo, auditoría, dashboard, reorden automático).
package stock

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/stock-management-api/internal/domain"
	"github.com/jhoicas/stock-management-api/internal/domain/entity"
	"github.com/jhoicas/stock-management-api/internal/domain/stock"
	"github.com/jhoicas/stock-management-api/pkg/logger"
)

// Adjustment un ajuste de cantidad para un artículo.
// Delta con signo: positivo siempre significa entrada (convención normalizada).
type Adjustment struct {
	ItemID string
	Delta  int
}

// Notifier es el sujeto del fan-out: dueño del registro de observadores y de
// la mutación autoritativa de cantidades.
//
// La mutación se confirma en la BD antes de notificar; un fallo de observador
// se registra y nunca revierte el cambio ni detiene la entrega a los demás.
type Notifier struct {
	txRunner TxRunner
	log      *logger.Logger

	mu        sync.Mutex
	observers []stock.Observer
}

// NewNotifier construye el notificador. Los observadores se registran en el
// arranque con Register.
func NewNotifier(txRunner TxRunner, log *logger.Logger) *Notifier {
	return &Notifier{txRunner: txRunner, log: log}
}

// Register añade un observador si no está ya registrado (por identidad).
// Idempotente: registrar dos veces la misma instancia no tiene efecto extra.
func (n *Notifier) Register(obs stock.Observer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, o := range n.observers {
		if o == obs {
			return
		}
	}
	n.observers = append(n.observers, obs)
	n.log.Info().Str("observer", obs.Name()).Msg("observador registrado")
}

// Unregister quita un observador; no-op si no estaba registrado.
func (n *Notifier) Unregister(obs stock.Observer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, o := range n.observers {
		if o == obs {
			n.observers = append(n.observers[:i], n.observers[i+1:]...)
			n.log.Info().Str("observer", obs.Name()).Msg("observador eliminado")
			return
		}
	}
}

// snapshotObservers devuelve una copia del registro para iterar sin lock.
func (n *Notifier) snapshotObservers() []stock.Observer {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]stock.Observer, len(n.observers))
	copy(out, n.observers)
	return out
}

// ApplyDelta aplica un ajuste de cantidad a un artículo y notifica a los
// observadores. Es el único punto de entrada de mutación de cantidades.
//
// Errores: domain.ErrNotFound si el artículo no existe;
// domain.ErrInsufficientStock si el ajuste dejaría la cantidad negativa.
// En ambos casos no hay mutación ni notificación.
func (n *Notifier) ApplyDelta(ctx context.Context, itemID string, delta int, actor string) (*entity.Item, error) {
	items, err := n.ApplyDeltas(ctx, []Adjustment{{ItemID: itemID, Delta: delta}}, actor)
	if err != nil {
		return nil, err
	}
	return items[0], nil
}

// ApplyDeltas aplica varios ajustes en una sola transacción (facturas con
// varias líneas). Las filas se bloquean con SELECT FOR UPDATE; si algún ajuste
// falla, ninguno se aplica. Las notificaciones se emiten por artículo, en el
// orden de entrada, después del Commit.
func (n *Notifier) ApplyDeltas(ctx context.Context, adjustments []Adjustment, actor string) ([]*entity.Item, error) {
	return n.ApplyDeltasWithin(ctx, adjustments, actor, nil)
}

// ApplyDeltasWithin aplica los ajustes y, dentro de la misma transacción,
// ejecuta within con los repositorios atados a la tx y los artículos ya
// actualizados. Si within falla, los ajustes se revierten y no se notifica
// nada. Lo usa facturación para persistir la factura junto al descuento de
// stock.
func (n *Notifier) ApplyDeltasWithin(ctx context.Context, adjustments []Adjustment, actor string, within func(repos TxRepos, updated []*entity.Item) error) ([]*entity.Item, error) {
	if len(adjustments) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if actor == "" {
		actor = "system"
	}

	events := make([]stock.ChangeEvent, 0, len(adjustments))
	updated := make([]*entity.Item, 0, len(adjustments))

	err := n.txRunner.Run(ctx, func(repos TxRepos) error {
		for _, adj := range adjustments {
			item, err := repos.Items.GetForUpdate(ctx, adj.ItemID)
			if err != nil {
				return fmt.Errorf("bloquear artículo %s: %w", adj.ItemID, err)
			}
			if item == nil {
				return domain.ErrNotFound
			}
			oldQty := item.Quantity
			newQty := oldQty + adj.Delta
			if newQty < 0 {
				return domain.ErrInsufficientStock
			}
			if err := repos.Items.UpdateQuantity(ctx, item.ID, newQty); err != nil {
				return fmt.Errorf("actualizar cantidad %s: %w", item.ID, err)
			}
			item.Quantity = newQty
			events = append(events, stock.ChangeEvent{
				Item:             item.Snapshot(),
				PreviousQuantity: oldQty,
				NewQuantity:      newQty,
				TriggeredBy:      actor,
			})
			updated = append(updated, item)
		}
		if within != nil {
			return within(repos, updated)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Mutación confirmada: el fan-out ya no puede revertirla.
	for _, ev := range events {
		n.NotifyAll(ctx, ev)
	}
	return updated, nil
}

// NotifyAll invoca a cada observador registrado, en orden de registro, con el
// mismo evento. Cada invocación está aislada: un error (o panic) se registra y
// no impide la entrega a los observadores restantes.
func (n *Notifier) NotifyAll(ctx context.Context, event stock.ChangeEvent) {
	observers := n.snapshotObservers()
	n.log.Debug().
		Int("observers", len(observers)).
		Str("item_id", event.Item.ID).
		Int("old", event.PreviousQuantity).
		Int("new", event.NewQuantity).
		Msg("notificando cambio de stock")

	for _, obs := range observers {
		n.invoke(ctx, obs, event)
	}
}

// invoke ejecuta un observador capturando errores y panics.
func (n *Notifier) invoke(ctx context.Context, obs stock.Observer, event stock.ChangeEvent) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Error().
				Str("observer", obs.Name()).
				Str("item_id", event.Item.ID).
				Interface("panic", r).
				Msg("panic en observador de stock")
		}
	}()
	if err := obs.OnStockChange(ctx, event); err != nil {
		n.log.Error().
			Err(err).
			Str("observer", obs.Name()).
			Str("item_id", event.Item.ID).
			Msg("error en observador de stock")
	}
}
