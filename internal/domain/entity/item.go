package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del inventario.
// Quantity nunca es negativa; toda mutación de cantidad pasa por el notificador
// de stock (no se modifica directamente vía Update).
type Item struct {
	ID        string
	Name      string
	SKU       string // opcional, único si está presente
	Category  string
	Quantity  int
	Price     decimal.Decimal // precio unitario de venta
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot devuelve una copia por valor del artículo. Los observadores reciben
// snapshots, nunca un handle mutable.
func (i *Item) Snapshot() Item {
	return *i
}
