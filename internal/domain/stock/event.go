// Package stock define el evento de cambio de stock y el contrato de los
// observadores. El fan-out en sí vive en la capa de aplicación.
package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-management-api/internal/domain/entity"
)

// Direction sentido de un cambio de cantidad.
type Direction string

const (
	Increase Direction = "INCREASE"
	Decrease Direction = "DECREASE"
)

// ChangeEvent describe una única transición de cantidad de un artículo.
// Item es un snapshot por valor: los observadores no reciben handles mutables.
// PreviousQuantity y NewQuantity son los valores inmediatamente antes y después
// de una mutación atómica, nunca un agregado de varios pasos.
type ChangeEvent struct {
	Item             entity.Item
	PreviousQuantity int
	NewQuantity      int
	TriggeredBy      string // usuario que originó el cambio, o "system"
}

// Delta devuelve el cambio con signo (new - previous). Positivo = entrada.
func (e ChangeEvent) Delta() int {
	return e.NewQuantity - e.PreviousQuantity
}

// Direction devuelve el sentido del cambio.
func (e ChangeEvent) Direction() Direction {
	if e.Delta() > 0 {
		return Increase
	}
	return Decrease
}

// IsDepleted indica si el artículo quedó agotado.
func (e ChangeEvent) IsDepleted() bool {
	return e.NewQuantity == 0
}

// AbsDelta devuelve la magnitud del cambio.
func (e ChangeEvent) AbsDelta() int {
	d := e.Delta()
	if d < 0 {
		return -d
	}
	return d
}

// ValueImpact devuelve el impacto monetario del cambio: precio × |delta|.
func (e ChangeEvent) ValueImpact() decimal.Decimal {
	return e.Item.Price.Mul(decimal.NewFromInt(int64(e.AbsDelta())))
}
