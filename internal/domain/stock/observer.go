package stock

import "context"

// Observer reacciona a una transición de stock. Cada implementación decide
// internamente si sus condiciones aplican; el notificador las invoca todas.
//
// Un error devuelto (o un panic) se registra y se descarta: nunca llega al
// caller de la mutación ni detiene la entrega a los observadores restantes.
type Observer interface {
	// OnStockChange se invoca tras confirmar la mutación en la base de datos.
	OnStockChange(ctx context.Context, event ChangeEvent) error

	// Name nombre estable del observador para logs y diagnóstico.
	Name() string
}
