package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill factura de venta. Cada línea descuenta stock a través del notificador.
type Bill struct {
	ID           string
	CustomerName string
	Total        decimal.Decimal
	CreatedAt    time.Time
	CreatedBy    string
	Items        []BillItem
}

// BillItem línea de factura. UnitPrice se congela al precio del artículo al
// momento de la venta.
type BillItem struct {
	ID        string
	BillID    string
	ItemID    string
	ItemName  string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
