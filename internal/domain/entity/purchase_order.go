package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra generada por el reorden automático.
const (
	PurchaseOrderPending  = "PENDING"
	PurchaseOrderApproved = "APPROVED"
)

// PurchaseOrder orden de compra generada cuando el stock cruza el punto de reorden.
// Queda en PENDING hasta que compras la apruebe.
type PurchaseOrder struct {
	ID            string
	ItemID        string
	ItemName      string
	Quantity      int
	UnitPrice     decimal.Decimal
	TotalValue    decimal.Decimal
	Status        string // PENDING | APPROVED
	StockAtWindow int    // cantidad al momento del disparo
	CreatedAt     time.Time
	ApprovedAt    *time.Time
	ApprovedBy    string
}
