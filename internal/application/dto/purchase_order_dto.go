package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderResponse orden de compra generada por el reorden automático.
type PurchaseOrderResponse struct {
	ID         string          `json:"id"`
	ItemID     string          `json:"item_id"`
	ItemName   string          `json:"item_name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalValue decimal.Decimal `json:"total_value"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	ApprovedAt *time.Time      `json:"approved_at,omitempty"`
	ApprovedBy string          `json:"approved_by,omitempty"`
}
