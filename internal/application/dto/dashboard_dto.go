package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStockDTO snapshot de los contadores del dashboard de stock.
type DashboardStockDTO struct {
	LowStockItems   int             `json:"low_stock_items"`
	OutOfStockItems int             `json:"out_of_stock_items"`
	InventoryValue  decimal.Decimal `json:"inventory_value"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// StockUpdateMessage payload publicado al canal en tiempo real tras cada cambio.
type StockUpdateMessage struct {
	ItemID          string          `json:"item_id"`
	ItemName        string          `json:"item_name"`
	NewQuantity     int             `json:"new_quantity"`
	LowStockItems   int             `json:"low_stock_items"`
	OutOfStockItems int             `json:"out_of_stock_items"`
	InventoryValue  decimal.Decimal `json:"inventory_value"`
}
