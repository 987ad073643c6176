package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillItemRequest línea de venta: artículo y cantidad (positiva).
type BillItemRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// CreateBillRequest entrada para crear una factura de venta.
type CreateBillRequest struct {
	CustomerName string            `json:"customer_name" validate:"omitempty,max=200"`
	Items        []BillItemRequest `json:"items" validate:"required,min=1"`
}

// BillItemResponse línea de factura en la respuesta.
type BillItemResponse struct {
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// BillResponse factura de venta.
type BillResponse struct {
	ID           string             `json:"id"`
	CustomerName string             `json:"customer_name,omitempty"`
	Total        decimal.Decimal    `json:"total"`
	CreatedAt    time.Time          `json:"created_at"`
	CreatedBy    string             `json:"created_by"`
	Items        []BillItemResponse `json:"items"`
}

// BillListResponse lista paginada de facturas.
type BillListResponse struct {
	Items []BillResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
