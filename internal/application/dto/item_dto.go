package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un artículo.
type CreateItemRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	SKU      string          `json:"sku" validate:"omitempty,max=50"`
	Category string          `json:"category" validate:"omitempty,max=100"`
	Quantity int             `json:"quantity" validate:"min=0"`
	Price    decimal.Decimal `json:"price"`
}

// UpdateItemRequest entrada para actualizar un artículo.
// Sin Quantity: los cambios de cantidad pasan por el endpoint de ajuste de stock.
type UpdateItemRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU      *string          `json:"sku" validate:"omitempty,max=50"`
	Category *string          `json:"category" validate:"omitempty,max=100"`
	Price    *decimal.Decimal `json:"price"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	Category  string          `json:"category,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
