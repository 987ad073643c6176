package dto

// AdjustStockRequest entrada para ajustar la cantidad de un artículo.
// Delta con signo: positivo = entrada (reposición), negativo = salida (venta/consumo).
type AdjustStockRequest struct {
	Delta  int    `json:"delta" validate:"required"`
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

// AdjustStockResponse salida del ajuste: el artículo actualizado.
type AdjustStockResponse struct {
	Item             ItemResponse `json:"item"`
	PreviousQuantity int          `json:"previous_quantity"`
}
