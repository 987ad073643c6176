package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-management-api/internal/application/dto"
	"github.com/jhoicas/stock-management-api/internal/application/usecase"
	"github.com/jhoicas/stock-management-api/internal/domain"
)

// StockHandler maneja los ajustes de cantidad. Es la única puerta HTTP de
// mutación de stock: todo pasa por el notificador.
type StockHandler struct {
	uc *usecase.ItemUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.ItemUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Adjust godoc
// @Summary      Ajustar cantidad de un artículo
// @Description  Delta con signo: positivo = entrada, negativo = salida.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.AdjustStockRequest  true  "Delta y motivo"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/stock [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Delta == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "delta no puede ser cero"})
	}
	out, err := h.uc.AdjustStock(c.UserContext(), id, in.Delta, GetUserID(c))
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		case domain.ErrInsufficientStock:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para la salida solicitada"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
