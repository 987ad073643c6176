package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-management-api/internal/application/dto"
	"github.com/jhoicas/stock-management-api/internal/application/usecase"
	"github.com/jhoicas/stock-management-api/internal/domain"
	"github.com/jhoicas/stock-management-api/internal/domain/entity"
)

// PurchaseOrderHandler consulta y aprobación de órdenes de compra.
type PurchaseOrderHandler struct {
	uc *usecase.PurchaseOrderUseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *usecase.PurchaseOrderUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PENDING | APPROVED"  default(PENDING)
// @Param        limit   query  int     false  "Límite"               default(20)
// @Param        offset  query  int     false  "Offset"               default(0)
// @Success      200     {array}  dto.PurchaseOrderResponse
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	status := c.Query("status", entity.PurchaseOrderPending)
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.ListByStatus(c.UserContext(), status, limit, offset)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser PENDING o APPROVED"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar orden de compra pendiente (solo admin)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/approve [post]
func (h *PurchaseOrderHandler) Approve(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.Approve(c.UserContext(), id, GetUserID(c))
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		case domain.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la orden ya no está pendiente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
