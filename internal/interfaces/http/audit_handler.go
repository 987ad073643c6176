package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-management-api/internal/application/dto"
	"github.com/jhoicas/stock-management-api/internal/application/usecase"
)

// AuditHandler consultas read-only del log de auditoría de inventario.
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// ListRecent godoc
// @Summary      Últimos movimientos de stock
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        limit     query  int     false  "Límite"  default(50)
// @Param        severity  query  string  false  "CRITICAL | HIGH | MEDIUM | NORMAL"
// @Success      200       {array}  dto.AuditLogResponse
// @Router       /api/audit [get]
func (h *AuditHandler) ListRecent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if severity := c.Query("severity"); severity != "" {
		out, err := h.uc.ListBySeverity(c.UserContext(), severity, limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		return c.JSON(out)
	}
	out, err := h.uc.ListRecent(c.UserContext(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListByItem godoc
// @Summary      Historial de movimientos de un artículo
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del artículo"
// @Param        limit  query  int     false  "Límite"  default(50)
// @Success      200    {array}  dto.AuditLogResponse
// @Router       /api/items/{id}/audit [get]
func (h *AuditHandler) ListByItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ListByItem(c.UserContext(), id, c.QueryInt("limit", 50))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
