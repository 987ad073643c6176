package http

import (
	"github.com/gofiber/fiber/v2"

	appstock "github.com/jhoicas/stock-management-api/internal/application/stock"
)

// DashboardHandler expone los contadores agregados del dashboard de stock.
type DashboardHandler struct {
	dashboard *appstock.DashboardObserver
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(dashboard *appstock.DashboardObserver) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stock godoc
// @Summary      Contadores del dashboard de stock
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStockDTO
// @Router       /api/dashboard/stock [get]
func (h *DashboardHandler) Stock(c *fiber.Ctx) error {
	return c.JSON(h.dashboard.Snapshot())
}
