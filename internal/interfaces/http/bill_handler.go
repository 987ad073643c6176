package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-management-api/internal/application/billing"
	"github.com/jhoicas/stock-management-api/internal/application/dto"
	"github.com/jhoicas/stock-management-api/internal/domain"
)

// BillHandler maneja la facturación de ventas.
type BillHandler struct {
	uc *billing.CreateBillUseCase
}

// NewBillHandler construye el handler.
func NewBillHandler(uc *billing.CreateBillUseCase) *BillHandler {
	return &BillHandler{uc: uc}
}

// Create godoc
// @Summary      Crear factura de venta
// @Description  Descuenta el stock de todas las líneas en una sola transacción.
// @Tags         bills
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBillRequest  true  "Cliente y líneas"
// @Success      201   {object}  dto.BillResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bills [post]
func (h *BillHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la factura necesita al menos una línea"})
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "algún artículo de la factura no existe"})
		case domain.ErrInsufficientStock:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para alguna línea"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "líneas inválidas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura por ID
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.BillResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id} [get]
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.BillListResponse
// @Router       /api/bills [get]
func (h *BillHandler) List(c *fiber.Ctx) error {
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
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
