package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rapidxcel-logistics/internal/application/dto"
	"github.com/jhoicas/rapidxcel-logistics/internal/application/inventory"
	"github.com/jhoicas/rapidxcel-logistics/pkg/logger"
)

// InventoryHandler endpoints de inventario.
type InventoryHandler struct {
	uc  *inventory.StockUseCase
	log *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockUseCase, log *logger.Logger) *InventoryHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &InventoryHandler{uc: uc, log: log.Named("inventory")}
}

// ListStocks godoc
// @Summary      Inventario central (solo Inventory Manager)
// @Tags         inventory
// @Produce      json
// @Success      200   {array}   dto.StockResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /inventory/stocks [get]
func (h *InventoryHandler) ListStocks(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		h.log.Error().Err(err).Str("user_id", GetUserID(c)).Msg("listar stock")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
