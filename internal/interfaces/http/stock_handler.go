package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/dto"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/stock"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain"
)

// StockHandler handles stock input and entry decisions.
type StockHandler struct {
	uc *stock.UseCase
}

func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Input handles POST /api/stock/entries. The entry lands pending and counts
// toward nothing until approved.
func (h *StockHandler) Input(c *fiber.Ctx) error {
	var in dto.StockInputRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	entry, err := h.uc.InputEntry(c.Context(), in.ProductID, in.LocationID, in.Quantity, GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToStockEntryResponse(entry))
}

// Decide handles POST /api/stock/entries/:id/decision.
func (h *StockHandler) Decide(c *fiber.Ctx) error {
	var in dto.DecideStockEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	var approve bool
	switch in.Decision {
	case "approve":
		approve = true
	case "reject":
		approve = false
	default:
		return respondError(c, domain.ErrInvalidInput)
	}
	entry, err := h.uc.DecideEntry(c.Context(), c.Params("id"), GetActor(c), approve, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToStockEntryResponse(entry))
}

// List handles GET /api/stock/entries?product_id=...&location_id=...&status=...
func (h *StockHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListEntries(c.Context(), c.Query("product_id"), c.Query("location_id"), c.Query("status"), c.QueryInt("limit", 100))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToStockEntryResponses(list))
}
