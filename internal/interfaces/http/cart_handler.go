package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/cart"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/dto"
)

// CartHandler handles the cashier's cart. The owner is always the
// authenticated user; there is no way to touch another owner's lines.
type CartHandler struct {
	uc *cart.UseCase
}

func NewCartHandler(uc *cart.UseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Add handles POST /api/cart/items.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	res, err := h.uc.Add(c.Context(), GetUsername(c), in.ProductID, in.LocationID, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToCartItemResponse(res))
}

// Update handles PUT /api/cart/items/:id.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	res, err := h.uc.Update(c.Context(), GetUsername(c), c.Params("id"), in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToCartItemResponse(res))
}

// Remove handles DELETE /api/cart/items/:id.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.Context(), GetUsername(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Clear handles DELETE /api/cart?location_id=...
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.Context(), GetUsername(c), c.Query("location_id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List handles GET /api/cart?location_id=...
func (h *CartHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), GetUsername(c), c.Query("location_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToCartItemResponses(items))
}
