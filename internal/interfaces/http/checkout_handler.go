package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/checkout"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/dto"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

// CheckoutHandler handles checkout and transaction reads.
type CheckoutHandler struct {
	uc     *checkout.UseCase
	txRepo repository.TransactionRepository
}

func NewCheckoutHandler(uc *checkout.UseCase, txRepo repository.TransactionRepository) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, txRepo: txRepo}
}

// Checkout handles POST /api/checkout. Commits the caller's whole cart at the
// location, all lines or none.
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	tx, err := h.uc.Checkout(c.Context(), checkout.Input{
		Owner:        GetUsername(c),
		LocationID:   in.LocationID,
		Discount:     in.Discount,
		CashReceived: in.CashReceived,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToTransactionResponse(tx))
}

// GetTransaction handles GET /api/transactions/:id.
func (h *CheckoutHandler) GetTransaction(c *fiber.Ctx) error {
	tx, err := h.txRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if tx == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(dto.ToTransactionResponse(tx))
}

// ListTransactions handles GET /api/transactions?location_id=...
func (h *CheckoutHandler) ListTransactions(c *fiber.Ctx) error {
	locationID := c.Query("location_id")
	if locationID == "" {
		return respondError(c, domain.ErrInvalidInput)
	}
	list, err := h.txRepo.ListByLocation(c.Context(), locationID, c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, tx := range list {
		out = append(out, dto.ToTransactionResponse(tx))
	}
	return c.JSON(out)
}
