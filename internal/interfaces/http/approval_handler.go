package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/approval"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/dto"
)

// ApprovalHandler handles the approval request lifecycle.
type ApprovalHandler struct {
	engine *approval.Engine
}

func NewApprovalHandler(engine *approval.Engine) *ApprovalHandler {
	return &ApprovalHandler{engine: engine}
}

// Submit handles POST /api/approvals. Any authenticated user can submit; role
// gates apply at decision time.
func (h *ApprovalHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitApprovalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	req, err := h.engine.Submit(c.Context(), approval.SubmitInput{
		Type:        in.Type,
		SubjectID:   in.SubjectID,
		RequestedBy: GetUsername(c),
		Reason:      in.Reason,
		Payload:     in.Payload,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToApprovalResponse(req))
}

// Decide handles POST /api/approvals/:id/decision.
func (h *ApprovalHandler) Decide(c *fiber.Ctx) error {
	var in dto.DecideApprovalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	req, err := h.engine.Decide(c.Context(), c.Params("id"), GetActor(c), in.Decision, in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToApprovalResponse(req))
}

// Get handles GET /api/approvals/:id.
func (h *ApprovalHandler) Get(c *fiber.Ctx) error {
	req, err := h.engine.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToApprovalResponse(req))
}

// List handles GET /api/approvals?status=...
func (h *ApprovalHandler) List(c *fiber.Ctx) error {
	list, err := h.engine.List(c.Context(), c.Query("status"), c.QueryInt("limit", 100))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToApprovalResponses(list))
}
