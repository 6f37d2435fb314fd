package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/audit"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/dto"
)

// AuditHandler exposes the read side of the audit log.
type AuditHandler struct {
	uc *audit.UseCase
}

func NewAuditHandler(uc *audit.UseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// Trail handles GET /api/audit-logs?subject_type=...&subject_id=...&actor=...
func (h *AuditHandler) Trail(c *fiber.Ctx) error {
	list, err := h.uc.Trail(c.Context(), c.Query("subject_type"), c.Query("subject_id"), c.Query("actor"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToAuditEntryResponses(list))
}
