package audit

import (
	"context"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

// UseCase is the read side of the audit log. There is no write side here:
// entries are appended inside the approval and stock transactions.
type UseCase struct {
	auditRepo repository.AuditRepository
}

func NewUseCase(auditRepo repository.AuditRepository) *UseCase {
	return &UseCase{auditRepo: auditRepo}
}

// Trail returns entries matching any combination of subject type, subject id
// and actor, oldest first.
func (uc *UseCase) Trail(ctx context.Context, subjectType, subjectID, actor string) ([]*entity.AuditLogEntry, error) {
	return uc.auditRepo.Query(ctx, subjectType, subjectID, actor)
}
