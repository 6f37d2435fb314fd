package repository

import (
	"context"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
)

// AuditRepository appends and reads the immutable audit log. Append is the
// only mutation; entries are never updated or deleted.
type AuditRepository interface {
	Append(ctx context.Context, e *entity.AuditLogEntry) error
	// Query filters by any combination of subject type, subject id and actor
	// (empty string = no filter), ordered by timestamp ascending.
	Query(ctx context.Context, subjectType, subjectID, actor string) ([]*entity.AuditLogEntry, error)
}
