package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implements AuditRepository over PostgreSQL (usable with pool or
// tx). Append-only: there is no update or delete statement here on purpose.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository builds the audit log adapter. Pass pool or tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Append inserts one entry. ID and timestamp are assigned here when unset.
func (r *AuditRepo) Append(ctx context.Context, e *entity.AuditLogEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO audit_logs (id, subject_type, subject_id, action, actor, notes, ts)
		VALUES ($1, $2, $3, $4, $5, $6, now())`
	_, err := r.q.Exec(ctx, query, e.ID, e.SubjectType, e.SubjectID, e.Action, e.Actor, e.Notes)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Query filters by subject type, subject id and actor (empty string = no
// filter), oldest first.
func (r *AuditRepo) Query(ctx context.Context, subjectType, subjectID, actor string) ([]*entity.AuditLogEntry, error) {
	query := `
		SELECT id, subject_type, subject_id, action, actor, notes, ts
		FROM audit_logs
		WHERE ($1 = '' OR subject_type = $1)
		  AND ($2 = '' OR subject_id = $2)
		  AND ($3 = '' OR actor = $3)
		ORDER BY ts`
	rows, err := r.q.Query(ctx, query, subjectType, subjectID, actor)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLogEntry
	for rows.Next() {
		var e entity.AuditLogEntry
		if err := rows.Scan(&e.ID, &e.SubjectType, &e.SubjectID, &e.Action, &e.Actor, &e.Notes, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
