package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

var _ repository.ApprovalRepository = (*ApprovalRepo)(nil)

// ApprovalRepo implements ApprovalRepository over PostgreSQL (usable with pool
// or tx).
type ApprovalRepo struct {
	q Querier
}

// NewApprovalRepository builds the approval request adapter. Pass pool or tx (Querier).
func NewApprovalRepository(q Querier) *ApprovalRepo {
	return &ApprovalRepo{q: q}
}

const approvalColumns = `id, type, subject_id, requested_by, reason, payload, status, approved_by, approved_at, rejected_by, rejected_at, rejection_reason, product_id, location_id, created_at, updated_at`

func scanApproval(row pgx.Row) (*entity.ApprovalRequest, error) {
	var a entity.ApprovalRequest
	err := row.Scan(
		&a.ID, &a.Type, &a.SubjectID, &a.RequestedBy, &a.Reason, &a.Payload, &a.Status,
		&a.ApprovedBy, &a.ApprovedAt, &a.RejectedBy, &a.RejectedAt, &a.RejectionReason,
		&a.ProductID, &a.LocationID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a pending request.
func (r *ApprovalRepo) Create(ctx context.Context, a *entity.ApprovalRequest) error {
	query := `
		INSERT INTO approval_requests (id, type, subject_id, requested_by, reason, payload, status, product_id, location_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Type, a.SubjectID, a.RequestedBy, a.Reason, a.Payload, a.Status, a.ProductID, a.LocationID,
	)
	if err != nil {
		return fmt.Errorf("insert approval request: %w", err)
	}
	return nil
}

// GetByID returns one request, nil when absent.
func (r *ApprovalRepo) GetByID(ctx context.Context, id string) (*entity.ApprovalRequest, error) {
	query := `SELECT ` + approvalColumns + ` FROM approval_requests WHERE id = $1`
	a, err := scanApproval(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get approval request: %w", err)
	}
	return a, nil
}

// GetByIDForUpdate locks the request row so two deciders serialize.
func (r *ApprovalRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.ApprovalRequest, error) {
	query := `SELECT ` + approvalColumns + ` FROM approval_requests WHERE id = $1 FOR UPDATE`
	a, err := scanApproval(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get approval request for update: %w", err)
	}
	return a, nil
}

// FindPendingBySubject returns an existing pending request for the same
// variant and subject, nil when there is none.
func (r *ApprovalRepo) FindPendingBySubject(ctx context.Context, requestType, subjectID string) (*entity.ApprovalRequest, error) {
	query := `
		SELECT ` + approvalColumns + `
		FROM approval_requests
		WHERE type = $1 AND subject_id = $2 AND status = 'pending'
		LIMIT 1`
	a, err := scanApproval(r.q.QueryRow(ctx, query, requestType, subjectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find pending request: %w", err)
	}
	return a, nil
}

// SetApproved transitions a request to approved.
func (r *ApprovalRepo) SetApproved(ctx context.Context, id, actor string) error {
	query := `
		UPDATE approval_requests
		SET status = 'approved', approved_by = $2, approved_at = now(), updated_at = now()
		WHERE id = $1 AND status = 'pending'`
	cmd, err := r.q.Exec(ctx, query, id, actor)
	if err != nil {
		return fmt.Errorf("approve request: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// SetRejected transitions a request to rejected with the decider's reason.
func (r *ApprovalRepo) SetRejected(ctx context.Context, id, actor, reason string) error {
	query := `
		UPDATE approval_requests
		SET status = 'rejected', rejected_by = $2, rejected_at = now(), rejection_reason = $3, updated_at = now()
		WHERE id = $1 AND status = 'pending'`
	cmd, err := r.q.Exec(ctx, query, id, actor, reason)
	if err != nil {
		return fmt.Errorf("reject request: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// List returns requests, optionally filtered by status, newest first.
func (r *ApprovalRepo) List(ctx context.Context, status string, limit int) ([]*entity.ApprovalRequest, error) {
	query := `
		SELECT ` + approvalColumns + `
		FROM approval_requests
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list approval requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.ApprovalRequest
	for rows.Next() {
		var a entity.ApprovalRequest
		if err := rows.Scan(&a.ID, &a.Type, &a.SubjectID, &a.RequestedBy, &a.Reason, &a.Payload, &a.Status,
			&a.ApprovedBy, &a.ApprovedAt, &a.RejectedBy, &a.RejectedAt, &a.RejectionReason,
			&a.ProductID, &a.LocationID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan approval request: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// SumPendingWithdrawals sums the quantity each pending adjustment would take
// off the shelf: the full payload quantity for subtracts, and for sets the
// write-down against the current entry quantity (a set above it withdraws
// nothing). Stock about to be corrected downward must not be sellable.
func (r *ApprovalRepo) SumPendingWithdrawals(ctx context.Context, productID, locationID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE ar.payload->>'type'
				WHEN 'subtract' THEN (ar.payload->>'quantity')::bigint
				WHEN 'set' THEN GREATEST(se.quantity - (ar.payload->>'quantity')::bigint, 0)
				ELSE 0
			END), 0)
		FROM approval_requests ar
		JOIN stock_entries se ON se.id::text = ar.payload->>'entry_id'
		WHERE ar.type = 'stock_adjustment' AND ar.status = 'pending'
		  AND ar.product_id = $1 AND ar.location_id = $2`
	var sum int64
	if err := r.q.QueryRow(ctx, query, productID, locationID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum pending withdrawals: %w", err)
	}
	return sum, nil
}
