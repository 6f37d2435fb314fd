package repository

import (
	"context"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
)

// ApprovalRepository is the port for approval requests. Status writes happen
// inside the same transaction as the execution of the proposed change.
type ApprovalRepository interface {
	Create(ctx context.Context, r *entity.ApprovalRequest) error
	GetByID(ctx context.Context, id string) (*entity.ApprovalRequest, error)
	// GetByIDForUpdate locks the request row so two deciders serialize.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.ApprovalRequest, error)
	// FindPendingBySubject returns an existing pending request for the same
	// variant and subject, nil when there is none. Backs the duplicate guard.
	FindPendingBySubject(ctx context.Context, requestType, subjectID string) (*entity.ApprovalRequest, error)
	SetApproved(ctx context.Context, id, actor string) error
	SetRejected(ctx context.Context, id, actor, reason string) error
	List(ctx context.Context, status string, limit int) ([]*entity.ApprovalRequest, error)

	// SumPendingWithdrawals sums quantities of pending subtract adjustments for
	// the pair; the availability calculator subtracts it from approved stock.
	SumPendingWithdrawals(ctx context.Context, productID, locationID string) (int64, error)
}
