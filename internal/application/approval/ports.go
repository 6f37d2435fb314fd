package approval

import (
	"context"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

// TxRunner executes fn inside one database transaction with repositories
// bound to it. The status write, the embodied mutation and the audit entry of
// a decision all live in the same unit: if execution fails, the request rolls
// back to pending and may be retried.
type TxRunner interface {
	RunApproval(ctx context.Context, fn func(
		apprRepo repository.ApprovalRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
		auditRepo repository.AuditRepository,
	) error) error
}
