package stock

import (
	"context"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

// TxRunner runs fn atomically with repositories bound to one transaction.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		auditRepo repository.AuditRepository,
	) error) error
}
