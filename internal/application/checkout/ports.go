package checkout

import (
	"context"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

// TxRunner executes fn inside one database transaction, passing repositories
// bound to that transaction. Commit happens only when fn returns nil; any
// error rolls everything back, which gives checkout its all-or-nothing
// guarantee.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		resRepo repository.ReservationRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
		apprRepo repository.ApprovalRepository,
	) error) error
}
