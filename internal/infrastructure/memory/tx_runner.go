package memory

import (
	"context"
	"sync"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/approval"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/checkout"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/stock"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

var _ checkout.TxRunner = (*TxRunner)(nil)
var _ approval.TxRunner = (*TxRunner)(nil)
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner runs callbacks against the shared Store. Transactions are
// serialized with a mutex and the store is snapshotted up front; an error from
// fn restores the snapshot, so a failed unit of work leaves no trace, same as
// a database rollback.
type TxRunner struct {
	mu sync.Mutex
	s  *Store
}

// NewTxRunner builds the runner over the store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) run(fn func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.s.snapshot()
	if err := fn(); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

func (r *TxRunner) RunCheckout(_ context.Context, fn func(
	resRepo repository.ReservationRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	apprRepo repository.ApprovalRepository,
) error) error {
	return r.run(func() error {
		return fn(
			NewReservationRepository(r.s),
			NewStockRepository(r.s),
			NewProductRepository(r.s),
			NewTransactionRepository(r.s),
			NewApprovalRepository(r.s),
		)
	})
}

func (r *TxRunner) RunApproval(_ context.Context, fn func(
	apprRepo repository.ApprovalRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	auditRepo repository.AuditRepository,
) error) error {
	return r.run(func() error {
		return fn(
			NewApprovalRepository(r.s),
			NewStockRepository(r.s),
			NewProductRepository(r.s),
			NewTransactionRepository(r.s),
			NewAuditRepository(r.s),
		)
	})
}

func (r *TxRunner) RunStock(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	auditRepo repository.AuditRepository,
) error) error {
	return r.run(func() error {
		return fn(NewStockRepository(r.s), NewAuditRepository(r.s))
	})
}
