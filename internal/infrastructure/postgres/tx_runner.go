package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/approval"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/checkout"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/stock"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

// Ensure TxRunner implements every application-layer runner port.
var _ checkout.TxRunner = (*TxRunner)(nil)
var _ approval.TxRunner = (*TxRunner)(nil)
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction. Every
// transaction runs with a local lock_timeout so a contended row surfaces as
// domain.ErrConflict instead of blocking the caller indefinitely.
type TxRunner struct {
	pool          *pgxpool.Pool
	lockTimeoutMS int
}

// NewTxRunner builds the runner with the pool. lockTimeoutMS <= 0 disables the
// lock timeout.
func NewTxRunner(pool *pgxpool.Pool, lockTimeoutMS int) *TxRunner {
	return &TxRunner{pool: pool, lockTimeoutMS: lockTimeoutMS}
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeoutMS > 0 {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeoutMS)); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}

	if err := fn(tx); err != nil {
		if isLockTimeout(err) {
			return domain.ErrConflict
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCheckout starts a transaction with the repositories checkout needs.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	resRepo repository.ReservationRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	apprRepo repository.ApprovalRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(
			NewReservationRepository(tx),
			NewStockRepository(tx),
			NewProductRepository(tx),
			NewTransactionRepository(tx),
			NewApprovalRepository(tx),
		)
	})
}

// RunApproval starts a transaction with the repositories the approval engine
// needs to decide a request and execute its embodied mutation.
func (r *TxRunner) RunApproval(ctx context.Context, fn func(
	apprRepo repository.ApprovalRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	auditRepo repository.AuditRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(
			NewApprovalRepository(tx),
			NewStockRepository(tx),
			NewProductRepository(tx),
			NewTransactionRepository(tx),
			NewAuditRepository(tx),
		)
	})
}

// RunStock starts a transaction for stock input and entry decisions.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	auditRepo repository.AuditRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewStockRepository(tx), NewAuditRepository(tx))
	})
}
