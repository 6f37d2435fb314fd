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

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implements TransactionRepository over PostgreSQL (usable
// with pool or tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository builds the sales adapter. Pass pool or tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, invoice_number, actor, location_id, subtotal, discount, total, cash_received, change, status, created_at, updated_at`

// Create persists the header and all line items. Returns ErrDuplicateInvoice
// on an invoice number collision so the caller can retry with a fresh number.
func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, invoice_number, actor, location_id, subtotal, discount, total, cash_received, change, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.InvoiceNumber, tx.Actor, tx.LocationID,
		tx.Subtotal, tx.Discount, tx.Total, tx.CashReceived, tx.Change, tx.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateInvoice
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	for _, item := range tx.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO transaction_items (id, tx_id, product_id, product_name, unit_price, quantity, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, tx.ID, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert transaction item: %w", err)
		}
	}
	return nil
}

// GetByID returns one transaction with its items, nil when absent.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByIDForUpdate locks the header row during deletion reversal.
func (r *TransactionRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

// GetByInvoiceNumber returns one transaction by its invoice number.
func (r *TransactionRepo) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE invoice_number = $1`
	return r.getOne(ctx, query, invoiceNumber)
}

func (r *TransactionRepo) getOne(ctx context.Context, query string, arg any) (*entity.Transaction, error) {
	var tx entity.Transaction
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&tx.ID, &tx.InvoiceNumber, &tx.Actor, &tx.LocationID,
		&tx.Subtotal, &tx.Discount, &tx.Total, &tx.CashReceived, &tx.Change,
		&tx.Status, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	items, err := r.loadItems(ctx, tx.ID)
	if err != nil {
		return nil, err
	}
	tx.Items = items
	return &tx, nil
}

func (r *TransactionRepo) loadItems(ctx context.Context, txID string) ([]entity.TransactionItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, tx_id, product_id, product_name, unit_price, quantity, subtotal
		FROM transaction_items WHERE tx_id = $1 ORDER BY product_name`, txID)
	if err != nil {
		return nil, fmt.Errorf("list transaction items: %w", err)
	}
	defer rows.Close()
	var items []entity.TransactionItem
	for rows.Next() {
		var it entity.TransactionItem
		if err := rows.Scan(&it.ID, &it.TxID, &it.ProductID, &it.ProductName, &it.UnitPrice, &it.Quantity, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan transaction item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// MarkDeleted transitions a transaction to deleted. The record stays; only the
// status changes.
func (r *TransactionRepo) MarkDeleted(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE transactions SET status = 'deleted', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark transaction deleted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByLocation returns transactions at one location, newest first, items
// included.
func (r *TransactionRepo) ListByLocation(ctx context.Context, locationID string, limit int) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions WHERE location_id = $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, locationID, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var tx entity.Transaction
		if err := rows.Scan(&tx.ID, &tx.InvoiceNumber, &tx.Actor, &tx.LocationID,
			&tx.Subtotal, &tx.Discount, &tx.Total, &tx.CashReceived, &tx.Change,
			&tx.Status, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, tx := range list {
		items, err := r.loadItems(ctx, tx.ID)
		if err != nil {
			return nil, err
		}
		tx.Items = items
	}
	return list, nil
}
