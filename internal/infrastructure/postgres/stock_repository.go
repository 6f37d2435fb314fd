package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implements StockRepository over PostgreSQL (usable with pool or tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository builds the stock ledger adapter. Pass pool or tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockEntryColumns = `id, product_id, location_id, quantity, status, input_by, approved_by, approved_at, created_at, updated_at`

func scanStockEntry(row pgx.Row) (*entity.StockEntry, error) {
	var e entity.StockEntry
	err := row.Scan(
		&e.ID, &e.ProductID, &e.LocationID, &e.Quantity, &e.Status,
		&e.InputBy, &e.ApprovedBy, &e.ApprovedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEntry inserts a ledger entry.
func (r *StockRepo) CreateEntry(ctx context.Context, e *entity.StockEntry) error {
	query := `
		INSERT INTO stock_entries (id, product_id, location_id, quantity, status, input_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.q.Exec(ctx, query, e.ID, e.ProductID, e.LocationID, e.Quantity, e.Status, e.InputBy)
	if err != nil {
		return fmt.Errorf("insert stock entry: %w", err)
	}
	return nil
}

// GetEntry returns one entry, nil when absent.
func (r *StockRepo) GetEntry(ctx context.Context, id string) (*entity.StockEntry, error) {
	query := `SELECT ` + stockEntryColumns + ` FROM stock_entries WHERE id = $1`
	e, err := scanStockEntry(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock entry: %w", err)
	}
	return e, nil
}

// GetEntryForUpdate returns one entry with its row locked (SELECT FOR UPDATE).
func (r *StockRepo) GetEntryForUpdate(ctx context.Context, id string) (*entity.StockEntry, error) {
	query := `SELECT ` + stockEntryColumns + ` FROM stock_entries WHERE id = $1 FOR UPDATE`
	e, err := scanStockEntry(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock entry for update: %w", err)
	}
	return e, nil
}

// UpdateEntryStatus transitions an entry out of pending and records who
// decided it.
func (r *StockRepo) UpdateEntryStatus(ctx context.Context, id, status, actor string) error {
	query := `
		UPDATE stock_entries
		SET status = $2, approved_by = $3, approved_at = now(), updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, status, actor)
	if err != nil {
		return fmt.Errorf("update stock entry status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListEntries filters by product, location and status (empty = no filter).
func (r *StockRepo) ListEntries(ctx context.Context, productID, locationID, status string, limit int) ([]*entity.StockEntry, error) {
	query := `
		SELECT ` + stockEntryColumns + `
		FROM stock_entries
		WHERE ($1 = '' OR product_id = $1)
		  AND ($2 = '' OR location_id = $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY created_at DESC
		LIMIT $4`
	rows, err := r.q.Query(ctx, query, productID, locationID, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.LocationID, &e.Quantity, &e.Status,
			&e.InputBy, &e.ApprovedBy, &e.ApprovedAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// SumApproved sums quantity over approved entries for the pair.
func (r *StockRepo) SumApproved(ctx context.Context, productID, locationID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_entries
		WHERE product_id = $1 AND location_id = $2 AND status = 'approved'`
	var sum int64
	if err := r.q.QueryRow(ctx, query, productID, locationID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum approved stock: %w", err)
	}
	return sum, nil
}

// SumApprovedForUpdate is the same sum with the contributing rows locked for
// the rest of the transaction.
func (r *StockRepo) SumApprovedForUpdate(ctx context.Context, productID, locationID string) (int64, error) {
	// FOR UPDATE is not allowed with aggregates; lock the rows first, then sum.
	lockQuery := `
		SELECT id FROM stock_entries
		WHERE product_id = $1 AND location_id = $2 AND status = 'approved'
		ORDER BY created_at
		FOR UPDATE`
	rows, err := r.q.Query(ctx, lockQuery, productID, locationID)
	if err != nil {
		return 0, fmt.Errorf("lock approved stock: %w", err)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("lock approved stock: %w", err)
	}
	return r.SumApproved(ctx, productID, locationID)
}

// ApplyDeltaToEntry adjusts one entry row. add/subtract apply a relative delta,
// set overwrites. Only approved rows can be adjusted; a relative delta that
// would drive the quantity negative is an integrity violation.
func (r *StockRepo) ApplyDeltaToEntry(ctx context.Context, entryID string, delta int64, adjustmentType string) (int64, error) {
	entry, err := r.GetEntryForUpdate(ctx, entryID)
	if err != nil {
		return 0, err
	}
	if entry == nil {
		return 0, domain.ErrNotFound
	}
	if entry.Status != entity.StockStatusApproved {
		return 0, domain.ErrConflict
	}

	newQty := entry.Quantity + delta
	if adjustmentType == entity.AdjustmentSet {
		newQty = delta
	}
	if newQty < 0 {
		return 0, &domain.IntegrityError{
			Op:     "apply adjustment",
			Detail: fmt.Sprintf("entry %s: quantity %d with delta %d goes negative", entryID, entry.Quantity, delta),
		}
	}

	_, err = r.q.Exec(ctx,
		`UPDATE stock_entries SET quantity = $2, updated_at = now() WHERE id = $1`,
		entryID, newQty,
	)
	if err != nil {
		return 0, fmt.Errorf("apply stock delta: %w", err)
	}
	return newQty, nil
}

// DeductApproved removes qty from the pair's approved entries oldest-first
// under row locks. The caller has already verified availability inside the
// same transaction, so a shortfall here is an integrity violation.
func (r *StockRepo) DeductApproved(ctx context.Context, productID, locationID string, qty int64) error {
	query := `
		SELECT id, quantity FROM stock_entries
		WHERE product_id = $1 AND location_id = $2 AND status = 'approved' AND quantity > 0
		ORDER BY created_at
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, productID, locationID)
	if err != nil {
		return fmt.Errorf("lock entries for deduction: %w", err)
	}
	type line struct {
		id  string
		qty int64
	}
	var entries []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.id, &l.qty); err != nil {
			rows.Close()
			return fmt.Errorf("scan entry for deduction: %w", err)
		}
		entries = append(entries, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("lock entries for deduction: %w", err)
	}

	remaining := qty
	for _, e := range entries {
		if remaining == 0 {
			break
		}
		take := e.qty
		if take > remaining {
			take = remaining
		}
		_, err := r.q.Exec(ctx,
			`UPDATE stock_entries SET quantity = quantity - $2, updated_at = now() WHERE id = $1`,
			e.id, take,
		)
		if err != nil {
			return fmt.Errorf("deduct from entry: %w", err)
		}
		remaining -= take
	}
	if remaining > 0 {
		return &domain.IntegrityError{
			Op:     "deduct stock",
			Detail: fmt.Sprintf("product %s at %s: short %d of %d", productID, locationID, remaining, qty),
		}
	}
	return nil
}

// RestoreApproved credits qty back to the pair's newest approved entry, or
// inserts a fresh approved entry when none exists. Used by deletion reversal.
func (r *StockRepo) RestoreApproved(ctx context.Context, productID, locationID string, qty int64, actor string) error {
	query := `
		SELECT id FROM stock_entries
		WHERE product_id = $1 AND location_id = $2 AND status = 'approved'
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE`
	var id string
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.CreateEntry(ctx, &entity.StockEntry{
				ID:         uuid.New().String(),
				ProductID:  productID,
				LocationID: locationID,
				Quantity:   qty,
				Status:     entity.StockStatusApproved,
				InputBy:    actor,
			})
		}
		return fmt.Errorf("find entry for restore: %w", err)
	}
	_, err = r.q.Exec(ctx,
		`UPDATE stock_entries SET quantity = quantity + $2, updated_at = now() WHERE id = $1`,
		id, qty,
	)
	if err != nil {
		return fmt.Errorf("restore stock: %w", err)
	}
	return nil
}
