package repository

import (
	"context"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
)

// StockRepository is the port for the stock ledger. Only approved entries
// contribute to availability; every read-then-write path is meant to run
// inside a transaction with row locks.
type StockRepository interface {
	CreateEntry(ctx context.Context, e *entity.StockEntry) error
	GetEntry(ctx context.Context, id string) (*entity.StockEntry, error)
	// GetEntryForUpdate locks the row (SELECT FOR UPDATE).
	GetEntryForUpdate(ctx context.Context, id string) (*entity.StockEntry, error)
	UpdateEntryStatus(ctx context.Context, id, status, actor string) error
	// ListEntries filters by any combination of product, location and status
	// (empty string = no filter), newest first.
	ListEntries(ctx context.Context, productID, locationID, status string, limit int) ([]*entity.StockEntry, error)

	// SumApproved sums quantity over approved entries for the pair.
	SumApproved(ctx context.Context, productID, locationID string) (int64, error)
	// SumApprovedForUpdate is the same sum with the contributing rows locked.
	SumApprovedForUpdate(ctx context.Context, productID, locationID string) (int64, error)

	// ApplyDeltaToEntry adjusts one row. Type add/subtract are relative, set
	// overwrites. Returns ErrConflict if the row is not approved at apply time
	// and IntegrityError if a relative delta would drive quantity negative.
	ApplyDeltaToEntry(ctx context.Context, entryID string, delta int64, adjustmentType string) (int64, error)

	// DeductApproved removes qty from the pair's approved entries oldest-first
	// under row locks. IntegrityError if the pair's total is insufficient.
	DeductApproved(ctx context.Context, productID, locationID string, qty int64) error

	// RestoreApproved credits qty back to the pair (newest approved entry, or a
	// fresh approved entry when none exists). Used by deletion reversal.
	RestoreApproved(ctx context.Context, productID, locationID string, qty int64, actor string) error
}
