package entity

import "time"

// Stock entry statuses. Only approved entries contribute to availability.
const (
	StockStatusPending  = "pending"
	StockStatusApproved = "approved"
	StockStatusRejected = "rejected"
)

// Adjustment types for stock adjustment approvals.
const (
	AdjustmentAdd      = "add"
	AdjustmentSubtract = "subtract"
	AdjustmentSet      = "set"
)

// StockEntry is one row of the stock ledger for a (product, location) pair.
// Entries are created pending on stock input and mutated only by entry
// approval, adjustment execution or checkout deduction. Rows are never hard
// deleted; history lives in the audit log.
type StockEntry struct {
	ID         string
	ProductID  string
	LocationID string
	Quantity   int64
	Status     string
	InputBy    string
	ApprovedBy *string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
