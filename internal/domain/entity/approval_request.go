package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Approval request variants. Each variant carries its own payload and role
// requirements; the engine dispatches on the variant in a single switch.
const (
	RequestProductEdit       = "product_edit"
	RequestStockAdjustment   = "stock_adjustment"
	RequestTransactionDelete = "transaction_delete"
)

// Approval request statuses. Pending is the only non-terminal state.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// ApprovalRequest wraps a proposed mutation in a pending -> approved|rejected
// lifecycle. The embodied mutation executes exactly once, strictly after the
// transition to approved and inside the same atomic unit as the status write.
type ApprovalRequest struct {
	ID              string
	Type            string
	SubjectID       string
	RequestedBy     string
	Reason          string
	Payload         []byte // variant payload, JSON
	Status          string
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectedBy      *string
	RejectedAt      *time.Time
	RejectionReason *string
	// Denormalized for stock adjustments so pending withdrawals stay queryable
	// per (product, location) without unpacking payloads.
	ProductID  *string
	LocationID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Terminal reports whether the request already left the pending state.
func (r *ApprovalRequest) Terminal() bool {
	return r.Status != RequestStatusPending
}

// RequiredRoles returns the roles allowed to decide the given variant.
func RequiredRoles(requestType string) []string {
	switch requestType {
	case RequestProductEdit:
		return []string{RoleSupervisor, RoleAdmin, RoleITAdmin}
	case RequestStockAdjustment:
		return []string{RoleSupervisor, RoleITAdmin}
	case RequestTransactionDelete:
		return []string{RoleDirector, RoleITAdmin}
	default:
		return nil
	}
}

// ProductEditPayload proposes new values for a product. Nil fields are left
// untouched on execution.
type ProductEditPayload struct {
	Name    *string          `json:"name,omitempty"`
	Barcode *string          `json:"barcode,omitempty"`
	Unit    *string          `json:"unit,omitempty"`
	Price   *decimal.Decimal `json:"price,omitempty"`
	Active  *bool            `json:"active,omitempty"`
}

// StockAdjustmentPayload targets one stock entry row. Type add/subtract are
// relative deltas; set overwrites the row quantity.
type StockAdjustmentPayload struct {
	EntryID    string `json:"entry_id"`
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Type       string `json:"type"` // add | subtract | set
	Quantity   int64  `json:"quantity"`
}

// TransactionDeletePayload carries nothing beyond the subject transaction;
// the engine reverses each line's stock at the transaction's original location.
type TransactionDeletePayload struct {
	InvoiceNumber string `json:"invoice_number,omitempty"`
}
