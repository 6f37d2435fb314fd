package entity

import "time"

// Audit actions, one per lifecycle transition.
const (
	AuditSubmitted = "submitted"
	AuditApproved  = "approved"
	AuditRejected  = "rejected"
)

// Audit subject types.
const (
	SubjectApprovalRequest = "approval_request"
	SubjectStockEntry      = "stock_entry"
)

// AuditLogEntry is one immutable record of a lifecycle transition. Entries are
// append-only: never updated, never deleted.
type AuditLogEntry struct {
	ID          string
	SubjectType string
	SubjectID   string
	Action      string
	Actor       string
	Notes       string
	Timestamp   time.Time
}
