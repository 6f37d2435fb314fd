package dto

import (
	"encoding/json"
	"time"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
)

// SubmitApprovalRequest body for POST /api/approvals.
type SubmitApprovalRequest struct {
	Type      string          `json:"type"` // product_edit | stock_adjustment | transaction_delete
	SubjectID string          `json:"subject_id"`
	Reason    string          `json:"reason,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// DecideApprovalRequest body for POST /api/approvals/:id/decision.
type DecideApprovalRequest struct {
	Decision string `json:"decision"` // approve | reject
	Reason   string `json:"reason,omitempty"`
}

// ApprovalResponse is an approval request with its lifecycle fields.
type ApprovalResponse struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	SubjectID       string          `json:"subject_id"`
	RequestedBy     string          `json:"requested_by"`
	Reason          string          `json:"reason,omitempty"`
	Payload         json.RawMessage `json:"payload,omitempty"`
	Status          string          `json:"status"`
	ApprovedBy      *string         `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	RejectedBy      *string         `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time      `json:"rejected_at,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToApprovalResponse maps the entity.
func ToApprovalResponse(a *entity.ApprovalRequest) ApprovalResponse {
	return ApprovalResponse{
		ID:              a.ID,
		Type:            a.Type,
		SubjectID:       a.SubjectID,
		RequestedBy:     a.RequestedBy,
		Reason:          a.Reason,
		Payload:         json.RawMessage(a.Payload),
		Status:          a.Status,
		ApprovedBy:      a.ApprovedBy,
		ApprovedAt:      a.ApprovedAt,
		RejectedBy:      a.RejectedBy,
		RejectedAt:      a.RejectedAt,
		RejectionReason: a.RejectionReason,
		CreatedAt:       a.CreatedAt,
	}
}

// ToApprovalResponses maps a list.
func ToApprovalResponses(list []*entity.ApprovalRequest) []ApprovalResponse {
	out := make([]ApprovalResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ToApprovalResponse(a))
	}
	return out
}

// AuditEntryResponse is one audit log record.
type AuditEntryResponse struct {
	ID          string    `json:"id"`
	SubjectType string    `json:"subject_type"`
	SubjectID   string    `json:"subject_id"`
	Action      string    `json:"action"`
	Actor       string    `json:"actor"`
	Notes       string    `json:"notes,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// ToAuditEntryResponses maps a trail.
func ToAuditEntryResponses(list []*entity.AuditLogEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, AuditEntryResponse{
			ID:          e.ID,
			SubjectType: e.SubjectType,
			SubjectID:   e.SubjectID,
			Action:      e.Action,
			Actor:       e.Actor,
			Notes:       e.Notes,
			Timestamp:   e.Timestamp,
		})
	}
	return out
}
