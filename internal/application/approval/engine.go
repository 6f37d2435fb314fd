package approval

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

// Decisions accepted by Decide.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Engine is the approval state machine. One type handles every request
// variant; variant-specific validation and execution are dispatched in a
// single switch so the lifecycle and audit logging stay centralized.
type Engine struct {
	txRunner TxRunner
	apprRepo repository.ApprovalRepository
}

// NewEngine builds the approval engine. apprRepo is pool-bound and serves the
// read paths; every mutation runs through txRunner.
func NewEngine(txRunner TxRunner, apprRepo repository.ApprovalRepository) *Engine {
	return &Engine{txRunner: txRunner, apprRepo: apprRepo}
}

// SubmitInput is a new approval request. Payload is the raw variant payload as
// received from the caller.
type SubmitInput struct {
	Type        string
	SubjectID   string
	RequestedBy string
	Reason      string
	Payload     json.RawMessage
}

// Submit validates the variant payload, guards against a competing pending
// request for the same subject and persists the request together with its
// "submitted" audit entry.
func (e *Engine) Submit(ctx context.Context, in SubmitInput) (*entity.ApprovalRequest, error) {
	if in.SubjectID == "" || in.RequestedBy == "" {
		return nil, domain.ErrInvalidInput
	}

	req := &entity.ApprovalRequest{
		ID:          uuid.New().String(),
		Type:        in.Type,
		SubjectID:   in.SubjectID,
		RequestedBy: in.RequestedBy,
		Reason:      strings.TrimSpace(in.Reason),
		Status:      entity.RequestStatusPending,
	}

	switch in.Type {
	case entity.RequestProductEdit:
		var p entity.ProductEditPayload
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			return nil, domain.ErrInvalidInput
		}
		if p.Name == nil && p.Barcode == nil && p.Unit == nil && p.Price == nil && p.Active == nil {
			return nil, domain.ErrInvalidInput
		}
		if p.Price != nil && p.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		req.Payload, _ = json.Marshal(p)
	case entity.RequestStockAdjustment:
		var p entity.StockAdjustmentPayload
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			return nil, domain.ErrInvalidInput
		}
		if p.EntryID == "" || p.ProductID == "" || p.LocationID == "" {
			return nil, domain.ErrInvalidInput
		}
		switch p.Type {
		case entity.AdjustmentAdd, entity.AdjustmentSubtract:
			if p.Quantity <= 0 {
				return nil, domain.ErrInvalidInput
			}
		case entity.AdjustmentSet:
			if p.Quantity < 0 {
				return nil, domain.ErrInvalidInput
			}
		default:
			return nil, domain.ErrInvalidInput
		}
		if p.EntryID != in.SubjectID {
			return nil, domain.ErrInvalidInput
		}
		req.Payload, _ = json.Marshal(p)
		req.ProductID = &p.ProductID
		req.LocationID = &p.LocationID
	case entity.RequestTransactionDelete:
		var p entity.TransactionDeletePayload
		if len(in.Payload) > 0 {
			if err := json.Unmarshal(in.Payload, &p); err != nil {
				return nil, domain.ErrInvalidInput
			}
		}
		req.Payload, _ = json.Marshal(p)
	default:
		return nil, domain.ErrInvalidInput
	}

	err := e.txRunner.RunApproval(ctx, func(
		apprRepo repository.ApprovalRepository,
		_ repository.StockRepository,
		_ repository.ProductRepository,
		_ repository.TransactionRepository,
		auditRepo repository.AuditRepository,
	) error {
		existing, err := apprRepo.FindPendingBySubject(ctx, req.Type, req.SubjectID)
		if err != nil {
			return err
		}
		if existing != nil {
			return &domain.DuplicateRequestError{ExistingID: existing.ID}
		}
		if err := apprRepo.Create(ctx, req); err != nil {
			return err
		}
		return auditRepo.Append(ctx, &entity.AuditLogEntry{
			SubjectType: entity.SubjectApprovalRequest,
			SubjectID:   req.ID,
			Action:      entity.AuditSubmitted,
			Actor:       req.RequestedBy,
			Notes:       req.Reason,
		})
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Decide applies an approve or reject decision. The request row is locked so
// concurrent deciders serialize; the second caller always sees a terminal
// status and gets InvalidStateError. Approval executes the embodied mutation
// inside the same transaction as the status write.
func (e *Engine) Decide(ctx context.Context, requestID string, actor entity.Actor, decision, reason string) (*entity.ApprovalRequest, error) {
	if requestID == "" || actor.Username == "" {
		return nil, domain.ErrInvalidInput
	}
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, domain.ErrInvalidInput
	}

	var decided *entity.ApprovalRequest
	err := e.txRunner.RunApproval(ctx, func(
		apprRepo repository.ApprovalRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
		auditRepo repository.AuditRepository,
	) error {
		req, err := apprRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Terminal() {
			return &domain.InvalidStateError{Subject: "approval request", ID: req.ID, Status: req.Status}
		}
		required := entity.RequiredRoles(req.Type)
		if !hasRole(actor.Role, required) {
			return &domain.UnauthorizedError{Actor: actor.Username, Required: required}
		}

		now := time.Now()
		if decision == DecisionReject {
			if err := apprRepo.SetRejected(ctx, req.ID, actor.Username, reason); err != nil {
				return err
			}
			if err := auditRepo.Append(ctx, &entity.AuditLogEntry{
				SubjectType: entity.SubjectApprovalRequest,
				SubjectID:   req.ID,
				Action:      entity.AuditRejected,
				Actor:       actor.Username,
				Notes:       reason,
			}); err != nil {
				return err
			}
			req.Status = entity.RequestStatusRejected
			req.RejectedBy = &actor.Username
			req.RejectedAt = &now
			req.RejectionReason = &reason
			decided = req
			return nil
		}

		if err := apprRepo.SetApproved(ctx, req.ID, actor.Username); err != nil {
			return err
		}
		if err := e.execute(ctx, req, actor, stockRepo, productRepo, txRepo); err != nil {
			return err // rolls back the status write, request stays pending
		}
		if err := auditRepo.Append(ctx, &entity.AuditLogEntry{
			SubjectType: entity.SubjectApprovalRequest,
			SubjectID:   req.ID,
			Action:      entity.AuditApproved,
			Actor:       actor.Username,
			Notes:       reason,
		}); err != nil {
			return err
		}
		req.Status = entity.RequestStatusApproved
		req.ApprovedBy = &actor.Username
		req.ApprovedAt = &now
		decided = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decided, nil
}

// execute runs the variant's embodied mutation. Called strictly after the
// status write, inside the same transaction.
func (e *Engine) execute(
	ctx context.Context,
	req *entity.ApprovalRequest,
	actor entity.Actor,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
) error {
	switch req.Type {
	case entity.RequestProductEdit:
		var p entity.ProductEditPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return domain.ErrInvalidInput
		}
		product, err := productRepo.GetByID(ctx, req.SubjectID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if p.Name != nil {
			product.Name = *p.Name
		}
		if p.Barcode != nil {
			product.Barcode = *p.Barcode
		}
		if p.Unit != nil {
			product.Unit = *p.Unit
		}
		if p.Price != nil {
			product.Price = *p.Price
		}
		if p.Active != nil {
			product.Active = *p.Active
		}
		product.UpdatedAt = time.Now()
		return productRepo.Update(ctx, product)

	case entity.RequestStockAdjustment:
		var p entity.StockAdjustmentPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return domain.ErrInvalidInput
		}
		delta := p.Quantity
		if p.Type == entity.AdjustmentSubtract {
			delta = -p.Quantity
		}
		_, err := stockRepo.ApplyDeltaToEntry(ctx, p.EntryID, delta, p.Type)
		return err

	case entity.RequestTransactionDelete:
		tx, err := txRepo.GetByIDForUpdate(ctx, req.SubjectID)
		if err != nil {
			return err
		}
		if tx == nil {
			return domain.ErrNotFound
		}
		if tx.Status != entity.TxStatusCompleted {
			return &domain.InvalidStateError{Subject: "transaction", ID: tx.ID, Status: tx.Status}
		}
		if err := txRepo.MarkDeleted(ctx, tx.ID); err != nil {
			return err
		}
		// Reverse each line at the transaction's original location.
		for _, item := range tx.Items {
			if err := stockRepo.RestoreApproved(ctx, item.ProductID, tx.LocationID, item.Quantity, actor.Username); err != nil {
				return err
			}
		}
		return nil
	}
	return domain.ErrInvalidInput
}

// Get returns one request.
func (e *Engine) Get(ctx context.Context, id string) (*entity.ApprovalRequest, error) {
	req, err := e.apprRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

// List returns requests, optionally filtered by status.
func (e *Engine) List(ctx context.Context, status string, limit int) ([]*entity.ApprovalRequest, error) {
	if limit < 1 {
		limit = 100
	}
	return e.apprRepo.List(ctx, status, limit)
}

func hasRole(role string, allowed []string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
