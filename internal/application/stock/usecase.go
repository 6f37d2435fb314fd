package stock

import (
	"context"

	"github.com/google/uuid"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

// Roles allowed to decide a pending stock entry.
var entryDeciderRoles = []string{entity.RoleSupervisor, entity.RoleITAdmin}

// UseCase covers stock input and the entry approval flow. New entries land
// pending and contribute nothing to availability until approved.
type UseCase struct {
	txRunner    TxRunner
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	locRepo     repository.LocationRepository
}

func NewUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	locRepo repository.LocationRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, stockRepo: stockRepo, productRepo: productRepo, locRepo: locRepo}
}

// InputEntry records incoming stock as a pending ledger entry together with
// its "submitted" audit record.
func (uc *UseCase) InputEntry(ctx context.Context, productID, locationID string, quantity int64, actor entity.Actor) (*entity.StockEntry, error) {
	if productID == "" || locationID == "" || actor.Username == "" {
		return nil, domain.ErrInvalidInput
	}
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	loc, err := uc.locRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}

	entry := &entity.StockEntry{
		ID:         uuid.New().String(),
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   quantity,
		Status:     entity.StockStatusPending,
		InputBy:    actor.Username,
	}
	err = uc.txRunner.RunStock(ctx, func(stockRepo repository.StockRepository, auditRepo repository.AuditRepository) error {
		if err := stockRepo.CreateEntry(ctx, entry); err != nil {
			return err
		}
		return auditRepo.Append(ctx, &entity.AuditLogEntry{
			SubjectType: entity.SubjectStockEntry,
			SubjectID:   entry.ID,
			Action:      entity.AuditSubmitted,
			Actor:       actor.Username,
		})
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// DecideEntry approves or rejects a pending entry. The row is locked so a
// concurrent decision on the same entry serializes; the loser sees a terminal
// status. approve=true makes the quantity count toward availability.
func (uc *UseCase) DecideEntry(ctx context.Context, entryID string, actor entity.Actor, approve bool, notes string) (*entity.StockEntry, error) {
	if entryID == "" || actor.Username == "" {
		return nil, domain.ErrInvalidInput
	}
	allowed := false
	for _, r := range entryDeciderRoles {
		if actor.Role == r {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, &domain.UnauthorizedError{Actor: actor.Username, Required: entryDeciderRoles}
	}

	var decided *entity.StockEntry
	err := uc.txRunner.RunStock(ctx, func(stockRepo repository.StockRepository, auditRepo repository.AuditRepository) error {
		entry, err := stockRepo.GetEntryForUpdate(ctx, entryID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		if entry.Status != entity.StockStatusPending {
			return &domain.InvalidStateError{Subject: "stock entry", ID: entry.ID, Status: entry.Status}
		}

		status := entity.StockStatusRejected
		action := entity.AuditRejected
		if approve {
			status = entity.StockStatusApproved
			action = entity.AuditApproved
		}
		if err := stockRepo.UpdateEntryStatus(ctx, entry.ID, status, actor.Username); err != nil {
			return err
		}
		if err := auditRepo.Append(ctx, &entity.AuditLogEntry{
			SubjectType: entity.SubjectStockEntry,
			SubjectID:   entry.ID,
			Action:      action,
			Actor:       actor.Username,
			Notes:       notes,
		}); err != nil {
			return err
		}
		entry.Status = status
		decided = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decided, nil
}

// ListEntries returns ledger entries for a (product, location) pair, optionally
// filtered by status.
func (uc *UseCase) ListEntries(ctx context.Context, productID, locationID, status string, limit int) ([]*entity.StockEntry, error) {
	if limit < 1 {
		limit = 100
	}
	return uc.stockRepo.ListEntries(ctx, productID, locationID, status, limit)
}
