package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/availability"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

// UseCase mutates the per-owner reservation set. Every mutating call
// re-evaluates availability at call time and fails loudly with the actual
// sellable count rather than truncating the requested quantity. These checks
// are advisory against a moving target; checkout repeats them authoritatively
// under row locks.
type UseCase struct {
	resRepo     repository.ReservationRepository
	stockRepo   repository.StockRepository
	apprRepo    repository.ApprovalRepository
	productRepo repository.ProductRepository
	ttl         time.Duration
}

// NewUseCase builds the cart use case. ttl bounds how long an untouched line
// keeps stock spoken for.
func NewUseCase(
	resRepo repository.ReservationRepository,
	stockRepo repository.StockRepository,
	apprRepo repository.ApprovalRepository,
	productRepo repository.ProductRepository,
	ttl time.Duration,
) *UseCase {
	return &UseCase{
		resRepo:     resRepo,
		stockRepo:   stockRepo,
		apprRepo:    apprRepo,
		productRepo: productRepo,
		ttl:         ttl,
	}
}

// Add reserves qty units for the owner, incrementing an existing line for the
// same (product, location) instead of duplicating it. The availability check
// excludes the owner's own held quantity, so an increase is validated against
// what the rest of the world has left.
func (uc *UseCase) Add(ctx context.Context, owner, productID, locationID string, qty int64) (*entity.Reservation, error) {
	if owner == "" || productID == "" || locationID == "" || qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	availExclOwn, err := availability.Available(ctx, uc.stockRepo, uc.resRepo, uc.apprRepo, productID, locationID, owner, now)
	if err != nil {
		return nil, err
	}

	line, err := uc.resRepo.GetOwnerLine(ctx, owner, productID, locationID)
	if err != nil {
		return nil, err
	}
	var held int64
	if line != nil && !line.Expired(now) {
		held = line.Quantity
	}
	if held+qty > availExclOwn {
		remaining := availExclOwn - held
		if remaining < 0 {
			remaining = 0
		}
		return nil, &domain.InsufficientStockError{ProductID: productID, Available: remaining}
	}

	expiresAt := now.Add(uc.ttl)
	if line == nil || line.Expired(now) {
		if line != nil {
			// Stale line from an abandoned session: replace rather than extend.
			if err := uc.resRepo.Delete(ctx, line.ID); err != nil {
				return nil, err
			}
		}
		fresh := &entity.Reservation{
			ID:         uuid.New().String(),
			Owner:      owner,
			ProductID:  productID,
			LocationID: locationID,
			Quantity:   qty,
			CreatedAt:  now,
			UpdatedAt:  now,
			ExpiresAt:  expiresAt,
		}
		if err := uc.resRepo.Create(ctx, fresh); err != nil {
			return nil, err
		}
		return fresh, nil
	}

	line.Quantity += qty
	line.UpdatedAt = now
	line.ExpiresAt = expiresAt
	if err := uc.resRepo.UpdateQuantity(ctx, line.ID, line.Quantity, expiresAt); err != nil {
		return nil, err
	}
	return line, nil
}

// Update sets a line to newQty. The check allows the line's current quantity
// to be re-used: newQty may not exceed availability computed without the
// owner's own hold.
func (uc *UseCase) Update(ctx context.Context, owner, reservationID string, newQty int64) (*entity.Reservation, error) {
	if reservationID == "" || newQty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	line, err := uc.resRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if line == nil || line.Owner != owner {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	availExclOwn, err := availability.Available(ctx, uc.stockRepo, uc.resRepo, uc.apprRepo, line.ProductID, line.LocationID, owner, now)
	if err != nil {
		return nil, err
	}
	if newQty > availExclOwn {
		return nil, &domain.InsufficientStockError{ProductID: line.ProductID, Available: availExclOwn}
	}

	line.Quantity = newQty
	line.UpdatedAt = now
	line.ExpiresAt = now.Add(uc.ttl)
	if err := uc.resRepo.UpdateQuantity(ctx, line.ID, newQty, line.ExpiresAt); err != nil {
		return nil, err
	}
	return line, nil
}

// Remove drops one line owned by the caller.
func (uc *UseCase) Remove(ctx context.Context, owner, reservationID string) error {
	line, err := uc.resRepo.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if line == nil || line.Owner != owner {
		return domain.ErrNotFound
	}
	return uc.resRepo.Delete(ctx, line.ID)
}

// Clear drops every line the owner holds at the location.
func (uc *UseCase) Clear(ctx context.Context, owner, locationID string) error {
	if owner == "" || locationID == "" {
		return domain.ErrInvalidInput
	}
	return uc.resRepo.DeleteByOwnerLocation(ctx, owner, locationID)
}

// List returns the owner's unexpired lines at the location.
func (uc *UseCase) List(ctx context.Context, owner, locationID string) ([]*entity.Reservation, error) {
	lines, err := uc.resRepo.ListByOwnerLocation(ctx, owner, locationID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	active := lines[:0]
	for _, l := range lines {
		if !l.Expired(now) {
			active = append(active, l)
		}
	}
	return active, nil
}
