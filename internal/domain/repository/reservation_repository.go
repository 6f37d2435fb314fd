package repository

import (
	"context"
	"time"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
)

// ReservationRepository is the port for cart lines. SumActiveByPair feeds the
// availability calculator; expired rows never count even before the sweeper
// removes them.
type ReservationRepository interface {
	Create(ctx context.Context, r *entity.Reservation) error
	GetByID(ctx context.Context, id string) (*entity.Reservation, error)
	// GetOwnerLine returns the owner's line for the pair, nil when absent.
	GetOwnerLine(ctx context.Context, owner, productID, locationID string) (*entity.Reservation, error)
	UpdateQuantity(ctx context.Context, id string, qty int64, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error

	ListByOwnerLocation(ctx context.Context, owner, locationID string) ([]*entity.Reservation, error)
	// ListByOwnerLocationForUpdate locks the owner's rows for the duration of
	// checkout so no other call can mutate the set.
	ListByOwnerLocationForUpdate(ctx context.Context, owner, locationID string) ([]*entity.Reservation, error)
	DeleteByOwnerLocation(ctx context.Context, owner, locationID string) error

	// SumActiveByPair sums unexpired reservations for (product, location),
	// excluding excludeOwner's own lines when non-empty.
	SumActiveByPair(ctx context.Context, productID, locationID, excludeOwner string, now time.Time) (int64, error)
	// DeleteExpired removes rows past their TTL; returns how many were swept.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
