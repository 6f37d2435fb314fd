package repository

import (
	"context"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
)

// LocationRepository is the port for stock locations.
type LocationRepository interface {
	Create(ctx context.Context, l *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	List(ctx context.Context) ([]*entity.Location, error)
}
