package repository

import (
	"context"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
)

// ProductRepository is the port for the product catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// FindByIdentifier matches SKU or barcode exactly.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.Product, error)
	// SearchByName matches on a folded (lowercase, diacritic-stripped) name.
	SearchByName(ctx context.Context, folded string, limit int) ([]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	List(ctx context.Context, limit int) ([]*entity.Product, error)
}
