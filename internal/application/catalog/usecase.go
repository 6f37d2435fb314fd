package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/availability"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

const searchLimit = 25

// UseCase covers the product catalog and the cashier-facing availability
// lookup. Direct product creation stays here; edits to existing products go
// through the approval engine instead.
type UseCase struct {
	productRepo repository.ProductRepository
	locRepo     repository.LocationRepository
	stockRepo   repository.StockRepository
	resRepo     repository.ReservationRepository
	apprRepo    repository.ApprovalRepository
}

func NewUseCase(
	productRepo repository.ProductRepository,
	locRepo repository.LocationRepository,
	stockRepo repository.StockRepository,
	resRepo repository.ReservationRepository,
	apprRepo repository.ApprovalRepository,
) *UseCase {
	return &UseCase{
		productRepo: productRepo,
		locRepo:     locRepo,
		stockRepo:   stockRepo,
		resRepo:     resRepo,
		apprRepo:    apprRepo,
	}
}

// CreateProductInput is a new catalog item.
type CreateProductInput struct {
	SKU     string
	Barcode string
	Name    string
	Unit    string
	Price   decimal.Decimal
}

func (uc *UseCase) CreateProduct(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.Product{
		ID:      uuid.New().String(),
		SKU:     in.SKU,
		Barcode: strings.TrimSpace(in.Barcode),
		Name:    in.Name,
		Unit:    strings.TrimSpace(in.Unit),
		Price:   in.Price,
		Active:  true,
	}
	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *UseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *UseCase) ListProducts(ctx context.Context, limit int) ([]*entity.Product, error) {
	if limit < 1 {
		limit = 100
	}
	return uc.productRepo.List(ctx, limit)
}

// ProductAvailability pairs a product with its sellable quantity at one
// location.
type ProductAvailability struct {
	Product   *entity.Product
	Available int64
}

// Search resolves a query to products with availability at the given location.
// An exact SKU or barcode match wins; otherwise the query falls through to a
// folded name search. The quantities are a fresh snapshot, not a hold.
func (uc *UseCase) Search(ctx context.Context, query, locationID string) ([]ProductAvailability, error) {
	query = strings.TrimSpace(query)
	if query == "" || locationID == "" {
		return nil, domain.ErrInvalidInput
	}

	var products []*entity.Product
	exact, err := uc.productRepo.FindByIdentifier(ctx, query)
	if err != nil {
		return nil, err
	}
	if exact != nil {
		products = []*entity.Product{exact}
	} else {
		products, err = uc.productRepo.SearchByName(ctx, Fold(query), searchLimit)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	results := make([]ProductAvailability, 0, len(products))
	for _, p := range products {
		avail, err := availability.Available(ctx, uc.stockRepo, uc.resRepo, uc.apprRepo, p.ID, locationID, "", now)
		if err != nil {
			return nil, err
		}
		results = append(results, ProductAvailability{Product: p, Available: avail})
	}
	return results, nil
}

// Lookup resolves one identifier (SKU or barcode) to a product with its
// availability at the location. A miss is not an error; found reports it so
// the scan UI can show "unknown item" instead of failing the scan.
func (uc *UseCase) Lookup(ctx context.Context, identifier, locationID string) (ProductAvailability, bool, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || locationID == "" {
		return ProductAvailability{}, false, domain.ErrInvalidInput
	}
	p, err := uc.productRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return ProductAvailability{}, false, err
	}
	if p == nil {
		return ProductAvailability{}, false, nil
	}
	avail, err := availability.Available(ctx, uc.stockRepo, uc.resRepo, uc.apprRepo, p.ID, locationID, "", time.Now())
	if err != nil {
		return ProductAvailability{}, false, err
	}
	return ProductAvailability{Product: p, Available: avail}, true, nil
}

// Availability returns the sellable quantity for one (product, location) pair.
func (uc *UseCase) Availability(ctx context.Context, productID, locationID string) (int64, error) {
	if productID == "" || locationID == "" {
		return 0, domain.ErrInvalidInput
	}
	return availability.Available(ctx, uc.stockRepo, uc.resRepo, uc.apprRepo, productID, locationID, "", time.Now())
}

// CreateLocationInput is a new stock location.
type CreateLocationInput struct {
	Code    string
	Name    string
	Address string
}

// CreateLocation registers a stock location.
func (uc *UseCase) CreateLocation(ctx context.Context, in CreateLocationInput) (*entity.Location, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	l := &entity.Location{
		ID:      uuid.New().String(),
		Code:    in.Code,
		Name:    in.Name,
		Address: strings.TrimSpace(in.Address),
	}
	if err := uc.locRepo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (uc *UseCase) ListLocations(ctx context.Context) ([]*entity.Location, error) {
	return uc.locRepo.List(ctx)
}
