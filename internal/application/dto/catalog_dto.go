package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/catalog"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
)

// CreateProductRequest body for POST /api/products.
type CreateProductRequest struct {
	SKU     string          `json:"sku"`
	Barcode string          `json:"barcode,omitempty"`
	Name    string          `json:"name"`
	Unit    string          `json:"unit,omitempty"`
	Price   decimal.Decimal `json:"price"`
}

// ProductResponse is a catalog item.
type ProductResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Barcode   string          `json:"barcode,omitempty"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductAvailabilityResponse pairs a product with its sellable quantity at
// the queried location. The quantity is a snapshot, not a hold.
type ProductAvailabilityResponse struct {
	Product   ProductResponse `json:"product"`
	Available int64           `json:"available"`
}

// AvailabilityResponse is the single-pair availability lookup.
type AvailabilityResponse struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Available  int64  `json:"available"`
}

// AvailabilityLookupResponse answers an identifier scan. Found false is a
// normal outcome, not an error.
type AvailabilityLookupResponse struct {
	Found     bool             `json:"found"`
	Product   *ProductResponse `json:"product,omitempty"`
	Available int64            `json:"available"`
}

// CreateLocationRequest body for POST /api/locations.
type CreateLocationRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// LocationResponse is a stock location.
type LocationResponse struct {
	ID      string `json:"id"`
	Code    string `json:"code,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// ToProductResponse maps the entity.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Barcode:   p.Barcode,
		Name:      p.Name,
		Unit:      p.Unit,
		Price:     p.Price,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToProductAvailabilityResponses maps search results.
func ToProductAvailabilityResponses(results []catalog.ProductAvailability) []ProductAvailabilityResponse {
	out := make([]ProductAvailabilityResponse, 0, len(results))
	for _, r := range results {
		out = append(out, ProductAvailabilityResponse{
			Product:   ToProductResponse(r.Product),
			Available: r.Available,
		})
	}
	return out
}

// ToLocationResponse maps the entity.
func ToLocationResponse(l *entity.Location) LocationResponse {
	return LocationResponse{ID: l.ID, Code: l.Code, Name: l.Name, Address: l.Address}
}
