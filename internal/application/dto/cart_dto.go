package dto

import (
	"time"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
)

// AddToCartRequest body for POST /api/cart/items.
type AddToCartRequest struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Quantity   int64  `json:"quantity"`
}

// UpdateCartItemRequest body for PUT /api/cart/items/:id.
type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

// CartItemResponse is one cart line.
type CartItemResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	LocationID string    `json:"location_id"`
	Quantity   int64     `json:"quantity"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ToCartItemResponse maps the entity.
func ToCartItemResponse(r *entity.Reservation) CartItemResponse {
	return CartItemResponse{
		ID:         r.ID,
		ProductID:  r.ProductID,
		LocationID: r.LocationID,
		Quantity:   r.Quantity,
		ExpiresAt:  r.ExpiresAt,
	}
}

// ToCartItemResponses maps a cart.
func ToCartItemResponses(items []*entity.Reservation) []CartItemResponse {
	out := make([]CartItemResponse, 0, len(items))
	for _, r := range items {
		out = append(out, ToCartItemResponse(r))
	}
	return out
}
