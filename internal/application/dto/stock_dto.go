package dto

import (
	"time"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
)

// StockInputRequest body for POST /api/stock/entries.
type StockInputRequest struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Quantity   int64  `json:"quantity"`
}

// DecideStockEntryRequest body for POST /api/stock/entries/:id/decision.
type DecideStockEntryRequest struct {
	Decision string `json:"decision"` // approve | reject
	Notes    string `json:"notes,omitempty"`
}

// StockEntryResponse is one ledger entry.
type StockEntryResponse struct {
	ID         string     `json:"id"`
	ProductID  string     `json:"product_id"`
	LocationID string     `json:"location_id"`
	Quantity   int64      `json:"quantity"`
	Status     string     `json:"status"`
	InputBy    string     `json:"input_by"`
	ApprovedBy *string    `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToStockEntryResponse maps the entity.
func ToStockEntryResponse(e *entity.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		ID:         e.ID,
		ProductID:  e.ProductID,
		LocationID: e.LocationID,
		Quantity:   e.Quantity,
		Status:     e.Status,
		InputBy:    e.InputBy,
		ApprovedBy: e.ApprovedBy,
		ApprovedAt: e.ApprovedAt,
		CreatedAt:  e.CreatedAt,
	}
}

// ToStockEntryResponses maps a list.
func ToStockEntryResponses(list []*entity.StockEntry) []StockEntryResponse {
	out := make([]StockEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, ToStockEntryResponse(e))
	}
	return out
}
