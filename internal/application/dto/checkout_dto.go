package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
)

// CheckoutRequest body for POST /api/checkout.
type CheckoutRequest struct {
	LocationID   string          `json:"location_id"`
	Discount     decimal.Decimal `json:"discount"`
	CashReceived decimal.Decimal `json:"cash_received"`
}

// TransactionItemResponse is one line of a sale.
type TransactionItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// TransactionResponse is a committed sale.
type TransactionResponse struct {
	ID            string                    `json:"id"`
	InvoiceNumber string                    `json:"invoice_number"`
	Actor         string                    `json:"actor"`
	LocationID    string                    `json:"location_id"`
	Subtotal      decimal.Decimal           `json:"subtotal"`
	Discount      decimal.Decimal           `json:"discount"`
	Total         decimal.Decimal           `json:"total"`
	CashReceived  decimal.Decimal           `json:"cash_received"`
	Change        decimal.Decimal           `json:"change"`
	Status        string                    `json:"status"`
	CreatedAt     time.Time                 `json:"created_at"`
	Items         []TransactionItemResponse `json:"items"`
}

// ToTransactionResponse maps the entity.
func ToTransactionResponse(tx *entity.Transaction) TransactionResponse {
	items := make([]TransactionItemResponse, 0, len(tx.Items))
	for _, it := range tx.Items {
		items = append(items, TransactionItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal,
		})
	}
	return TransactionResponse{
		ID:            tx.ID,
		InvoiceNumber: tx.InvoiceNumber,
		Actor:         tx.Actor,
		LocationID:    tx.LocationID,
		Subtotal:      tx.Subtotal,
		Discount:      tx.Discount,
		Total:         tx.Total,
		CashReceived:  tx.CashReceived,
		Change:        tx.Change,
		Status:        tx.Status,
		CreatedAt:     tx.CreatedAt,
		Items:         items,
	}
}
