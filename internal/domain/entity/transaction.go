package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction statuses. Completed transactions are immutable except for the
// approval-gated transition to deleted.
const (
	TxStatusCompleted = "completed"
	TxStatusCancelled = "cancelled"
	TxStatusDeleted   = "deleted"
)

// Transaction is a committed sale. Line items snapshot product name and unit
// price at checkout time; Total = Subtotal - Discount.
type Transaction struct {
	ID            string
	InvoiceNumber string // unique
	Actor         string
	LocationID    string
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	CashReceived  decimal.Decimal
	Change        decimal.Decimal
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []TransactionItem
}

// TransactionItem is one line of a sale, a value snapshot independent of later
// product changes.
type TransactionItem struct {
	ID          string
	TxID        string
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int64
	Subtotal    decimal.Decimal
}
