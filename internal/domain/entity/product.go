package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable SKU. Stock is tracked per location in StockEntry rows;
// Price is the current selling price and is snapshotted into transaction lines
// at checkout so later edits never alter history.
type Product struct {
	ID        string
	SKU       string // unique
	Barcode   string
	Name      string
	Unit      string
	Price     decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
