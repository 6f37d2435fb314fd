package entity

import "time"

// Location is a store or warehouse holding stock.
type Location struct {
	ID        string
	Code      string // unique
	Name      string
	Address   string
	CreatedAt time.Time
}
