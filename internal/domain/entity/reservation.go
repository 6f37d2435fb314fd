package entity

import "time"

// Reservation is a cart line: quantity held by one owner at one location but
// not yet committed. Unique per (owner, product, location) — repeated adds
// increment the row. ExpiresAt bounds abandoned carts; expired rows stop
// counting against availability even before the sweeper removes them.
type Reservation struct {
	ID         string
	Owner      string
	ProductID  string
	LocationID string
	Quantity   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ExpiresAt  time.Time
}

// Expired reports whether the reservation has passed its TTL at the given instant.
func (r *Reservation) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
