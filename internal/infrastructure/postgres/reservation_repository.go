package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo implements ReservationRepository over PostgreSQL (usable
// with pool or tx).
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository builds the cart line adapter. Pass pool or tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

const reservationColumns = `id, owner, product_id, location_id, quantity, created_at, updated_at, expires_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var res entity.Reservation
	err := row.Scan(
		&res.ID, &res.Owner, &res.ProductID, &res.LocationID, &res.Quantity,
		&res.CreatedAt, &res.UpdatedAt, &res.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Create inserts a cart line.
func (r *ReservationRepo) Create(ctx context.Context, res *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, owner, product_id, location_id, quantity, created_at, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, now(), now(), $6)`
	_, err := r.q.Exec(ctx, query, res.ID, res.Owner, res.ProductID, res.LocationID, res.Quantity, res.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

// GetByID returns one line, nil when absent.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	res, err := scanReservation(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

// GetOwnerLine returns the owner's line for the pair, nil when absent.
func (r *ReservationRepo) GetOwnerLine(ctx context.Context, owner, productID, locationID string) (*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE owner = $1 AND product_id = $2 AND location_id = $3`
	res, err := scanReservation(r.q.QueryRow(ctx, query, owner, productID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get owner reservation: %w", err)
	}
	return res, nil
}

// UpdateQuantity sets a line's quantity and refreshes its expiry.
func (r *ReservationRepo) UpdateQuantity(ctx context.Context, id string, qty int64, expiresAt time.Time) error {
	query := `UPDATE reservations SET quantity = $2, expires_at = $3, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, qty, expiresAt)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	return nil
}

// Delete removes one line.
func (r *ReservationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	return nil
}

// ListByOwnerLocation returns the owner's cart at one location.
func (r *ReservationRepo) ListByOwnerLocation(ctx context.Context, owner, locationID string) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE owner = $1 AND location_id = $2
		ORDER BY created_at`
	return r.queryList(ctx, query, owner, locationID)
}

// ListByOwnerLocationForUpdate is the same list with the rows locked for the
// duration of checkout.
func (r *ReservationRepo) ListByOwnerLocationForUpdate(ctx context.Context, owner, locationID string) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE owner = $1 AND location_id = $2
		ORDER BY created_at
		FOR UPDATE`
	return r.queryList(ctx, query, owner, locationID)
}

func (r *ReservationRepo) queryList(ctx context.Context, query string, args ...any) ([]*entity.Reservation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Reservation
	for rows.Next() {
		var res entity.Reservation
		if err := rows.Scan(&res.ID, &res.Owner, &res.ProductID, &res.LocationID, &res.Quantity,
			&res.CreatedAt, &res.UpdatedAt, &res.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, &res)
	}
	return list, rows.Err()
}

// DeleteByOwnerLocation clears the owner's cart at one location.
func (r *ReservationRepo) DeleteByOwnerLocation(ctx context.Context, owner, locationID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM reservations WHERE owner = $1 AND location_id = $2`, owner, locationID)
	if err != nil {
		return fmt.Errorf("clear reservations: %w", err)
	}
	return nil
}

// SumActiveByPair sums unexpired reservations for the pair, excluding
// excludeOwner's own lines when non-empty.
func (r *ReservationRepo) SumActiveByPair(ctx context.Context, productID, locationID, excludeOwner string, now time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM reservations
		WHERE product_id = $1 AND location_id = $2 AND expires_at > $3
		  AND ($4 = '' OR owner <> $4)`
	var sum int64
	if err := r.q.QueryRow(ctx, query, productID, locationID, now, excludeOwner).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum reservations: %w", err)
	}
	return sum, nil
}

// DeleteExpired removes rows past their TTL; returns how many were swept.
func (r *ReservationRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM reservations WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired reservations: %w", err)
	}
	return cmd.RowsAffected(), nil
}
