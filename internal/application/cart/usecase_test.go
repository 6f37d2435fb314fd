package cart_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/cart"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/infrastructure/memory"
)

const (
	productID  = "10000000-0000-0000-0000-000000000001"
	locationID = "20000000-0000-0000-0000-000000000001"
)

func newCartFixture(t *testing.T, approvedStock int64) (*cart.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SeedProduct(entity.Product{
		ID: productID, SKU: "SKU-001", Name: "Instant Noodles",
		Price: decimal.NewFromInt(3500), Active: true,
	})
	store.SeedLocation(entity.Location{ID: locationID, Code: "ST01", Name: "Main Store"})
	if approvedStock > 0 {
		store.SeedApprovedStock(productID, locationID, approvedStock)
	}
	uc := cart.NewUseCase(
		memory.NewReservationRepository(store),
		memory.NewStockRepository(store),
		memory.NewApprovalRepository(store),
		memory.NewProductRepository(store),
		30*time.Minute,
	)
	return uc, store
}

func TestAdd_ReservesWithinAvailability(t *testing.T) {
	uc, _ := newCartFixture(t, 10)

	line, err := uc.Add(context.Background(), "alice", productID, locationID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), line.Quantity)
	assert.Equal(t, "alice", line.Owner)
	assert.True(t, line.ExpiresAt.After(time.Now()), "new line carries a future expiry")
}

func TestAdd_IncrementsExistingLine(t *testing.T) {
	uc, _ := newCartFixture(t, 10)

	first, err := uc.Add(context.Background(), "alice", productID, locationID, 3)
	require.NoError(t, err)
	second, err := uc.Add(context.Background(), "alice", productID, locationID, 2)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same pair increments the line, no duplicate")
	assert.Equal(t, int64(5), second.Quantity)

	items, err := uc.List(context.Background(), "alice", locationID)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestAdd_FailsLoudlyWithRemainingCount(t *testing.T) {
	// Ten units, two cashiers: A holds 6, B holds 4. B asking for one more
	// must fail reporting zero left, and A raising to 7 must fail too.
	uc, _ := newCartFixture(t, 10)
	ctx := context.Background()

	_, err := uc.Add(ctx, "cashier-a", productID, locationID, 6)
	require.NoError(t, err)
	_, err = uc.Add(ctx, "cashier-b", productID, locationID, 4)
	require.NoError(t, err)

	_, err = uc.Add(ctx, "cashier-b", productID, locationID, 1)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(0), insufficient.Available, "the error reports what is actually left")

	_, err = uc.Add(ctx, "cashier-a", productID, locationID, 1)
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(0), insufficient.Available)
}

func TestAdd_NeverTruncatesRequestedQuantity(t *testing.T) {
	uc, _ := newCartFixture(t, 5)

	_, err := uc.Add(context.Background(), "alice", productID, locationID, 8)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(5), insufficient.Available)

	items, err := uc.List(context.Background(), "alice", locationID)
	require.NoError(t, err)
	assert.Empty(t, items, "a failed add must not hold anything")
}

func TestAdd_InactiveProductRejected(t *testing.T) {
	uc, store := newCartFixture(t, 10)
	store.SeedProduct(entity.Product{
		ID: "inactive-1", SKU: "SKU-DEAD", Name: "Discontinued",
		Price: decimal.NewFromInt(100), Active: false,
	})

	_, err := uc.Add(context.Background(), "alice", "inactive-1", locationID, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdd_ReplacesExpiredLine(t *testing.T) {
	_, store := newCartFixture(t, 10)
	ctx := context.Background()

	// First add with a negative TTL: the line is born expired.
	expiredUC := cart.NewUseCase(
		memory.NewReservationRepository(store),
		memory.NewStockRepository(store),
		memory.NewApprovalRepository(store),
		memory.NewProductRepository(store),
		-time.Minute,
	)
	stale, err := expiredUC.Add(ctx, "alice", productID, locationID, 9)
	require.NoError(t, err)
	require.True(t, stale.Expired(time.Now()))

	// A later add on the same pair replaces the stale hold instead of
	// extending it, and the stale quantity does not count against the check.
	liveUC := cart.NewUseCase(
		memory.NewReservationRepository(store),
		memory.NewStockRepository(store),
		memory.NewApprovalRepository(store),
		memory.NewProductRepository(store),
		30*time.Minute,
	)
	fresh, err := liveUC.Add(ctx, "alice", productID, locationID, 4)
	require.NoError(t, err)
	assert.NotEqual(t, stale.ID, fresh.ID, "expired line is replaced, not extended")
	assert.Equal(t, int64(4), fresh.Quantity)
}

func TestUpdate_ChecksAgainstOthersOnly(t *testing.T) {
	uc, _ := newCartFixture(t, 10)
	ctx := context.Background()

	line, err := uc.Add(ctx, "alice", productID, locationID, 6)
	require.NoError(t, err)

	// Raising to 10 is fine: nobody else holds anything.
	updated, err := uc.Update(ctx, "alice", line.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), updated.Quantity)

	_, err = uc.Update(ctx, "alice", line.ID, 11)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(10), insufficient.Available)
}

func TestUpdate_ForeignLineIsNotFound(t *testing.T) {
	uc, _ := newCartFixture(t, 10)
	ctx := context.Background()

	line, err := uc.Add(ctx, "alice", productID, locationID, 2)
	require.NoError(t, err)

	_, err = uc.Update(ctx, "mallory", line.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound, "owners cannot touch each other's lines")
	err = uc.Remove(ctx, "mallory", line.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveAndClear(t *testing.T) {
	uc, _ := newCartFixture(t, 10)
	ctx := context.Background()

	line, err := uc.Add(ctx, "alice", productID, locationID, 2)
	require.NoError(t, err)
	require.NoError(t, uc.Remove(ctx, "alice", line.ID))

	_, err = uc.Add(ctx, "alice", productID, locationID, 3)
	require.NoError(t, err)
	require.NoError(t, uc.Clear(ctx, "alice", locationID))

	items, err := uc.List(ctx, "alice", locationID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSweeper_RemovesExpiredRows(t *testing.T) {
	store := memory.NewStore()
	resRepo := memory.NewReservationRepository(store)
	ctx := context.Background()
	require.NoError(t, resRepo.Create(ctx, &entity.Reservation{
		ID: "r1", Owner: "alice", ProductID: productID, LocationID: locationID,
		Quantity: 2, ExpiresAt: time.Now().Add(-time.Minute),
	}))
	require.NoError(t, resRepo.Create(ctx, &entity.Reservation{
		ID: "r2", Owner: "bob", ProductID: productID, LocationID: locationID,
		Quantity: 3, ExpiresAt: time.Now().Add(time.Hour),
	}))

	n, err := resRepo.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	left, err := resRepo.GetByID(ctx, "r2")
	require.NoError(t, err)
	assert.NotNil(t, left, "live rows survive the sweep")
}

func TestAdd_InvalidInput(t *testing.T) {
	uc, _ := newCartFixture(t, 10)
	_, err := uc.Add(context.Background(), "alice", productID, locationID, 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = uc.Add(context.Background(), "", productID, locationID, 1)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
