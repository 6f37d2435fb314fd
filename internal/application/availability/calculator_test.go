package availability_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/availability"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/infrastructure/memory"
)

const (
	productID  = "00000000-0000-0000-0000-0000000000aa"
	locationID = "00000000-0000-0000-0000-0000000000bb"
)

func reserve(t *testing.T, store *memory.Store, owner string, qty int64, expiresAt time.Time) {
	t.Helper()
	repo := memory.NewReservationRepository(store)
	err := repo.Create(context.Background(), &entity.Reservation{
		ID:         uuid.New().String(),
		Owner:      owner,
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   qty,
		ExpiresAt:  expiresAt,
	})
	require.NoError(t, err)
}

func TestAvailable_OnlyApprovedEntriesCount(t *testing.T) {
	store := memory.NewStore()
	store.SeedApprovedStock(productID, locationID, 10)
	stockRepo := memory.NewStockRepository(store)
	require.NoError(t, stockRepo.CreateEntry(context.Background(), &entity.StockEntry{
		ID: uuid.New().String(), ProductID: productID, LocationID: locationID,
		Quantity: 50, Status: entity.StockStatusPending, InputBy: "warehouse",
	}))

	avail, err := availability.Available(context.Background(),
		stockRepo, memory.NewReservationRepository(store), memory.NewApprovalRepository(store),
		productID, locationID, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(10), avail, "pending entries must not count")
}

func TestAvailable_SubtractsLiveReservations(t *testing.T) {
	store := memory.NewStore()
	store.SeedApprovedStock(productID, locationID, 10)
	now := time.Now()
	reserve(t, store, "alice", 3, now.Add(time.Hour))
	reserve(t, store, "bob", 4, now.Add(time.Hour))

	avail, err := availability.Available(context.Background(),
		memory.NewStockRepository(store), memory.NewReservationRepository(store), memory.NewApprovalRepository(store),
		productID, locationID, "", now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), avail)
}

func TestAvailable_ExpiredReservationsDoNotCount(t *testing.T) {
	store := memory.NewStore()
	store.SeedApprovedStock(productID, locationID, 10)
	now := time.Now()
	reserve(t, store, "alice", 8, now.Add(-time.Minute)) // already expired

	avail, err := availability.Available(context.Background(),
		memory.NewStockRepository(store), memory.NewReservationRepository(store), memory.NewApprovalRepository(store),
		productID, locationID, "", now)
	require.NoError(t, err)
	assert.Equal(t, int64(10), avail, "expired lines stop counting before the sweeper runs")
}

func TestAvailable_ExcludesOwnReservations(t *testing.T) {
	store := memory.NewStore()
	store.SeedApprovedStock(productID, locationID, 10)
	now := time.Now()
	reserve(t, store, "alice", 6, now.Add(time.Hour))
	reserve(t, store, "bob", 2, now.Add(time.Hour))

	avail, err := availability.Available(context.Background(),
		memory.NewStockRepository(store), memory.NewReservationRepository(store), memory.NewApprovalRepository(store),
		productID, locationID, "alice", now)
	require.NoError(t, err)
	assert.Equal(t, int64(8), avail, "the caller's own hold is not counted against them")
}

func TestAvailable_SubtractsPendingWithdrawals(t *testing.T) {
	store := memory.NewStore()
	entryID := store.SeedApprovedStock(productID, locationID, 10)
	apprRepo := memory.NewApprovalRepository(store)
	pid, lid := productID, locationID
	require.NoError(t, apprRepo.Create(context.Background(), &entity.ApprovalRequest{
		ID:          uuid.New().String(),
		Type:        entity.RequestStockAdjustment,
		SubjectID:   entryID,
		RequestedBy: "supervisor1",
		Payload:     []byte(`{"entry_id":"` + entryID + `","product_id":"` + pid + `","location_id":"` + lid + `","type":"subtract","quantity":4}`),
		Status:      entity.RequestStatusPending,
		ProductID:   &pid,
		LocationID:  &lid,
	}))

	avail, err := availability.Available(context.Background(),
		memory.NewStockRepository(store), memory.NewReservationRepository(store), apprRepo,
		productID, locationID, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(6), avail, "a pending withdrawal holds its quantity back")
}

func TestAvailable_SubtractsPendingSetBelow(t *testing.T) {
	store := memory.NewStore()
	entryID := store.SeedApprovedStock(productID, locationID, 10)
	apprRepo := memory.NewApprovalRepository(store)
	pid, lid := productID, locationID

	// A pending set to 3 writes 7 units off a 10-unit entry.
	require.NoError(t, apprRepo.Create(context.Background(), &entity.ApprovalRequest{
		ID:          uuid.New().String(),
		Type:        entity.RequestStockAdjustment,
		SubjectID:   entryID,
		RequestedBy: "supervisor1",
		Payload:     []byte(`{"entry_id":"` + entryID + `","product_id":"` + pid + `","location_id":"` + lid + `","type":"set","quantity":3}`),
		Status:      entity.RequestStatusPending,
		ProductID:   &pid,
		LocationID:  &lid,
	}))
	avail, err := availability.Available(context.Background(),
		memory.NewStockRepository(store), memory.NewReservationRepository(store), apprRepo,
		productID, locationID, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(3), avail, "stock about to be written down is not sellable")
}

func TestAvailable_PendingSetAboveWithdrawsNothing(t *testing.T) {
	store := memory.NewStore()
	entryID := store.SeedApprovedStock(productID, locationID, 10)
	apprRepo := memory.NewApprovalRepository(store)
	pid, lid := productID, locationID
	require.NoError(t, apprRepo.Create(context.Background(), &entity.ApprovalRequest{
		ID:          uuid.New().String(),
		Type:        entity.RequestStockAdjustment,
		SubjectID:   entryID,
		RequestedBy: "supervisor1",
		Payload:     []byte(`{"entry_id":"` + entryID + `","product_id":"` + pid + `","location_id":"` + lid + `","type":"set","quantity":15}`),
		Status:      entity.RequestStatusPending,
		ProductID:   &pid,
		LocationID:  &lid,
	}))

	avail, err := availability.Available(context.Background(),
		memory.NewStockRepository(store), memory.NewReservationRepository(store), apprRepo,
		productID, locationID, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(10), avail, "a pending increase holds nothing back")
}

func TestAvailable_FloorsAtZero(t *testing.T) {
	store := memory.NewStore()
	store.SeedApprovedStock(productID, locationID, 2)
	now := time.Now()
	reserve(t, store, "alice", 5, now.Add(time.Hour))

	avail, err := availability.Available(context.Background(),
		memory.NewStockRepository(store), memory.NewReservationRepository(store), memory.NewApprovalRepository(store),
		productID, locationID, "", now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), avail)
}
