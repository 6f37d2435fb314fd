package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/catalog"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/infrastructure/memory"
)

const locationID = "loc-1"

func newUseCase(t *testing.T) (*catalog.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SeedLocation(entity.Location{ID: locationID, Code: "ST01", Name: "Store 01"})
	productRepo := memory.NewProductRepository(store)
	productRepo.Fold = catalog.Fold
	uc := catalog.NewUseCase(
		productRepo,
		memory.NewLocationRepository(store),
		memory.NewStockRepository(store),
		memory.NewReservationRepository(store),
		memory.NewApprovalRepository(store),
	)
	return uc, store
}

func TestCreateProduct(t *testing.T) {
	uc, _ := newUseCase(t)

	p, err := uc.CreateProduct(context.Background(), catalog.CreateProductInput{
		SKU: "  SKU-001 ", Name: " Instant Noodles ", Unit: "pcs",
		Price: decimal.NewFromInt(3500),
	})
	require.NoError(t, err)
	assert.Equal(t, "SKU-001", p.SKU)
	assert.Equal(t, "Instant Noodles", p.Name)
	assert.True(t, p.Active, "new products sell immediately")

	// Duplicate SKU collides.
	_, err = uc.CreateProduct(context.Background(), catalog.CreateProductInput{
		SKU: "SKU-001", Name: "Other", Price: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.CreateProduct(context.Background(), catalog.CreateProductInput{
		SKU: "SKU-002", Name: "Bad Price", Price: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearch_ExactIdentifierWins(t *testing.T) {
	uc, store := newUseCase(t)
	store.SeedProduct(entity.Product{
		ID: "p-1", SKU: "SKU-001", Barcode: "7701234567890",
		Name: "Café Molido", Price: decimal.NewFromInt(12000), Active: true,
	})
	store.SeedProduct(entity.Product{
		ID: "p-2", SKU: "SKU-002",
		Name: "Café en Grano", Price: decimal.NewFromInt(15000), Active: true,
	})
	store.SeedApprovedStock("p-1", locationID, 7)

	results, err := uc.Search(context.Background(), "7701234567890", locationID)
	require.NoError(t, err)
	require.Len(t, results, 1, "barcode match short-circuits the name search")
	assert.Equal(t, "p-1", results[0].Product.ID)
	assert.Equal(t, int64(7), results[0].Available)
}

func TestSearch_FoldedNameMatch(t *testing.T) {
	uc, store := newUseCase(t)
	store.SeedProduct(entity.Product{
		ID: "p-1", SKU: "SKU-001", Name: "Café Molido",
		Price: decimal.NewFromInt(12000), Active: true,
	})
	store.SeedProduct(entity.Product{
		ID: "p-2", SKU: "SKU-002", Name: "Té Verde",
		Price: decimal.NewFromInt(8000), Active: true,
	})

	// A diacritic-free lowercase query still finds the accented name.
	results, err := uc.Search(context.Background(), "cafe", locationID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "p-1", results[0].Product.ID)
	assert.Equal(t, int64(0), results[0].Available, "no approved stock yet")
}

func TestAvailability_CountsLiveHoldsAndPendingWithdrawals(t *testing.T) {
	uc, store := newUseCase(t)
	store.SeedProduct(entity.Product{
		ID: "p-1", SKU: "SKU-001", Name: "Instant Noodles",
		Price: decimal.NewFromInt(3500), Active: true,
	})
	store.SeedApprovedStock("p-1", locationID, 10)

	resRepo := memory.NewReservationRepository(store)
	require.NoError(t, resRepo.Create(context.Background(), &entity.Reservation{
		ID: uuid.New().String(), Owner: "alice", ProductID: "p-1", LocationID: locationID,
		Quantity: 4, ExpiresAt: time.Now().Add(30 * time.Minute),
	}))

	avail, err := uc.Availability(context.Background(), "p-1", locationID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), avail)
}

func TestLookup_ScanMissIsNotAnError(t *testing.T) {
	uc, store := newUseCase(t)
	store.SeedProduct(entity.Product{
		ID: "p-1", SKU: "SKU-001", Barcode: "7701234567890",
		Name: "Instant Noodles", Price: decimal.NewFromInt(3500), Active: true,
	})
	store.SeedApprovedStock("p-1", locationID, 5)

	result, found, err := uc.Lookup(context.Background(), "SKU-001", locationID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "p-1", result.Product.ID)
	assert.Equal(t, int64(5), result.Available)

	_, found, err = uc.Lookup(context.Background(), "9999999999999", locationID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCreateLocation(t *testing.T) {
	uc, _ := newUseCase(t)

	l, err := uc.CreateLocation(context.Background(), catalog.CreateLocationInput{
		Code: "WH01", Name: "Central Warehouse", Address: "Jl. Industri 4",
	})
	require.NoError(t, err)
	assert.Equal(t, "WH01", l.Code)

	_, err = uc.CreateLocation(context.Background(), catalog.CreateLocationInput{
		Code: "WH01", Name: "Duplicate Code",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.CreateLocation(context.Background(), catalog.CreateLocationInput{Name: "No Code"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	locations, err := uc.ListLocations(context.Background())
	require.NoError(t, err)
	assert.Len(t, locations, 2, "the seeded store plus the new warehouse")
}
