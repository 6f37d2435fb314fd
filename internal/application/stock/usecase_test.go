package stock_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/stock"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/infrastructure/memory"
)

const (
	productID  = "prod-1"
	locationID = "loc-1"
)

var (
	warehouseClerk = entity.Actor{ID: "u-clerk", Username: "willy", Role: entity.RoleCashier}
	supervisor     = entity.Actor{ID: "u-sup", Username: "sonia", Role: entity.RoleSupervisor}
)

func newUseCase(t *testing.T) (*stock.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SeedProduct(entity.Product{
		ID: productID, SKU: "SKU-001", Name: "Instant Noodles",
		Unit: "pcs", Price: decimal.NewFromInt(3500), Active: true,
	})
	store.SeedLocation(entity.Location{ID: locationID, Code: "ST01", Name: "Store 01"})
	uc := stock.NewUseCase(
		memory.NewTxRunner(store),
		memory.NewStockRepository(store),
		memory.NewProductRepository(store),
		memory.NewLocationRepository(store),
	)
	return uc, store
}

func TestInputEntry_CreatesPendingWithAudit(t *testing.T) {
	uc, store := newUseCase(t)

	entry, err := uc.InputEntry(context.Background(), productID, locationID, 40, warehouseClerk)
	require.NoError(t, err)
	assert.Equal(t, entity.StockStatusPending, entry.Status)
	assert.Equal(t, warehouseClerk.Username, entry.InputBy)

	trail, err := memory.NewAuditRepository(store).Query(
		context.Background(), entity.SubjectStockEntry, entry.ID, "")
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, entity.AuditSubmitted, trail[0].Action)
	assert.Equal(t, warehouseClerk.Username, trail[0].Actor)

	total, err := memory.NewStockRepository(store).SumApproved(context.Background(), productID, locationID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total, "pending stock is not sellable")
}

func TestInputEntry_Validation(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	_, err := uc.InputEntry(ctx, productID, locationID, 0, warehouseClerk)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.InputEntry(ctx, productID, locationID, -3, warehouseClerk)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.InputEntry(ctx, uuid.New().String(), locationID, 5, warehouseClerk)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.InputEntry(ctx, productID, uuid.New().String(), 5, warehouseClerk)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecideEntry_ApproveMakesStockSellable(t *testing.T) {
	uc, store := newUseCase(t)
	entry, err := uc.InputEntry(context.Background(), productID, locationID, 40, warehouseClerk)
	require.NoError(t, err)

	decided, err := uc.DecideEntry(context.Background(), entry.ID, supervisor, true, "counted and matched")
	require.NoError(t, err)
	assert.Equal(t, entity.StockStatusApproved, decided.Status)

	total, err := memory.NewStockRepository(store).SumApproved(context.Background(), productID, locationID)
	require.NoError(t, err)
	assert.Equal(t, int64(40), total)

	trail, err := memory.NewAuditRepository(store).Query(
		context.Background(), entity.SubjectStockEntry, entry.ID, "")
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, entity.AuditApproved, trail[1].Action)
	assert.Equal(t, "counted and matched", trail[1].Notes)
}

func TestDecideEntry_RejectKeepsStockOut(t *testing.T) {
	uc, store := newUseCase(t)
	entry, err := uc.InputEntry(context.Background(), productID, locationID, 40, warehouseClerk)
	require.NoError(t, err)

	decided, err := uc.DecideEntry(context.Background(), entry.ID, supervisor, false, "delivery count off by one box")
	require.NoError(t, err)
	assert.Equal(t, entity.StockStatusRejected, decided.Status)

	total, err := memory.NewStockRepository(store).SumApproved(context.Background(), productID, locationID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestDecideEntry_RoleGate(t *testing.T) {
	uc, _ := newUseCase(t)
	entry, err := uc.InputEntry(context.Background(), productID, locationID, 40, warehouseClerk)
	require.NoError(t, err)

	_, err = uc.DecideEntry(context.Background(), entry.ID, warehouseClerk, true, "")
	var unauth *domain.UnauthorizedError
	require.ErrorAs(t, err, &unauth)
	assert.Contains(t, unauth.Required, entity.RoleSupervisor)
}

func TestDecideEntry_TerminalEntryCannotBeDecidedAgain(t *testing.T) {
	uc, _ := newUseCase(t)
	entry, err := uc.InputEntry(context.Background(), productID, locationID, 40, warehouseClerk)
	require.NoError(t, err)

	_, err = uc.DecideEntry(context.Background(), entry.ID, supervisor, false, "")
	require.NoError(t, err)

	_, err = uc.DecideEntry(context.Background(), entry.ID, supervisor, true, "second look")
	var invalid *domain.InvalidStateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, entity.StockStatusRejected, invalid.Status)
}

func TestListEntries_FiltersByStatus(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	first, err := uc.InputEntry(ctx, productID, locationID, 10, warehouseClerk)
	require.NoError(t, err)
	_, err = uc.InputEntry(ctx, productID, locationID, 20, warehouseClerk)
	require.NoError(t, err)
	_, err = uc.DecideEntry(ctx, first.ID, supervisor, true, "")
	require.NoError(t, err)

	pending, err := uc.ListEntries(ctx, productID, locationID, entity.StockStatusPending, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(20), pending[0].Quantity)

	all, err := uc.ListEntries(ctx, productID, locationID, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
