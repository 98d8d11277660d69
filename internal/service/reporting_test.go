package service

import (
	"context"
	"testing"
	"time"

	"shop-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportingFixtures() (*fakeOrders, *fakeCatalog, *fakeShops, *fakeBills, *fakeCustomers) {
	now := time.Now()
	yesterday := now.Add(-48 * time.Hour)

	orders := &fakeOrders{orders: []models.Order{
		{ID: 1, ShopID: 7, Status: models.OrderStatusCompleted, TotalAmount: decimal.RequireFromString("25.00"), CreatedAt: now},
		{ID: 2, ShopID: 7, Status: models.OrderStatusPending, TotalAmount: decimal.RequireFromString("10.50"), CreatedAt: now},
		{ID: 3, ShopID: 7, Status: models.OrderStatusCompleted, TotalAmount: decimal.RequireFromString("40.00"), CreatedAt: yesterday},
		{ID: 4, ShopID: 8, Status: models.OrderStatusProcessing, TotalAmount: decimal.RequireFromString("99.99"), CreatedAt: now},
	}}

	catalog := &fakeCatalog{products: map[int64]models.Product{
		1: {ID: 1, ShopID: 7, Stock: 0, ReorderLevel: 5, IsActive: true},
		2: {ID: 2, ShopID: 7, Stock: 2, ReorderLevel: 5, IsActive: true},
		3: {ID: 3, ShopID: 7, Stock: 50, ReorderLevel: 5, IsActive: true},
		4: {ID: 4, ShopID: 8, Stock: 3, ReorderLevel: 4, IsActive: true},
	}}

	shops := &fakeShops{shops: map[int64]models.Shop{
		7: {ID: 7, Name: "Sunrise Dairy", Type: models.ShopTypeDairy},
		8: {ID: 8, Name: "Prime Cuts", Type: models.ShopTypeMeat},
	}}

	return orders, catalog, shops, &fakeBills{}, &fakeCustomers{}
}

func TestDashboardStatsSingleShop(t *testing.T) {
	orders, catalog, shops, bills, customers := reportingFixtures()
	svc := NewReportingService(orders, catalog, shops, bills, customers, nil, 0)

	stats, err := svc.DashboardStats(context.Background(), ShopScope(7))
	require.NoError(t, err)

	assert.Equal(t, "Sunrise Dairy", stats.ShopName)
	assert.Equal(t, models.ShopTypeDairy, stats.ShopType)
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, "75.50", stats.TotalRevenue.StringFixed(2))

	// Out-of-stock products are not low stock.
	assert.Equal(t, 1, stats.LowStockCount)

	// The daily view only sees orders since local midnight.
	assert.Equal(t, 2, stats.OrdersToday)
	assert.Equal(t, "35.50", stats.ProfitToday.StringFixed(2))
	assert.Zero(t, stats.TotalShops)
}

func TestDashboardStatsAllShops(t *testing.T) {
	orders, catalog, shops, bills, customers := reportingFixtures()
	svc := NewReportingService(orders, catalog, shops, bills, customers, nil, 0)

	stats, err := svc.DashboardStats(context.Background(), AllShopsScope())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalShops)
	assert.Equal(t, 4, stats.TotalProducts)
	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, "175.49", stats.TotalRevenue.StringFixed(2))
	assert.Equal(t, 2, stats.LowStockCount)
	assert.Zero(t, stats.OrdersToday)
	assert.Empty(t, stats.ShopName)
}

func TestDashboardStatsDeterministic(t *testing.T) {
	orders, catalog, shops, bills, customers := reportingFixtures()
	svc := NewReportingService(orders, catalog, shops, bills, customers, nil, 0)
	ctx := context.Background()

	first, err := svc.DashboardStats(ctx, ShopScope(7))
	require.NoError(t, err)
	second, err := svc.DashboardStats(ctx, ShopScope(7))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDashboardStatsUnknownShop(t *testing.T) {
	orders, catalog, shops, bills, customers := reportingFixtures()
	svc := NewReportingService(orders, catalog, shops, bills, customers, nil, 0)

	_, err := svc.DashboardStats(context.Background(), ShopScope(404))
	require.Error(t, err)
	assert.Equal(t, KindNotFound, ErrorKind(err))
}

func TestFilterOrders(t *testing.T) {
	orders, catalog, shops, bills, customers := reportingFixtures()
	svc := NewReportingService(orders, catalog, shops, bills, customers, nil, 0)
	ctx := context.Background()

	all, err := svc.FilterOrders(ctx, ShopScope(7), models.StatusAll)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	completed, err := svc.FilterOrders(ctx, ShopScope(7), models.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	pending, err := svc.FilterOrders(ctx, ShopScope(7), models.OrderStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(2), pending[0].ID)
}

func TestFilterOrdersUnknownStatus(t *testing.T) {
	orders, catalog, shops, bills, customers := reportingFixtures()
	svc := NewReportingService(orders, catalog, shops, bills, customers, nil, 0)

	_, err := svc.FilterOrders(context.Background(), ShopScope(7), "shipped")
	require.Error(t, err)
	assert.Equal(t, KindValidation, ErrorKind(err))
}

func TestCustomerPurchaseSummary(t *testing.T) {
	orders, catalog, shops, _, customers := reportingFixtures()

	customers.customers = []models.Customer{
		{ID: 1, ShopID: 7, Name: "Asha Patel", Phone: "555-0101"},
		{ID: 2, ShopID: 7, Name: "Ben Ochoa", Phone: "555-0102"},
	}

	older := time.Now().Add(-72 * time.Hour)
	newer := time.Now().Add(-time.Hour)
	bills := &fakeBills{created: []models.Bill{
		{ID: 1, ShopID: 7, CustomerID: 1, Total: decimal.RequireFromString("16.47"), CreatedAt: older},
		{ID: 2, ShopID: 7, CustomerID: 1, Total: decimal.RequireFromString("10.00"), CreatedAt: newer},
	}}

	svc := NewReportingService(orders, catalog, shops, bills, customers, nil, 0)

	summary, err := svc.CustomerPurchaseSummary(context.Background(), ShopScope(7))
	require.NoError(t, err)
	require.Len(t, summary, 2)

	asha := summary[1]
	assert.Equal(t, 2, asha.Bills)
	assert.Equal(t, "26.47", asha.Total.StringFixed(2))
	require.NotNil(t, asha.LastPurchase)
	assert.True(t, asha.LastPurchase.Equal(newer))

	ben := summary[2]
	assert.Zero(t, ben.Bills)
	assert.True(t, ben.Total.IsZero())
	assert.Nil(t, ben.LastPurchase)
}

func TestInvalidateDashboardWithoutCache(t *testing.T) {
	orders, catalog, shops, bills, customers := reportingFixtures()
	svc := NewReportingService(orders, catalog, shops, bills, customers, nil, 0)

	// No cache configured: must be a no-op, not a panic.
	svc.InvalidateDashboard(context.Background(), 7)
}
