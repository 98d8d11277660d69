package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shop-service/internal/models"
	"shop-service/internal/redisclient"
	"shop-service/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportingService folds raw order and bill collections into
// dashboard-ready summaries. Given a fixed snapshot it is a pure
// function; the Redis cache only short-circuits recomputation.
type ReportingService struct {
	orders    OrderRepository
	catalog   CatalogRepository
	shops     ShopRepository
	bills     BillRepository
	customers CustomerDirectory
	cache     *redisclient.Client
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// CustomerDirectory lists customers for purchase summaries
type CustomerDirectory interface {
	GetCustomersByShop(ctx context.Context, shopID int64) ([]models.Customer, error)
	GetAllCustomers(ctx context.Context) ([]models.Customer, error)
}

// NewReportingService creates a new reporting service. cache may be nil.
func NewReportingService(
	orders OrderRepository,
	catalog CatalogRepository,
	shops ShopRepository,
	bills BillRepository,
	customers CustomerDirectory,
	cache *redisclient.Client,
	cacheTTL time.Duration,
) *ReportingService {
	return &ReportingService{
		orders:    orders,
		catalog:   catalog,
		shops:     shops,
		bills:     bills,
		customers: customers,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    util.GetLogger(),
	}
}

// DashboardStats summarizes a scope for the dashboard cards.
// TotalShops is only populated for the all-shops view; OrdersToday and
// ProfitToday only for the single-shop view.
type DashboardStats struct {
	TotalShops    int             `json:"total_shops,omitempty"`
	ShopName      string          `json:"shop_name,omitempty"`
	ShopType      string          `json:"shop_type,omitempty"`
	TotalProducts int             `json:"total_products"`
	TotalOrders   int             `json:"total_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	LowStockCount int             `json:"low_stock_count"`
	OrdersToday   int             `json:"orders_today,omitempty"`
	ProfitToday   decimal.Decimal `json:"profit_today"`
}

// DashboardStats computes the summary for a scope, consulting the cache
// first when one is configured.
func (s *ReportingService) DashboardStats(ctx context.Context, scope Scope) (*DashboardStats, error) {
	ctx, span := util.StartSpan(ctx, "ReportingService.DashboardStats")
	defer span.End()

	cacheKey := dashboardCacheKey(scope)
	if s.cache != nil {
		if raw, err := s.cache.GetCached(ctx, cacheKey); err == nil && raw != nil {
			var stats DashboardStats
			if err := json.Unmarshal(raw, &stats); err == nil {
				util.DashboardCacheHits.Inc()
				return &stats, nil
			}
		}
		util.DashboardCacheMisses.Inc()
	}

	stats, err := s.computeStats(ctx, scope)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.SetCached(ctx, cacheKey, raw, s.cacheTTL); err != nil {
				s.logger.Warn("Failed to cache dashboard stats", zap.Error(err))
			}
		}
	}

	return stats, nil
}

func (s *ReportingService) computeStats(ctx context.Context, scope Scope) (*DashboardStats, error) {
	products, err := s.productsInScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	orders, err := s.ordersInScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	lowStock := 0
	for _, p := range products {
		if Classify(&p) == models.StockLow {
			lowStock++
		}
	}

	revenue := decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(o.TotalAmount)
	}

	stats := &DashboardStats{
		TotalProducts: len(products),
		TotalOrders:   len(orders),
		TotalRevenue:  revenue,
		LowStockCount: lowStock,
		ProfitToday:   decimal.Zero,
	}

	if scope.AllShops {
		shops, err := s.shops.GetAllShops(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list shops: %w", err)
		}
		stats.TotalShops = len(shops)
		return stats, nil
	}

	shop, err := s.shops.GetShopByID(ctx, scope.ShopID)
	if err != nil {
		return nil, NewNotFoundError("shop not found: %d", scope.ShopID)
	}
	stats.ShopName = shop.Name
	stats.ShopType = shop.Type

	// Daily view: orders on or after local midnight.
	midnight := localMidnight(time.Now())
	for _, o := range orders {
		if !o.CreatedAt.Before(midnight) {
			stats.OrdersToday++
			stats.ProfitToday = stats.ProfitToday.Add(o.TotalAmount)
		}
	}

	return stats, nil
}

// FilterOrders returns orders in scope matching status, or every order
// in scope for the "all" wildcard.
func (s *ReportingService) FilterOrders(ctx context.Context, scope Scope, status string) ([]models.Order, error) {
	ctx, span := util.StartSpan(ctx, "ReportingService.FilterOrders")
	defer span.End()

	if status != models.StatusAll && !models.IsValidOrderStatus(status) {
		return nil, NewValidationError("unknown order status: %s", status)
	}

	orders, err := s.ordersInScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	if status == models.StatusAll {
		return orders, nil
	}

	matched := make([]models.Order, 0)
	for _, o := range orders {
		if o.Status == status {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

// CustomerPurchases summarizes billing history per customer in scope
type CustomerPurchases struct {
	Bills        int             `json:"bills"`
	Total        decimal.Decimal `json:"total"`
	LastPurchase *time.Time      `json:"last_purchase,omitempty"`
}

// CustomerPurchaseSummary folds each customer's bills into a count,
// lifetime total and last purchase timestamp.
func (s *ReportingService) CustomerPurchaseSummary(ctx context.Context, scope Scope) (map[int64]CustomerPurchases, error) {
	ctx, span := util.StartSpan(ctx, "ReportingService.CustomerPurchaseSummary")
	defer span.End()

	var customers []models.Customer
	var err error
	if scope.AllShops {
		customers, err = s.customers.GetAllCustomers(ctx)
	} else {
		customers, err = s.customers.GetCustomersByShop(ctx, scope.ShopID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	summary := make(map[int64]CustomerPurchases, len(customers))
	for _, customer := range customers {
		bills, err := s.bills.GetBillsByCustomer(ctx, customer.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list bills for customer %d: %w", customer.ID, err)
		}

		entry := CustomerPurchases{Total: decimal.Zero}
		for _, bill := range bills {
			entry.Bills++
			entry.Total = entry.Total.Add(bill.Total)
			if entry.LastPurchase == nil || bill.CreatedAt.After(*entry.LastPurchase) {
				t := bill.CreatedAt
				entry.LastPurchase = &t
			}
		}
		summary[customer.ID] = entry
	}

	return summary, nil
}

// InvalidateDashboard drops cached stats for a shop and the all-shops
// view after a write.
func (s *ReportingService) InvalidateDashboard(ctx context.Context, shopID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, dashboardCacheKey(ShopScope(shopID)), dashboardCacheKey(AllShopsScope())); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", zap.Error(err))
	}
}

func (s *ReportingService) productsInScope(ctx context.Context, scope Scope) ([]models.Product, error) {
	if scope.AllShops {
		products, err := s.catalog.GetAllProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}
		return products, nil
	}
	products, err := s.catalog.GetProductsByShop(ctx, scope.ShopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shop products: %w", err)
	}
	return products, nil
}

func (s *ReportingService) ordersInScope(ctx context.Context, scope Scope) ([]models.Order, error) {
	if scope.AllShops {
		orders, err := s.orders.GetAllOrders(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list orders: %w", err)
		}
		return orders, nil
	}
	orders, err := s.orders.GetOrdersByShop(ctx, scope.ShopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shop orders: %w", err)
	}
	return orders, nil
}

func dashboardCacheKey(scope Scope) string {
	if scope.AllShops {
		return "dashboard:all"
	}
	return fmt.Sprintf("dashboard:shop:%d", scope.ShopID)
}

func localMidnight(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}
