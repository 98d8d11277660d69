package service

import (
	"context"

	"shop-service/internal/models"
)

// The services depend on narrow repository interfaces rather than the
// concrete store so the calculation logic can be tested against
// in-memory fakes. *store.Store satisfies all of them.

// CatalogRepository exposes product records keyed by shop
type CatalogRepository interface {
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error)
	GetProductsByShop(ctx context.Context, shopID int64) ([]models.Product, error)
	GetAllProducts(ctx context.Context) ([]models.Product, error)
}

// CustomerRepository exposes and creates customer records keyed by shop
type CustomerRepository interface {
	FindCustomerByPhone(ctx context.Context, shopID int64, phone string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, c *models.Customer) error
}

// BillRepository persists bills atomically with their line items
type BillRepository interface {
	CreateBill(ctx context.Context, bill *models.Bill, items []models.BillItem) error
	GetBillsByCustomer(ctx context.Context, customerID int64) ([]models.Bill, error)
}

// OrderRepository exposes order records for reporting
type OrderRepository interface {
	GetOrdersByShop(ctx context.Context, shopID int64) ([]models.Order, error)
	GetAllOrders(ctx context.Context) ([]models.Order, error)
}

// ShopRepository exposes shop records for scope resolution
type ShopRepository interface {
	GetShopByID(ctx context.Context, id int64) (*models.Shop, error)
	GetAllShops(ctx context.Context) ([]models.Shop, error)
}

// Scope selects either a single shop or every shop (admin only)
type Scope struct {
	ShopID   int64
	AllShops bool
}

// ShopScope returns a scope limited to one shop
func ShopScope(shopID int64) Scope {
	return Scope{ShopID: shopID}
}

// AllShopsScope returns the admin-wide scope
func AllShopsScope() Scope {
	return Scope{AllShops: true}
}
