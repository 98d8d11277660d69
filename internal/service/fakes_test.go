package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"shop-service/internal/models"
)

// In-memory fakes for the repository interfaces.

type fakeCatalog struct {
	products map[int64]models.Product
}

func (f *fakeCatalog) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, errors.New("product not found")
	}
	return &p, nil
}

func (f *fakeCatalog) GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetProductsByShop(ctx context.Context, shopID int64) ([]models.Product, error) {
	out := make([]models.Product, 0)
	for _, p := range f.products {
		if p.ShopID == shopID && p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCatalog) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeCustomers struct {
	customers []models.Customer
	nextID    int64
	created   int

	// raceWinner simulates losing a concurrent create: CreateCustomer
	// inserts the winner and fails, so the caller must re-query.
	raceWinner *models.Customer
}

func (f *fakeCustomers) FindCustomerByPhone(ctx context.Context, shopID int64, phone string) (*models.Customer, error) {
	for i := range f.customers {
		if f.customers[i].ShopID == shopID && f.customers[i].Phone == phone {
			c := f.customers[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomers) CreateCustomer(ctx context.Context, c *models.Customer) error {
	if f.raceWinner != nil {
		f.customers = append(f.customers, *f.raceWinner)
		f.raceWinner = nil
		return errors.New("duplicate key value violates unique constraint")
	}
	f.nextID++
	c.ID = f.nextID
	c.IsActive = true
	c.CreatedAt = time.Now()
	f.customers = append(f.customers, *c)
	f.created++
	return nil
}

func (f *fakeCustomers) GetCustomersByShop(ctx context.Context, shopID int64) ([]models.Customer, error) {
	out := make([]models.Customer, 0)
	for _, c := range f.customers {
		if c.ShopID == shopID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCustomers) GetAllCustomers(ctx context.Context) ([]models.Customer, error) {
	return append([]models.Customer(nil), f.customers...), nil
}

type fakeBills struct {
	created []models.Bill
	items   map[int64][]models.BillItem
	nextID  int64
	failErr error
}

func (f *fakeBills) CreateBill(ctx context.Context, bill *models.Bill, items []models.BillItem) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.nextID++
	bill.ID = f.nextID
	bill.CreatedAt = time.Now()
	f.created = append(f.created, *bill)
	if f.items == nil {
		f.items = make(map[int64][]models.BillItem)
	}
	f.items[bill.ID] = append([]models.BillItem(nil), items...)
	return nil
}

func (f *fakeBills) GetBillsByCustomer(ctx context.Context, customerID int64) ([]models.Bill, error) {
	out := make([]models.Bill, 0)
	for _, b := range f.created {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeOrders struct {
	orders []models.Order
}

func (f *fakeOrders) GetOrdersByShop(ctx context.Context, shopID int64) ([]models.Order, error) {
	out := make([]models.Order, 0)
	for _, o := range f.orders {
		if o.ShopID == shopID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return append([]models.Order(nil), f.orders...), nil
}

type fakeShops struct {
	shops map[int64]models.Shop
}

func (f *fakeShops) GetShopByID(ctx context.Context, id int64) (*models.Shop, error) {
	s, ok := f.shops[id]
	if !ok {
		return nil, errors.New("shop not found")
	}
	return &s, nil
}

func (f *fakeShops) GetAllShops(ctx context.Context) ([]models.Shop, error) {
	out := make([]models.Shop, 0, len(f.shops))
	for _, s := range f.shops {
		out = append(out, s)
	}
	return out, nil
}

type fakeOrderStore struct {
	orders map[int64]models.Order
	nextID int64
}

func (f *fakeOrderStore) CreateOrder(ctx context.Context, order *models.Order) error {
	f.nextID++
	order.ID = f.nextID
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	if f.orders == nil {
		f.orders = make(map[int64]models.Order)
	}
	f.orders[order.ID] = *order
	return nil
}

func (f *fakeOrderStore) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, errors.New("order not found")
	}
	return &o, nil
}

func (f *fakeOrderStore) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	o, ok := f.orders[orderID]
	if !ok {
		return errors.New("order not found")
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	f.orders[orderID] = o
	return nil
}
