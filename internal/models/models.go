package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents an account that can sign in (admin or shopkeeper)
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	Name         string    `db:"name" json:"name"`
	Phone        string    `db:"phone" json:"phone,omitempty"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// User roles
const (
	RoleAdmin      = "admin"
	RoleShopkeeper = "shopkeeper"
)

// Shop is a tenant storefront owned by one shopkeeper. All products,
// customers, orders and bills are scoped to a shop.
type Shop struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Type      string    `db:"type" json:"type"`
	OwnerID   int64     `db:"owner_id" json:"owner_id"`
	Address   string    `db:"address" json:"address,omitempty"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	Email     string    `db:"email" json:"email,omitempty"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Shop types
const (
	ShopTypeDairy   = "dairy"
	ShopTypeMeat    = "meat"
	ShopTypeGrocery = "grocery"
)

// Category groups products within a shop type
type Category struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	ShopType    string `db:"shop_type" json:"shop_type"`
	Description string `db:"description" json:"description,omitempty"`
	IsActive    bool   `db:"is_active" json:"is_active"`
}

// Product represents a catalog item. Price carries currency scale (2 dp).
// Stock is never negative; ReorderLevel is the low-stock threshold.
type Product struct {
	ID           int64           `db:"id" json:"id"`
	ShopID       int64           `db:"shop_id" json:"shop_id"`
	CategoryID   int64           `db:"category_id" json:"category_id,omitempty"`
	Name         string          `db:"name" json:"name"`
	SKU          string          `db:"sku" json:"sku"`
	Price        decimal.Decimal `db:"price" json:"price"`
	Stock        int             `db:"stock" json:"stock"`
	ReorderLevel int             `db:"reorder_level" json:"reorder_level"`
	Unit         string          `db:"unit" json:"unit"`
	IsActive     bool            `db:"is_active" json:"is_active"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// StockStatus classifies a product's stock health
type StockStatus string

const (
	StockOutOfStock StockStatus = "out_of_stock"
	StockLow        StockStatus = "low"
	StockHealthy    StockStatus = "healthy"
)

// Customer belongs to exactly one shop. (shop_id, phone) resolves to at
// most one canonical customer.
type Customer struct {
	ID        int64     `db:"id" json:"id"`
	ShopID    int64     `db:"shop_id" json:"shop_id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Email     string    `db:"email" json:"email,omitempty"`
	Address   string    `db:"address" json:"address,omitempty"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Order is a coarse checkout record used by dashboards for status
// tracking and revenue aggregation. Not line-itemized like a Bill.
type Order struct {
	ID            int64           `db:"id" json:"id"`
	OrderNumber   string          `db:"order_number" json:"order_number"`
	ShopID        int64           `db:"shop_id" json:"shop_id"`
	Status        string          `db:"status" json:"status"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	ItemCount     int             `db:"item_count" json:"item_count"`
	CustomerName  string          `db:"customer_name" json:"customer_name"`
	CustomerPhone string          `db:"customer_phone" json:"customer_phone,omitempty"`
	Notes         string          `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// OrderItem represents items in an order
type OrderItem struct {
	ID        int64           `db:"id" json:"id"`
	OrderID   int64           `db:"order_id" json:"order_id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	Total     decimal.Decimal `db:"total" json:"total"`
}

// Bill is an immutable priced record of a sale. Totals are persisted at
// creation time and never recomputed: total = subtotal + tax, and
// subtotal equals the sum of its line totals.
type Bill struct {
	ID         int64           `db:"id" json:"id"`
	BillNumber string          `db:"bill_number" json:"bill_number"`
	ShopID     int64           `db:"shop_id" json:"shop_id"`
	CustomerID int64           `db:"customer_id" json:"customer_id"`
	Subtotal   decimal.Decimal `db:"subtotal" json:"subtotal"`
	Tax        decimal.Decimal `db:"tax" json:"tax"`
	Total      decimal.Decimal `db:"total" json:"total"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// BillItem snapshots product name and unit price at billing time so the
// bill stays stable across later renames and price changes.
type BillItem struct {
	ID          int64           `db:"id" json:"id"`
	BillID      int64           `db:"bill_id" json:"bill_id"`
	ProductID   int64           `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	Total       decimal.Decimal `db:"total" json:"total"`
}
