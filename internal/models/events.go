package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeBillCreated        = "BILL_CREATED"
	EventTypeOrderStatusChanged = "ORDER_STATUS_CHANGED"
	EventTypeStockLow           = "STOCK_LOW"
	EventTypeStockOut           = "STOCK_OUT"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// BillLineData represents a bill line in events
type BillLineData struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// BillCreatedEvent published after a bill and its items are persisted.
// The stock worker consumes it to deduct sold quantities.
type BillCreatedEvent struct {
	BaseEvent
	BillID     int64           `json:"bill_id"`
	BillNumber string          `json:"bill_number"`
	ShopID     int64           `json:"shop_id"`
	CustomerID int64           `json:"customer_id"`
	Total      decimal.Decimal `json:"total"`
	Lines      []BillLineData  `json:"lines"`
}

// OrderStatusChangedEvent published on every guarded status transition
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID    int64  `json:"order_id"`
	ShopID     int64  `json:"shop_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
}

// StockAlertEvent published when a product crosses its reorder level
// or runs out entirely.
type StockAlertEvent struct {
	BaseEvent
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	ShopID      int64  `json:"shop_id"`
	Stock       int    `json:"stock"`
	ReorderLvl  int    `json:"reorder_level"`
}
