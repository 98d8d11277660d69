package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shop-service/internal/broker"
	"shop-service/internal/models"
	"shop-service/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderStore persists orders for the order service
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) error
}

// OrderService creates checkout orders and applies guarded status
// transitions. Completed and cancelled orders never change again.
type OrderService struct {
	store     OrderStore
	publisher *broker.EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new order service. publisher may be nil.
func NewOrderService(store OrderStore, publisher *broker.EventPublisher) *OrderService {
	return &OrderService{
		store:     store,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// CreateOrderRequest is a checkout submission
type CreateOrderRequest struct {
	CustomerName  string          `json:"customer_name" binding:"required"`
	CustomerPhone string          `json:"customer_phone"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	ItemCount     int             `json:"item_count" binding:"required,min=1"`
	Notes         string          `json:"notes"`
}

// CreateOrder records a new order in the pending state
func (s *OrderService) CreateOrder(ctx context.Context, shopID int64, req *CreateOrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, NewValidationError("missing customer name")
	}
	if req.ItemCount < 1 {
		return nil, NewValidationError("order must contain at least one item")
	}
	if req.TotalAmount.IsNegative() {
		return nil, NewValidationError("total amount must not be negative")
	}

	order := &models.Order{
		OrderNumber:   newOrderNumber(),
		ShopID:        shopID,
		Status:        models.OrderStatusPending,
		TotalAmount:   req.TotalAmount,
		ItemCount:     req.ItemCount,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Notes:         req.Notes,
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.Int64("shop_id", shopID))

	return order, nil
}

// ChangeStatus moves an order through the status machine. Illegal moves
// are rejected without touching the record.
func (s *OrderService) ChangeStatus(ctx context.Context, orderID int64, toStatus string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.ChangeStatus")
	defer span.End()

	if !models.IsValidOrderStatus(toStatus) {
		return nil, NewValidationError("unknown order status: %s", toStatus)
	}

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, NewNotFoundError("order not found: %d", orderID)
	}

	if !models.CanTransition(order.Status, toStatus) {
		util.OrderTransitionsRejected.Inc()
		return nil, NewValidationError("cannot move order from %s to %s", order.Status, toStatus)
	}

	if err := s.store.UpdateOrderStatus(ctx, orderID, toStatus); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	util.OrderStatusChangesTotal.WithLabelValues(toStatus).Inc()

	fromStatus := order.Status
	order.Status = toStatus

	s.logger.Info("Order status changed",
		zap.Int64("order_id", orderID),
		zap.String("from", fromStatus),
		zap.String("to", toStatus))

	if s.publisher != nil {
		event := &models.OrderStatusChangedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderStatusChanged,
				Timestamp: time.Now(),
			},
			OrderID:    orderID,
			ShopID:     order.ShopID,
			FromStatus: fromStatus,
			ToStatus:   toStatus,
		}
		if err := s.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
		}
	}

	return order, nil
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, NewNotFoundError("order not found: %d", orderID)
	}
	return order, nil
}

func newOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}
