package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"shop-service/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishBillCreated publishes BillCreated event
func (ep *EventPublisher) PublishBillCreated(ctx context.Context, event *models.BillCreatedEvent) error {
	key := fmt.Sprintf("shop-%d", event.ShopID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishOrderStatusChanged publishes OrderStatusChanged event
func (ep *EventPublisher) PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error {
	key := fmt.Sprintf("shop-%d", event.ShopID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishStockAlert publishes a StockLow or StockOut event
func (ep *EventPublisher) PublishStockAlert(ctx context.Context, event *models.StockAlertEvent) error {
	key := fmt.Sprintf("shop-%d", event.ShopID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler routes incoming events to registered handlers
type EventHandler struct {
	onBillCreated func(context.Context, *models.BillCreatedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnBillCreated registers a handler for BillCreated events
func (eh *EventHandler) OnBillCreated(handler func(context.Context, *models.BillCreatedEvent) error) {
	eh.onBillCreated = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	log.Printf("Handling event: type=%s, id=%s", baseEvent.EventType, baseEvent.EventID)

	switch baseEvent.EventType {
	case models.EventTypeBillCreated:
		if eh.onBillCreated != nil {
			var event models.BillCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal BillCreated event: %w", err)
			}
			return eh.onBillCreated(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
