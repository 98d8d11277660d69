package worker

import (
	"context"
	"log"
	"time"

	"shop-service/internal/broker"
	"shop-service/internal/models"
	"shop-service/internal/service"
	"shop-service/internal/store"
	"shop-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StockWorker consumes BillCreated events, deducts sold quantities from
// product stock and raises alerts when a product crosses its reorder
// level or runs out.
type StockWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	store        *store.Store
	publisher    *broker.EventPublisher
	logger       *zap.Logger
}

// NewStockWorker creates a new stock worker
func NewStockWorker(
	consumer *broker.Consumer,
	store *store.Store,
	publisher *broker.EventPublisher,
) *StockWorker {
	w := &StockWorker{
		consumer:  consumer,
		store:     store,
		publisher: publisher,
		logger:    util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnBillCreated(w.handleBillCreated)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *StockWorker) Start(ctx context.Context) error {
	log.Println("Starting stock worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *StockWorker) Stop() error {
	log.Println("Stopping stock worker...")
	return w.consumer.Close()
}

// handleBillCreated deducts each billed quantity from stock. Stock never
// goes below zero; alerts fire when a product leaves the healthy state.
func (w *StockWorker) handleBillCreated(ctx context.Context, event *models.BillCreatedEvent) error {
	for _, line := range event.Lines {
		before, err := w.store.GetProductByID(ctx, line.ProductID)
		if err != nil {
			w.logger.Error("Stock worker: product lookup failed",
				zap.Int64("product_id", line.ProductID),
				zap.Error(err))
			continue
		}

		newStock, err := w.store.AdjustProductStock(ctx, line.ProductID, -line.Quantity)
		if err != nil {
			w.logger.Error("Stock worker: stock deduction failed",
				zap.Int64("product_id", line.ProductID),
				zap.Error(err))
			continue
		}

		util.StockDeductionsTotal.Inc()

		after := *before
		after.Stock = newStock

		wasHealthy := service.Classify(before) == models.StockHealthy
		w.maybeAlert(ctx, &after, wasHealthy)
	}

	w.logger.Info("Stock updated for bill",
		zap.Int64("bill_id", event.BillID),
		zap.String("bill_number", event.BillNumber),
		zap.Int("lines", len(event.Lines)))

	return nil
}

func (w *StockWorker) maybeAlert(ctx context.Context, product *models.Product, wasHealthy bool) {
	status := service.Classify(product)
	if status == models.StockHealthy || !wasHealthy {
		return
	}

	kind := models.EventTypeStockLow
	if status == models.StockOutOfStock {
		kind = models.EventTypeStockOut
	}

	util.StockAlertsTotal.WithLabelValues(string(status)).Inc()
	w.logger.Warn("Stock alert",
		zap.Int64("product_id", product.ID),
		zap.String("product", product.Name),
		zap.Int("stock", product.Stock),
		zap.Int("reorder_level", product.ReorderLevel),
		zap.String("status", string(status)))

	if w.publisher == nil {
		return
	}

	event := &models.StockAlertEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: kind,
			Timestamp: time.Now(),
		},
		ProductID:   product.ID,
		ProductName: product.Name,
		ShopID:      product.ShopID,
		Stock:       product.Stock,
		ReorderLvl:  product.ReorderLevel,
	}

	if err := w.publisher.PublishStockAlert(ctx, event); err != nil {
		w.logger.Error("Failed to publish stock alert", zap.Error(err))
	}
}
