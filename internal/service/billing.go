package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"shop-service/internal/broker"
	"shop-service/internal/models"
	"shop-service/internal/util"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BillingService turns a cart (customer info + line requests) into a
// priced, persisted bill. Prices are always re-fetched from the catalog;
// client-supplied prices are never trusted.
type BillingService struct {
	catalog   CatalogRepository
	customers CustomerRepository
	bills     BillRepository
	publisher *broker.EventPublisher
	taxRate   decimal.Decimal
	logger    *zap.Logger
	validate  *validator.Validate

	// shopLocks sequences customer resolve-or-create per shop so two
	// concurrent bills for the same phone cannot both create a customer.
	mu        sync.Mutex
	shopLocks map[int64]*sync.Mutex
}

// NewBillingService creates a new billing service. taxRatePercent is the
// configured rate, e.g. 10 for 10%. publisher may be nil in tests.
func NewBillingService(
	catalog CatalogRepository,
	customers CustomerRepository,
	bills BillRepository,
	publisher *broker.EventPublisher,
	taxRatePercent float64,
) *BillingService {
	return &BillingService{
		catalog:   catalog,
		customers: customers,
		bills:     bills,
		publisher: publisher,
		taxRate:   decimal.NewFromFloat(taxRatePercent).Div(decimal.NewFromInt(100)),
		logger:    util.GetLogger(),
		validate:  validator.New(),
		shopLocks: make(map[int64]*sync.Mutex),
	}
}

// CustomerInput identifies the customer a bill is issued to. Phone is
// the dedup key within a shop.
type CustomerInput struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// LineRequest references a product and quantity to bill
type LineRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

// CreateBillRequest is the cart submitted for billing
type CreateBillRequest struct {
	Customer CustomerInput `json:"customer"`
	Lines    []LineRequest `json:"items" validate:"min=1,dive"`
}

// BillDetail is a created bill with its line items and resolved customer
type BillDetail struct {
	Bill     models.Bill       `json:"bill"`
	Items    []models.BillItem `json:"items"`
	Customer models.Customer   `json:"customer"`
}

// CreateBill validates the cart, resolves the customer by phone
// (creating one only when no match exists), prices every line from the
// catalog and persists the bill atomically. Any invalid line rejects the
// whole bill before anything is written.
func (s *BillingService) CreateBill(ctx context.Context, shopID int64, req *CreateBillRequest) (*BillDetail, error) {
	ctx, span := util.StartSpan(ctx, "BillingService.CreateBill")
	defer span.End()

	start := time.Now()
	defer func() {
		util.BillCreateLatency.Observe(time.Since(start).Seconds())
	}()

	if err := s.validateRequest(req); err != nil {
		util.BillsRejectedTotal.WithLabelValues(KindValidation).Inc()
		return nil, err
	}

	items, subtotal, err := s.priceLines(ctx, req.Lines)
	if err != nil {
		util.BillsRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}

	tax := subtotal.Mul(s.taxRate).Round(2)
	total := subtotal.Add(tax)

	lock := s.shopLock(shopID)
	lock.Lock()
	customer, err := s.resolveCustomer(ctx, shopID, req.Customer)
	lock.Unlock()
	if err != nil {
		util.BillsRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}

	bill := models.Bill{
		BillNumber: newBillNumber(),
		ShopID:     shopID,
		CustomerID: customer.ID,
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      total,
	}

	if err := s.bills.CreateBill(ctx, &bill, items); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	util.BillsCreatedTotal.Inc()
	s.logger.Info("Bill created",
		zap.Int64("bill_id", bill.ID),
		zap.String("bill_number", bill.BillNumber),
		zap.Int64("shop_id", shopID),
		zap.String("total", total.StringFixed(2)))

	s.publishBillCreated(ctx, &bill, items)

	return &BillDetail{Bill: bill, Items: items, Customer: *customer}, nil
}

// validateRequest maps structural problems to the billing error taxonomy
func (s *BillingService) validateRequest(req *CreateBillRequest) error {
	if req == nil || len(req.Lines) == 0 {
		return NewValidationError("no items in bill")
	}
	if strings.TrimSpace(req.Customer.Name) == "" || strings.TrimSpace(req.Customer.Phone) == "" {
		return NewValidationError("missing customer name or phone")
	}
	if err := s.validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return NewValidationError("invalid %s", strings.ToLower(ve[0].Field()))
		}
		return NewValidationError("invalid bill request")
	}
	for _, line := range req.Lines {
		if line.Quantity < 1 {
			return NewValidationError("quantity must be at least 1 for product %d", line.ProductID)
		}
	}
	return nil
}

// priceLines re-fetches authoritative unit prices and names for every
// line and computes line totals plus the running subtotal.
func (s *BillingService) priceLines(ctx context.Context, lines []LineRequest) ([]models.BillItem, decimal.Decimal, error) {
	ids := make([]int64, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}

	products, err := s.catalog.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to fetch products: %w", err)
	}

	byID := make(map[int64]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	items := make([]models.BillItem, 0, len(lines))
	subtotal := decimal.Zero

	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok || !product.IsActive {
			return nil, decimal.Zero, NewNotFoundError("product not found: %d", line.ProductID)
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineTotal)

		items = append(items, models.BillItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			Total:       lineTotal,
		})
	}

	return items, subtotal, nil
}

// resolveCustomer reuses the shop's customer matching the phone number,
// creating a new record only when no match exists. A create that loses a
// unique race falls back to the winner.
func (s *BillingService) resolveCustomer(ctx context.Context, shopID int64, input CustomerInput) (*models.Customer, error) {
	phone := strings.TrimSpace(input.Phone)

	existing, err := s.customers.FindCustomerByPhone(ctx, shopID, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}
	if existing != nil {
		util.CustomersReusedTotal.Inc()
		return existing, nil
	}

	customer := &models.Customer{
		ShopID:  shopID,
		Name:    strings.TrimSpace(input.Name),
		Phone:   phone,
		Email:   strings.TrimSpace(input.Email),
		Address: strings.TrimSpace(input.Address),
	}

	if err := s.customers.CreateCustomer(ctx, customer); err != nil {
		// Lost a concurrent create for the same (shop, phone): reuse the winner.
		winner, findErr := s.customers.FindCustomerByPhone(ctx, shopID, phone)
		if findErr == nil && winner != nil {
			util.CustomersReusedTotal.Inc()
			return winner, nil
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	util.CustomersCreatedTotal.Inc()
	s.logger.Info("Customer created",
		zap.Int64("customer_id", customer.ID),
		zap.Int64("shop_id", shopID))
	return customer, nil
}

func (s *BillingService) shopLock(shopID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.shopLocks[shopID]
	if !ok {
		lock = &sync.Mutex{}
		s.shopLocks[shopID] = lock
	}
	return lock
}

func (s *BillingService) publishBillCreated(ctx context.Context, bill *models.Bill, items []models.BillItem) {
	if s.publisher == nil {
		return
	}

	lines := make([]models.BillLineData, 0, len(items))
	for _, item := range items {
		lines = append(lines, models.BillLineData{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	event := &models.BillCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeBillCreated,
			Timestamp: time.Now(),
		},
		BillID:     bill.ID,
		BillNumber: bill.BillNumber,
		ShopID:     bill.ShopID,
		CustomerID: bill.CustomerID,
		Total:      bill.Total,
		Lines:      lines,
	}

	if err := s.publisher.PublishBillCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish BillCreated event", zap.Error(err))
	}
}

func rejectReason(err error) string {
	if kind := ErrorKind(err); kind != "" {
		return kind
	}
	return "internal"
}

// newBillNumber generates a time-derived, human-displayable bill number.
// The uuid suffix keeps numbers unique within the same millisecond.
func newBillNumber() string {
	return fmt.Sprintf("BILL-%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}
