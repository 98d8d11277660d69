package service

import (
	"context"
	"strings"
	"testing"

	"shop-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[int64]models.Product{
		1: {ID: 1, ShopID: 7, Name: "Whole Milk 1L", SKU: "MILK-1L", Price: decimal.RequireFromString("4.99"), Stock: 50, ReorderLevel: 10, Unit: "bottle", IsActive: true},
		2: {ID: 2, ShopID: 7, Name: "Butter 250g", SKU: "BUT-250", Price: decimal.RequireFromString("3.25"), Stock: 20, ReorderLevel: 5, Unit: "pack", IsActive: true},
		3: {ID: 3, ShopID: 7, Name: "Discontinued Cheese", SKU: "CHE-OLD", Price: decimal.RequireFromString("9.00"), Stock: 4, ReorderLevel: 2, Unit: "block", IsActive: false},
	}}
}

func TestCreateBill(t *testing.T) {
	bills := &fakeBills{}
	customers := &fakeCustomers{}
	svc := NewBillingService(testCatalog(), customers, bills, nil, 10)

	detail, err := svc.CreateBill(context.Background(), 7, &CreateBillRequest{
		Customer: CustomerInput{Name: "Asha Patel", Phone: "555-0101"},
		Lines:    []LineRequest{{ProductID: 1, Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, "14.97", detail.Bill.Subtotal.StringFixed(2))
	assert.Equal(t, "1.50", detail.Bill.Tax.StringFixed(2))
	assert.Equal(t, "16.47", detail.Bill.Total.StringFixed(2))
	assert.True(t, strings.HasPrefix(detail.Bill.BillNumber, "BILL-"))

	require.Len(t, detail.Items, 1)
	assert.Equal(t, "Whole Milk 1L", detail.Items[0].ProductName)
	assert.Equal(t, "4.99", detail.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "14.97", detail.Items[0].Total.StringFixed(2))

	assert.Equal(t, "Asha Patel", detail.Customer.Name)
	require.Len(t, bills.created, 1)
}

func TestCreateBillTotalsConsistent(t *testing.T) {
	bills := &fakeBills{}
	svc := NewBillingService(testCatalog(), &fakeCustomers{}, bills, nil, 10)

	detail, err := svc.CreateBill(context.Background(), 7, &CreateBillRequest{
		Customer: CustomerInput{Name: "Ben", Phone: "555-0102"},
		Lines: []LineRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 4},
		},
	})
	require.NoError(t, err)

	lineSum := decimal.Zero
	for _, item := range detail.Items {
		lineSum = lineSum.Add(item.Total)
	}
	assert.True(t, detail.Bill.Subtotal.Equal(lineSum), "subtotal must equal the sum of line totals")
	assert.True(t, detail.Bill.Total.Equal(detail.Bill.Subtotal.Add(detail.Bill.Tax)), "total must equal subtotal plus tax")
}

func TestCreateBillReusesCustomerByPhone(t *testing.T) {
	customers := &fakeCustomers{}
	svc := NewBillingService(testCatalog(), customers, &fakeBills{}, nil, 10)
	ctx := context.Background()

	first, err := svc.CreateBill(ctx, 7, &CreateBillRequest{
		Customer: CustomerInput{Name: "Asha Patel", Phone: "555-0101"},
		Lines:    []LineRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	// Same phone, different spelling of the name: must reuse, not duplicate.
	second, err := svc.CreateBill(ctx, 7, &CreateBillRequest{
		Customer: CustomerInput{Name: "A. Patel", Phone: "555-0101"},
		Lines:    []LineRequest{{ProductID: 2, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, customers.created)
	assert.Equal(t, first.Customer.ID, second.Customer.ID)
	assert.Equal(t, "Asha Patel", second.Customer.Name)
}

func TestCreateBillCustomerCreateRace(t *testing.T) {
	winner := models.Customer{ID: 42, ShopID: 7, Name: "Asha Patel", Phone: "555-0101"}
	customers := &fakeCustomers{raceWinner: &winner}
	svc := NewBillingService(testCatalog(), customers, &fakeBills{}, nil, 10)

	detail, err := svc.CreateBill(context.Background(), 7, &CreateBillRequest{
		Customer: CustomerInput{Name: "Asha Patel", Phone: "555-0101"},
		Lines:    []LineRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), detail.Customer.ID)
	assert.Equal(t, 0, customers.created)
}

func TestCreateBillUnknownProductRejected(t *testing.T) {
	bills := &fakeBills{}
	customers := &fakeCustomers{}
	svc := NewBillingService(testCatalog(), customers, bills, nil, 10)

	_, err := svc.CreateBill(context.Background(), 7, &CreateBillRequest{
		Customer: CustomerInput{Name: "Ben", Phone: "555-0102"},
		Lines: []LineRequest{
			{ProductID: 1, Quantity: 1},
			{ProductID: 99, Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.Equal(t, KindNotFound, ErrorKind(err))
	assert.Contains(t, err.Error(), "99")

	// One bad line rejects the whole bill before anything is written.
	assert.Empty(t, bills.created)
	assert.Equal(t, 0, customers.created)
}

func TestCreateBillInactiveProductRejected(t *testing.T) {
	bills := &fakeBills{}
	svc := NewBillingService(testCatalog(), &fakeCustomers{}, bills, nil, 10)

	_, err := svc.CreateBill(context.Background(), 7, &CreateBillRequest{
		Customer: CustomerInput{Name: "Ben", Phone: "555-0102"},
		Lines:    []LineRequest{{ProductID: 3, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, KindNotFound, ErrorKind(err))
	assert.Empty(t, bills.created)
}

func TestCreateBillValidation(t *testing.T) {
	svc := NewBillingService(testCatalog(), &fakeCustomers{}, &fakeBills{}, nil, 10)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *CreateBillRequest
	}{
		{
			name: "no items",
			req: &CreateBillRequest{
				Customer: CustomerInput{Name: "Ben", Phone: "555-0102"},
			},
		},
		{
			name: "missing customer name",
			req: &CreateBillRequest{
				Customer: CustomerInput{Phone: "555-0102"},
				Lines:    []LineRequest{{ProductID: 1, Quantity: 1}},
			},
		},
		{
			name: "missing customer phone",
			req: &CreateBillRequest{
				Customer: CustomerInput{Name: "Ben"},
				Lines:    []LineRequest{{ProductID: 1, Quantity: 1}},
			},
		},
		{
			name: "zero quantity",
			req: &CreateBillRequest{
				Customer: CustomerInput{Name: "Ben", Phone: "555-0102"},
				Lines:    []LineRequest{{ProductID: 1, Quantity: 0}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBill(ctx, 7, tt.req)
			require.Error(t, err)
			assert.Equal(t, KindValidation, ErrorKind(err))
		})
	}
}

func TestCreateBillZeroTaxRate(t *testing.T) {
	svc := NewBillingService(testCatalog(), &fakeCustomers{}, &fakeBills{}, nil, 0)

	detail, err := svc.CreateBill(context.Background(), 7, &CreateBillRequest{
		Customer: CustomerInput{Name: "Ben", Phone: "555-0102"},
		Lines:    []LineRequest{{ProductID: 2, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "0.00", detail.Bill.Tax.StringFixed(2))
	assert.True(t, detail.Bill.Total.Equal(detail.Bill.Subtotal))
}
