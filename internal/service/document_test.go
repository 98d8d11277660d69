package service

import (
	"testing"
	"time"

	"shop-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBillDocument(t *testing.T) {
	created := time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC)

	bill := &models.Bill{
		BillNumber: "BILL-1700000000000-abcd1234",
		ShopID:     7,
		CustomerID: 1,
		Subtotal:   decimal.RequireFromString("14.97"),
		Tax:        decimal.RequireFromString("1.50"),
		Total:      decimal.RequireFromString("16.47"),
		CreatedAt:  created,
	}
	items := []models.BillItem{
		{ProductName: "Whole Milk 1L", Quantity: 3, UnitPrice: decimal.RequireFromString("4.99"), Total: decimal.RequireFromString("14.97")},
	}
	shop := &models.Shop{Name: "Sunrise Dairy", Address: "12 Hill Rd", Phone: "555-0199"}
	customer := &models.Customer{Name: "Asha Patel", Phone: "555-0101"}

	doc := RenderBillDocument(bill, items, shop, customer)

	assert.Equal(t, "BILL-1700000000000-abcd1234", doc.BillNumber)
	assert.Equal(t, "2026-03-14 15:09", doc.IssuedAt)
	assert.Equal(t, "Sunrise Dairy", doc.Shop.Name)
	assert.Equal(t, "Asha Patel", doc.BillTo.Name)

	require.Len(t, doc.Lines, 1)
	assert.Equal(t, "Whole Milk 1L", doc.Lines[0].ProductName)
	assert.Equal(t, 3, doc.Lines[0].Quantity)
	assert.Equal(t, "4.99", doc.Lines[0].UnitPrice)
	assert.Equal(t, "14.97", doc.Lines[0].Total)

	assert.Equal(t, "14.97", doc.Subtotal)
	assert.Equal(t, "1.50", doc.Tax)
	assert.Equal(t, "16.47", doc.Total)
}

// The renderer formats whatever was persisted, it never recomputes.
func TestRenderBillDocumentUsesStoredTotals(t *testing.T) {
	bill := &models.Bill{
		BillNumber: "BILL-1-x",
		Subtotal:   decimal.RequireFromString("100.00"),
		Tax:        decimal.RequireFromString("7.77"),
		Total:      decimal.RequireFromString("107.77"),
	}
	items := []models.BillItem{
		{ProductName: "Legacy line", Quantity: 1, UnitPrice: decimal.RequireFromString("100.00"), Total: decimal.RequireFromString("100.00")},
	}

	doc := RenderBillDocument(bill, items, &models.Shop{Name: "Old Shop"}, &models.Customer{Name: "X"})

	assert.Equal(t, "7.77", doc.Tax)
	assert.Equal(t, "107.77", doc.Total)
}
