package service

import (
	"shop-service/internal/models"
)

// BillDocument is a printable rendering of a persisted bill. Every
// monetary field is formatted from the stored value; nothing is
// recomputed here, so the document can never drift from the record.
type BillDocument struct {
	BillNumber string             `json:"bill_number"`
	IssuedAt   string             `json:"issued_at"`
	Shop       DocumentShopHeader `json:"shop"`
	BillTo     DocumentBillTo     `json:"bill_to"`
	Lines      []DocumentLine     `json:"lines"`
	Subtotal   string             `json:"subtotal"`
	Tax        string             `json:"tax"`
	Total      string             `json:"total"`
}

type DocumentShopHeader struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

type DocumentBillTo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

type DocumentLine struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
}

// RenderBillDocument formats a stored bill into its printable structure.
// Pure function of the bill plus shop and customer metadata.
func RenderBillDocument(bill *models.Bill, items []models.BillItem, shop *models.Shop, customer *models.Customer) *BillDocument {
	lines := make([]DocumentLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, DocumentLine{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Total:       item.Total.StringFixed(2),
		})
	}

	return &BillDocument{
		BillNumber: bill.BillNumber,
		IssuedAt:   bill.CreatedAt.Format("2006-01-02 15:04"),
		Shop: DocumentShopHeader{
			Name:    shop.Name,
			Address: shop.Address,
			Phone:   shop.Phone,
			Email:   shop.Email,
		},
		BillTo: DocumentBillTo{
			Name:    customer.Name,
			Phone:   customer.Phone,
			Email:   customer.Email,
			Address: customer.Address,
		},
		Lines:    lines,
		Subtotal: bill.Subtotal.StringFixed(2),
		Tax:      bill.Tax.StringFixed(2),
		Total:    bill.Total.StringFixed(2),
	}
}
