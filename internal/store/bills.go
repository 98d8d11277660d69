package store

import (
	"context"
	"database/sql"
	"fmt"

	"shop-service/internal/models"
)

// CreateBill persists a bill and its line items in a single transaction.
// IDs and timestamps are assigned by the database; either everything is
// written or nothing is.
func (s *Store) CreateBill(ctx context.Context, bill *models.Bill, items []models.BillItem) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO bills (bill_number, shop_id, customer_id, subtotal, tax, total)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	if err := tx.GetContext(ctx, bill, query,
		bill.BillNumber, bill.ShopID, bill.CustomerID, bill.Subtotal, bill.Tax, bill.Total); err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	itemQuery := `
		INSERT INTO bill_items (bill_id, product_id, product_name, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	for i := range items {
		items[i].BillID = bill.ID
		if err := tx.GetContext(ctx, &items[i].ID, itemQuery,
			items[i].BillID, items[i].ProductID, items[i].ProductName,
			items[i].Quantity, items[i].UnitPrice, items[i].Total); err != nil {
			return fmt.Errorf("failed to insert bill item: %w", err)
		}
	}

	return tx.Commit()
}

// GetBillByID retrieves a bill by ID
func (s *Store) GetBillByID(ctx context.Context, id int64) (*models.Bill, error) {
	var bill models.Bill
	err := s.db.GetContext(ctx, &bill, "SELECT * FROM bills WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bill not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// GetBillsByShop retrieves bills for a shop, newest first
func (s *Store) GetBillsByShop(ctx context.Context, shopID int64) ([]models.Bill, error) {
	var bills []models.Bill
	err := s.db.SelectContext(ctx, &bills,
		"SELECT * FROM bills WHERE shop_id = $1 ORDER BY created_at DESC", shopID)
	return bills, err
}

// GetAllBills retrieves bills across every shop (admin scope)
func (s *Store) GetAllBills(ctx context.Context) ([]models.Bill, error) {
	var bills []models.Bill
	err := s.db.SelectContext(ctx, &bills,
		"SELECT * FROM bills ORDER BY created_at DESC")
	return bills, err
}

// GetBillsByCustomer retrieves bills for a customer, newest first
func (s *Store) GetBillsByCustomer(ctx context.Context, customerID int64) ([]models.Bill, error) {
	var bills []models.Bill
	err := s.db.SelectContext(ctx, &bills,
		"SELECT * FROM bills WHERE customer_id = $1 ORDER BY created_at DESC", customerID)
	return bills, err
}

// GetBillItemsByBill retrieves all line items for a bill
func (s *Store) GetBillItemsByBill(ctx context.Context, billID int64) ([]models.BillItem, error) {
	var items []models.BillItem
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM bill_items WHERE bill_id = $1 ORDER BY id", billID)
	return items, err
}
