package store

import (
	"context"
	"database/sql"
	"fmt"

	"shop-service/internal/models"
)

// GetCustomerByID retrieves a customer by ID
func (s *Store) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.GetContext(ctx, &customer, "SELECT * FROM customers WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindCustomerByPhone looks up a shop's customer by phone.
// Returns nil when no customer matches.
func (s *Store) FindCustomerByPhone(ctx context.Context, shopID int64, phone string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.GetContext(ctx, &customer,
		"SELECT * FROM customers WHERE shop_id = $1 AND phone = $2 AND is_active = true", shopID, phone)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetCustomersByShop retrieves active customers of a shop
func (s *Store) GetCustomersByShop(ctx context.Context, shopID int64) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.SelectContext(ctx, &customers,
		"SELECT * FROM customers WHERE shop_id = $1 AND is_active = true ORDER BY id", shopID)
	return customers, err
}

// GetAllCustomers retrieves active customers across every shop (admin scope)
func (s *Store) GetAllCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.SelectContext(ctx, &customers,
		"SELECT * FROM customers WHERE is_active = true ORDER BY id")
	return customers, err
}

// SearchCustomers matches a shop's customers by name, phone or email
func (s *Store) SearchCustomers(ctx context.Context, shopID int64, query string) ([]models.Customer, error) {
	var customers []models.Customer
	pattern := "%" + query + "%"
	err := s.db.SelectContext(ctx, &customers,
		`SELECT * FROM customers
		 WHERE shop_id = $1 AND is_active = true
		   AND (name ILIKE $2 OR phone LIKE $2 OR email ILIKE $2)
		 ORDER BY id`, shopID, pattern)
	return customers, err
}

// CreateCustomer creates a new customer scoped to a shop
func (s *Store) CreateCustomer(ctx context.Context, c *models.Customer) error {
	query := `
		INSERT INTO customers (shop_id, name, phone, email, address, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING id, is_active, created_at`

	return s.db.GetContext(ctx, c, query, c.ShopID, c.Name, c.Phone, c.Email, c.Address)
}
