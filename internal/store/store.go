package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shop-service/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductsByShop retrieves active products for a shop
func (s *Store) GetProductsByShop(ctx context.Context, shopID int64) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE shop_id = $1 AND is_active = true ORDER BY id", shopID)
	return products, err
}

// GetAllProducts retrieves active products across every shop (admin scope)
func (s *Store) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE is_active = true ORDER BY id")
	return products, err
}

// GetProductsByIDs retrieves multiple products by IDs
func (s *Store) GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM products WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var products []models.Product
	err = s.db.SelectContext(ctx, &products, query, args...)
	return products, err
}

// CreateProduct creates a new product
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (shop_id, category_id, name, sku, price, stock, reorder_level, unit, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true)
		RETURNING id, is_active, created_at`

	return s.db.GetContext(ctx, p, query,
		p.ShopID, p.CategoryID, p.Name, p.SKU, p.Price, p.Stock, p.ReorderLevel, p.Unit)
}

// UpdateProduct updates mutable product fields
func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE products SET name = $1, price = $2, stock = $3, reorder_level = $4, unit = $5
		 WHERE id = $6`,
		p.Name, p.Price, p.Stock, p.ReorderLevel, p.Unit, p.ID)
	return err
}

// AdjustProductStock applies a stock delta, flooring at zero.
// Returns the resulting stock level.
func (s *Store) AdjustProductStock(ctx context.Context, productID int64, delta int) (int, error) {
	var stock int
	err := s.db.GetContext(ctx, &stock,
		"UPDATE products SET stock = GREATEST(stock + $1, 0) WHERE id = $2 RETURNING stock",
		delta, productID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("product not found: %d", productID)
	}
	return stock, err
}

// DeactivateProduct soft-deletes a product. Products referenced by
// historical bills are never removed.
func (s *Store) DeactivateProduct(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE products SET is_active = false WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("product not found: %d", id)
	}
	return nil
}

// GetShopByID retrieves a shop by ID
func (s *Store) GetShopByID(ctx context.Context, id int64) (*models.Shop, error) {
	var shop models.Shop
	err := s.db.GetContext(ctx, &shop, "SELECT * FROM shops WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("shop not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

// GetAllShops retrieves all active shops
func (s *Store) GetAllShops(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	err := s.db.SelectContext(ctx, &shops,
		"SELECT * FROM shops WHERE is_active = true ORDER BY id")
	return shops, err
}

// GetShopsByOwner retrieves the shops owned by a user
func (s *Store) GetShopsByOwner(ctx context.Context, ownerID int64) ([]models.Shop, error) {
	var shops []models.Shop
	err := s.db.SelectContext(ctx, &shops,
		"SELECT * FROM shops WHERE owner_id = $1 AND is_active = true ORDER BY id", ownerID)
	return shops, err
}

// CreateShop creates a new shop
func (s *Store) CreateShop(ctx context.Context, shop *models.Shop) error {
	query := `
		INSERT INTO shops (name, type, owner_id, address, phone, email, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		RETURNING id, is_active, created_at`

	return s.db.GetContext(ctx, shop, query,
		shop.Name, shop.Type, shop.OwnerID, shop.Address, shop.Phone, shop.Email)
}

// UpdateShop updates shop details
func (s *Store) UpdateShop(ctx context.Context, shop *models.Shop) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE shops SET name = $1, type = $2, owner_id = $3, address = $4, phone = $5, email = $6
		 WHERE id = $7`,
		shop.Name, shop.Type, shop.OwnerID, shop.Address, shop.Phone, shop.Email, shop.ID)
	return err
}

// DeactivateShop soft-deletes a shop
func (s *Store) DeactivateShop(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE shops SET is_active = false WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("shop not found: %d", id)
	}
	return nil
}
