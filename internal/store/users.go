package store

import (
	"context"
	"database/sql"
	"fmt"

	"shop-service/internal/models"
)

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email. Returns nil when no user matches.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE email = $1", email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAllUsers retrieves every user account
func (s *Store) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY id")
	return users, err
}

// CreateUser creates a new user account
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, role, name, phone, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		RETURNING id, is_active, created_at`

	return s.db.GetContext(ctx, user, query,
		user.Username, user.Email, user.PasswordHash, user.Role, user.Name, user.Phone)
}

// UpdateUser updates account details
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET name = $1, phone = $2, is_active = $3 WHERE id = $4`,
		user.Name, user.Phone, user.IsActive, user.ID)
	return err
}

// DeactivateUser disables an account without removing it
func (s *Store) DeactivateUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET is_active = false WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user not found: %d", id)
	}
	return nil
}

// GetAllCategories retrieves active categories
func (s *Store) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.SelectContext(ctx, &categories,
		"SELECT * FROM categories WHERE is_active = true ORDER BY id")
	return categories, err
}

// CreateCategory creates a new category
func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	query := `
		INSERT INTO categories (name, shop_type, description, is_active)
		VALUES ($1, $2, $3, true)
		RETURNING id, is_active`

	return s.db.GetContext(ctx, c, query, c.Name, c.ShopType, c.Description)
}

// DeactivateCategory soft-deletes a category
func (s *Store) DeactivateCategory(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE categories SET is_active = false WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("category not found: %d", id)
	}
	return nil
}
