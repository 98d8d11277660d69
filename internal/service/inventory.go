package service

import (
	"context"
	"fmt"

	"shop-service/internal/models"
	"shop-service/internal/util"
)

// InventoryService classifies stock health and lists actionable alerts
type InventoryService struct {
	catalog CatalogRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(catalog CatalogRepository) *InventoryService {
	return &InventoryService{catalog: catalog}
}

// StockCounts partitions a scope's products by stock status.
// OutOfStock + Low + Healthy always equals the product count in scope.
type StockCounts struct {
	OutOfStock int `json:"out_of_stock"`
	Low        int `json:"low"`
	Healthy    int `json:"healthy"`
}

// Classify returns exactly one status for any product with stock >= 0:
// out-of-stock at zero, low at or below the reorder level, healthy above it.
func Classify(product *models.Product) models.StockStatus {
	switch {
	case product.Stock == 0:
		return models.StockOutOfStock
	case product.Stock <= product.ReorderLevel:
		return models.StockLow
	default:
		return models.StockHealthy
	}
}

// ListByStatus returns the products in scope matching status, ordered by
// product id for deterministic output.
func (s *InventoryService) ListByStatus(ctx context.Context, scope Scope, status models.StockStatus) ([]models.Product, error) {
	ctx, span := util.StartSpan(ctx, "InventoryService.ListByStatus")
	defer span.End()

	products, err := s.productsInScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Product, 0)
	for _, p := range products {
		if Classify(&p) == status {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// CountsByScope returns the stock-status partition for the scope
func (s *InventoryService) CountsByScope(ctx context.Context, scope Scope) (*StockCounts, error) {
	ctx, span := util.StartSpan(ctx, "InventoryService.CountsByScope")
	defer span.End()

	products, err := s.productsInScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	counts := &StockCounts{}
	for _, p := range products {
		switch Classify(&p) {
		case models.StockOutOfStock:
			counts.OutOfStock++
		case models.StockLow:
			counts.Low++
		case models.StockHealthy:
			counts.Healthy++
		}
	}
	return counts, nil
}

func (s *InventoryService) productsInScope(ctx context.Context, scope Scope) ([]models.Product, error) {
	if scope.AllShops {
		products, err := s.catalog.GetAllProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}
		return products, nil
	}

	products, err := s.catalog.GetProductsByShop(ctx, scope.ShopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shop products: %w", err)
	}
	return products, nil
}
