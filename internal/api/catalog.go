package api

import (
	"net/http"

	"shop-service/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// listShops returns all shops for admins, owned shops for shopkeepers
func (h *Handler) listShops(c *gin.Context) {
	user := currentUser(c)

	var shops []models.Shop
	var err error
	if user.Role == models.RoleAdmin {
		shops, err = h.store.GetAllShops(c.Request.Context())
	} else {
		shops, err = h.store.GetShopsByOwner(c.Request.Context(), user.ID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shops"})
		return
	}
	c.JSON(http.StatusOK, shops)
}

type shopRequest struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required,oneof=dairy meat grocery"`
	OwnerID int64  `json:"owner_id" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// createShop creates a shop (admin only)
func (h *Handler) createShop(c *gin.Context) {
	var req shopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shop data", "details": err.Error()})
		return
	}

	shop := models.Shop{
		Name:    req.Name,
		Type:    req.Type,
		OwnerID: req.OwnerID,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}

	if err := h.store.CreateShop(c.Request.Context(), &shop); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create shop"})
		return
	}

	c.JSON(http.StatusCreated, shop)
}

// updateShop updates shop details (admin only)
func (h *Handler) updateShop(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req shopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shop data"})
		return
	}

	shop, err := h.store.GetShopByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		return
	}

	shop.Name = req.Name
	shop.Type = req.Type
	shop.OwnerID = req.OwnerID
	shop.Address = req.Address
	shop.Phone = req.Phone
	shop.Email = req.Email

	if err := h.store.UpdateShop(c.Request.Context(), shop); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update shop"})
		return
	}

	c.JSON(http.StatusOK, shop)
}

// deleteShop deactivates a shop (admin only)
func (h *Handler) deleteShop(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.store.DeactivateShop(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// listCategories returns active categories
func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.store.GetAllCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	ShopType    string `json:"shop_type" binding:"required,oneof=dairy meat grocery"`
	Description string `json:"description"`
}

// createCategory creates a category
func (h *Handler) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category data"})
		return
	}

	category := models.Category{
		Name:        req.Name,
		ShopType:    req.ShopType,
		Description: req.Description,
	}

	if err := h.store.CreateCategory(c.Request.Context(), &category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// deleteCategory deactivates a category
func (h *Handler) deleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.store.DeactivateCategory(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// listProducts returns products in the resolved scope
func (h *Handler) listProducts(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}

	var products []models.Product
	var err error
	if scope.AllShops {
		products, err = h.store.GetAllProducts(c.Request.Context())
	} else {
		products, err = h.store.GetProductsByShop(c.Request.Context(), scope.ShopID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

type productRequest struct {
	ShopID       int64           `json:"shop_id" binding:"required"`
	CategoryID   int64           `json:"category_id"`
	Name         string          `json:"name" binding:"required"`
	SKU          string          `json:"sku" binding:"required"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	Stock        int             `json:"stock" binding:"min=0"`
	ReorderLevel int             `json:"reorder_level" binding:"min=0"`
	Unit         string          `json:"unit" binding:"required"`
}

// createProduct creates a product in a shop the caller owns
func (h *Handler) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product data", "details": err.Error()})
		return
	}

	if !h.requireOwnedShop(c, req.ShopID) {
		return
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
		return
	}

	product := models.Product{
		ShopID:       req.ShopID,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		SKU:          req.SKU,
		Price:        req.Price.Round(2),
		Stock:        req.Stock,
		ReorderLevel: req.ReorderLevel,
		Unit:         req.Unit,
	}

	if err := h.store.CreateProduct(c.Request.Context(), &product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

type productUpdateRequest struct {
	Name         string          `json:"name" binding:"required"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	Stock        int             `json:"stock" binding:"min=0"`
	ReorderLevel int             `json:"reorder_level" binding:"min=0"`
	Unit         string          `json:"unit" binding:"required"`
}

// updateProduct updates a product in a shop the caller owns
func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req productUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product data"})
		return
	}

	product, err := h.store.GetProductByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	if !h.requireOwnedShop(c, product.ShopID) {
		return
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
		return
	}

	product.Name = req.Name
	product.Price = req.Price.Round(2)
	product.Stock = req.Stock
	product.ReorderLevel = req.ReorderLevel
	product.Unit = req.Unit

	if err := h.store.UpdateProduct(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// deleteProduct deactivates a product; historical bills keep their
// snapshots so nothing is ever hard-deleted.
func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.store.GetProductByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	if !h.requireOwnedShop(c, product.ShopID) {
		return
	}

	if err := h.store.DeactivateProduct(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}

	c.Status(http.StatusNoContent)
}

// listLowStock returns products classified low in the resolved scope
func (h *Handler) listLowStock(c *gin.Context) {
	h.listByStockStatus(c, models.StockLow)
}

// listOutOfStock returns products classified out-of-stock in the scope
func (h *Handler) listOutOfStock(c *gin.Context) {
	h.listByStockStatus(c, models.StockOutOfStock)
}

func (h *Handler) listByStockStatus(c *gin.Context, status models.StockStatus) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}

	products, err := h.inventory.ListByStatus(c.Request.Context(), scope, status)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// stockCounts returns the stock-status partition for the scope
func (h *Handler) stockCounts(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}

	counts, err := h.inventory.CountsByScope(c.Request.Context(), scope)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
