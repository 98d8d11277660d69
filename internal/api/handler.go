package api

import (
	"net/http"
	"strconv"
	"time"

	"shop-service/internal/auth"
	"shop-service/internal/models"
	"shop-service/internal/service"
	"shop-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	store     *store.Store
	billing   *service.BillingService
	inventory *service.InventoryService
	reporting *service.ReportingService
	orders    *service.OrderService
	auth      *auth.Manager
}

// NewHandler creates a new HTTP handler
func NewHandler(
	store *store.Store,
	billing *service.BillingService,
	inventory *service.InventoryService,
	reporting *service.ReportingService,
	orders *service.OrderService,
	authManager *auth.Manager,
) *Handler {
	return &Handler{
		store:     store,
		billing:   billing,
		inventory: inventory,
		reporting: reporting,
		orders:    orders,
		auth:      authManager,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.POST("/auth/login", h.login)

	authed := v1.Group("")
	authed.Use(h.requireAuth())
	{
		authed.GET("/auth/me", h.me)

		admin := authed.Group("")
		admin.Use(requireAdmin())
		{
			admin.GET("/users", h.listUsers)
			admin.POST("/users", h.createUser)
			admin.PUT("/users/:id", h.updateUser)
			admin.DELETE("/users/:id", h.deleteUser)

			admin.POST("/shops", h.createShop)
			admin.PUT("/shops/:id", h.updateShop)
			admin.DELETE("/shops/:id", h.deleteShop)
		}

		authed.GET("/shops", h.listShops)

		authed.GET("/categories", h.listCategories)
		authed.POST("/categories", h.createCategory)
		authed.DELETE("/categories/:id", h.deleteCategory)

		authed.GET("/products", h.listProducts)
		authed.POST("/products", h.createProduct)
		authed.PUT("/products/:id", h.updateProduct)
		authed.DELETE("/products/:id", h.deleteProduct)

		authed.GET("/stock/low", h.listLowStock)
		authed.GET("/stock/out", h.listOutOfStock)
		authed.GET("/stock/counts", h.stockCounts)

		authed.GET("/orders", h.listOrders)
		authed.GET("/orders/:id", h.getOrder)
		authed.POST("/orders", h.createOrder)
		authed.PUT("/orders/:id/status", h.changeOrderStatus)

		authed.GET("/customers", h.listCustomers)
		authed.GET("/customers/search", h.searchCustomers)
		authed.GET("/customers/purchases", h.customerPurchases)
		authed.POST("/customers", h.createCustomer)
		authed.GET("/customers/:id", h.getCustomer)

		authed.POST("/bills", h.createBill)
		authed.GET("/bills", h.listBills)
		authed.GET("/bills/:id/document", h.billDocument)

		authed.GET("/dashboard/stats", h.dashboardStats)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// login verifies credentials and issues a JWT
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account is deactivated"})
		return
	}

	token, err := h.auth.IssueToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

// me returns the authenticated account
func (h *Handler) me(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
	})
}

// resolveScope maps the request to a reporting scope. Admins may query
// any shop or the all-shops view; shopkeepers must name a shop they own.
// Ownership is resolved from the authenticated principal, never assumed.
func (h *Handler) resolveScope(c *gin.Context) (service.Scope, bool) {
	user := currentUser(c)
	shopParam := c.Query("shop_id")

	if shopParam == "" || shopParam == "all" {
		if user.Role == models.RoleAdmin {
			return service.AllShopsScope(), true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_id is required"})
		return service.Scope{}, false
	}

	shopID, err := strconv.ParseInt(shopParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shop_id"})
		return service.Scope{}, false
	}

	if !h.ownsShop(c, shopID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return service.Scope{}, false
	}

	return service.ShopScope(shopID), true
}

// requireOwnedShop parses and authorizes an explicit shop id from the
// request body or query.
func (h *Handler) requireOwnedShop(c *gin.Context, shopID int64) bool {
	if shopID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_id is required"})
		return false
	}
	if !h.ownsShop(c, shopID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return false
	}
	return true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// writeDomainError maps service error kinds onto HTTP statuses
func writeDomainError(c *gin.Context, err error) {
	switch service.ErrorKind(err) {
	case service.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case service.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case service.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}
