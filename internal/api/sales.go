package api

import (
	"net/http"

	"shop-service/internal/models"
	"shop-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// listOrders returns orders in scope, optionally filtered by status
func (h *Handler) listOrders(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}

	status := c.DefaultQuery("status", models.StatusAll)
	orders, err := h.reporting.FilterOrders(c.Request.Context(), scope, status)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

type orderItemInput struct {
	ProductID int64           `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type createOrderBody struct {
	ShopID int64            `json:"shop_id" binding:"required"`
	Items  []orderItemInput `json:"items"`
	service.CreateOrderRequest
}

// createOrder records a checkout order in the pending state. Line items
// are optional detail; dashboards only read the order totals.
func (h *Handler) createOrder(c *gin.Context) {
	var body createOrderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order data", "details": err.Error()})
		return
	}

	if !h.requireOwnedShop(c, body.ShopID) {
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), body.ShopID, &body.CreateOrderRequest)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	for _, input := range body.Items {
		item := models.OrderItem{
			OrderID:   order.ID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			UnitPrice: input.UnitPrice,
			Total:     input.UnitPrice.Mul(decimal.NewFromInt(int64(input.Quantity))),
		}
		if err := h.store.CreateOrderItem(c.Request.Context(), &item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save order items"})
			return
		}
	}

	h.reporting.InvalidateDashboard(c.Request.Context(), body.ShopID)
	c.JSON(http.StatusCreated, order)
}

// getOrder returns an order with its line items
func (h *Handler) getOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if !h.requireOwnedShop(c, order.ShopID) {
		return
	}

	items, err := h.store.GetOrderItemsByOrderID(c.Request.Context(), order.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order, "items": items})
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// changeOrderStatus applies a guarded status transition
func (h *Handler) changeOrderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status data"})
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if !h.requireOwnedShop(c, order.ShopID) {
		return
	}

	updated, err := h.orders.ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	h.reporting.InvalidateDashboard(c.Request.Context(), updated.ShopID)
	c.JSON(http.StatusOK, updated)
}

// listCustomers returns customers in the resolved scope
func (h *Handler) listCustomers(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}

	var customers []models.Customer
	var err error
	if scope.AllShops {
		customers, err = h.store.GetAllCustomers(c.Request.Context())
	} else {
		customers, err = h.store.GetCustomersByShop(c.Request.Context(), scope.ShopID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch customers"})
		return
	}
	c.JSON(http.StatusOK, customers)
}

// searchCustomers matches a shop's customers by name, phone or email
func (h *Handler) searchCustomers(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}
	if scope.AllShops {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_id is required for search"})
		return
	}

	customers, err := h.store.SearchCustomers(c.Request.Context(), scope.ShopID, c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search customers"})
		return
	}
	c.JSON(http.StatusOK, customers)
}

// customerPurchases summarizes billing history per customer in scope
func (h *Handler) customerPurchases(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}

	summary, err := h.reporting.CustomerPurchaseSummary(c.Request.Context(), scope)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type customerRequest struct {
	ShopID  int64  `json:"shop_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// createCustomer creates a customer in a shop the caller owns
func (h *Handler) createCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer data", "details": err.Error()})
		return
	}

	if !h.requireOwnedShop(c, req.ShopID) {
		return
	}

	customer := models.Customer{
		ShopID:  req.ShopID,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}

	if err := h.store.CreateCustomer(c.Request.Context(), &customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// getCustomer returns a customer the caller may see
func (h *Handler) getCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	customer, err := h.store.GetCustomerByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}

	if !h.requireOwnedShop(c, customer.ShopID) {
		return
	}

	c.JSON(http.StatusOK, customer)
}

type createBillBody struct {
	ShopID int64 `json:"shop_id" binding:"required"`
	service.CreateBillRequest
}

// createBill prices the cart and persists the bill via the billing
// service; totals are computed server-side only.
func (h *Handler) createBill(c *gin.Context) {
	var body createBillBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bill data", "details": err.Error()})
		return
	}

	if !h.requireOwnedShop(c, body.ShopID) {
		return
	}

	detail, err := h.billing.CreateBill(c.Request.Context(), body.ShopID, &body.CreateBillRequest)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	h.reporting.InvalidateDashboard(c.Request.Context(), body.ShopID)
	c.JSON(http.StatusCreated, detail)
}

// listBills returns bills in scope with customer and item detail
func (h *Handler) listBills(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}

	var bills []models.Bill
	var err error
	if scope.AllShops {
		bills, err = h.store.GetAllBills(c.Request.Context())
	} else {
		bills, err = h.store.GetBillsByShop(c.Request.Context(), scope.ShopID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bills"})
		return
	}

	type billDetail struct {
		models.Bill
		Customer *models.Customer  `json:"customer,omitempty"`
		Items    []models.BillItem `json:"items"`
	}

	details := make([]billDetail, 0, len(bills))
	for _, bill := range bills {
		detail := billDetail{Bill: bill}
		if customer, err := h.store.GetCustomerByID(c.Request.Context(), bill.CustomerID); err == nil {
			detail.Customer = customer
		}
		if items, err := h.store.GetBillItemsByBill(c.Request.Context(), bill.ID); err == nil {
			detail.Items = items
		}
		details = append(details, detail)
	}

	c.JSON(http.StatusOK, details)
}

// billDocument renders the printable document for a persisted bill
func (h *Handler) billDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	bill, err := h.store.GetBillByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "bill not found"})
		return
	}

	if !h.requireOwnedShop(c, bill.ShopID) {
		return
	}

	items, err := h.store.GetBillItemsByBill(c.Request.Context(), bill.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bill items"})
		return
	}
	shop, err := h.store.GetShopByID(c.Request.Context(), bill.ShopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shop"})
		return
	}
	customer, err := h.store.GetCustomerByID(c.Request.Context(), bill.CustomerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch customer"})
		return
	}

	c.JSON(http.StatusOK, service.RenderBillDocument(bill, items, shop, customer))
}

// dashboardStats returns the summary cards for the resolved scope
func (h *Handler) dashboardStats(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}

	stats, err := h.reporting.DashboardStats(c.Request.Context(), scope)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
