package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"shop-service/internal/models"
	"shop-service/internal/util"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

// requireAuth validates the bearer token and loads the account so
// deactivated users are rejected even with a live token.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userID, _, err := h.auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		user, err := h.store.GetUserByID(c.Request.Context(), userID)
		if err != nil || !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// requireAdmin gates admin-only endpoints
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c).Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(userKey).(*models.User)
}

// ownsShop reports whether the user may act on the shop. Admins may act
// on any shop; shopkeepers only on shops they own.
func (h *Handler) ownsShop(c *gin.Context, shopID int64) bool {
	user := currentUser(c)
	if user.Role == models.RoleAdmin {
		return true
	}

	shops, err := h.store.GetShopsByOwner(c.Request.Context(), user.ID)
	if err != nil {
		return false
	}
	for _, shop := range shops {
		if shop.ID == shopID {
			return true
		}
	}
	return false
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
