package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tribalarts/storefront-service/internal/middleware"
	"github.com/tribalarts/storefront-service/internal/models"
)

// GetOrder handles GET /api/v1/orders/:id
func (h *Handlers) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListOrders handles GET /api/v1/orders?email= — a customer's own orders.
// The email must match the signed-in account; admins may query any.
func (h *Handlers) ListOrders(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		email = middleware.AuthedEmail(c)
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email parameter is required"})
		return
	}
	if !h.mayAccessProfile(c, email) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	orders, err := h.orderService.GetOrdersByEmail(c.Request.Context(), email)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

type createOrderRequest struct {
	Items    []models.CartItem `json:"items"`
	Customer models.Customer   `json:"customer"`
}

// CreateOrder handles POST /api/v1/orders — back-office order entry with no
// gateway payment attached. The total is recomputed server-side.
func (h *Handlers) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.orderService.CreateManualOrder(c.Request.Context(), req.Items, &req.Customer, req.Customer.Email)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// AdminListOrders handles GET /api/v1/admin/orders
func (h *Handlers) AdminListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// AdminGetOrder handles GET /api/v1/admin/orders/:id
func (h *Handlers) AdminGetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// AdminUpdateOrderStatus handles PATCH /api/v1/admin/orders/:id
func (h *Handlers) AdminUpdateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
