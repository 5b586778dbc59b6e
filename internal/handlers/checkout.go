package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tribalarts/storefront-service/internal/middleware"
	"github.com/tribalarts/storefront-service/internal/models"
	"github.com/tribalarts/storefront-service/internal/service"
)

type beginCheckoutRequest struct {
	Items    []models.CartItem `json:"items"`
	Customer models.Customer   `json:"customer"`
}

// BeginCheckout handles POST /api/v1/checkout/begin. It prices the cart
// server-side and returns the gateway order the payment UI should authorize.
func (h *Handlers) BeginCheckout(c *gin.Context) {
	var req beginCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	pending, err := h.checkoutService.BeginCheckout(c.Request.Context(), req.Items, &req.Customer)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"gateway_order_id":   pending.GatewayOrderID,
		"amount_minor_units": pending.AmountMinorUnits,
		"currency":           pending.Currency,
	})
}

type completeCheckoutRequest struct {
	GatewayOrderID   string            `json:"gateway_order_id"`
	GatewayPaymentID string            `json:"gateway_payment_id"`
	Signature        string            `json:"signature"`
	Items            []models.CartItem `json:"items"`
	Customer         models.Customer   `json:"customer"`
}

// CompleteCheckout handles POST /api/v1/checkout/complete, invoked after the
// payment UI reports success. Submitting the same proof twice returns the
// same order.
func (h *Handlers) CompleteCheckout(c *gin.Context) {
	var req completeCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userEmail := middleware.AuthedEmail(c)
	if userEmail == "" {
		userEmail = req.Customer.Email
	}

	order, err := h.checkoutService.CompleteCheckout(c.Request.Context(), &service.CompleteCheckoutRequest{
		Proof: models.PaymentProof{
			GatewayOrderID:   req.GatewayOrderID,
			GatewayPaymentID: req.GatewayPaymentID,
			Signature:        req.Signature,
		},
		Items:     req.Items,
		Customer:  req.Customer,
		UserEmail: userEmail,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order_id": order.ID, "status": order.Status})
}
