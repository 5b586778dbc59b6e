package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tribalarts/storefront-service/internal/middleware"
	"github.com/tribalarts/storefront-service/internal/models"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubmitContactMessage handles POST /api/v1/contact
func (h *Handlers) SubmitContactMessage(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	msg, err := h.contactService.Submit(c.Request.Context(), &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Message,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// GetMyMessages handles GET /api/v1/messages — a signed-in customer's own
// messages, replies included.
func (h *Handlers) GetMyMessages(c *gin.Context) {
	email := middleware.AuthedEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in to view your messages"})
		return
	}

	messages, err := h.contactService.ListForUser(c.Request.Context(), email)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages, "count": len(messages)})
}

// AdminListMessages handles GET /api/v1/admin/messages
func (h *Handlers) AdminListMessages(c *gin.Context) {
	messages, err := h.contactService.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages, "count": len(messages)})
}

// AdminUpdateMessage handles PATCH /api/v1/admin/messages/:id — marks a
// message read/unread and/or appends a reply.
func (h *Handlers) AdminUpdateMessage(c *gin.Context) {
	var req models.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	msg, err := h.contactService.Update(c.Request.Context(), c.Param("id"), &req, middleware.AuthedEmail(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, msg)
}

// AdminDashboard handles GET /api/v1/admin/dashboard
func (h *Handlers) AdminDashboard(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// AdminListCustomers handles GET /api/v1/admin/customers — every account with
// its order count and lifetime spend.
func (h *Handlers) AdminListCustomers(c *gin.Context) {
	customers, err := h.dashboard.ListCustomers(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers, "count": len(customers)})
}
