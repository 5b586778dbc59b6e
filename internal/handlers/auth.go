package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tribalarts/storefront-service/internal/middleware"
	"github.com/tribalarts/storefront-service/internal/models"
)

// Signup handles POST /api/v1/auth/signup
func (h *Handlers) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.accountService.Signup(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Signin handles POST /api/v1/auth/signin
func (h *Handlers) Signin(c *gin.Context) {
	var req models.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.accountService.Signin(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetProfile handles GET /api/v1/users/:email — a user may only read their
// own profile; admins may read any.
func (h *Handlers) GetProfile(c *gin.Context) {
	email := c.Param("email")
	if !h.mayAccessProfile(c, email) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.accountService.GetProfile(c.Request.Context(), email)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /api/v1/users/:email
func (h *Handlers) UpdateProfile(c *gin.Context) {
	email := c.Param("email")
	if !h.mayAccessProfile(c, email) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.accountService.UpdateProfile(c.Request.Context(), email, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handlers) mayAccessProfile(c *gin.Context, email string) bool {
	if role, exists := c.Get(middleware.ContextRoleKey); exists && role == "admin" {
		return true
	}
	return middleware.AuthedEmail(c) == email
}
