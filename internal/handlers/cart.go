package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tribalarts/storefront-service/internal/middleware"
	"github.com/tribalarts/storefront-service/internal/models"
)

// Cart and wishlist sync for signed-in users. Guests keep theirs client-side.

// GetCart handles GET /api/v1/cart
func (h *Handlers) GetCart(c *gin.Context) {
	email := middleware.AuthedEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in to sync your cart"})
		return
	}

	cart, err := h.carts.GetCart(c.Request.Context(), email)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// PutCart handles PUT /api/v1/cart — replaces the synced item list. Lines
// with quantity below one are dropped.
func (h *Handlers) PutCart(c *gin.Context) {
	email := middleware.AuthedEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in to sync your cart"})
		return
	}

	var body struct {
		Items []models.CartItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cart := &models.Cart{UserEmail: email, Items: body.Items}
	if err := h.carts.SetCart(c.Request.Context(), cart); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// ClearCart handles DELETE /api/v1/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	email := middleware.AuthedEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in to sync your cart"})
		return
	}

	if err := h.carts.ClearCart(c.Request.Context(), email); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// GetWishlist handles GET /api/v1/wishlist
func (h *Handlers) GetWishlist(c *gin.Context) {
	email := middleware.AuthedEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in to sync your wishlist"})
		return
	}

	wishlist, err := h.carts.GetWishlist(c.Request.Context(), email)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, wishlist)
}

// PutWishlist handles PUT /api/v1/wishlist
func (h *Handlers) PutWishlist(c *gin.Context) {
	email := middleware.AuthedEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in to sync your wishlist"})
		return
	}

	var body struct {
		Items []models.WishlistItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	wishlist := &models.Wishlist{UserEmail: email, Items: body.Items}
	if err := h.carts.SetWishlist(c.Request.Context(), wishlist); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, wishlist)
}

// ClearWishlist handles DELETE /api/v1/wishlist
func (h *Handlers) ClearWishlist(c *gin.Context) {
	email := middleware.AuthedEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in to sync your wishlist"})
		return
	}

	if err := h.carts.ClearWishlist(c.Request.Context(), email); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
