package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tribalarts/storefront-service/internal/models"
	"github.com/tribalarts/storefront-service/internal/service"
)

// ListProducts handles GET /api/v1/products
func (h *Handlers) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GetProduct handles GET /api/v1/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	product, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// AdminCreateProduct handles POST /api/v1/admin/products
func (h *Handlers) AdminCreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := service.ValidateProduct(&product); err != nil {
		handleError(c, err)
		return
	}

	if err := h.products.Create(c.Request.Context(), &product); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// AdminUpdateProduct handles PUT /api/v1/admin/products/:id
func (h *Handlers) AdminUpdateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	product.ID = c.Param("id")

	if err := service.ValidateProduct(&product); err != nil {
		handleError(c, err)
		return
	}

	if err := h.products.Update(c.Request.Context(), &product); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// AdminDeleteProduct handles DELETE /api/v1/admin/products/:id
func (h *Handlers) AdminDeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
