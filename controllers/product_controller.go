package controllers

import (
	"errors"
	"net/http"

	"github.com/davitama/storefront/services"
	"github.com/gin-gonic/gin"
)

// ProductController serves the read-only catalog.
type ProductController struct {
	productService services.ProductService
}

// NewProductController creates a new ProductController.
func NewProductController(productService services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ListProducts handles GET /products.
func (pc *ProductController) ListProducts(c *gin.Context) {
	products, err := pc.productService.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct handles GET /products/:slug.
func (pc *ProductController) GetProduct(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product slug is required"})
		return
	}

	product, err := pc.productService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}
