package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davitama/storefront/controllers"
	"github.com/davitama/storefront/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func setupProductRouter(products ...*models.Product) *gin.Engine {
	gin.SetMode(gin.TestMode)

	catalog := make(map[uuid.UUID]*models.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}
	pc := controllers.NewProductController(&stubProductService{products: catalog})

	r := gin.New()
	r.GET("/products", pc.ListProducts)
	r.GET("/products/:slug", pc.GetProduct)
	return r
}

func TestListProducts_ReturnsCatalog(t *testing.T) {
	r := setupProductRouter(
		catalogProduct("Course", 9900),
		catalogProduct("Wallpaper", 2900),
	)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/products", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Course")
	assert.Contains(t, w.Body.String(), "Wallpaper")
}

func TestGetProduct_BySlug(t *testing.T) {
	product := catalogProduct("Course", 9900)
	r := setupProductRouter(product)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/products/"+product.Slug, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), product.Name)
	assert.Contains(t, w.Body.String(), `"price_cents":9900`)
}

func TestGetProduct_UnknownSlug(t *testing.T) {
	r := setupProductRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/products/missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
