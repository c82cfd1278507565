package controllers

import (
	"errors"
	"net/http"

	"github.com/davitama/storefront/cartview"
	"github.com/davitama/storefront/middleware"
	"github.com/davitama/storefront/models"
	"github.com/davitama/storefront/services"
	"github.com/davitama/storefront/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "cart_session"

// CartController serves the unified cart view. Guests get an in-memory
// session cart; signed-in shoppers get the server-persisted cart behind
// the same endpoints.
type CartController struct {
	sessions       *session.Manager
	cartService    services.CartService
	productService services.ProductService
}

// NewCartController creates a new CartController.
func NewCartController(sessions *session.Manager, cartService services.CartService, productService services.ProductService) *CartController {
	return &CartController{
		sessions:       sessions,
		cartService:    cartService,
		productService: productService,
	}
}

// sessionID reads the session cookie, minting one for new visitors.
func sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(sessionCookie, id, 7*24*3600, "/", "", false, true)
	return id
}

// machine returns the session's view machine with its mode reconciled
// against the request identity: signing in discards guest items and
// loads the server cart, signing out resets to empty.
func (cc *CartController) machine(c *gin.Context) (*cartview.Machine, string) {
	sid := sessionID(c)
	m := cc.sessions.Machine(c.Request.Context(), sid)

	userID, err := middleware.GetUserID(c)
	switch {
	case err == nil && m.UserID() != userID:
		// Guest items are discarded; a fetch failure is already logged
		// and the view stays empty until the next successful fetch.
		_ = m.SignIn(c.Request.Context(), userID, services.NewRemoteCart(cc.cartService, userID))
		cc.sessions.DropGuest(c.Request.Context(), sid)
	case err != nil && m.UserID() != uuid.Nil:
		m.SignOut()
	}
	return m, sid
}

// GetCart handles GET /cart.
func (cc *CartController) GetCart(c *gin.Context) {
	m, _ := cc.machine(c)
	c.JSON(http.StatusOK, m.Snapshot())
}

// AddItem handles POST /cart/items.
func (cc *CartController) AddItem(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	product, err := cc.productService.GetByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
		return
	}

	m, sid := cc.machine(c)
	if err := m.AddToCart(c.Request.Context(), services.LineFromProduct(product)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
		return
	}
	cc.sessions.PersistGuest(c.Request.Context(), sid, m)

	c.JSON(http.StatusOK, m.Snapshot())
}

// RemoveItem handles DELETE /cart/items/:productId.
func (cc *CartController) RemoveItem(c *gin.Context) {
	productID := c.Param("productId")
	if _, err := uuid.Parse(productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	m, sid := cc.machine(c)
	if err := m.RemoveFromCart(c.Request.Context(), productID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from cart"})
		return
	}
	cc.sessions.PersistGuest(c.Request.Context(), sid, m)

	c.JSON(http.StatusOK, m.Snapshot())
}

// UpdateQuantity handles PATCH /cart/items/:productId. Quantity zero or
// below removes the line.
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	productID := c.Param("productId")
	if _, err := uuid.Parse(productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	m, sid := cc.machine(c)
	if err := m.UpdateQuantity(c.Request.Context(), productID, req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quantity"})
		return
	}
	cc.sessions.PersistGuest(c.Request.Context(), sid, m)

	c.JSON(http.StatusOK, m.Snapshot())
}

// ClearCart handles DELETE /cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	m, sid := cc.machine(c)
	if err := m.ClearCart(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	cc.sessions.PersistGuest(c.Request.Context(), sid, m)

	c.JSON(http.StatusOK, m.Snapshot())
}
