package controllers

import (
	"errors"
	"net/http"

	"github.com/davitama/storefront/middleware"
	"github.com/davitama/storefront/models"
	"github.com/davitama/storefront/services"
	"github.com/davitama/storefront/session"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// OrderController handles checkout and order history.
type OrderController struct {
	orderService services.OrderService
	sessions     *session.Manager
	validate     *validator.Validate
}

// NewOrderController creates a new OrderController.
func NewOrderController(orderService services.OrderService, sessions *session.Manager) *OrderController {
	return &OrderController{
		orderService: orderService,
		sessions:     sessions,
		validate:     validator.New(),
	}
}

// Checkout handles POST /checkout. Requires a signed-in user; the
// server cart becomes the order and is cleared in the same transaction.
func (oc *OrderController) Checkout(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if err := oc.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checkout form", "details": err.Error()})
		return
	}

	order, err := oc.orderService.CreateOrder(c.Request.Context(), userID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		case errors.Is(err, services.ErrNotAuthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	// The server cart was cleared inside the checkout transaction; pull
	// the now-empty cart into the session view.
	sid := sessionID(c)
	_ = oc.sessions.Machine(c.Request.Context(), sid).Refresh(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// ListOrders handles GET /orders.
func (oc *OrderController) ListOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orders, err := oc.orderService.ListOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
