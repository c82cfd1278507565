package routes

import (
	"github.com/davitama/storefront/controllers"
	"github.com/davitama/storefront/middleware"
	"github.com/davitama/storefront/services"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all storefront routes.
func RegisterRoutes(
	r *gin.Engine,
	tokens services.ITokenService,
	authLimiter gin.HandlerFunc,
	ac *controllers.AuthController,
	pc *controllers.ProductController,
	cc *controllers.CartController,
	oc *controllers.OrderController,
) {
	auth := r.Group("/auth")
	auth.Use(authLimiter)
	auth.POST("/register", ac.Register)
	auth.POST("/login", ac.Login)
	auth.POST("/logout", middleware.OptionalAuth(tokens), ac.Logout)
	auth.GET("/me", middleware.RequireAuth(tokens), ac.Me)

	products := r.Group("/products")
	products.GET("", pc.ListProducts)
	products.GET("/:slug", pc.GetProduct)

	cart := r.Group("/cart")
	cart.Use(middleware.OptionalAuth(tokens))
	cart.GET("", cc.GetCart)
	cart.DELETE("", cc.ClearCart)
	cart.POST("/items", cc.AddItem)
	cart.PATCH("/items/:productId", cc.UpdateQuantity)
	cart.DELETE("/items/:productId", cc.RemoveItem)

	orders := r.Group("")
	orders.Use(middleware.RequireAuth(tokens))
	orders.POST("/checkout", oc.Checkout)
	orders.GET("/orders", oc.ListOrders)
}
