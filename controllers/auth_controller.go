package controllers

import (
	"errors"
	"net/http"

	"github.com/davitama/storefront/middleware"
	"github.com/davitama/storefront/models"
	"github.com/davitama/storefront/services"
	"github.com/davitama/storefront/session"
	"github.com/gin-gonic/gin"
)

// AuthController handles registration, login, and the identity boundary
// of the cart: signing in and out drives the view machine's
// authentication transitions.
type AuthController struct {
	authService services.AuthService
	cartService services.CartService
	sessions    *session.Manager
}

// NewAuthController creates a new AuthController.
func NewAuthController(authService services.AuthService, cartService services.CartService, sessions *session.Manager) *AuthController {
	return &AuthController{
		authService: authService,
		cartService: cartService,
		sessions:    sessions,
	}
}

// Register handles POST /auth/register.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := ac.authService.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Account created"})
}

// Login handles POST /auth/login. On success the session's cart view
// switches to the server cart; any guest items are discarded.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	pair, userID, err := ac.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.SetCookie("access_token", pair.AccessToken, 15*60, "/", "", false, true)
	c.SetCookie("refresh_token", pair.RefreshToken, 7*24*3600, "/", "", false, true)

	sid := sessionID(c)
	m := ac.sessions.Machine(c.Request.Context(), sid)
	_ = m.SignIn(c.Request.Context(), userID, services.NewRemoteCart(ac.cartService, userID))
	ac.sessions.DropGuest(c.Request.Context(), sid)

	c.JSON(http.StatusOK, gin.H{"message": "Logged in successfully"})
}

// Logout handles POST /auth/logout. The cart view resets to empty.
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.SetCookie("refresh_token", "", -1, "/", "", false, true)

	sid := sessionID(c)
	ac.sessions.Machine(c.Request.Context(), sid).SignOut()

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me handles GET /auth/me.
func (ac *AuthController) Me(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := ac.authService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
