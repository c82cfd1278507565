package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/davitama/storefront/controllers"
	"github.com/davitama/storefront/middleware"
	"github.com/davitama/storefront/models"
	"github.com/davitama/storefront/services"
	"github.com/davitama/storefront/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, userID uuid.UUID, email string) (*models.Order, error) {
	args := m.Called(ctx, userID, email)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

// asUser injects an authenticated identity the way RequireAuth would.
func asUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserContextKey, userID)
		c.Next()
	}
}

func setupOrderRouter(orderService services.OrderService, identity ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	sessions := session.NewManager(session.NewMemoryStore(), time.Hour, zap.NewNop())
	oc := controllers.NewOrderController(orderService, sessions)

	r := gin.New()
	r.POST("/checkout", append(identity, oc.Checkout)...)
	r.GET("/orders", append(identity, oc.ListOrders)...)
	return r
}

const validCheckoutBody = `{"name":"Davi Tama","email":"user@example.com","payment_method":"bank_transfer"}`

func TestCheckout_CreatesOrder(t *testing.T) {
	userID := uuid.New()
	orderService := new(MockOrderService)
	orderService.On("CreateOrder", mock.Anything, userID, "user@example.com").
		Return(&models.Order{ID: uuid.New(), UserID: userID, Status: models.OrderStatusPending, SubtotalCents: 15700, Currency: "IDR"}, nil)
	r := setupOrderRouter(orderService, asUser(userID))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/checkout", strings.NewReader(validCheckoutBody))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "pending")
	orderService.AssertExpectations(t)
}

func TestCheckout_RequiresAuth(t *testing.T) {
	r := setupOrderRouter(new(MockOrderService))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/checkout", strings.NewReader(validCheckoutBody))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckout_EmptyCart(t *testing.T) {
	userID := uuid.New()
	orderService := new(MockOrderService)
	orderService.On("CreateOrder", mock.Anything, userID, "user@example.com").
		Return(nil, services.ErrEmptyCart)
	r := setupOrderRouter(orderService, asUser(userID))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/checkout", strings.NewReader(validCheckoutBody))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is empty")
}

func TestCheckout_InvalidPaymentMethod(t *testing.T) {
	orderService := new(MockOrderService)
	r := setupOrderRouter(orderService, asUser(uuid.New()))

	body := `{"name":"Davi Tama","email":"user@example.com","payment_method":"cash"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	orderService.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_MissingName(t *testing.T) {
	orderService := new(MockOrderService)
	r := setupOrderRouter(orderService, asUser(uuid.New()))

	body := `{"email":"user@example.com","payment_method":"e_wallet"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	orderService.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestListOrders_ReturnsHistory(t *testing.T) {
	userID := uuid.New()
	orderService := new(MockOrderService)
	orderService.On("ListOrders", mock.Anything, userID).
		Return([]models.Order{
			{ID: uuid.New(), UserID: userID, Status: models.OrderStatusPaid, SubtotalCents: 9900, Currency: "IDR"},
			{ID: uuid.New(), UserID: userID, Status: models.OrderStatusPending, SubtotalCents: 2900, Currency: "IDR"},
		}, nil)
	r := setupOrderRouter(orderService, asUser(userID))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/orders", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "paid")
	assert.Contains(t, w.Body.String(), "pending")
}

func TestListOrders_RequiresAuth(t *testing.T) {
	r := setupOrderRouter(new(MockOrderService))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/orders", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
