package services

import (
	"context"
	"errors"

	"github.com/davitama/storefront/models"
	"github.com/davitama/storefront/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderService turns a cart snapshot into a permanent order.
type OrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, email string) (*models.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

type orderServiceImpl struct {
	db        *gorm.DB
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService. The *gorm.DB handle is
// kept so order creation can run inside a single transaction.
func NewOrderService(db *gorm.DB, cartRepo repository.CartRepository, orderRepo repository.OrderRepository, logger *zap.Logger) OrderService {
	return &orderServiceImpl{
		db:        db,
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// CreateOrder snapshots the user's cart into an order. The order row,
// its line items, and the cart clear are committed atomically: a failure
// at any step rolls back all three.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, userID uuid.UUID, email string) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	cart, err := s.cartRepo.FindCurrentByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmptyCart
		}
		s.logger.Error("Failed to look up cart for checkout", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, backendErr("resolve cart", userID.String(), err)
	}

	lines, err := s.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		s.logger.Error("Failed to list cart items for checkout", zap.String("cart_id", cart.ID.String()), zap.Error(err))
		return nil, backendErr("list cart items", cart.ID.String(), err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	var subtotalCents int64
	currency := "IDR"
	for i, line := range lines {
		subtotalCents += line.Product.PriceCents * int64(line.Quantity)
		if i == 0 && line.Product.Currency != "" {
			currency = line.Product.Currency
		}
	}

	order := &models.Order{
		ID:            uuid.New(),
		UserID:        userID,
		Email:         email,
		Status:        models.OrderStatusPending,
		SubtotalCents: subtotalCents,
		Currency:      currency,
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			ProductID:  line.ProductID,
			Name:       line.Product.Name,
			PriceCents: line.Product.PriceCents,
			Quantity:   line.Quantity,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txOrders := repository.NewGormOrderRepository(tx)
		if err := txOrders.Create(ctx, order); err != nil {
			return err
		}
		if err := txOrders.CreateItems(ctx, items); err != nil {
			return err
		}
		txCarts := repository.NewGormCartRepository(tx)
		return txCarts.ClearItems(ctx, cart.ID)
	})
	if err != nil {
		s.logger.Error("Checkout transaction failed",
			zap.String("user_id", userID.String()),
			zap.String("cart_id", cart.ID.String()),
			zap.Error(err),
		)
		return nil, backendErr("create order", userID.String(), err)
	}

	order.Items = items
	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("items", len(items)),
		zap.Int64("subtotal_cents", subtotalCents),
	)
	return order, nil
}

// ListOrders returns the user's order history, newest first, with line
// items resolved in a single joined fetch.
func (s *orderServiceImpl) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, backendErr("list orders", userID.String(), err)
	}
	return orders, nil
}
