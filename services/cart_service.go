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

// CartService is the domain access layer for server-persisted carts. It
// enforces the invariants the row store does not: one current cart per
// user and at most one line per (cart, product) pair.
type CartService interface {
	ResolveCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	SetQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error
	ListItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, logger *zap.Logger) CartService {
	return &cartServiceImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// ResolveCart returns the user's current cart, creating one lazily on
// first access.
func (s *cartServiceImpl) ResolveCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	cart, err := s.cartRepo.FindCurrentByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("Failed to look up cart", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, backendErr("resolve cart", userID.String(), err)
	}

	cart = &models.Cart{UserID: userID}
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		s.logger.Error("Failed to create cart", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, backendErr("create cart", userID.String(), err)
	}

	s.logger.Info("Cart created", zap.String("cart_id", cart.ID.String()), zap.String("user_id", userID.String()))
	return cart, nil
}

// AddItem adds quantity of a product to the user's cart. Adding a
// product already in the cart increments the existing line; the
// increment happens in a single conflict-guarded insert, so concurrent
// adds cannot duplicate lines or lose counts.
func (s *cartServiceImpl) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		s.logger.Error("Failed to look up product", zap.String("product_id", productID.String()), zap.Error(err))
		return backendErr("look up product", productID.String(), err)
	}
	if !product.IsActive {
		return ErrProductNotFound
	}

	cart, err := s.ResolveCart(ctx, userID)
	if err != nil {
		return err
	}

	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.UpsertItem(ctx, item); err != nil {
		s.logger.Error("Failed to add cart item",
			zap.String("cart_id", cart.ID.String()),
			zap.String("product_id", productID.String()),
			zap.Error(err),
		)
		return backendErr("add cart item", productID.String(), err)
	}
	return nil
}

// RemoveItem deletes a single line by its identity. The line must
// belong to the caller's cart.
func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}
	if err := s.cartRepo.DeleteItem(ctx, itemID); err != nil {
		s.logger.Error("Failed to remove cart item", zap.String("item_id", itemID.String()), zap.Error(err))
		return backendErr("remove cart item", itemID.String(), err)
	}
	return nil
}

// SetQuantity replaces a line's quantity. Zero or negative quantities
// delete the line. The line must belong to the caller's cart.
func (s *cartServiceImpl) SetQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, itemID)
	}
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}
	if err := s.cartRepo.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
		s.logger.Error("Failed to update cart item quantity",
			zap.String("item_id", itemID.String()),
			zap.Int("quantity", quantity),
			zap.Error(err),
		)
		return backendErr("update cart item quantity", itemID.String(), err)
	}
	return nil
}

// ownedItem loads a cart line and verifies it sits in the caller's own
// cart. A line owned by someone else is indistinguishable from a
// missing one.
func (s *cartServiceImpl) ownedItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error) {
	cart, err := s.ResolveCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.FindItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		s.logger.Error("Failed to look up cart item", zap.String("item_id", itemID.String()), zap.Error(err))
		return nil, backendErr("look up cart item", itemID.String(), err)
	}
	if item.CartID != cart.ID {
		return nil, ErrCartItemNotFound
	}
	return item, nil
}

// ListItems returns all lines of the user's cart joined with their
// product snapshots.
func (s *cartServiceImpl) ListItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	cart, err := s.ResolveCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		s.logger.Error("Failed to list cart items", zap.String("cart_id", cart.ID.String()), zap.Error(err))
		return nil, backendErr("list cart items", cart.ID.String(), err)
	}
	return items, nil
}

// Clear removes every line from the user's cart.
func (s *cartServiceImpl) Clear(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.ResolveCart(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.cartRepo.ClearItems(ctx, cart.ID); err != nil {
		s.logger.Error("Failed to clear cart", zap.String("cart_id", cart.ID.String()), zap.Error(err))
		return backendErr("clear cart", cart.ID.String(), err)
	}
	return nil
}
