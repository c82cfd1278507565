package repository

import (
	"context"

	"github.com/davitama/storefront/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository defines data access for carts and cart lines.
type CartRepository interface {
	FindCurrentByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	UpsertItem(ctx context.Context, item *models.CartItem) error
	FindItem(ctx context.Context, itemID uuid.UUID) (*models.CartItem, error)
	ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	ClearItems(ctx context.Context, cartID uuid.UUID) error
}

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new instance of GormCartRepository
func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

// FindCurrentByUser returns the user's current cart: the most recently
// created row, should duplicates ever exist. Returns
// gorm.ErrRecordNotFound when the user has no cart yet.
func (r *GormCartRepository) FindCurrentByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// Create inserts a new cart for a user.
func (r *GormCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

// UpsertItem inserts a cart line, or increments the quantity of the
// existing line for the same (cart, product) pair. The conflict target is
// the unique index on (cart_id, product_id), so concurrent adds of the
// same product cannot produce duplicate lines.
func (r *GormCartRepository) UpsertItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).
		Omit("Product").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			}),
		}).
		Create(item).Error
}

// FindItem retrieves a single cart line by its identity.
func (r *GormCartRepository) FindItem(ctx context.Context, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).
		Where("id = ?", itemID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns all lines of a cart joined with their product
// snapshot, oldest line first.
func (r *GormCartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItemQuantity replaces the stored quantity of a line.
func (r *GormCartRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

// DeleteItem removes a single line from a cart.
func (r *GormCartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&models.CartItem{}).Error
}

// ClearItems removes every line of a cart.
func (r *GormCartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
}
