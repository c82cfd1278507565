package repository

import (
	"context"

	"github.com/davitama/storefront/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository defines data access for orders. Orders are write-once:
// there is no update or delete path.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	CreateItems(ctx context.Context, items []models.OrderItem) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new instance of GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts a new order row.
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("Items").Create(order).Error
}

// CreateItems inserts the order's line-item snapshots.
func (r *GormOrderRepository) CreateItems(ctx context.Context, items []models.OrderItem) error {
	return r.db.WithContext(ctx).Create(&items).Error
}

// FindByUserID retrieves the user's orders, newest first, with their
// line items resolved in the same query round.
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
