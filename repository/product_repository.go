package repository

import (
	"context"

	"github.com/davitama/storefront/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines read access to the product catalog. The
// storefront never mutates products; CreateBatch exists only for seeding.
type ProductRepository interface {
	ListActive(ctx context.Context) ([]models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, products []models.Product) error
}

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new instance of GormProductRepository
func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

// ListActive retrieves all products currently offered for sale.
func (r *GormProductRepository) ListActive(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindBySlug retrieves a single active product by its URL slug.
func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByID retrieves a product by its primary key.
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Count returns the total number of product rows, active or not.
func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateBatch inserts a batch of products. Used by the startup seeder.
func (r *GormProductRepository) CreateBatch(ctx context.Context, products []models.Product) error {
	return r.db.WithContext(ctx).Create(&products).Error
}
