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

// ProductService exposes the read-only product catalog.
type ProductService interface {
	ListActive(ctx context.Context) ([]models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type productServiceImpl struct {
	repo   repository.ProductRepository
	logger *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repository.ProductRepository, logger *zap.Logger) ProductService {
	return &productServiceImpl{repo: repo, logger: logger}
}

func (s *productServiceImpl) ListActive(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, backendErr("list products", "", err)
	}
	return products, nil
}

func (s *productServiceImpl) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		s.logger.Error("Failed to fetch product", zap.String("slug", slug), zap.Error(err))
		return nil, backendErr("fetch product", slug, err)
	}
	return product, nil
}

func (s *productServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		s.logger.Error("Failed to fetch product", zap.String("product_id", id.String()), zap.Error(err))
		return nil, backendErr("fetch product", id.String(), err)
	}
	if !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}
