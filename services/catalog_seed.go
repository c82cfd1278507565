package services

import (
	"context"

	"github.com/davitama/storefront/models"
	"github.com/davitama/storefront/repository"
	"go.uber.org/zap"
)

// placeholderImage is a 1x1 transparent PNG used until real artwork is
// uploaded for a product.
const placeholderImage = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

var seedProducts = []models.Product{
	{
		Name:        "Digital Marketing Masterclass",
		Slug:        "digital-marketing-masterclass",
		Description: "Learn the complete digital marketing ecosystem including SEO, social media marketing, email campaigns, and analytics.",
		PriceCents:  9900,
		Currency:    "IDR",
		ImageBase64: placeholderImage,
		IsActive:    true,
	},
	{
		Name:        "Web Development Toolkit",
		Slug:        "web-development-toolkit",
		Description: "A comprehensive collection of web development tools, templates, and resources with workflow automation.",
		PriceCents:  14900,
		Currency:    "IDR",
		ImageBase64: placeholderImage,
		IsActive:    true,
	},
	{
		Name:        "Photography Lightroom Presets",
		Slug:        "photography-lightroom-presets",
		Description: "50+ carefully crafted Lightroom presets for portraits, landscapes, and street photography.",
		PriceCents:  2900,
		Currency:    "IDR",
		ImageBase64: placeholderImage,
		IsActive:    true,
	},
	{
		Name:        "Business Plan Templates",
		Slug:        "business-plan-templates",
		Description: "Business plan templates with financial projections, market analysis sheets, and presentation slides.",
		PriceCents:  7900,
		Currency:    "IDR",
		ImageBase64: placeholderImage,
		IsActive:    true,
	},
	{
		Name:        "Social Media Graphics Pack",
		Slug:        "social-media-graphics-pack",
		Description: "Over 100 professionally designed social media graphics for Instagram, Facebook, Twitter, and LinkedIn.",
		PriceCents:  3900,
		Currency:    "IDR",
		ImageBase64: placeholderImage,
		IsActive:    true,
	},
	{
		Name:        "Productivity Planner PDF",
		Slug:        "productivity-planner-pdf",
		Description: "A digital planner with daily, weekly, and monthly pages, goal-setting worksheets, and habit trackers.",
		PriceCents:  1900,
		Currency:    "IDR",
		ImageBase64: placeholderImage,
		IsActive:    true,
	},
}

// SeedCatalog inserts the starter catalog when the products table is
// empty. Safe to run on every startup.
func SeedCatalog(ctx context.Context, repo repository.ProductRepository, logger *zap.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return backendErr("count products", "", err)
	}
	if count > 0 {
		return nil
	}

	if err := repo.CreateBatch(ctx, seedProducts); err != nil {
		return backendErr("seed products", "", err)
	}
	logger.Info("Seeded product catalog", zap.Int("products", len(seedProducts)))
	return nil
}
