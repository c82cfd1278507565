package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a digital good in the catalog. The storefront treats products
// as read-only; rows are managed out of band.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	PriceCents  int64     `gorm:"not null" json:"price_cents"`
	Currency    string    `gorm:"type:varchar(8);not null;default:'IDR'" json:"currency"`
	ImageBase64 string    `gorm:"type:text" json:"image_base64"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
