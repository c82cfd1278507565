package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart belongs to exactly one user and is created lazily on first cart
// access. If duplicates ever exist, the most recently created one wins.
type Cart struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// CartItem is one line in a cart. At most one row exists per
// (cart, product) pair, enforced by the unique index and the
// increment-on-conflict insert in the repository.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
}
