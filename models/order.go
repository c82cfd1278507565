package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order. Every order starts
// as pending; transitions are driven by payment handling, which this
// storefront does not perform.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is an immutable snapshot of a cart at checkout time. Orders are
// never updated or deleted once created.
type Order struct {
	ID            uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	Email         string      `gorm:"type:varchar(255);not null" json:"email"`
	Status        OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	SubtotalCents int64       `gorm:"not null" json:"subtotal_cents"`
	Currency      string      `gorm:"type:varchar(8);not null" json:"currency"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"created_at"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem copies name and price from the product at order-creation
// time so later catalog edits never alter historical orders.
type OrderItem struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	PriceCents int64     `gorm:"not null" json:"price_cents"`
	Quantity   int       `gorm:"not null" json:"quantity"`
}
