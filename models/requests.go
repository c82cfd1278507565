package models

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AddToCartRequest is the payload for POST /cart/items. Each call adds
// one unit; repeating a product increments its existing line.
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

// UpdateQuantityRequest is the payload for PATCH /cart/items/:id.
// Zero and negative quantities drop the line entirely.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest is the checkout form. The payment method is a stored
// tag only; no gateway is called.
type CheckoutRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	Email         string `json:"email" validate:"required,email"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=bank_transfer e_wallet credit_card"`
}
