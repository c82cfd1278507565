package services

import (
	"context"

	"github.com/davitama/storefront/cartview"
	"github.com/davitama/storefront/models"
	"github.com/google/uuid"
)

// remoteCart adapts the cart domain access layer to the view machine's
// Remote interface, bound to one signed-in user.
type remoteCart struct {
	svc    CartService
	userID uuid.UUID
}

// NewRemoteCart binds CartService to a user for use by a cart view machine.
func NewRemoteCart(svc CartService, userID uuid.UUID) cartview.Remote {
	return &remoteCart{svc: svc, userID: userID}
}

func (r *remoteCart) List(ctx context.Context) ([]cartview.Line, error) {
	items, err := r.svc.ListItems(ctx, r.userID)
	if err != nil {
		return nil, err
	}
	lines := make([]cartview.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, lineFromCartItem(item))
	}
	return lines, nil
}

func (r *remoteCart) Add(ctx context.Context, productID uuid.UUID, quantity int) error {
	return r.svc.AddItem(ctx, r.userID, productID, quantity)
}

func (r *remoteCart) Remove(ctx context.Context, itemID uuid.UUID) error {
	return r.svc.RemoveItem(ctx, r.userID, itemID)
}

func (r *remoteCart) SetQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return r.svc.SetQuantity(ctx, r.userID, itemID, quantity)
}

func (r *remoteCart) Clear(ctx context.Context) error {
	return r.svc.Clear(ctx, r.userID)
}

func lineFromCartItem(item models.CartItem) cartview.Line {
	return cartview.Line{
		ItemID:      item.ID.String(),
		ProductID:   item.ProductID.String(),
		Name:        item.Product.Name,
		Slug:        item.Product.Slug,
		Description: item.Product.Description,
		PriceCents:  item.Product.PriceCents,
		Currency:    item.Product.Currency,
		ImageBase64: item.Product.ImageBase64,
		Quantity:    item.Quantity,
	}
}

// LineFromProduct builds a guest cart line from a catalog product.
func LineFromProduct(p *models.Product) cartview.Line {
	return cartview.Line{
		ProductID:   p.ID.String(),
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Currency:    p.Currency,
		ImageBase64: p.ImageBase64,
		Quantity:    1,
	}
}
