// Package cartview holds the unified cart view for one shopping session.
// The same view is presented whether the shopper is signed in or not: a
// pure reducer maintains the in-memory state, and a machine routes each
// mutation either to local state (guest) or through the server-persisted
// cart (write-through).
package cartview

// Line is one denormalized cart line as shown to the shopper. For guest
// sessions lines exist only in memory and ItemID is empty; for signed-in
// sessions ItemID is the server-side cart line identity.
type Line struct {
	ItemID      string `json:"item_id,omitempty"`
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Currency    string `json:"currency"`
	ImageBase64 string `json:"image_base64"`
	Quantity    int    `json:"quantity"`
}

// State is the cart view handed to the presentation layer.
type State struct {
	Items   []Line  `json:"items"`
	Total   float64 `json:"total"`
	Loading bool    `json:"loading"`
}

// calculateTotal recomputes the display total from scratch after every
// transition. Never maintained incrementally, to avoid drift.
func calculateTotal(items []Line) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.PriceCents) / 100 * float64(item.Quantity)
	}
	return total
}

// Add appends a new line with quantity 1, or increments the quantity of
// the line already holding the same product.
func Add(s State, line Line) State {
	for i, item := range s.Items {
		if item.ProductID == line.ProductID {
			items := make([]Line, len(s.Items))
			copy(items, s.Items)
			items[i].Quantity++
			return State{Items: items, Total: calculateTotal(items), Loading: s.Loading}
		}
	}

	line.Quantity = 1
	items := make([]Line, 0, len(s.Items)+1)
	items = append(items, s.Items...)
	items = append(items, line)
	return State{Items: items, Total: calculateTotal(items), Loading: s.Loading}
}

// Remove drops the line holding the given product.
func Remove(s State, productID string) State {
	items := make([]Line, 0, len(s.Items))
	for _, item := range s.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	return State{Items: items, Total: calculateTotal(items), Loading: s.Loading}
}

// SetQuantity replaces the quantity of the line holding the given
// product. Zero or negative quantities drop the line entirely.
func SetQuantity(s State, productID string, quantity int) State {
	items := make([]Line, 0, len(s.Items))
	for _, item := range s.Items {
		if item.ProductID == productID {
			item.Quantity = quantity
		}
		if item.Quantity > 0 {
			items = append(items, item)
		}
	}
	return State{Items: items, Total: calculateTotal(items), Loading: s.Loading}
}

// Clear resets the view to an empty cart.
func Clear(s State) State {
	return State{Items: []Line{}, Total: 0, Loading: s.Loading}
}

// ReplaceAll resynchronizes the view with authoritative server state
// after a round trip.
func ReplaceAll(s State, items []Line) State {
	if items == nil {
		items = []Line{}
	}
	return State{Items: items, Total: calculateTotal(items), Loading: s.Loading}
}
