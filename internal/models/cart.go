package models

// CartItem is a single line in the cart: a product reference plus a
// quantity. The cart never holds two lines for the same product ID.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal returns price times quantity for this line.
func (i CartItem) LineTotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}

// CartSummary is the view of the cart handed to consumers: the lines in
// insertion order plus derived counts and the subtotal.
type CartSummary struct {
	Items      []CartItem `json:"items"`
	ItemCount  int        `json:"item_count"`  // distinct lines
	TotalItems int        `json:"total_items"` // sum of quantities
	Subtotal   float64    `json:"subtotal"`
}
