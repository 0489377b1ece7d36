package domain

// CartLine is one distinct product entry in the cart. The cart holds at most
// one line per product id; quantity never falls below 1 while the line exists.
type CartLine struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         int64   `json:"price"` // whole currency units, no subunits
	OriginalPrice int64   `json:"originalPrice,omitempty"`
	Image         string  `json:"image"`
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews"`
	Quantity      int     `json:"quantity"`
}

// Subtotal uses the current price, never OriginalPrice.
func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}
