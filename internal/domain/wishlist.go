package domain

// WishlistEntry is a saved-for-later product. Entries are keyed by product id
// with set semantics; there is no quantity.
type WishlistEntry struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         int64   `json:"price"`
	OriginalPrice int64   `json:"originalPrice,omitempty"`
	Image         string  `json:"image"`
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand"`
	InStock       bool    `json:"inStock"`
}
