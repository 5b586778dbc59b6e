package models

import "time"

// CartItem is one line of a client-held cart. UnitPrice is a snapshot taken
// when the item was added; the server re-validates against the catalog before
// charging.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

// Cart is the per-user synced item list. Guests keep theirs client-side only.
type Cart struct {
	UserEmail string     `json:"user_email"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Normalize drops lines with quantity below one. Zero or negative quantity
// means removal, matching the cart UI behaviour.
func (c *Cart) Normalize() {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.Quantity >= 1 {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// Wishlist mirrors Cart without quantities or price snapshots.
type Wishlist struct {
	UserEmail string         `json:"user_email"`
	Items     []WishlistItem `json:"items"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type WishlistItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Image     string  `json:"image,omitempty"`
}
