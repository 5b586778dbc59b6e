package service

import (
	"math"

	"github.com/tribalarts/storefront-service/internal/config"
	"github.com/tribalarts/storefront-service/internal/models"
)

// Quote is the pricing breakdown for a cart. The same function produces it at
// cart-display time, at checkout begin, and for reconciliation, so the server
// never has to trust a client-supplied total.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeQuote prices a cart: flat shipping on any non-empty cart, tax as a
// fraction of the subtotal, amounts rounded to two decimals.
func ComputeQuote(items []models.CartItem, cfg config.PricingConfig) Quote {
	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	subtotal = roundCurrency(subtotal)

	var shipping float64
	if len(items) > 0 {
		shipping = cfg.FlatShippingRate
	}

	tax := roundCurrency(subtotal * cfg.TaxRate)

	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    roundCurrency(subtotal + shipping + tax),
	}
}

// ToMinorUnits converts a decimal amount to the currency's smallest unit for
// the gateway, e.g. 226.00 -> 22600 paise.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func roundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}
