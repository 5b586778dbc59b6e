package service

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tribalarts/storefront-service/internal/config"
	"github.com/tribalarts/storefront-service/internal/models"
)

var testPricing = config.PricingConfig{
	TaxRate:          0.08,
	FlatShippingRate: 10,
	Currency:         "INR",
}

func TestComputeQuote(t *testing.T) {
	tests := []struct {
		name     string
		items    []models.CartItem
		expected Quote
	}{
		{
			name: "single line",
			items: []models.CartItem{
				{ProductID: "prod_1", UnitPrice: 100, Quantity: 2},
			},
			expected: Quote{Subtotal: 200, Shipping: 10, Tax: 16, Total: 226},
		},
		{
			name:     "empty cart has no shipping",
			items:    nil,
			expected: Quote{Subtotal: 0, Shipping: 0, Tax: 0, Total: 0},
		},
		{
			name: "multiple lines",
			items: []models.CartItem{
				{ProductID: "prod_1", UnitPrice: 49.99, Quantity: 1},
				{ProductID: "prod_2", UnitPrice: 25, Quantity: 2},
			},
			expected: Quote{Subtotal: 99.99, Shipping: 10, Tax: 8, Total: 117.99},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := ComputeQuote(tt.items, testPricing)
			if quote != tt.expected {
				t.Errorf("ComputeQuote() = %+v, want %+v", quote, tt.expected)
			}
		})
	}
}

func TestComputeQuote_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		items := make([]models.CartItem, 1+rng.Intn(8))
		for j := range items {
			items[j] = models.CartItem{
				ProductID: "prod_rand",
				UnitPrice: math.Round(rng.Float64()*50000) / 100,
				Quantity:  1 + rng.Intn(5),
			}
		}

		first := ComputeQuote(items, testPricing)
		second := ComputeQuote(items, testPricing)
		if first != second {
			t.Fatalf("quote not deterministic: %+v vs %+v", first, second)
		}

		wantTotal := roundCurrency(first.Subtotal + first.Shipping + first.Tax)
		if first.Total != wantTotal {
			t.Fatalf("total %v != subtotal+shipping+tax %v", first.Total, wantTotal)
		}
		if first.Shipping != testPricing.FlatShippingRate {
			t.Fatalf("expected flat shipping %v, got %v", testPricing.FlatShippingRate, first.Shipping)
		}
	}
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		amount   float64
		expected int64
	}{
		{226.00, 22600},
		{0.01, 1},
		{99.999, 10000},
		{117.99, 11799},
		{0, 0},
	}

	for _, tt := range tests {
		if got := ToMinorUnits(tt.amount); got != tt.expected {
			t.Errorf("ToMinorUnits(%v) = %d, want %d", tt.amount, got, tt.expected)
		}
	}
}

func BenchmarkComputeQuote(b *testing.B) {
	items := []models.CartItem{
		{ProductID: "prod_1", UnitPrice: 100, Quantity: 2},
		{ProductID: "prod_2", UnitPrice: 49.5, Quantity: 1},
		{ProductID: "prod_3", UnitPrice: 12.25, Quantity: 4},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputeQuote(items, testPricing)
	}
}
