package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductCanOrder(t *testing.T) {
	tests := []struct {
		name     string
		product  Product
		quantity int32
		expected bool
	}{
		{
			name:     "available with enough stock",
			product:  Product{IsAvailable: true, Stock: 10},
			quantity: 10,
			expected: true,
		},
		{
			name:     "available with insufficient stock",
			product:  Product{IsAvailable: true, Stock: 3},
			quantity: 4,
			expected: false,
		},
		{
			name:     "unavailable even with stock",
			product:  Product{IsAvailable: false, Stock: 100},
			quantity: 1,
			expected: false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.product.CanOrder(test.quantity))
		})
	}
}

func TestProductStockStatus(t *testing.T) {
	tests := []struct {
		name     string
		product  Product
		expected string
	}{
		{name: "unavailable", product: Product{IsAvailable: false, Stock: 10}, expected: "Unavailable"},
		{name: "out of stock", product: Product{IsAvailable: true, Stock: 0}, expected: "Out of Stock"},
		{name: "low stock", product: Product{IsAvailable: true, Stock: 4}, expected: "Low Stock"},
		{name: "in stock", product: Product{IsAvailable: true, Stock: 5}, expected: "In Stock"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.product.StockStatus())
		})
	}
}
