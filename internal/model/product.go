package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a restaurant menu item. The cart and order workflow treat it as
// read-only catalog data.
type Product struct {
	ID           uuid.UUID       `json:"id"`
	RestaurantID uuid.UUID       `json:"restaurantId"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Stock        int32           `json:"stock"`
	IsAvailable  bool            `json:"isAvailable"`
}

// CanOrder reports whether the requested quantity can be fulfilled right now.
func (p Product) CanOrder(quantity int32) bool {
	return p.IsAvailable && p.Stock >= quantity
}

func (p Product) StockStatus() string {
	switch {
	case !p.IsAvailable:
		return "Unavailable"
	case p.Stock == 0:
		return "Out of Stock"
	case p.Stock < 5:
		return "Low Stock"
	}
	return "In Stock"
}
