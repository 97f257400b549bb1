package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Restaurant struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	Phone       string          `json:"phone"`
	Cuisine     string          `json:"cuisine,omitempty"`
	Rating      float64         `json:"rating"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	IsActive    bool            `json:"isActive"`
}

// OrderStats is the admin dashboard aggregate over all orders.
type OrderStats struct {
	TotalOrders    int64                 `json:"totalOrders"`
	TotalRevenue   decimal.Decimal       `json:"totalRevenue"`
	CountsByStatus map[OrderStatus]int64 `json:"countsByStatus"`
}
