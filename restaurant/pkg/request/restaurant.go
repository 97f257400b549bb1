package request

import "github.com/shopspring/decimal"

type CreateRestaurant struct {
	Name        string          `json:"name"        validate:"required"`
	Address     string          `json:"address"     validate:"required"`
	Phone       string          `json:"phone"       validate:"required"`
	Cuisine     string          `json:"cuisine"`
	Rating      float64         `json:"rating"      validate:"min=0,max=5"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	IsActive    bool            `json:"isActive"`
}

type UpdateRestaurant struct {
	Name        string          `json:"name"        validate:"required"`
	Address     string          `json:"address"     validate:"required"`
	Phone       string          `json:"phone"       validate:"required"`
	Cuisine     string          `json:"cuisine"`
	Rating      float64         `json:"rating"      validate:"min=0,max=5"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	IsActive    bool            `json:"isActive"`
}
