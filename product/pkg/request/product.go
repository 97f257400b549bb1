package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateProduct struct {
	RestaurantId uuid.UUID       `json:"restaurantId" validate:"required"`
	Name         string          `json:"name"         validate:"required"`
	Description  string          `json:"description"`
	Category     string          `json:"category"     validate:"required"`
	Price        decimal.Decimal `json:"price"        validate:"required"`
	Stock        int32           `json:"stock"        validate:"min=0"`
	IsAvailable  bool            `json:"isAvailable"`
}

type UpdateProduct struct {
	Name        string          `json:"name"        validate:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category"    validate:"required"`
	Price       decimal.Decimal `json:"price"       validate:"required"`
	Stock       int32           `json:"stock"       validate:"min=0"`
	IsAvailable bool            `json:"isAvailable"`
}

type AdjustProductStock struct {
	Delta int32 `json:"delta" validate:"required"`
}

type UpdateProductAvailability struct {
	IsAvailable bool `json:"isAvailable"`
}
