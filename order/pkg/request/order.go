package request

type Checkout struct {
	DeliveryAddress string `json:"deliveryAddress" validate:"required"`
	PaymentMethod   string `json:"paymentMethod"   validate:"required"`
	Notes           string `json:"notes"`
}

type UpdateOrderStatus struct {
	Status string `json:"status" validate:"required"`
}
