package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arkandha/feastly/internal/errors"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch status := OrderStatus(s); status {
	case OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusPreparing,
		OrderStatusOutForDelivery,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return status, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

func (s OrderStatus) Display() string {
	switch s {
	case OrderStatusPending:
		return "Pending Confirmation"
	case OrderStatusConfirmed:
		return "Order Confirmed"
	case OrderStatusPreparing:
		return "Being Prepared"
	case OrderStatusOutForDelivery:
		return "Out for Delivery"
	case OrderStatusDelivered:
		return "Delivered"
	case OrderStatusCancelled:
		return "Cancelled"
	}
	return "Unknown Status"
}

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodWallet PaymentMethod = "WALLET"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch method := PaymentMethod(s); method {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodWallet:
		return method, nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// OrderItem is an immutable snapshot of a cart line at commit time.
type OrderItem struct {
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int32           `json:"quantity"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt32(i.Quantity))
}

// Order is the persisted record of a completed checkout. It is created once;
// only Status (and DeliveryDate when delivered) mutate afterwards.
// Cancellation is a status transition, never a delete.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	CustomerID      uuid.UUID       `json:"customerId"`
	RestaurantID    uuid.UUID       `json:"restaurantId"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	DeliveryAddress string          `json:"deliveryAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Status          OrderStatus     `json:"status"`
	OrderDate       time.Time       `json:"orderDate"`
	DeliveryDate    *time.Time      `json:"deliveryDate,omitempty"`
}

// UpdateStatus sets the status without restricting the transition graph;
// vendors walk orders forward but the store does not police it. Reaching
// Delivered stamps the delivery date.
func (o *Order) UpdateStatus(status OrderStatus, now time.Time) {
	o.Status = status
	if status == OrderStatusDelivered {
		o.DeliveryDate = &now
	}
}

// CanCancel reports whether the order is still early enough in its lifecycle
// to cancel. Once preparation starts the order is committed.
func (o Order) CanCancel() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

func (o *Order) Cancel() error {
	if !o.CanCancel() {
		return errors.ErrInvalidStatusTransition
	}
	o.Status = OrderStatusCancelled
	return nil
}

// EstimatedDeliveryMinutes is a display-only estimate, not a contract.
func (o Order) EstimatedDeliveryMinutes() int {
	switch o.Status {
	case OrderStatusPending:
		return 45
	case OrderStatusConfirmed:
		return 40
	case OrderStatusPreparing:
		return 30
	case OrderStatusOutForDelivery:
		return 15
	}
	return 0
}

// ItemsSubtotal is the order total before the delivery fee.
func (o Order) ItemsSubtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}
