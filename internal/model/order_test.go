package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	inErrors "github.com/arkandha/feastly/internal/errors"
)

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		input       string
		expected    OrderStatus
		expectedErr bool
	}{
		{input: "PENDING", expected: OrderStatusPending},
		{input: "CONFIRMED", expected: OrderStatusConfirmed},
		{input: "PREPARING", expected: OrderStatusPreparing},
		{input: "OUT_FOR_DELIVERY", expected: OrderStatusOutForDelivery},
		{input: "DELIVERED", expected: OrderStatusDelivered},
		{input: "CANCELLED", expected: OrderStatusCancelled},
		{input: "SHIPPED", expectedErr: true},
		{input: "", expectedErr: true},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			actual, err := ParseOrderStatus(test.input)
			if test.expectedErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestOrderCancel(t *testing.T) {
	tests := []struct {
		status      OrderStatus
		expectedErr error
	}{
		{status: OrderStatusPending},
		{status: OrderStatusConfirmed},
		{status: OrderStatusPreparing, expectedErr: inErrors.ErrInvalidStatusTransition},
		{status: OrderStatusOutForDelivery, expectedErr: inErrors.ErrInvalidStatusTransition},
		{status: OrderStatusDelivered, expectedErr: inErrors.ErrInvalidStatusTransition},
		{status: OrderStatusCancelled, expectedErr: inErrors.ErrInvalidStatusTransition},
	}
	for _, test := range tests {
		t.Run(string(test.status), func(t *testing.T) {
			order := Order{Status: test.status}

			err := order.Cancel()

			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				assert.Equal(t, test.status, order.Status)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, OrderStatusCancelled, order.Status)
		})
	}
}

func TestOrderUpdateStatus(t *testing.T) {
	t.Run("delivered stamps the delivery date", func(t *testing.T) {
		now := time.Now()
		order := Order{Status: OrderStatusOutForDelivery}

		order.UpdateStatus(OrderStatusDelivered, now)

		assert.Equal(t, OrderStatusDelivered, order.Status)
		if assert.NotNil(t, order.DeliveryDate) {
			assert.Equal(t, now, *order.DeliveryDate)
		}
	})

	t.Run("other statuses leave the delivery date empty", func(t *testing.T) {
		order := Order{Status: OrderStatusPending}

		order.UpdateStatus(OrderStatusConfirmed, time.Now())

		assert.Equal(t, OrderStatusConfirmed, order.Status)
		assert.Nil(t, order.DeliveryDate)
	})
}

func TestOrderEstimatedDeliveryMinutes(t *testing.T) {
	tests := []struct {
		status   OrderStatus
		expected int
	}{
		{status: OrderStatusPending, expected: 45},
		{status: OrderStatusConfirmed, expected: 40},
		{status: OrderStatusPreparing, expected: 30},
		{status: OrderStatusOutForDelivery, expected: 15},
		{status: OrderStatusDelivered, expected: 0},
		{status: OrderStatusCancelled, expected: 0},
	}
	for _, test := range tests {
		t.Run(string(test.status), func(t *testing.T) {
			order := Order{Status: test.status}
			assert.Equal(t, test.expected, order.EstimatedDeliveryMinutes())
		})
	}
}

func TestOrderItemsSubtotal(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{ProductID: uuid.New(), UnitPrice: decimal.RequireFromString("10.00"), Quantity: 2},
			{ProductID: uuid.New(), UnitPrice: decimal.RequireFromString("4.50"), Quantity: 3},
		},
	}
	assert.True(t, order.ItemsSubtotal().Equal(decimal.RequireFromString("33.50")))
}
