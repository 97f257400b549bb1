package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	inErrors "github.com/arkandha/feastly/internal/errors"
)

func cartItem(productId, restaurantId uuid.UUID, price string, quantity int32) CartItem {
	return CartItem{
		ProductID:      productId,
		ProductName:    "item",
		UnitPrice:      decimal.RequireFromString(price),
		Quantity:       quantity,
		RestaurantID:   restaurantId,
		RestaurantName: "restaurant",
	}
}

func TestCartAddItem(t *testing.T) {
	restaurantId := uuid.New()
	otherRestaurantId := uuid.New()
	productId := uuid.New()

	t.Run("empty cart adopts the restaurant", func(t *testing.T) {
		cart := Cart{}

		err := cart.AddItem(cartItem(productId, restaurantId, "10.00", 2))

		assert.NoError(t, err)
		assert.Equal(t, restaurantId, cart.RestaurantID)
		assert.Len(t, cart.Items, 1)
		assert.EqualValues(t, 2, cart.TotalItems())
	})

	t.Run("same product merges quantity", func(t *testing.T) {
		cart := Cart{}
		assert.NoError(t, cart.AddItem(cartItem(productId, restaurantId, "10.00", 2)))

		err := cart.AddItem(cartItem(productId, restaurantId, "10.00", 3))

		assert.NoError(t, err)
		assert.Len(t, cart.Items, 1)
		assert.EqualValues(t, 5, cart.Items[0].Quantity)
		assert.True(t, cart.TotalAmount().Equal(decimal.RequireFromString("50.00")))
	})

	t.Run("other restaurant is rejected and cart unchanged", func(t *testing.T) {
		cart := Cart{}
		assert.NoError(t, cart.AddItem(cartItem(productId, restaurantId, "10.00", 2)))

		err := cart.AddItem(cartItem(uuid.New(), otherRestaurantId, "7.50", 1))

		assert.ErrorIs(t, err, inErrors.ErrCartRestaurantConflict)
		assert.Equal(t, restaurantId, cart.RestaurantID)
		assert.Len(t, cart.Items, 1)
		assert.EqualValues(t, 2, cart.TotalItems())
	})

	t.Run("quantity below one is rejected", func(t *testing.T) {
		cart := Cart{}

		err := cart.AddItem(cartItem(productId, restaurantId, "10.00", 0))

		assert.ErrorIs(t, err, inErrors.ErrInvalidQuantity)
		assert.True(t, cart.IsEmpty())
	})
}

func TestCartUpdateItemQuantity(t *testing.T) {
	restaurantId := uuid.New()
	productId := uuid.New()
	otherProductId := uuid.New()

	t.Run("sets quantity", func(t *testing.T) {
		cart := Cart{}
		assert.NoError(t, cart.AddItem(cartItem(productId, restaurantId, "10.00", 2)))

		cart.UpdateItemQuantity(productId, 7)

		assert.EqualValues(t, 7, cart.Items[0].Quantity)
	})

	t.Run("zero removes the item", func(t *testing.T) {
		cart := Cart{}
		assert.NoError(t, cart.AddItem(cartItem(productId, restaurantId, "10.00", 2)))
		assert.NoError(t, cart.AddItem(cartItem(otherProductId, restaurantId, "5.00", 1)))

		cart.UpdateItemQuantity(productId, 0)

		assert.Len(t, cart.Items, 1)
		assert.Equal(t, otherProductId, cart.Items[0].ProductID)
	})

	t.Run("removing the last item releases the restaurant binding", func(t *testing.T) {
		cart := Cart{}
		assert.NoError(t, cart.AddItem(cartItem(productId, restaurantId, "10.00", 2)))

		cart.UpdateItemQuantity(productId, -1)

		assert.True(t, cart.IsEmpty())
		assert.Equal(t, uuid.Nil, cart.RestaurantID)
		assert.NoError(t, cart.AddItem(cartItem(otherProductId, uuid.New(), "5.00", 1)))
	})

	t.Run("unknown product is a no-op", func(t *testing.T) {
		cart := Cart{}
		assert.NoError(t, cart.AddItem(cartItem(productId, restaurantId, "10.00", 2)))

		cart.UpdateItemQuantity(uuid.New(), 9)

		assert.Len(t, cart.Items, 1)
		assert.EqualValues(t, 2, cart.Items[0].Quantity)
	})
}

func TestCartTotals(t *testing.T) {
	restaurantId := uuid.New()
	cart := Cart{}
	assert.NoError(t, cart.AddItem(cartItem(uuid.New(), restaurantId, "10.00", 2)))
	assert.NoError(t, cart.AddItem(cartItem(uuid.New(), restaurantId, "3.25", 4)))

	assert.EqualValues(t, 6, cart.TotalItems())
	assert.True(t, cart.TotalAmount().Equal(decimal.RequireFromString("33.00")))
}

func TestCartJsonRoundTrip(t *testing.T) {
	restaurantId := uuid.New()
	cart := Cart{}
	assert.NoError(t, cart.AddItem(cartItem(uuid.New(), restaurantId, "10.00", 2)))

	marshaled, err := json.Marshal(cart)
	assert.NoError(t, err)

	decoded := Cart{}
	assert.NoError(t, json.Unmarshal(marshaled, &decoded))
	assert.Equal(t, cart.RestaurantID, decoded.RestaurantID)
	assert.Len(t, decoded.Items, 1)
	assert.True(t, decoded.Items[0].UnitPrice.Equal(cart.Items[0].UnitPrice))
	assert.EqualValues(t, cart.Items[0].Quantity, decoded.Items[0].Quantity)
}
