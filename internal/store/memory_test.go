package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/arkandha/feastly/internal/model"
)

func TestMemoryCartStore(t *testing.T) {
	c := context.Background()
	carts := NewMemoryCartStore()
	sessionId := uuid.New()

	cart := model.Cart{}
	assert.NoError(t, cart.AddItem(model.CartItem{
		ProductID:      uuid.New(),
		ProductName:    "Margherita",
		UnitPrice:      decimal.RequireFromString("10.00"),
		Quantity:       2,
		RestaurantID:   uuid.New(),
		RestaurantName: "Pizza Place",
	}))

	t.Run("absent session yields an empty cart", func(t *testing.T) {
		stored, err := carts.Get(c, sessionId)
		assert.NoError(t, err)
		assert.True(t, stored.IsEmpty())
	})

	t.Run("set then get round trips", func(t *testing.T) {
		assert.NoError(t, carts.Set(c, sessionId, cart))

		stored, err := carts.Get(c, sessionId)
		assert.NoError(t, err)
		assert.Len(t, stored.Items, 1)
	})

	t.Run("stored cart is a copy", func(t *testing.T) {
		stored, err := carts.Get(c, sessionId)
		assert.NoError(t, err)
		stored.Items[0].Quantity = 99

		again, err := carts.Get(c, sessionId)
		assert.NoError(t, err)
		assert.EqualValues(t, 2, again.Items[0].Quantity)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		assert.NoError(t, carts.Delete(c, sessionId))
		assert.NoError(t, carts.Delete(c, sessionId))

		stored, err := carts.Get(c, sessionId)
		assert.NoError(t, err)
		assert.True(t, stored.IsEmpty())
	})
}
