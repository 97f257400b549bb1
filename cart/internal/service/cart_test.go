package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/arkandha/feastly/cart/pkg/request"
	inErrors "github.com/arkandha/feastly/internal/errors"
	"github.com/arkandha/feastly/internal/model"
	"github.com/arkandha/feastly/internal/store"
)

type fakeCatalog struct {
	products    map[uuid.UUID]model.Product
	restaurants map[uuid.UUID]model.Restaurant
}

func (f fakeCatalog) FindProductById(_ context.Context, id uuid.UUID) (model.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return model.Product{}, inErrors.ErrProductNotFound
	}
	return product, nil
}

func (f fakeCatalog) FindRestaurantById(_ context.Context, id uuid.UUID) (model.Restaurant, error) {
	restaurant, ok := f.restaurants[id]
	if !ok {
		return model.Restaurant{}, inErrors.ErrRestaurantNotFound
	}
	return restaurant, nil
}

func newFixture() (fakeCatalog, model.Restaurant, model.Product, model.Product, model.Restaurant, model.Product) {
	pizzaPlace := model.Restaurant{
		ID:          uuid.New(),
		Name:        "Pizza Place",
		DeliveryFee: decimal.RequireFromString("3.00"),
		IsActive:    true,
	}
	margherita := model.Product{
		ID:           uuid.New(),
		RestaurantID: pizzaPlace.ID,
		Name:         "Margherita",
		Price:        decimal.RequireFromString("10.00"),
		Stock:        20,
		IsAvailable:  true,
	}
	calzone := model.Product{
		ID:           uuid.New(),
		RestaurantID: pizzaPlace.ID,
		Name:         "Calzone",
		Price:        decimal.RequireFromString("12.50"),
		Stock:        5,
		IsAvailable:  true,
	}
	sushiBar := model.Restaurant{
		ID:          uuid.New(),
		Name:        "Sushi Bar",
		DeliveryFee: decimal.RequireFromString("5.00"),
		IsActive:    true,
	}
	nigiri := model.Product{
		ID:           uuid.New(),
		RestaurantID: sushiBar.ID,
		Name:         "Nigiri",
		Price:        decimal.RequireFromString("8.00"),
		Stock:        10,
		IsAvailable:  true,
	}
	catalog := fakeCatalog{
		products: map[uuid.UUID]model.Product{
			margherita.ID: margherita,
			calzone.ID:    calzone,
			nigiri.ID:     nigiri,
		},
		restaurants: map[uuid.UUID]model.Restaurant{
			pizzaPlace.ID: pizzaPlace,
			sushiBar.ID:   sushiBar,
		},
	}
	return catalog, pizzaPlace, margherita, calzone, sushiBar, nigiri
}

func TestCartServiceAddItem(t *testing.T) {
	c := context.Background()
	catalog, pizzaPlace, margherita, calzone, _, nigiri := newFixture()

	t.Run("snapshots product name and price", func(t *testing.T) {
		service := NewCartService(catalog, store.NewMemoryCartStore())
		sessionId := uuid.New()

		cart, err := service.AddItem(c, sessionId, request.AddCartItem{
			ProductId: margherita.ID,
			Quantity:  2,
		})

		assert.NoError(t, err)
		assert.Equal(t, pizzaPlace.ID, cart.RestaurantID)
		assert.Equal(t, "Pizza Place", cart.RestaurantName)
		if assert.Len(t, cart.Items, 1) {
			assert.Equal(t, "Margherita", cart.Items[0].ProductName)
			assert.True(t, cart.Items[0].UnitPrice.Equal(margherita.Price))
			assert.EqualValues(t, 2, cart.Items[0].Quantity)
		}
	})

	t.Run("same product twice merges into one line", func(t *testing.T) {
		service := NewCartService(catalog, store.NewMemoryCartStore())
		sessionId := uuid.New()

		_, err := service.AddItem(c, sessionId, request.AddCartItem{ProductId: margherita.ID, Quantity: 1})
		assert.NoError(t, err)
		cart, err := service.AddItem(c, sessionId, request.AddCartItem{ProductId: margherita.ID, Quantity: 2})
		assert.NoError(t, err)

		assert.Len(t, cart.Items, 1)
		assert.EqualValues(t, 3, cart.Items[0].Quantity)
	})

	t.Run("second restaurant is rejected and cart preserved", func(t *testing.T) {
		service := NewCartService(catalog, store.NewMemoryCartStore())
		sessionId := uuid.New()

		_, err := service.AddItem(c, sessionId, request.AddCartItem{ProductId: margherita.ID, Quantity: 1})
		assert.NoError(t, err)
		_, err = service.AddItem(c, sessionId, request.AddCartItem{ProductId: nigiri.ID, Quantity: 1})
		assert.ErrorIs(t, err, inErrors.ErrCartRestaurantConflict)

		cart, err := service.GetCart(c, sessionId)
		assert.NoError(t, err)
		assert.Equal(t, pizzaPlace.ID, cart.RestaurantID)
		assert.Len(t, cart.Items, 1)
	})

	t.Run("second product from the same restaurant is fine", func(t *testing.T) {
		service := NewCartService(catalog, store.NewMemoryCartStore())
		sessionId := uuid.New()

		_, err := service.AddItem(c, sessionId, request.AddCartItem{ProductId: margherita.ID, Quantity: 1})
		assert.NoError(t, err)
		cart, err := service.AddItem(c, sessionId, request.AddCartItem{ProductId: calzone.ID, Quantity: 1})
		assert.NoError(t, err)

		assert.Len(t, cart.Items, 2)
	})

	t.Run("unknown product", func(t *testing.T) {
		service := NewCartService(catalog, store.NewMemoryCartStore())

		_, err := service.AddItem(c, uuid.New(), request.AddCartItem{ProductId: uuid.New(), Quantity: 1})

		assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
	})

	t.Run("unavailable product", func(t *testing.T) {
		unavailable := model.Product{
			ID:           uuid.New(),
			RestaurantID: pizzaPlace.ID,
			Name:         "Seasonal Special",
			Price:        decimal.RequireFromString("15.00"),
			IsAvailable:  false,
		}
		catalog := fakeCatalog{
			products:    map[uuid.UUID]model.Product{unavailable.ID: unavailable},
			restaurants: map[uuid.UUID]model.Restaurant{pizzaPlace.ID: pizzaPlace},
		}
		service := NewCartService(catalog, store.NewMemoryCartStore())

		_, err := service.AddItem(c, uuid.New(), request.AddCartItem{ProductId: unavailable.ID, Quantity: 1})

		assert.ErrorIs(t, err, inErrors.ErrProductUnavailable)
	})

	t.Run("invalid quantity", func(t *testing.T) {
		service := NewCartService(catalog, store.NewMemoryCartStore())

		_, err := service.AddItem(c, uuid.New(), request.AddCartItem{ProductId: margherita.ID, Quantity: 0})

		assert.ErrorIs(t, err, inErrors.ErrInvalidQuantity)
	})
}

func TestCartServiceUpdateItemQuantity(t *testing.T) {
	c := context.Background()
	catalog, _, margherita, calzone, sushiBar, nigiri := newFixture()

	t.Run("removing the last item releases the restaurant binding", func(t *testing.T) {
		service := NewCartService(catalog, store.NewMemoryCartStore())
		sessionId := uuid.New()

		_, err := service.AddItem(c, sessionId, request.AddCartItem{ProductId: margherita.ID, Quantity: 2})
		assert.NoError(t, err)
		cart, err := service.RemoveItem(c, sessionId, margherita.ID)
		assert.NoError(t, err)
		assert.True(t, cart.IsEmpty())

		cart, err = service.AddItem(c, sessionId, request.AddCartItem{ProductId: nigiri.ID, Quantity: 1})
		assert.NoError(t, err)
		assert.Equal(t, sushiBar.ID, cart.RestaurantID)
	})

	t.Run("empty cart is a no-op", func(t *testing.T) {
		service := NewCartService(catalog, store.NewMemoryCartStore())

		cart, err := service.UpdateItemQuantity(c, uuid.New(), margherita.ID, 3)

		assert.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("sets not increments", func(t *testing.T) {
		service := NewCartService(catalog, store.NewMemoryCartStore())
		sessionId := uuid.New()

		_, err := service.AddItem(c, sessionId, request.AddCartItem{ProductId: calzone.ID, Quantity: 5})
		assert.NoError(t, err)
		cart, err := service.UpdateItemQuantity(c, sessionId, calzone.ID, 2)
		assert.NoError(t, err)

		assert.EqualValues(t, 2, cart.Items[0].Quantity)
	})
}

func TestCartServiceClearAndCount(t *testing.T) {
	c := context.Background()
	catalog, _, margherita, calzone, _, _ := newFixture()
	service := NewCartService(catalog, store.NewMemoryCartStore())
	sessionId := uuid.New()

	_, err := service.AddItem(c, sessionId, request.AddCartItem{ProductId: margherita.ID, Quantity: 2})
	assert.NoError(t, err)
	_, err = service.AddItem(c, sessionId, request.AddCartItem{ProductId: calzone.ID, Quantity: 1})
	assert.NoError(t, err)

	count, err := service.ItemCount(c, sessionId)
	assert.NoError(t, err)
	assert.EqualValues(t, 3, count)

	assert.NoError(t, service.Clear(c, sessionId))

	cart, err := service.GetCart(c, sessionId)
	assert.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartServiceConcurrentAdds(t *testing.T) {
	c := context.Background()
	catalog, _, margherita, _, _, _ := newFixture()
	service := NewCartService(catalog, store.NewMemoryCartStore())
	sessionId := uuid.New()

	workers := 8
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			_, err := service.AddItem(c, sessionId, request.AddCartItem{
				ProductId: margherita.ID,
				Quantity:  1,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cart, err := service.GetCart(c, sessionId)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.EqualValues(t, workers, cart.Items[0].Quantity)
}
