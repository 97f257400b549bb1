package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	inErrors "github.com/arkandha/feastly/internal/errors"
	"github.com/arkandha/feastly/internal/model"
	"github.com/arkandha/feastly/internal/repository"
	"github.com/arkandha/feastly/internal/store"
	"github.com/arkandha/feastly/order/pkg/request"
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

type fakeOrderRepository struct {
	orders    map[uuid.UUID]model.Order
	createErr error
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{orders: map[uuid.UUID]model.Order{}}
}

func (f *fakeOrderRepository) CreateOrder(_ context.Context, order model.Order) (model.Order, error) {
	if f.createErr != nil {
		return model.Order{}, f.createErr
	}
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeOrderRepository) FindOrderById(_ context.Context, id uuid.UUID) (model.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return model.Order{}, inErrors.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepository) FindOrdersByCustomerId(
	_ context.Context,
	customerId uuid.UUID,
) ([]repository.OrderSummary, error) {
	summaries := []repository.OrderSummary{}
	for _, order := range f.orders {
		if order.CustomerID != customerId {
			continue
		}
		summaries = append(summaries, repository.OrderSummary{
			ID:           order.ID,
			RestaurantID: order.RestaurantID,
			TotalAmount:  order.TotalAmount,
			Status:       order.Status,
			OrderDate:    order.OrderDate,
			ItemCount:    int64(len(order.Items)),
		})
	}
	return summaries, nil
}

func (f *fakeOrderRepository) FindOrdersByRestaurantId(
	_ context.Context,
	restaurantId uuid.UUID,
) ([]repository.OrderSummary, error) {
	summaries := []repository.OrderSummary{}
	for _, order := range f.orders {
		if order.RestaurantID != restaurantId {
			continue
		}
		summaries = append(summaries, repository.OrderSummary{ID: order.ID})
	}
	return summaries, nil
}

func (f *fakeOrderRepository) UpdateOrderStatus(
	_ context.Context,
	id uuid.UUID,
	status model.OrderStatus,
	deliveryDate *time.Time,
) error {
	order, ok := f.orders[id]
	if !ok {
		return inErrors.ErrOrderNotFound
	}
	order.Status = status
	if deliveryDate != nil {
		order.DeliveryDate = deliveryDate
	}
	f.orders[id] = order
	return nil
}

func (f *fakeOrderRepository) OrderStats(_ context.Context) (model.OrderStats, error) {
	stats := model.OrderStats{
		TotalRevenue:   decimal.Zero,
		CountsByStatus: map[model.OrderStatus]int64{},
	}
	for _, order := range f.orders {
		stats.TotalOrders++
		stats.CountsByStatus[order.Status]++
		if order.Status != model.OrderStatusCancelled {
			stats.TotalRevenue = stats.TotalRevenue.Add(order.TotalAmount)
		}
	}
	return stats, nil
}

type checkoutFixture struct {
	catalog    fakeCatalog
	orders     *fakeOrderRepository
	carts      store.CartStore
	service    *OrderService
	customerId uuid.UUID
	restaurant model.Restaurant
	margherita model.Product
	calzone    model.Product
}

func newCheckoutFixture(t *testing.T) checkoutFixture {
	t.Helper()
	restaurant := model.Restaurant{
		ID:          uuid.New(),
		Name:        "Pizza Place",
		DeliveryFee: decimal.RequireFromString("3.00"),
		IsActive:    true,
	}
	margherita := model.Product{
		ID:           uuid.New(),
		RestaurantID: restaurant.ID,
		Name:         "Margherita",
		Price:        decimal.RequireFromString("10.00"),
		Stock:        20,
		IsAvailable:  true,
	}
	calzone := model.Product{
		ID:           uuid.New(),
		RestaurantID: restaurant.ID,
		Name:         "Calzone",
		Price:        decimal.RequireFromString("12.50"),
		Stock:        5,
		IsAvailable:  true,
	}
	catalog := fakeCatalog{
		products: map[uuid.UUID]model.Product{
			margherita.ID: margherita,
			calzone.ID:    calzone,
		},
		restaurants: map[uuid.UUID]model.Restaurant{restaurant.ID: restaurant},
	}
	orders := newFakeOrderRepository()
	carts := store.NewMemoryCartStore()
	return checkoutFixture{
		catalog:    catalog,
		orders:     orders,
		carts:      carts,
		service:    NewOrderService(catalog, orders, carts),
		customerId: uuid.New(),
		restaurant: restaurant,
		margherita: margherita,
		calzone:    calzone,
	}
}

func (f checkoutFixture) seedCart(t *testing.T, c context.Context, product model.Product, quantity int32) {
	t.Helper()
	cart, err := f.carts.Get(c, f.customerId)
	assert.NoError(t, err)
	assert.NoError(t, cart.AddItem(model.CartItem{
		ProductID:      product.ID,
		ProductName:    product.Name,
		UnitPrice:      product.Price,
		Quantity:       quantity,
		RestaurantID:   product.RestaurantID,
		RestaurantName: f.restaurant.Name,
	}))
	assert.NoError(t, f.carts.Set(c, f.customerId, cart))
}

func validCheckout() request.Checkout {
	return request.Checkout{DeliveryAddress: "1 Main Street", PaymentMethod: "CASH"}
}

func TestPlaceOrder(t *testing.T) {
	c := context.Background()

	t.Run("cart total plus delivery fee, pending, cart cleared", func(t *testing.T) {
		fixture := newCheckoutFixture(t)
		fixture.seedCart(t, c, fixture.margherita, 2)

		order, err := fixture.service.PlaceOrder(c, fixture.customerId, validCheckout())

		assert.NoError(t, err)
		assert.Equal(t, model.OrderStatusPending, order.Status)
		assert.Equal(t, fixture.restaurant.ID, order.RestaurantID)
		assert.Equal(t, model.PaymentMethodCash, order.PaymentMethod)
		assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("23.00")))
		assert.Len(t, order.Items, 1)
		assert.Nil(t, order.DeliveryDate)

		stored, err := fixture.orders.FindOrderById(c, order.ID)
		assert.NoError(t, err)
		assert.Equal(t, order.ID, stored.ID)

		cart, err := fixture.carts.Get(c, fixture.customerId)
		assert.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("empty cart", func(t *testing.T) {
		fixture := newCheckoutFixture(t)

		_, err := fixture.service.PlaceOrder(c, fixture.customerId, validCheckout())

		assert.ErrorIs(t, err, inErrors.ErrEmptyCart)
	})

	t.Run("blank delivery address", func(t *testing.T) {
		fixture := newCheckoutFixture(t)
		fixture.seedCart(t, c, fixture.margherita, 1)

		_, err := fixture.service.PlaceOrder(c, fixture.customerId, request.Checkout{
			DeliveryAddress: "   ",
			PaymentMethod:   "CASH",
		})

		assert.ErrorIs(t, err, inErrors.ErrMissingDeliveryAddress)

		cart, cartErr := fixture.carts.Get(c, fixture.customerId)
		assert.NoError(t, cartErr)
		assert.False(t, cart.IsEmpty())
	})

	t.Run("unknown payment method", func(t *testing.T) {
		fixture := newCheckoutFixture(t)
		fixture.seedCart(t, c, fixture.margherita, 1)

		_, err := fixture.service.PlaceOrder(c, fixture.customerId, request.Checkout{
			DeliveryAddress: "1 Main Street",
			PaymentMethod:   "CHEQUE",
		})

		assert.Error(t, err)
	})

	t.Run("product became unavailable, cart preserved", func(t *testing.T) {
		fixture := newCheckoutFixture(t)
		fixture.seedCart(t, c, fixture.margherita, 1)
		unavailable := fixture.margherita
		unavailable.IsAvailable = false
		fixture.catalog.products[fixture.margherita.ID] = unavailable

		_, err := fixture.service.PlaceOrder(c, fixture.customerId, validCheckout())

		assert.ErrorIs(t, err, inErrors.ErrProductUnavailable)
		assert.Empty(t, fixture.orders.orders)

		cart, cartErr := fixture.carts.Get(c, fixture.customerId)
		assert.NoError(t, cartErr)
		assert.False(t, cart.IsEmpty())
	})

	t.Run("insufficient stock, cart preserved", func(t *testing.T) {
		fixture := newCheckoutFixture(t)
		fixture.seedCart(t, c, fixture.calzone, 6)

		_, err := fixture.service.PlaceOrder(c, fixture.customerId, validCheckout())

		assert.ErrorIs(t, err, inErrors.ErrInsufficientStock)
		assert.Empty(t, fixture.orders.orders)

		cart, cartErr := fixture.carts.Get(c, fixture.customerId)
		assert.NoError(t, cartErr)
		assert.False(t, cart.IsEmpty())
	})

	t.Run("persistence failure leaves the cart", func(t *testing.T) {
		fixture := newCheckoutFixture(t)
		fixture.seedCart(t, c, fixture.margherita, 1)
		fixture.orders.createErr = assert.AnError

		_, err := fixture.service.PlaceOrder(c, fixture.customerId, validCheckout())

		assert.ErrorIs(t, err, assert.AnError)

		cart, cartErr := fixture.carts.Get(c, fixture.customerId)
		assert.NoError(t, cartErr)
		assert.False(t, cart.IsEmpty())
	})

	t.Run("stock is checked but not decremented", func(t *testing.T) {
		fixture := newCheckoutFixture(t)
		fixture.seedCart(t, c, fixture.calzone, 5)

		_, err := fixture.service.PlaceOrder(c, fixture.customerId, validCheckout())

		assert.NoError(t, err)
		product, productErr := fixture.catalog.FindProductById(c, fixture.calzone.ID)
		assert.NoError(t, productErr)
		assert.EqualValues(t, 5, product.Stock)
	})
}

func TestUpdateStatus(t *testing.T) {
	c := context.Background()

	t.Run("delivered stamps the delivery date", func(t *testing.T) {
		fixture := newCheckoutFixture(t)
		fixture.seedCart(t, c, fixture.margherita, 1)
		order, err := fixture.service.PlaceOrder(c, fixture.customerId, validCheckout())
		assert.NoError(t, err)

		updated, err := fixture.service.UpdateStatus(c, order.ID, request.UpdateOrderStatus{
			Status: "DELIVERED",
		})

		assert.NoError(t, err)
		assert.Equal(t, model.OrderStatusDelivered, updated.Status)
		assert.NotNil(t, updated.DeliveryDate)

		stored, err := fixture.orders.FindOrderById(c, order.ID)
		assert.NoError(t, err)
		assert.Equal(t, model.OrderStatusDelivered, stored.Status)
		assert.NotNil(t, stored.DeliveryDate)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		fixture := newCheckoutFixture(t)
		fixture.seedCart(t, c, fixture.margherita, 1)
		order, err := fixture.service.PlaceOrder(c, fixture.customerId, validCheckout())
		assert.NoError(t, err)

		_, err = fixture.service.UpdateStatus(c, order.ID, request.UpdateOrderStatus{
			Status: "SHIPPED",
		})

		assert.Error(t, err)
	})

	t.Run("missing order", func(t *testing.T) {
		fixture := newCheckoutFixture(t)

		_, err := fixture.service.UpdateStatus(c, uuid.New(), request.UpdateOrderStatus{
			Status: "CONFIRMED",
		})

		assert.ErrorIs(t, err, inErrors.ErrOrderNotFound)
	})
}

func TestCancel(t *testing.T) {
	c := context.Background()

	t.Run("pending order cancels", func(t *testing.T) {
		fixture := newCheckoutFixture(t)
		fixture.seedCart(t, c, fixture.margherita, 1)
		order, err := fixture.service.PlaceOrder(c, fixture.customerId, validCheckout())
		assert.NoError(t, err)

		cancelled, err := fixture.service.Cancel(c, fixture.customerId, order.ID)

		assert.NoError(t, err)
		assert.Equal(t, model.OrderStatusCancelled, cancelled.Status)
	})

	t.Run("preparing order cannot cancel", func(t *testing.T) {
		fixture := newCheckoutFixture(t)
		fixture.seedCart(t, c, fixture.margherita, 1)
		order, err := fixture.service.PlaceOrder(c, fixture.customerId, validCheckout())
		assert.NoError(t, err)
		_, err = fixture.service.UpdateStatus(c, order.ID, request.UpdateOrderStatus{
			Status: "PREPARING",
		})
		assert.NoError(t, err)

		_, err = fixture.service.Cancel(c, fixture.customerId, order.ID)

		assert.ErrorIs(t, err, inErrors.ErrInvalidStatusTransition)

		stored, storedErr := fixture.orders.FindOrderById(c, order.ID)
		assert.NoError(t, storedErr)
		assert.Equal(t, model.OrderStatusPreparing, stored.Status)
	})

	t.Run("another customer's order is not found", func(t *testing.T) {
		fixture := newCheckoutFixture(t)
		fixture.seedCart(t, c, fixture.margherita, 1)
		order, err := fixture.service.PlaceOrder(c, fixture.customerId, validCheckout())
		assert.NoError(t, err)

		_, err = fixture.service.Cancel(c, uuid.New(), order.ID)

		assert.ErrorIs(t, err, inErrors.ErrOrderNotFound)
	})
}

func TestStats(t *testing.T) {
	c := context.Background()
	fixture := newCheckoutFixture(t)
	fixture.seedCart(t, c, fixture.margherita, 2)
	order, err := fixture.service.PlaceOrder(c, fixture.customerId, validCheckout())
	assert.NoError(t, err)
	_, err = fixture.service.Cancel(c, fixture.customerId, order.ID)
	assert.NoError(t, err)

	stats, err := fixture.service.Stats(c)

	assert.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalOrders)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.EqualValues(t, 1, stats.CountsByStatus[model.OrderStatusCancelled])
}
