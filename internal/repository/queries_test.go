package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	inErrors "github.com/arkandha/feastly/internal/errors"
	"github.com/arkandha/feastly/internal/model"
)

func setupQueries(t *testing.T, c context.Context) *Queries {
	t.Helper()

	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("postgres"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			filepath.Join("..", "..", "migrations", "000001_create_restaurants.up.sql"),
			filepath.Join("..", "..", "migrations", "000002_create_products.up.sql"),
			filepath.Join("..", "..", "migrations", "000003_create_orders.up.sql"),
		),
	)
	if err != nil {
		t.Fatalf("failed running postgres container with error: %s", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	})

	pgConnStr, err := pgContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting postgres connection string with error: %s", err)
	}

	pool, err := pgxpool.New(c, pgConnStr)
	if err != nil {
		t.Fatalf("failed creating postgres pool with error: %s", err)
	}
	t.Cleanup(pool.Close)

	if err = pool.Ping(c); err != nil {
		t.Fatalf("failed ping postgres pool with error: %s", err)
	}

	return New(pool)
}

func seedRestaurant(t *testing.T, c context.Context, queries *Queries) model.Restaurant {
	t.Helper()
	restaurant, err := queries.InsertRestaurant(c, model.Restaurant{
		ID:          uuid.New(),
		Name:        "Pizza Place",
		Address:     "1 Main Street",
		Phone:       "555-0100",
		Cuisine:     "Italian",
		Rating:      4.5,
		DeliveryFee: decimal.RequireFromString("3.00"),
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("failed seeding restaurant with error: %s", err)
	}
	return restaurant
}

func seedProduct(t *testing.T, c context.Context, queries *Queries, restaurantId uuid.UUID) model.Product {
	t.Helper()
	product, err := queries.InsertProduct(c, model.Product{
		ID:           uuid.New(),
		RestaurantID: restaurantId,
		Name:         "Margherita",
		Description:  "Tomato and mozzarella",
		Category:     "Pizza",
		Price:        decimal.RequireFromString("10.00"),
		Stock:        20,
		IsAvailable:  true,
	})
	if err != nil {
		t.Fatalf("failed seeding product with error: %s", err)
	}
	return product
}

func TestRestaurantQueries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	c := context.Background()
	queries := setupQueries(t, c)
	restaurant := seedRestaurant(t, c, queries)

	t.Run("find by id", func(t *testing.T) {
		found, err := queries.FindRestaurantById(c, restaurant.ID)
		assert.NoError(t, err)
		assert.Equal(t, restaurant.Name, found.Name)
		assert.True(t, found.DeliveryFee.Equal(restaurant.DeliveryFee))
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := queries.FindRestaurantById(c, uuid.New())
		assert.ErrorIs(t, err, inErrors.ErrRestaurantNotFound)
	})

	t.Run("search filters by name and rating", func(t *testing.T) {
		_, err := queries.InsertRestaurant(c, model.Restaurant{
			ID:          uuid.New(),
			Name:        "Noodle House",
			Address:     "2 Side Street",
			Phone:       "555-0101",
			Rating:      3.0,
			DeliveryFee: decimal.RequireFromString("2.00"),
			IsActive:    true,
		})
		assert.NoError(t, err)

		byName, err := queries.FindRestaurants(c, "pizza", 0)
		assert.NoError(t, err)
		if assert.Len(t, byName, 1) {
			assert.Equal(t, restaurant.ID, byName[0].ID)
		}

		byRating, err := queries.FindRestaurants(c, "", 4.0)
		assert.NoError(t, err)
		if assert.Len(t, byRating, 1) {
			assert.Equal(t, restaurant.ID, byRating[0].ID)
		}
	})

	t.Run("inactive restaurants are hidden", func(t *testing.T) {
		_, err := queries.InsertRestaurant(c, model.Restaurant{
			ID:          uuid.New(),
			Name:        "Closed Diner",
			Address:     "3 Back Street",
			Phone:       "555-0102",
			Rating:      5.0,
			DeliveryFee: decimal.Zero,
			IsActive:    false,
		})
		assert.NoError(t, err)

		found, err := queries.FindRestaurants(c, "closed", 0)
		assert.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestProductQueries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	c := context.Background()
	queries := setupQueries(t, c)
	restaurant := seedRestaurant(t, c, queries)
	product := seedProduct(t, c, queries, restaurant.ID)

	t.Run("find by id", func(t *testing.T) {
		found, err := queries.FindProductById(c, product.ID)
		assert.NoError(t, err)
		assert.Equal(t, product.Name, found.Name)
		assert.True(t, found.Price.Equal(product.Price))
		assert.EqualValues(t, 20, found.Stock)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := queries.FindProductById(c, uuid.New())
		assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
	})

	t.Run("stock delta keeps availability in sync", func(t *testing.T) {
		updated, err := queries.UpdateProductStock(c, product.ID, -20)
		assert.NoError(t, err)
		assert.EqualValues(t, 0, updated.Stock)
		assert.False(t, updated.IsAvailable)

		updated, err = queries.UpdateProductStock(c, product.ID, 5)
		assert.NoError(t, err)
		assert.EqualValues(t, 5, updated.Stock)
		assert.True(t, updated.IsAvailable)
	})

	t.Run("availability toggle", func(t *testing.T) {
		updated, err := queries.UpdateProductAvailability(c, product.ID, false)
		assert.NoError(t, err)
		assert.False(t, updated.IsAvailable)
	})
}

func TestCreateOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	c := context.Background()
	queries := setupQueries(t, c)
	restaurant := seedRestaurant(t, c, queries)
	product := seedProduct(t, c, queries, restaurant.ID)
	customerId := uuid.New()

	newOrder := func() model.Order {
		return model.Order{
			ID:           uuid.New(),
			CustomerID:   customerId,
			RestaurantID: restaurant.ID,
			Items: []model.OrderItem{
				{
					ProductID:   product.ID,
					ProductName: product.Name,
					UnitPrice:   product.Price,
					Quantity:    2,
				},
			},
			TotalAmount:     decimal.RequireFromString("23.00"),
			DeliveryAddress: "1 Main Street",
			PaymentMethod:   model.PaymentMethodCash,
			Status:          model.OrderStatusPending,
			OrderDate:       time.Now(),
		}
	}

	t.Run("order and items are stored together", func(t *testing.T) {
		order := newOrder()

		_, err := queries.CreateOrder(c, order)
		assert.NoError(t, err)

		stored, err := queries.FindOrderById(c, order.ID)
		assert.NoError(t, err)
		assert.Equal(t, model.OrderStatusPending, stored.Status)
		assert.True(t, stored.TotalAmount.Equal(order.TotalAmount))
		if assert.Len(t, stored.Items, 1) {
			assert.Equal(t, product.ID, stored.Items[0].ProductID)
			assert.EqualValues(t, 2, stored.Items[0].Quantity)
		}
	})

	t.Run("bad item rolls back the whole order", func(t *testing.T) {
		order := newOrder()
		order.Items = append(order.Items, model.OrderItem{
			ProductID:   uuid.New(),
			ProductName: "Ghost Item",
			UnitPrice:   decimal.RequireFromString("1.00"),
			Quantity:    1,
		})

		_, err := queries.CreateOrder(c, order)
		assert.Error(t, err)

		_, err = queries.FindOrderById(c, order.ID)
		assert.ErrorIs(t, err, inErrors.ErrOrderNotFound)
	})

	t.Run("history summaries", func(t *testing.T) {
		summaries, err := queries.FindOrdersByCustomerId(c, customerId)
		assert.NoError(t, err)
		if assert.Len(t, summaries, 1) {
			assert.Equal(t, restaurant.Name, summaries[0].RestaurantName)
			assert.EqualValues(t, 1, summaries[0].ItemCount)
		}

		byRestaurant, err := queries.FindOrdersByRestaurantId(c, restaurant.ID)
		assert.NoError(t, err)
		assert.Len(t, byRestaurant, 1)
	})

	t.Run("status update stamps delivery date", func(t *testing.T) {
		summaries, err := queries.FindOrdersByCustomerId(c, customerId)
		assert.NoError(t, err)
		orderId := summaries[0].ID

		deliveredAt := time.Now()
		err = queries.UpdateOrderStatus(c, orderId, model.OrderStatusDelivered, &deliveredAt)
		assert.NoError(t, err)

		stored, err := queries.FindOrderById(c, orderId)
		assert.NoError(t, err)
		assert.Equal(t, model.OrderStatusDelivered, stored.Status)
		assert.NotNil(t, stored.DeliveryDate)
	})

	t.Run("status update on missing order", func(t *testing.T) {
		err := queries.UpdateOrderStatus(c, uuid.New(), model.OrderStatusConfirmed, nil)
		assert.ErrorIs(t, err, inErrors.ErrOrderNotFound)
	})

	t.Run("stats exclude cancelled revenue", func(t *testing.T) {
		cancelled := newOrder()
		cancelled.Status = model.OrderStatusCancelled
		_, err := queries.CreateOrder(c, cancelled)
		assert.NoError(t, err)

		stats, err := queries.OrderStats(c)
		assert.NoError(t, err)
		assert.EqualValues(t, 2, stats.TotalOrders)
		assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("23.00")))
		assert.EqualValues(t, 1, stats.CountsByStatus[model.OrderStatusCancelled])
	})
}
