package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	inErrors "github.com/arkandha/feastly/internal/errors"
	"github.com/arkandha/feastly/internal/log"
	"github.com/arkandha/feastly/internal/model"
	"github.com/arkandha/feastly/internal/repository"
	"github.com/arkandha/feastly/internal/store"
	"github.com/arkandha/feastly/order/internal/common/otel"
	"github.com/arkandha/feastly/order/pkg/request"
)

// Catalog is the live product data checkout revalidates against. Cart
// snapshots can go stale between add and checkout; the catalog is the truth.
type Catalog interface {
	FindProductById(c context.Context, id uuid.UUID) (model.Product, error)
	FindRestaurantById(c context.Context, id uuid.UUID) (model.Restaurant, error)
}

type OrderRepository interface {
	CreateOrder(c context.Context, order model.Order) (model.Order, error)
	FindOrderById(c context.Context, id uuid.UUID) (model.Order, error)
	FindOrdersByCustomerId(c context.Context, customerId uuid.UUID) ([]repository.OrderSummary, error)
	FindOrdersByRestaurantId(c context.Context, restaurantId uuid.UUID) ([]repository.OrderSummary, error)
	UpdateOrderStatus(c context.Context, id uuid.UUID, status model.OrderStatus, deliveryDate *time.Time) error
	OrderStats(c context.Context) (model.OrderStats, error)
}

type OrderService struct {
	catalog Catalog
	orders  OrderRepository
	carts   store.CartStore
}

func NewOrderService(catalog Catalog, orders OrderRepository, carts store.CartStore) *OrderService {
	return &OrderService{catalog: catalog, orders: orders, carts: carts}
}

// PlaceOrder turns the session cart into a persisted order. Every cart line
// is revalidated against the live catalog first; any failure before or during
// persistence leaves the cart untouched so the customer can retry. The cart
// is cleared only after the order is durably stored.
func (s *OrderService) PlaceOrder(
	c context.Context,
	customerId uuid.UUID,
	param request.Checkout,
) (model.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService PlaceOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService PlaceOrder").
		Str(log.KeyCustomerID, customerId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating checkout").Logger()
	deliveryAddress := strings.TrimSpace(param.DeliveryAddress)
	if deliveryAddress == "" {
		err := inErrors.ErrMissingDeliveryAddress
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Order{}, err
	}
	paymentMethod, err := model.ParsePaymentMethod(param.PaymentMethod)
	if err != nil {
		err = fmt.Errorf("failed parsing payment method with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	cart, err := s.carts.Get(c, customerId)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Order{}, err
	}
	if cart.IsEmpty() {
		err = inErrors.ErrEmptyCart
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Order{}, err
	}
	logger = logger.With().
		Str(log.KeyRestaurantID, cart.RestaurantID.String()).
		Int(log.KeyCartItemCount, len(cart.Items)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "revalidating cart items").Logger()
	logger.Info().Msg("revalidating cart items against catalog")
	for _, item := range cart.Items {
		product, err := s.catalog.FindProductById(c, item.ProductID)
		if err != nil {
			err = fmt.Errorf(
				"failed finding product=%s with error=%w",
				item.ProductName,
				err,
			)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return model.Order{}, err
		}
		if !product.IsAvailable {
			err = fmt.Errorf("product=%s: %w", product.Name, inErrors.ErrProductUnavailable)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return model.Order{}, err
		}
		if !product.CanOrder(item.Quantity) {
			err = fmt.Errorf("product=%s: %w", product.Name, inErrors.ErrInsufficientStock)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return model.Order{}, err
		}
	}
	logger.Info().Msg("revalidated cart items")

	logger = logger.With().Str(log.KeyProcess, "finding restaurant").Logger()
	restaurant, err := s.catalog.FindRestaurantById(c, cart.RestaurantID)
	if err != nil {
		err = fmt.Errorf("failed finding restaurant with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Order{}, err
	}

	items := make([]model.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, model.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}
	order := model.Order{
		ID:              uuid.New(),
		CustomerID:      customerId,
		RestaurantID:    cart.RestaurantID,
		Items:           items,
		TotalAmount:     cart.TotalAmount().Add(restaurant.DeliveryFee),
		DeliveryAddress: deliveryAddress,
		PaymentMethod:   paymentMethod,
		Status:          model.OrderStatusPending,
		OrderDate:       time.Now(),
	}

	logger = logger.With().
		Str(log.KeyProcess, "inserting order").
		Str(log.KeyOrderID, order.ID.String()).
		Str(log.KeyTotalAmount, order.TotalAmount.String()).
		Logger()
	logger.Info().Msg("inserting order")
	c = logger.WithContext(c)
	order, err = s.orders.CreateOrder(c, order)
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Order{}, err
	}
	logger.Info().Msg("inserted order")

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	if err := s.carts.Delete(c, customerId); err != nil {
		// the order is already durable, a stale cart is the lesser harm
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
	} else {
		logger.Info().Msg("cleared cart")
	}

	return order, nil
}

func (s *OrderService) FindOrderById(c context.Context, id uuid.UUID) (model.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrderById").
		Str(log.KeyOrderID, id.String()).
		Logger()

	c = logger.WithContext(c)
	order, err := s.orders.FindOrderById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding order with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Order{}, err
	}
	return order, nil
}

func (s *OrderService) FindOrdersByCustomerId(
	c context.Context,
	customerId uuid.UUID,
) ([]repository.OrderSummary, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrdersByCustomerId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrdersByCustomerId").
		Str(log.KeyCustomerID, customerId.String()).
		Logger()

	c = logger.WithContext(c)
	orders, err := s.orders.FindOrdersByCustomerId(c, customerId)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) FindOrdersByRestaurantId(
	c context.Context,
	restaurantId uuid.UUID,
) ([]repository.OrderSummary, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrdersByRestaurantId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrdersByRestaurantId").
		Str(log.KeyRestaurantID, restaurantId.String()).
		Logger()

	c = logger.WithContext(c)
	orders, err := s.orders.FindOrdersByRestaurantId(c, restaurantId)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	return orders, nil
}

// UpdateStatus moves an order to the given status. Vendors are expected to
// walk the lifecycle forward but the transition is not policed; reaching
// Delivered stamps the delivery date.
func (s *OrderService) UpdateStatus(
	c context.Context,
	id uuid.UUID,
	param request.UpdateOrderStatus,
) (model.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService UpdateStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService UpdateStatus").
		Str(log.KeyOrderID, id.String()).
		Str(log.KeyOrderStatus, param.Status).
		Logger()

	status, err := model.ParseOrderStatus(param.Status)
	if err != nil {
		err = fmt.Errorf("failed parsing order status with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Order{}, err
	}

	c = logger.WithContext(c)
	order, err := s.orders.FindOrderById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding order with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Order{}, err
	}

	order.UpdateStatus(status, time.Now())

	logger = logger.With().Str(log.KeyProcess, "updating order status").Logger()
	logger.Info().Msg("updating order status")
	err = s.orders.UpdateOrderStatus(c, id, order.Status, order.DeliveryDate)
	if err != nil {
		err = fmt.Errorf("failed updating order status with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Order{}, err
	}
	logger.Info().Msg("updated order status")

	return order, nil
}

// Cancel cancels the customer's own order if it has not started preparation.
func (s *OrderService) Cancel(
	c context.Context,
	customerId uuid.UUID,
	id uuid.UUID,
) (model.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService Cancel")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService Cancel").
		Str(log.KeyCustomerID, customerId.String()).
		Str(log.KeyOrderID, id.String()).
		Logger()

	c = logger.WithContext(c)
	order, err := s.orders.FindOrderById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding order with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Order{}, err
	}
	if order.CustomerID != customerId {
		err = inErrors.ErrOrderNotFound
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Order{}, err
	}

	if err := order.Cancel(); err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "cancelling order").Logger()
	logger.Info().Msg("cancelling order")
	err = s.orders.UpdateOrderStatus(c, id, order.Status, nil)
	if err != nil {
		err = fmt.Errorf("failed cancelling order with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Order{}, err
	}
	logger.Info().Msg("cancelled order")

	return order, nil
}

// Stats aggregates order counts and revenue for the admin dashboard.
func (s *OrderService) Stats(c context.Context) (model.OrderStats, error) {
	c, span := otel.Tracer.Start(c, "OrderService Stats")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService Stats").
		Logger()

	c = logger.WithContext(c)
	stats, err := s.orders.OrderStats(c)
	if err != nil {
		err = fmt.Errorf("failed aggregating order stats with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.OrderStats{}, err
	}
	return stats, nil
}
