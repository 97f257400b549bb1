package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arkandha/feastly/cart/internal/common/otel"
	"github.com/arkandha/feastly/cart/pkg/request"
	inErrors "github.com/arkandha/feastly/internal/errors"
	"github.com/arkandha/feastly/internal/log"
	"github.com/arkandha/feastly/internal/model"
	"github.com/arkandha/feastly/internal/store"
)

// Catalog is the read-only product data the cart snapshots from.
type Catalog interface {
	FindProductById(c context.Context, id uuid.UUID) (model.Product, error)
	FindRestaurantById(c context.Context, id uuid.UUID) (model.Restaurant, error)
}

// CartService owns one cart per customer session. Every mutation runs the
// fetch-mutate-persist cycle under a per-session lock so concurrent requests
// from the same session (two browser tabs) cannot lose updates.
type CartService struct {
	catalog Catalog
	carts   store.CartStore
	locks   sync.Map
}

func NewCartService(catalog Catalog, carts store.CartStore) *CartService {
	return &CartService{catalog: catalog, carts: carts}
}

func (s *CartService) sessionLock(sessionId uuid.UUID) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(sessionId, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// AddItem snapshots the product's current name and price into the cart. An
// empty cart adopts the product's restaurant; a cart bound to another
// restaurant rejects the add and is left untouched.
func (s *CartService) AddItem(
	c context.Context,
	sessionId uuid.UUID,
	param request.AddCartItem,
) (model.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeySessionID, sessionId.String()).
		Str(log.KeyProductID, param.ProductId.String()).
		Int32(log.KeyQuantity, param.Quantity).
		Logger()

	if param.Quantity < 1 {
		err := inErrors.ErrInvalidQuantity
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	product, err := s.catalog.FindProductById(c, param.ProductId)
	if err != nil {
		err = fmt.Errorf("failed finding product with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Cart{}, err
	}
	if !product.IsAvailable {
		err = inErrors.ErrProductUnavailable
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Cart{}, err
	}
	logger.Info().Msg("found product")

	logger = logger.With().Str(log.KeyProcess, "finding restaurant").Logger()
	logger.Info().Msg("finding restaurant")
	restaurant, err := s.catalog.FindRestaurantById(c, product.RestaurantID)
	if err != nil {
		err = fmt.Errorf("failed finding restaurant with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Cart{}, err
	}
	logger.Info().Msg("found restaurant")

	lock := s.sessionLock(sessionId)
	lock.Lock()
	defer lock.Unlock()

	logger = logger.With().Str(log.KeyProcess, "adding item to cart").Logger()
	logger.Info().Msg("adding item to cart")
	cart, err := s.carts.Get(c, sessionId)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Cart{}, err
	}
	err = cart.AddItem(model.CartItem{
		ProductID:      product.ID,
		ProductName:    product.Name,
		UnitPrice:      product.Price,
		Quantity:       param.Quantity,
		RestaurantID:   restaurant.ID,
		RestaurantName: restaurant.Name,
	})
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Cart{}, err
	}
	err = s.carts.Set(c, sessionId, cart)
	if err != nil {
		err = fmt.Errorf("failed persisting cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Cart{}, err
	}
	logger = logger.With().Any(log.KeyCart, cart).Logger()
	logger.Info().Msg("added item to cart")

	return cart, nil
}

// UpdateItemQuantity sets (not increments) the quantity of a cart line. A
// quantity of zero or less removes the line; when the last line goes the
// whole cart is dropped so the restaurant binding is released.
func (s *CartService) UpdateItemQuantity(
	c context.Context,
	sessionId uuid.UUID,
	productId uuid.UUID,
	quantity int32,
) (model.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateItemQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateItemQuantity").
		Str(log.KeySessionID, sessionId.String()).
		Str(log.KeyProductID, productId.String()).
		Int32(log.KeyQuantity, quantity).
		Logger()

	lock := s.sessionLock(sessionId)
	lock.Lock()
	defer lock.Unlock()

	logger = logger.With().Str(log.KeyProcess, "updating cart item").Logger()
	logger.Info().Msg("updating cart item")
	cart, err := s.carts.Get(c, sessionId)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Cart{}, err
	}
	if cart.IsEmpty() {
		logger.Info().Msg("cart is empty, nothing to update")
		return model.Cart{}, nil
	}

	cart.UpdateItemQuantity(productId, quantity)
	if cart.IsEmpty() {
		err = s.carts.Delete(c, sessionId)
	} else {
		err = s.carts.Set(c, sessionId, cart)
	}
	if err != nil {
		err = fmt.Errorf("failed persisting cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Cart{}, err
	}
	logger = logger.With().Any(log.KeyCart, cart).Logger()
	logger.Info().Msg("updated cart item")

	return cart, nil
}

func (s *CartService) RemoveItem(
	c context.Context,
	sessionId uuid.UUID,
	productId uuid.UUID,
) (model.Cart, error) {
	return s.UpdateItemQuantity(c, sessionId, productId, 0)
}

func (s *CartService) GetCart(c context.Context, sessionId uuid.UUID) (model.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService GetCart")
	defer span.End()

	cart, err := s.carts.Get(c, sessionId)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inErrors.HandleError(err, span)
		zerolog.Ctx(c).Error().Err(err).Msg(err.Error())
		return model.Cart{}, err
	}
	return cart, nil
}

func (s *CartService) Clear(c context.Context, sessionId uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CartService Clear")
	defer span.End()

	lock := s.sessionLock(sessionId)
	lock.Lock()
	defer lock.Unlock()

	err := s.carts.Delete(c, sessionId)
	if err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		inErrors.HandleError(err, span)
		zerolog.Ctx(c).Error().Err(err).Msg(err.Error())
		return err
	}
	return nil
}

func (s *CartService) ItemCount(c context.Context, sessionId uuid.UUID) (int32, error) {
	cart, err := s.GetCart(c, sessionId)
	if err != nil {
		return 0, err
	}
	return cart.TotalItems(), nil
}
