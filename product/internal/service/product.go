package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	inErrors "github.com/arkandha/feastly/internal/errors"
	"github.com/arkandha/feastly/internal/log"
	"github.com/arkandha/feastly/internal/model"
	"github.com/arkandha/feastly/product/internal/common/otel"
	"github.com/arkandha/feastly/product/pkg/request"
)

type ProductRepository interface {
	FindProductById(c context.Context, id uuid.UUID) (model.Product, error)
	FindProductsByRestaurantId(c context.Context, restaurantId uuid.UUID) ([]model.Product, error)
	FindRestaurantById(c context.Context, id uuid.UUID) (model.Restaurant, error)
	InsertProduct(c context.Context, product model.Product) (model.Product, error)
	UpdateProduct(c context.Context, product model.Product) (model.Product, error)
	UpdateProductStock(c context.Context, id uuid.UUID, delta int32) (model.Product, error)
	UpdateProductAvailability(c context.Context, id uuid.UUID, isAvailable bool) (model.Product, error)
}

// ProductService manages the menu catalog. Stock here is a vendor-facing
// inventory signal; placing an order checks it but does not decrement it.
type ProductService struct {
	products ProductRepository
}

func NewProductService(products ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) FindProductById(c context.Context, id uuid.UUID) (model.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, id.String()).
		Logger()

	c = logger.WithContext(c)
	product, err := s.products.FindProductById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding product with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Product{}, err
	}
	return product, nil
}

func (s *ProductService) FindProductsByRestaurantId(
	c context.Context,
	restaurantId uuid.UUID,
) ([]model.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductsByRestaurantId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductsByRestaurantId").
		Str(log.KeyRestaurantID, restaurantId.String()).
		Logger()

	c = logger.WithContext(c)
	products, err := s.products.FindProductsByRestaurantId(c, restaurantId)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	return products, nil
}

// CreateProduct adds a menu item to an existing restaurant.
func (s *ProductService) CreateProduct(
	c context.Context,
	param request.CreateProduct,
) (model.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService CreateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService CreateProduct").
		Str(log.KeyRestaurantID, param.RestaurantId.String()).
		Logger()

	c = logger.WithContext(c)
	if _, err := s.products.FindRestaurantById(c, param.RestaurantId); err != nil {
		err = fmt.Errorf("failed finding restaurant with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Product{}, err
	}

	product := model.Product{
		ID:           uuid.New(),
		RestaurantID: param.RestaurantId,
		Name:         param.Name,
		Description:  param.Description,
		Category:     param.Category,
		Price:        param.Price,
		Stock:        param.Stock,
		IsAvailable:  param.IsAvailable,
	}

	logger = logger.With().
		Str(log.KeyProcess, "inserting product").
		Str(log.KeyProductID, product.ID.String()).
		Logger()
	logger.Info().Msg("inserting product")
	inserted, err := s.products.InsertProduct(c, product)
	if err != nil {
		err = fmt.Errorf("failed inserting product with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Product{}, err
	}
	logger.Info().Msg("inserted product")

	return inserted, nil
}

func (s *ProductService) UpdateProduct(
	c context.Context,
	id uuid.UUID,
	param request.UpdateProduct,
) (model.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService UpdateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UpdateProduct").
		Str(log.KeyProductID, id.String()).
		Logger()

	c = logger.WithContext(c)
	existing, err := s.products.FindProductById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding product with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Product{}, err
	}

	existing.Name = param.Name
	existing.Description = param.Description
	existing.Category = param.Category
	existing.Price = param.Price
	existing.Stock = param.Stock
	existing.IsAvailable = param.IsAvailable

	logger = logger.With().Str(log.KeyProcess, "updating product").Logger()
	logger.Info().Msg("updating product")
	updated, err := s.products.UpdateProduct(c, existing)
	if err != nil {
		err = fmt.Errorf("failed updating product with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Product{}, err
	}
	logger.Info().Msg("updated product")

	return updated, nil
}

// AdjustStock applies a signed delta to the product's stock. Availability
// follows the resulting stock.
func (s *ProductService) AdjustStock(
	c context.Context,
	id uuid.UUID,
	delta int32,
) (model.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService AdjustStock")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService AdjustStock").
		Str(log.KeyProductID, id.String()).
		Int32(log.KeyQuantity, delta).
		Logger()

	logger.Info().Msg("adjusting product stock")
	c = logger.WithContext(c)
	updated, err := s.products.UpdateProductStock(c, id, delta)
	if err != nil {
		err = fmt.Errorf("failed adjusting product stock with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Product{}, err
	}
	logger.Info().Msg("adjusted product stock")

	return updated, nil
}

func (s *ProductService) UpdateAvailability(
	c context.Context,
	id uuid.UUID,
	isAvailable bool,
) (model.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService UpdateAvailability")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UpdateAvailability").
		Str(log.KeyProductID, id.String()).
		Bool("isAvailable", isAvailable).
		Logger()

	logger.Info().Msg("updating product availability")
	c = logger.WithContext(c)
	updated, err := s.products.UpdateProductAvailability(c, id, isAvailable)
	if err != nil {
		err = fmt.Errorf("failed updating product availability with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Product{}, err
	}
	logger.Info().Msg("updated product availability")

	return updated, nil
}
