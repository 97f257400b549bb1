package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	inErrors "github.com/arkandha/feastly/internal/errors"
	"github.com/arkandha/feastly/internal/log"
	"github.com/arkandha/feastly/internal/model"
	"github.com/arkandha/feastly/restaurant/internal/common/otel"
	"github.com/arkandha/feastly/restaurant/pkg/request"
)

type RestaurantRepository interface {
	FindRestaurantById(c context.Context, id uuid.UUID) (model.Restaurant, error)
	FindRestaurants(c context.Context, searchTerm string, minRating float64) ([]model.Restaurant, error)
	FindProductsByRestaurantId(c context.Context, restaurantId uuid.UUID) ([]model.Product, error)
	InsertRestaurant(c context.Context, restaurant model.Restaurant) (model.Restaurant, error)
	UpdateRestaurant(c context.Context, restaurant model.Restaurant) (model.Restaurant, error)
}

// RestaurantDetail pairs a restaurant with its menu for the detail page.
type RestaurantDetail struct {
	Restaurant model.Restaurant `json:"restaurant"`
	Products   []model.Product  `json:"products"`
}

type RestaurantService struct {
	restaurants RestaurantRepository
}

func NewRestaurantService(restaurants RestaurantRepository) *RestaurantService {
	return &RestaurantService{restaurants: restaurants}
}

// FindRestaurants lists active restaurants, optionally filtered by a name
// search term and a minimum rating.
func (s *RestaurantService) FindRestaurants(
	c context.Context,
	searchTerm string,
	minRating float64,
) ([]model.Restaurant, error) {
	c, span := otel.Tracer.Start(c, "RestaurantService FindRestaurants")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RestaurantService FindRestaurants").
		Logger()

	c = logger.WithContext(c)
	restaurants, err := s.restaurants.FindRestaurants(c, searchTerm, minRating)
	if err != nil {
		err = fmt.Errorf("failed finding restaurants with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	return restaurants, nil
}

// FindRestaurantDetail loads the restaurant and its full menu in one call.
func (s *RestaurantService) FindRestaurantDetail(
	c context.Context,
	id uuid.UUID,
) (RestaurantDetail, error) {
	c, span := otel.Tracer.Start(c, "RestaurantService FindRestaurantDetail")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RestaurantService FindRestaurantDetail").
		Str(log.KeyRestaurantID, id.String()).
		Logger()

	c = logger.WithContext(c)
	restaurant, err := s.restaurants.FindRestaurantById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding restaurant with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return RestaurantDetail{}, err
	}

	products, err := s.restaurants.FindProductsByRestaurantId(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding restaurant products with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return RestaurantDetail{}, err
	}

	return RestaurantDetail{Restaurant: restaurant, Products: products}, nil
}

func (s *RestaurantService) CreateRestaurant(
	c context.Context,
	param request.CreateRestaurant,
) (model.Restaurant, error) {
	c, span := otel.Tracer.Start(c, "RestaurantService CreateRestaurant")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RestaurantService CreateRestaurant").
		Logger()

	restaurant := model.Restaurant{
		ID:          uuid.New(),
		Name:        param.Name,
		Address:     param.Address,
		Phone:       param.Phone,
		Cuisine:     param.Cuisine,
		Rating:      param.Rating,
		DeliveryFee: param.DeliveryFee,
		IsActive:    param.IsActive,
	}

	logger = logger.With().
		Str(log.KeyProcess, "inserting restaurant").
		Str(log.KeyRestaurantID, restaurant.ID.String()).
		Logger()
	logger.Info().Msg("inserting restaurant")
	c = logger.WithContext(c)
	inserted, err := s.restaurants.InsertRestaurant(c, restaurant)
	if err != nil {
		err = fmt.Errorf("failed inserting restaurant with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Restaurant{}, err
	}
	logger.Info().Msg("inserted restaurant")

	return inserted, nil
}

func (s *RestaurantService) UpdateRestaurant(
	c context.Context,
	id uuid.UUID,
	param request.UpdateRestaurant,
) (model.Restaurant, error) {
	c, span := otel.Tracer.Start(c, "RestaurantService UpdateRestaurant")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RestaurantService UpdateRestaurant").
		Str(log.KeyRestaurantID, id.String()).
		Logger()

	restaurant := model.Restaurant{
		ID:          id,
		Name:        param.Name,
		Address:     param.Address,
		Phone:       param.Phone,
		Cuisine:     param.Cuisine,
		Rating:      param.Rating,
		DeliveryFee: param.DeliveryFee,
		IsActive:    param.IsActive,
	}

	logger = logger.With().Str(log.KeyProcess, "updating restaurant").Logger()
	logger.Info().Msg("updating restaurant")
	c = logger.WithContext(c)
	updated, err := s.restaurants.UpdateRestaurant(c, restaurant)
	if err != nil {
		err = fmt.Errorf("failed updating restaurant with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return model.Restaurant{}, err
	}
	logger.Info().Msg("updated restaurant")

	return updated, nil
}
