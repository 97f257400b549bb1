package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inErrors "github.com/arkandha/feastly/internal/errors"
	inHttp "github.com/arkandha/feastly/internal/http"
	"github.com/arkandha/feastly/internal/log"
	"github.com/arkandha/feastly/restaurant/internal/common/otel"
	"github.com/arkandha/feastly/restaurant/internal/service"
	"github.com/arkandha/feastly/restaurant/pkg/request"
)

type RestaurantController struct {
	service *service.RestaurantService
}

func AttachRestaurantController(router *mux.Router, service *service.RestaurantService) {
	controller := RestaurantController{service: service}

	sub := router.PathPrefix("/restaurants").Subrouter()
	sub.HandleFunc("", controller.FindRestaurants).Methods(http.MethodGet)
	sub.HandleFunc("", controller.CreateRestaurant).Methods(http.MethodPost)
	sub.HandleFunc("/{restaurantId}", controller.FindRestaurantDetail).Methods(http.MethodGet)
	sub.HandleFunc("/{restaurantId}", controller.UpdateRestaurant).Methods(http.MethodPut)
}

func statusFromError(err error) int {
	if errors.Is(err, inErrors.ErrRestaurantNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (t RestaurantController) FindRestaurants(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "RestaurantController FindRestaurants")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RestaurantController FindRestaurants").
		Logger()

	searchTerm := r.URL.Query().Get("search")
	minRating := 0.0
	if raw := r.URL.Query().Get("minRating"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			err = fmt.Errorf("failed parsing minRating with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     "failed",
				"statusCode": http.StatusBadRequest,
				"message":    err.Error(),
			})
			return
		}
		minRating = parsed
	}

	c = logger.WithContext(c)
	restaurants, err := t.service.FindRestaurants(c, searchTerm, minRating)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusFromError(err),
			"message":    err.Error(),
		})
		return
	}

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully found restaurants",
		"data": map[string]interface{}{
			"restaurants": restaurants,
		},
	})
}

func (t RestaurantController) FindRestaurantDetail(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "RestaurantController FindRestaurantDetail")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RestaurantController FindRestaurantDetail").
		Logger()

	restaurantId, err := uuid.Parse(mux.Vars(r)["restaurantId"])
	if err != nil {
		err = fmt.Errorf("failed parsing restaurantId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	c = logger.WithContext(c)
	detail, err := t.service.FindRestaurantDetail(c, restaurantId)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusFromError(err),
			"message":    err.Error(),
		})
		return
	}

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully found restaurant",
		"data": map[string]interface{}{
			"restaurant": detail.Restaurant,
			"products":   detail.Products,
		},
	})
}

func (t RestaurantController) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "RestaurantController CreateRestaurant")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RestaurantController CreateRestaurant").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	reqBody := request.CreateRestaurant{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	logger = logger.With().Str(log.KeyProcess, "creating restaurant").Logger()
	logger.Info().Msg("creating restaurant")
	c = logger.WithContext(c)
	restaurant, err := t.service.CreateRestaurant(c, reqBody)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Str(log.KeyRestaurantID, restaurant.ID.String()).Msg("created restaurant")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "successfully created restaurant",
		"data": map[string]interface{}{
			"restaurant": restaurant,
		},
	})
}

func (t RestaurantController) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "RestaurantController UpdateRestaurant")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RestaurantController UpdateRestaurant").
		Logger()

	restaurantId, err := uuid.Parse(mux.Vars(r)["restaurantId"])
	if err != nil {
		err = fmt.Errorf("failed parsing restaurantId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	reqBody := request.UpdateRestaurant{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	logger = logger.With().
		Str(log.KeyProcess, "updating restaurant").
		Str(log.KeyRestaurantID, restaurantId.String()).
		Logger()
	logger.Info().Msg("updating restaurant")
	c = logger.WithContext(c)
	restaurant, err := t.service.UpdateRestaurant(c, restaurantId, reqBody)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("updated restaurant")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully updated restaurant",
		"data": map[string]interface{}{
			"restaurant": restaurant,
		},
	})
}
