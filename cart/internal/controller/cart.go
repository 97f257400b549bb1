package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/arkandha/feastly/cart/internal/common/otel"
	"github.com/arkandha/feastly/cart/internal/service"
	"github.com/arkandha/feastly/cart/pkg/request"
	"github.com/arkandha/feastly/internal/common"
	inErrors "github.com/arkandha/feastly/internal/errors"
	inHttp "github.com/arkandha/feastly/internal/http"
	"github.com/arkandha/feastly/internal/log"
)

type CartController struct {
	service *service.CartService
}

func AttachCartController(router *mux.Router, service *service.CartService) {
	controller := CartController{service: service}

	sub := router.PathPrefix("/carts").Subrouter()
	sub.HandleFunc("", controller.GetCart).Methods(http.MethodGet)
	sub.HandleFunc("", controller.Clear).Methods(http.MethodDelete)
	sub.HandleFunc("/count", controller.ItemCount).Methods(http.MethodGet)
	sub.HandleFunc("/items", controller.AddItem).Methods(http.MethodPost)
	sub.HandleFunc("/items/{productId}", controller.UpdateItem).Methods(http.MethodPut)
	sub.HandleFunc("/items/{productId}", controller.RemoveItem).Methods(http.MethodDelete)
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, inErrors.ErrCartRestaurantConflict):
		return http.StatusConflict
	case errors.Is(err, inErrors.ErrProductNotFound),
		errors.Is(err, inErrors.ErrRestaurantNotFound):
		return http.StatusNotFound
	case errors.Is(err, inErrors.ErrProductUnavailable),
		errors.Is(err, inErrors.ErrInvalidQuantity):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (t CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddItem").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	reqBody := request.AddCartItem{}
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

	customerId, err := common.CustomerIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting customerId from jwtToken with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	logger = logger.With().
		Str(log.KeyProcess, "adding item to cart").
		Str(log.KeyCustomerID, customerId.String()).
		Logger()
	logger.Info().Msg("adding item to cart")
	c = logger.WithContext(c)
	cart, err := t.service.AddItem(c, customerId, reqBody)
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
	logger.Info().Msg("added item to cart")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully added item to cart",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController UpdateItem").
		Logger()

	productId, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		err = fmt.Errorf("failed parsing productId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	reqBody := request.UpdateCartItem{}
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

	customerId, err := common.CustomerIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting customerId from jwtToken with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	logger = logger.With().
		Str(log.KeyProcess, "updating cart item").
		Str(log.KeyCustomerID, customerId.String()).
		Str(log.KeyProductID, productId.String()).
		Logger()
	logger.Info().Msg("updating cart item")
	c = logger.WithContext(c)
	cart, err := t.service.UpdateItemQuantity(c, customerId, productId, reqBody.Quantity)
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
	logger.Info().Msg("updated cart item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully updated cart item",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveItem").
		Logger()

	productId, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		err = fmt.Errorf("failed parsing productId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	customerId, err := common.CustomerIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting customerId from jwtToken with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	c = logger.WithContext(c)
	cart, err := t.service.RemoveItem(c, customerId, productId)
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
		"message":    "successfully removed cart item",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController GetCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController GetCart").
		Logger()

	customerId, err := common.CustomerIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting customerId from jwtToken with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	c = logger.WithContext(c)
	cart, err := t.service.GetCart(c, customerId)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully found cart",
		"data": map[string]interface{}{
			"cart":        cart,
			"totalItems":  cart.TotalItems(),
			"totalAmount": cart.TotalAmount(),
		},
	})
}

func (t CartController) Clear(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController Clear")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController Clear").
		Logger()

	customerId, err := common.CustomerIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting customerId from jwtToken with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	c = logger.WithContext(c)
	if err := t.service.Clear(c, customerId); err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully cleared cart",
	})
}

func (t CartController) ItemCount(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ItemCount")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController ItemCount").
		Logger()

	customerId, err := common.CustomerIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting customerId from jwtToken with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	c = logger.WithContext(c)
	count, err := t.service.ItemCount(c, customerId)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully counted cart items",
		"data": map[string]interface{}{
			"count": count,
		},
	})
}
