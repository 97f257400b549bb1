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

	"github.com/arkandha/feastly/internal/common"
	inErrors "github.com/arkandha/feastly/internal/errors"
	inHttp "github.com/arkandha/feastly/internal/http"
	"github.com/arkandha/feastly/internal/log"
	"github.com/arkandha/feastly/order/internal/common/otel"
	"github.com/arkandha/feastly/order/internal/service"
	"github.com/arkandha/feastly/order/pkg/request"
)

type OrderController struct {
	service *service.OrderService
}

func AttachOrderController(router *mux.Router, service *service.OrderService) {
	controller := OrderController{service: service}

	sub := router.PathPrefix("/orders").Subrouter()
	sub.HandleFunc("/checkout", controller.Checkout).Methods(http.MethodPost)
	sub.HandleFunc("/stats", controller.Stats).Methods(http.MethodGet)
	sub.HandleFunc("", controller.FindOrders).Methods(http.MethodGet)
	sub.HandleFunc("/restaurants/{restaurantId}", controller.FindRestaurantOrders).
		Methods(http.MethodGet)
	sub.HandleFunc("/{orderId}", controller.FindOrderById).Methods(http.MethodGet)
	sub.HandleFunc("/{orderId}/status", controller.UpdateStatus).Methods(http.MethodPut)
	sub.HandleFunc("/{orderId}/cancel", controller.Cancel).Methods(http.MethodPost)
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, inErrors.ErrOrderNotFound),
		errors.Is(err, inErrors.ErrProductNotFound),
		errors.Is(err, inErrors.ErrRestaurantNotFound):
		return http.StatusNotFound
	case errors.Is(err, inErrors.ErrEmptyCart),
		errors.Is(err, inErrors.ErrMissingDeliveryAddress),
		errors.Is(err, inErrors.ErrProductUnavailable),
		errors.Is(err, inErrors.ErrInsufficientStock):
		return http.StatusUnprocessableEntity
	case errors.Is(err, inErrors.ErrInvalidStatusTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (t OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController Checkout").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	reqBody := request.Checkout{}
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
		Str(log.KeyProcess, "placing order").
		Str(log.KeyCustomerID, customerId.String()).
		Logger()
	logger.Info().Msg("placing order")
	c = logger.WithContext(c)
	order, err := t.service.PlaceOrder(c, customerId, reqBody)
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
	logger.Info().Str(log.KeyOrderID, order.ID.String()).Msg("placed order")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "successfully placed order",
		"data": map[string]interface{}{
			"order":                    order,
			"estimatedDeliveryMinutes": order.EstimatedDeliveryMinutes(),
		},
	})
}

func (t OrderController) FindOrders(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrders").
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
	orders, err := t.service.FindOrdersByCustomerId(c, customerId)
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
		"message":    "successfully found orders",
		"data": map[string]interface{}{
			"orders": orders,
		},
	})
}

func (t OrderController) FindRestaurantOrders(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindRestaurantOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindRestaurantOrders").
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
	orders, err := t.service.FindOrdersByRestaurantId(c, restaurantId)
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
		"message":    "successfully found orders",
		"data": map[string]interface{}{
			"orders": orders,
		},
	})
}

func (t OrderController) FindOrderById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrderById").
		Logger()

	orderId, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		err = fmt.Errorf("failed parsing orderId with error=%w", err)
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
	order, err := t.service.FindOrderById(c, orderId)
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
		"message":    "successfully found order",
		"data": map[string]interface{}{
			"order":                    order,
			"statusDisplay":            order.Status.Display(),
			"estimatedDeliveryMinutes": order.EstimatedDeliveryMinutes(),
			"canCancel":                order.CanCancel(),
		},
	})
}

func (t OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController UpdateStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController UpdateStatus").
		Logger()

	orderId, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		err = fmt.Errorf("failed parsing orderId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	reqBody := request.UpdateOrderStatus{}
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
		Str(log.KeyProcess, "updating order status").
		Str(log.KeyOrderID, orderId.String()).
		Str(log.KeyOrderStatus, reqBody.Status).
		Logger()
	logger.Info().Msg("updating order status")
	c = logger.WithContext(c)
	order, err := t.service.UpdateStatus(c, orderId, reqBody)
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
	logger.Info().Msg("updated order status")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully updated order status",
		"data": map[string]interface{}{
			"order": order,
		},
	})
}

func (t OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController Cancel")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController Cancel").
		Logger()

	orderId, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		err = fmt.Errorf("failed parsing orderId with error=%w", err)
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
		Str(log.KeyProcess, "cancelling order").
		Str(log.KeyOrderID, orderId.String()).
		Logger()
	logger.Info().Msg("cancelling order")
	c = logger.WithContext(c)
	order, err := t.service.Cancel(c, customerId, orderId)
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
	logger.Info().Msg("cancelled order")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully cancelled order",
		"data": map[string]interface{}{
			"order": order,
		},
	})
}

func (t OrderController) Stats(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController Stats")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController Stats").
		Logger()

	c = logger.WithContext(c)
	stats, err := t.service.Stats(c)
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
		"message":    "successfully aggregated order stats",
		"data": map[string]interface{}{
			"stats": stats,
		},
	})
}
