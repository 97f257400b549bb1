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

	inErrors "github.com/arkandha/feastly/internal/errors"
	inHttp "github.com/arkandha/feastly/internal/http"
	"github.com/arkandha/feastly/internal/log"
	"github.com/arkandha/feastly/product/internal/common/otel"
	"github.com/arkandha/feastly/product/internal/service"
	"github.com/arkandha/feastly/product/pkg/request"
)

type ProductController struct {
	service *service.ProductService
}

func AttachProductController(router *mux.Router, service *service.ProductService) {
	controller := ProductController{service: service}

	sub := router.PathPrefix("/products").Subrouter()
	sub.HandleFunc("", controller.CreateProduct).Methods(http.MethodPost)
	sub.HandleFunc("/{productId}", controller.FindProductById).Methods(http.MethodGet)
	sub.HandleFunc("/{productId}", controller.UpdateProduct).Methods(http.MethodPut)
	sub.HandleFunc("/{productId}/stock", controller.AdjustStock).Methods(http.MethodPatch)
	sub.HandleFunc("/{productId}/availability", controller.UpdateAvailability).
		Methods(http.MethodPatch)

	router.HandleFunc("/restaurants/{restaurantId}/products", controller.FindRestaurantProducts).
		Methods(http.MethodGet)
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, inErrors.ErrProductNotFound),
		errors.Is(err, inErrors.ErrRestaurantNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (t ProductController) FindProductById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProductById").
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

	c = logger.WithContext(c)
	product, err := t.service.FindProductById(c, productId)
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
		"message":    "successfully found product",
		"data": map[string]interface{}{
			"product":     product,
			"stockStatus": product.StockStatus(),
		},
	})
}

func (t ProductController) FindRestaurantProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindRestaurantProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindRestaurantProducts").
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
	products, err := t.service.FindProductsByRestaurantId(c, restaurantId)
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
		"message":    "successfully found products",
		"data": map[string]interface{}{
			"products": products,
		},
	})
}

func (t ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController CreateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController CreateProduct").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	reqBody := request.CreateProduct{}
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

	logger = logger.With().Str(log.KeyProcess, "creating product").Logger()
	logger.Info().Msg("creating product")
	c = logger.WithContext(c)
	product, err := t.service.CreateProduct(c, reqBody)
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
	logger.Info().Str(log.KeyProductID, product.ID.String()).Msg("created product")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "successfully created product",
		"data": map[string]interface{}{
			"product": product,
		},
	})
}

func (t ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController UpdateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController UpdateProduct").
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

	reqBody := request.UpdateProduct{}
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
		Str(log.KeyProcess, "updating product").
		Str(log.KeyProductID, productId.String()).
		Logger()
	logger.Info().Msg("updating product")
	c = logger.WithContext(c)
	product, err := t.service.UpdateProduct(c, productId, reqBody)
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
	logger.Info().Msg("updated product")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully updated product",
		"data": map[string]interface{}{
			"product": product,
		},
	})
}

func (t ProductController) AdjustStock(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController AdjustStock")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController AdjustStock").
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

	reqBody := request.AdjustProductStock{}
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

	c = logger.WithContext(c)
	product, err := t.service.AdjustStock(c, productId, reqBody.Delta)
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
		"message":    "successfully adjusted product stock",
		"data": map[string]interface{}{
			"product":     product,
			"stockStatus": product.StockStatus(),
		},
	})
}

func (t ProductController) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController UpdateAvailability")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController UpdateAvailability").
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

	reqBody := request.UpdateProductAvailability{}
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

	c = logger.WithContext(c)
	product, err := t.service.UpdateAvailability(c, productId, reqBody.IsAvailable)
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
		"message":    "successfully updated product availability",
		"data": map[string]interface{}{
			"product": product,
		},
	})
}
