package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

const (
	HeaderContentType = "Content-Type"
	HeaderValueJson   = "application/json"

	KeyHeaderRequestID = "X-Request-Id"
)

var tracer = otel.Tracer("internal-http")

func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	body map[string]interface{},
) {
	c, span := tracer.Start(c, "WriteJsonResponse")
	defer span.End()

	logger := zerolog.Ctx(c)

	w.Header().Add(HeaderContentType, HeaderValueJson)
	for k, v := range header {
		w.Header().Add(k, v)
	}

	if v, ok := body["statusCode"]; ok {
		w.WriteHeader(v.(int))
	}

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		logger.Error().
			Err(err).
			Msgf("failed encode response body with error=%s", err.Error())
	}
}
