package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arkandha/feastly/internal/common"
	inErrors "github.com/arkandha/feastly/internal/errors"
	inHttp "github.com/arkandha/feastly/internal/http"
	"github.com/arkandha/feastly/internal/log"
)

// Auth validates the bearer token and attaches it to the request context. The
// token subject is the customer id used as the cart session key downstream.
func Auth(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).
				With().
				Str(log.KeyTag, "middleware auth").
				Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get("Authorization")
			if authorization == "" {
				logger.Error().
					Err(inErrors.ErrEmptyAuth).
					Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrEmptyAuth.Error(),
				})
				return
			}

			token := strings.TrimPrefix(authorization, "Bearer ")
			token = strings.TrimPrefix(token, "bearer ")
			jwtToken, err := common.VerifyToken(c, token, secretKey)
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrTokenInvalid.Error(),
				})
				return
			}

			c = common.AttachJwtTokenToContext(c, jwtToken)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
