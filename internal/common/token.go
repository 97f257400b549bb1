package common

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	inErrors "github.com/arkandha/feastly/internal/errors"
	"github.com/arkandha/feastly/internal/log"
)

type jwtToken struct{}

func AttachJwtTokenToContext(c context.Context, token *jwt.Token) context.Context {
	return context.WithValue(c, jwtToken{}, token)
}

func JwtTokenFromContext(c context.Context) (*jwt.Token, error) {
	token, ok := c.Value(jwtToken{}).(*jwt.Token)
	if !ok {
		return nil, inErrors.ErrTokenInvalid
	}
	return token, nil
}

// VerifyToken parses and validates the bearer token with the configured
// secret. The subject claim carries the customer id.
func VerifyToken(c context.Context, token string, secretKey string) (*jwt.Token, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VerifyToken").
		Logger()

	claims := &jwt.RegisteredClaims{}
	jwtToken, err := jwt.ParseWithClaims(token,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		},
		jwt.WithAudience(AudienceCustomer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing with claims with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if !jwtToken.Valid {
		logger.Error().Err(inErrors.ErrTokenInvalid).Msg(inErrors.ErrTokenInvalid.Error())
		return nil, inErrors.ErrTokenInvalid
	}
	return jwtToken, nil
}

// CustomerIdFromJwtToken reads the customer id from the subject claim of the
// token attached by the auth middleware.
func CustomerIdFromJwtToken(c context.Context) (uuid.UUID, error) {
	token, err := JwtTokenFromContext(c)
	if err != nil {
		return uuid.Nil, err
	}
	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed getting subject with error=%w", err)
	}
	if subject == "" {
		return uuid.Nil, inErrors.ErrEmptySubject
	}
	customerId, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed parsing subject with error=%w", err)
	}
	return customerId, nil
}
