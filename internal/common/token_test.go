package common

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	inErrors "github.com/arkandha/feastly/internal/errors"
)

const testSecretKey = "test-secret"

func signToken(t *testing.T, claims jwt.RegisteredClaims, secretKey string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(secretKey))
	if err != nil {
		t.Fatalf("failed signing token with error: %s", err)
	}
	return signed
}

func validClaims(subject string) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		Audience:  jwt.ClaimStrings{AudienceCustomer},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
}

func TestVerifyToken(t *testing.T) {
	c := context.Background()
	customerId := uuid.New()

	t.Run("valid token", func(t *testing.T) {
		signed := signToken(t, validClaims(customerId.String()), testSecretKey)

		token, err := VerifyToken(c, signed, testSecretKey)

		assert.NoError(t, err)
		assert.True(t, token.Valid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		signed := signToken(t, validClaims(customerId.String()), "other-secret")

		_, err := VerifyToken(c, signed, testSecretKey)

		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := validClaims(customerId.String())
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		signed := signToken(t, claims, testSecretKey)

		_, err := VerifyToken(c, signed, testSecretKey)

		assert.Error(t, err)
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := validClaims(customerId.String())
		claims.Audience = jwt.ClaimStrings{"somebody-else"}
		signed := signToken(t, claims, testSecretKey)

		_, err := VerifyToken(c, signed, testSecretKey)

		assert.Error(t, err)
	})
}

func TestCustomerIdFromJwtToken(t *testing.T) {
	c := context.Background()
	customerId := uuid.New()

	t.Run("subject carries the customer id", func(t *testing.T) {
		signed := signToken(t, validClaims(customerId.String()), testSecretKey)
		token, err := VerifyToken(c, signed, testSecretKey)
		assert.NoError(t, err)

		actual, err := CustomerIdFromJwtToken(AttachJwtTokenToContext(c, token))

		assert.NoError(t, err)
		assert.Equal(t, customerId, actual)
	})

	t.Run("missing token in context", func(t *testing.T) {
		_, err := CustomerIdFromJwtToken(c)

		assert.ErrorIs(t, err, inErrors.ErrTokenInvalid)
	})

	t.Run("empty subject", func(t *testing.T) {
		signed := signToken(t, validClaims(""), testSecretKey)
		token, err := VerifyToken(c, signed, testSecretKey)
		assert.NoError(t, err)

		_, err = CustomerIdFromJwtToken(AttachJwtTokenToContext(c, token))

		assert.ErrorIs(t, err, inErrors.ErrEmptySubject)
	})

	t.Run("non uuid subject", func(t *testing.T) {
		signed := signToken(t, validClaims("not-a-uuid"), testSecretKey)
		token, err := VerifyToken(c, signed, testSecretKey)
		assert.NoError(t, err)

		_, err = CustomerIdFromJwtToken(AttachJwtTokenToContext(c, token))

		assert.Error(t, err)
	})
}
