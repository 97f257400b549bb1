package errors

import (
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrEmptyAuth    = errors.New("missing authorization")
	ErrEmptySubject = errors.New("missing subject")
	ErrTokenInvalid = errors.New("invalid token")

	ErrInvalidQuantity        = errors.New("quantity must be at least 1")
	ErrCartRestaurantConflict = errors.New(
		"cart already contains items from another restaurant",
	)
	ErrEmptyCart               = errors.New("cart is empty")
	ErrMissingDeliveryAddress  = errors.New("delivery address is required")
	ErrProductNotFound         = errors.New("product not found")
	ErrProductUnavailable      = errors.New("product is not available")
	ErrInsufficientStock       = errors.New("product has insufficient stock")
	ErrRestaurantNotFound      = errors.New("restaurant not found")
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidStatusTransition = errors.New("order cannot be cancelled at this stage")
)

// HandleError records err on the span and marks the span failed.
func HandleError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.AddEvent(err.Error())
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}
