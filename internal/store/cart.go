// Package store persists the session-scoped shopping cart as a JSON blob
// keyed by the customer session id.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/arkandha/feastly/internal/model"
)

type CartStore interface {
	// Get returns the cart for the session, or an empty cart when none exists.
	Get(c context.Context, sessionId uuid.UUID) (model.Cart, error)
	Set(c context.Context, sessionId uuid.UUID, cart model.Cart) error
	// Delete removes the cart; deleting an absent cart is a no-op.
	Delete(c context.Context, sessionId uuid.UUID) error
}
