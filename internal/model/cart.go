package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arkandha/feastly/internal/errors"
)

// CartItem is a menu item selected into a cart. Name and price are snapshotted
// at add time so later catalog edits do not change what the customer sees.
type CartItem struct {
	ProductID      uuid.UUID       `json:"productId"`
	ProductName    string          `json:"productName"`
	UnitPrice      decimal.Decimal `json:"price"`
	Quantity       int32           `json:"quantity"`
	RestaurantID   uuid.UUID       `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt32(i.Quantity))
}

// Cart holds the in-progress selection for one customer session. All items
// belong to the same restaurant; an empty cart has no restaurant bound.
type Cart struct {
	RestaurantID   uuid.UUID  `json:"restaurantId"`
	RestaurantName string     `json:"restaurantName"`
	Items          []CartItem `json:"items"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// AddItem merges the item into the cart. An empty cart adopts the item's
// restaurant; a cart bound to another restaurant rejects the item with
// ErrCartRestaurantConflict and is left unmodified. An item already in the
// cart has its quantity incremented by the requested amount.
func (c *Cart) AddItem(item CartItem) error {
	if item.Quantity < 1 {
		return errors.ErrInvalidQuantity
	}
	if c.IsEmpty() {
		c.RestaurantID = item.RestaurantID
		c.RestaurantName = item.RestaurantName
	}
	if c.RestaurantID != item.RestaurantID {
		return errors.ErrCartRestaurantConflict
	}
	for i, existing := range c.Items {
		if existing.ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			return nil
		}
	}
	c.Items = append(c.Items, item)
	return nil
}

// UpdateItemQuantity sets the quantity of the given product. A quantity of
// zero or less removes the item entirely; removing the last item releases the
// restaurant binding. Unknown products are a no-op.
func (c *Cart) UpdateItemQuantity(productID uuid.UUID, quantity int32) {
	for i, item := range c.Items {
		if item.ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
		break
	}
	if len(c.Items) == 0 {
		c.Clear()
	}
}

func (c *Cart) RemoveItem(productID uuid.UUID) {
	c.UpdateItemQuantity(productID, 0)
}

// Clear empties the cart and releases the restaurant binding.
func (c *Cart) Clear() {
	*c = Cart{}
}

func (c Cart) TotalItems() int32 {
	var total int32
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

func (c Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}
