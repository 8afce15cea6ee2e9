package guestcart

import (
	"github.com/google/uuid"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
)

// NewItem is an add-to-cart request for the guest cart.
type NewItem struct {
	ProductID  string
	MerchantID string
	Quantity   int
}

// AddItem merges the request into the cart: an existing (productId,
// merchantId) line has its quantity incremented, otherwise a new line is
// appended with a fresh item id. The caller persists the returned cart.
func AddItem(c cart.Cart, item NewItem) cart.Cart {
	if i := c.Find(item.ProductID, item.MerchantID); i >= 0 {
		c.Items[i].Quantity += item.Quantity
		return c
	}

	c.Items = append(c.Items, cart.Item{
		CartItemID: newItemID(),
		ProductID:  item.ProductID,
		MerchantID: item.MerchantID,
		Quantity:   item.Quantity,
	})
	return c
}

// UpdateQuantity sets an item's quantity; zero or negative removes the item.
// An unknown id is a soft failure: the cart is returned unchanged.
func UpdateQuantity(c cart.Cart, cartItemID string, quantity int) cart.Cart {
	if quantity <= 0 {
		return RemoveItem(c, cartItemID)
	}
	for i := range c.Items {
		if c.Items[i].CartItemID == cartItemID {
			c.Items[i].Quantity = quantity
			break
		}
	}
	return c
}

// RemoveItem removes the matching item if present; no-op otherwise.
func RemoveItem(c cart.Cart, cartItemID string) cart.Cart {
	for i := range c.Items {
		if c.Items[i].CartItemID == cartItemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}
	return c
}

// Ids only need to be unique within one guest cart's lifetime.
func newItemID() string {
	return "guest_" + uuid.NewString()
}
