package clients

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
)

// CartClient talks to the backend cart API for one authenticated user.
type CartClient struct{ c *Client }

func NewCartClient(c *Client) *CartClient { return &CartClient{c: c} }

// AddItemRequest adds or merges one cart line. PriceSnapshot is deliberately
// optional: when omitted, the backend resolves the current price server-side,
// so a fresh add never trusts the client's possibly-stale local price.
type AddItemRequest struct {
	ProductID     string   `json:"productId"`
	MerchantID    string   `json:"merchantId"`
	Quantity      int      `json:"quantity"`
	PriceSnapshot *float64 `json:"priceSnapshot,omitempty"`
}

// Fetch loads the user's cart. ErrNotFound when none exists.
func (cc *CartClient) Fetch(ctx context.Context, userID string) (cart.Cart, error) {
	var c cart.Cart
	if err := cc.c.do(ctx, http.MethodGet, "/cart", userQuery(userID), nil, &c); err != nil {
		return cart.Cart{}, err
	}
	return c, nil
}

// AddItem adds one line and returns the updated cart.
func (cc *CartClient) AddItem(ctx context.Context, userID string, req AddItemRequest) (cart.Cart, error) {
	var c cart.Cart
	if err := cc.c.do(ctx, http.MethodPost, "/cart/items", userQuery(userID), req, &c); err != nil {
		return cart.Cart{}, err
	}
	return c, nil
}

// UpdateItem sets an item's quantity and returns the updated cart.
// ErrItemNotFound when the item is already gone.
func (cc *CartClient) UpdateItem(ctx context.Context, userID, cartItemID string, quantity int) (cart.Cart, error) {
	body := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}

	var c cart.Cart
	err := cc.c.do(ctx, http.MethodPatch, "/cart/items/"+cartItemID, userQuery(userID), body, &c)
	if err != nil {
		return cart.Cart{}, itemError(err)
	}
	return c, nil
}

// RemoveItem deletes an item and returns the updated cart. ErrItemNotFound
// when it was already removed; callers treat that as success.
func (cc *CartClient) RemoveItem(ctx context.Context, userID, cartItemID string) (cart.Cart, error) {
	var c cart.Cart
	err := cc.c.do(ctx, http.MethodDelete, "/cart/items/"+cartItemID, userQuery(userID), nil, &c)
	if err != nil {
		return cart.Cart{}, itemError(err)
	}
	return c, nil
}

// On item-scoped calls a 404 means the item, not the cart, is missing.
func itemError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrItemNotFound
	}
	return err
}

func userQuery(userID string) string {
	return url.Values{"userId": []string{userID}}.Encode()
}
