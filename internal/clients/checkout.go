package clients

import (
	"context"
	"net/http"
)

// CheckoutClient starts the checkout transaction for the authenticated cart.
// The transaction itself (inventory reservation, payment, order creation)
// lives entirely in the backend.
type CheckoutClient struct{ c *Client }

func NewCheckoutClient(c *Client) *CheckoutClient { return &CheckoutClient{c: c} }

type CheckoutResult struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

func (cc *CheckoutClient) Checkout(ctx context.Context, userID, shippingAddress string) (CheckoutResult, error) {
	body := struct {
		ShippingAddress string `json:"shippingAddress"`
	}{ShippingAddress: shippingAddress}

	var res CheckoutResult
	if err := cc.c.do(ctx, http.MethodPost, "/checkout", userQuery(userID), body, &res); err != nil {
		return CheckoutResult{}, err
	}
	return res, nil
}
