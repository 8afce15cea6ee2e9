package clients

import (
	"context"
	"net/http"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
)

// OrdersClient reads order history for order tracking.
type OrdersClient struct{ c *Client }

func NewOrdersClient(c *Client) *OrdersClient { return &OrdersClient{c: c} }

type Order struct {
	OrderID   string      `json:"orderId"`
	Status    string      `json:"status"`
	Total     float64     `json:"totalAmount"`
	Items     []cart.Item `json:"items"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Order fetches one order by id. ErrNotFound when it does not exist.
func (oc *OrdersClient) Order(ctx context.Context, orderID string) (Order, error) {
	var o Order
	if err := oc.c.do(ctx, http.MethodGet, "/orders/"+orderID, "", nil, &o); err != nil {
		return Order{}, err
	}
	return o, nil
}

// OrdersByUser lists a user's orders, newest first per the backend contract.
func (oc *OrdersClient) OrdersByUser(ctx context.Context, userID string) ([]Order, error) {
	var orders []Order
	if err := oc.c.do(ctx, http.MethodGet, "/orders", userQuery(userID), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
