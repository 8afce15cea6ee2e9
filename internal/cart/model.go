package cart

// Item is a single cart line. Guest carts leave PriceSnapshot zero: anonymous
// items carry no authoritative price and are priced lazily against the offer
// catalog. Server carts carry the snapshot the backend captured at add time.
type Item struct {
	CartItemID    string  `json:"cartItemId"`
	ProductID     string  `json:"productId"`
	MerchantID    string  `json:"merchantId"`
	Quantity      int     `json:"quantity"`
	PriceSnapshot float64 `json:"priceSnapshot,omitempty"`
}

// Cart holds items in insertion order. At most one item exists per
// (productId, merchantId) pair; adding a duplicate pair increments the
// existing item's quantity instead.
type Cart struct {
	Items []Item `json:"items"`
}

// ItemByID returns the item with the given cart item id, if present.
func (c Cart) ItemByID(cartItemID string) (Item, bool) {
	for _, it := range c.Items {
		if it.CartItemID == cartItemID {
			return it, true
		}
	}
	return Item{}, false
}

// Find returns the index of the item matching the (productId, merchantId)
// pair, or -1.
func (c Cart) Find(productID, merchantID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].MerchantID == merchantID {
			return i
		}
	}
	return -1
}
