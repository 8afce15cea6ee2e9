package clients

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tidwall/gjson"
)

// OffersClient reads merchant offers from the offer catalog.
type OffersClient struct{ c *Client }

func NewOffersClient(c *Client) *OffersClient { return &OffersClient{c: c} }

// Offer is one merchant's priced listing for a product. Raw keeps the
// untouched record because the backend's price shape varies; the pricing
// package is the only consumer that interprets it.
type Offer struct {
	ID         string
	MerchantID string
	Raw        json.RawMessage
}

// ProductOffers lists the offers for one product. An empty slice and nil
// error means the product currently has no offers.
func (oc *OffersClient) ProductOffers(ctx context.Context, productID string) ([]Offer, error) {
	var raw []json.RawMessage
	if err := oc.c.do(ctx, http.MethodGet, "/offers/product/"+productID, "", nil, &raw); err != nil {
		return nil, err
	}

	offers := make([]Offer, 0, len(raw))
	for _, r := range raw {
		rec := gjson.ParseBytes(r)
		offers = append(offers, Offer{
			// merchantId has shipped as both a string and a number
			ID:         rec.Get("offerId").String(),
			MerchantID: rec.Get("merchantId").String(),
			Raw:        r,
		})
	}
	return offers, nil
}
