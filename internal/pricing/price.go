// Package pricing normalizes the heterogeneous price shapes the offer
// backend returns into a single numeric amount.
//
// Offers have arrived with prices as a bare number, as an object under
// "price" with any of several field names, or as a sibling cents integer.
// Isolating the probing here means a stabilized upstream contract needs a
// change in exactly one place.
package pricing

import (
	"math"

	"github.com/tidwall/gjson"
)

// ExtractPrice resolves one canonical price from a raw offer record.
//
// Resolution order, first match wins:
//  1. price is a number: used directly.
//  2. price is an object: first of amount, value, price, cents. A non-zero
//     cents wins (divided by 100) whenever amount and value are both absent
//     or zero-valued.
//  3. priceCents is a number: divided by 100.
//  4. amount is a number: used directly.
//  5. Otherwise 0.
//
// The function is total: malformed input of any shape yields 0, and a
// non-finite result is clamped to 0. It never panics.
func ExtractPrice(raw []byte) float64 {
	if !gjson.ValidBytes(raw) {
		return 0
	}
	return fromResult(gjson.ParseBytes(raw))
}

func fromResult(offer gjson.Result) float64 {
	if !offer.IsObject() {
		return 0
	}

	var price float64
	p := offer.Get("price")
	switch {
	case p.Type == gjson.Number:
		price = p.Num
	case p.IsObject():
		if sub, ok := firstSet(p, "amount", "value", "price", "cents"); ok && sub.Type == gjson.Number {
			price = sub.Num
		}
		if cents := p.Get("cents"); cents.Type == gjson.Number && cents.Num != 0 &&
			!truthy(p.Get("amount")) && !truthy(p.Get("value")) {
			price = cents.Num / 100
		}
	case offer.Get("priceCents").Type == gjson.Number:
		price = offer.Get("priceCents").Num / 100
	case offer.Get("amount").Type == gjson.Number:
		price = offer.Get("amount").Num
	}

	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0
	}
	return price
}

// firstSet returns the first named field that is present and not null.
func firstSet(obj gjson.Result, fields ...string) (gjson.Result, bool) {
	for _, f := range fields {
		if v := obj.Get(f); v.Exists() && v.Type != gjson.Null {
			return v, true
		}
	}
	return gjson.Result{}, false
}

// truthy reports whether a field would count as present for the cents
// override: missing, null, false, 0 and "" do not.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	case gjson.True, gjson.JSON:
		return true
	default:
		return false
	}
}
