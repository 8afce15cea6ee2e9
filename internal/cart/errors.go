package cart

import "fmt"

// ValidationError rejects a mutation before any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateNewItem checks an add-to-cart request.
func ValidateNewItem(productID, merchantID string, quantity int) error {
	if productID == "" {
		return &ValidationError{Field: "productId", Reason: "must not be empty"}
	}
	if merchantID == "" {
		return &ValidationError{Field: "merchantId", Reason: "must not be empty"}
	}
	if quantity < 1 {
		return &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	return nil
}
