package clients

import (
	"errors"
	"fmt"
)

// ErrNotFound signals a missing resource on a read. For a cart fetch this is
// a genuine failure (the UI falls back to an empty cart).
var ErrNotFound = errors.New("not found")

// ErrItemNotFound signals a missing cart item on update/remove. Callers treat
// it as benign: the end state already matches intent.
var ErrItemNotFound = errors.New("cart item not found")

// NetworkError covers an unreachable backend or a 5xx response. Callers
// recover by leaving prior cart state unchanged.
type NetworkError struct {
	Op         string
	StatusCode int // 0 when the transport itself failed
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
