// Package reconcile merges the guest cart into a freshly authenticated
// user's server cart, once per session.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
)

// State tracks the per-session merge lifecycle.
type State int

const (
	// StateIdle: anonymous, reconciliation armed.
	StateIdle State = iota
	// StateSyncing: merge pass in flight.
	StateSyncing
	// StateSynced: merge attempted for this session; will not run again
	// until Reset.
	StateSynced
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSyncing:
		return "syncing"
	case StateSynced:
		return "synced"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrAlreadySynced rejects a second merge within one session.
var ErrAlreadySynced = errors.New("guest cart already reconciled this session")

// CartAPI is the slice of the cart backend the reconciler needs.
type CartAPI interface {
	Fetch(ctx context.Context, userID string) (cart.Cart, error)
	AddItem(ctx context.Context, userID string, req clients.AddItemRequest) (cart.Cart, error)
}

// GuestStore is the local store holding the anonymous cart.
type GuestStore interface {
	Load() cart.Cart
	Clear()
}

type Reconciler struct {
	guest GuestStore
	carts CartAPI
	state State
	log   zerolog.Logger
}

func New(guest GuestStore, carts CartAPI, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		guest: guest,
		carts: carts,
		log:   log.With().Str("component", "reconcile").Logger(),
	}
}

func (r *Reconciler) State() State { return r.state }

// Reset re-arms reconciliation for the next login. Called on logout.
func (r *Reconciler) Reset() { r.state = StateIdle }

// Reconcile runs the one-time merge pass for a newly authenticated session
// and returns the authoritative server cart when a merge happened. An empty
// guest cart transitions straight to synced with zero network calls, and the
// returned cart is empty; callers refresh the server cart separately.
//
// The merge is best-effort, not all-or-nothing: an item the server rejects is
// logged and skipped, and the guest cart is cleared unconditionally
// afterwards. A partially failed item is lost rather than left behind, since
// the server has no idempotency key tying a guest item to a prior attempt and
// a re-merge would double-count the items that did succeed. Failed items are
// not surfaced to the user item-by-item; the failure isolation here is
// load-bearing, so any change needs product sign-off.
func (r *Reconciler) Reconcile(ctx context.Context, userID string) (cart.Cart, error) {
	if r.state != StateIdle {
		return cart.Cart{}, ErrAlreadySynced
	}
	r.state = StateSyncing

	guest := r.guest.Load()
	if len(guest.Items) == 0 {
		r.state = StateSynced
		return cart.Cart{}, nil
	}

	merged := 0
	for _, it := range guest.Items {
		// no price snapshot: the server resolves the authoritative price
		_, err := r.carts.AddItem(ctx, userID, clients.AddItemRequest{
			ProductID:  it.ProductID,
			MerchantID: it.MerchantID,
			Quantity:   it.Quantity,
		})
		if err != nil {
			r.log.Warn().Err(err).
				Str("productId", it.ProductID).
				Str("merchantId", it.MerchantID).
				Int("quantity", it.Quantity).
				Msg("guest item failed to merge, dropping")
			continue
		}
		merged++
	}

	r.guest.Clear()
	r.state = StateSynced
	r.log.Info().Int("merged", merged).Int("total", len(guest.Items)).Msg("guest cart merged")

	// reflect authoritative post-merge state
	server, err := r.carts.Fetch(ctx, userID)
	if err != nil {
		return cart.Cart{}, fmt.Errorf("refetch cart after merge: %w", err)
	}
	return server, nil
}
