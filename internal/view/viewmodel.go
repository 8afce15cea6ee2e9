// Package view derives display-ready cart aggregates and routes mutations to
// whichever cart is active: the local guest cart while anonymous, the backend
// cart once authenticated.
package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/guestcart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/reconcile"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/session"
)

// CartAPI is the backend cart surface the view model mutates through.
type CartAPI interface {
	Fetch(ctx context.Context, userID string) (cart.Cart, error)
	AddItem(ctx context.Context, userID string, req clients.AddItemRequest) (cart.Cart, error)
	UpdateItem(ctx context.Context, userID, cartItemID string, quantity int) (cart.Cart, error)
	RemoveItem(ctx context.Context, userID, cartItemID string) (cart.Cart, error)
}

type OffersAPI interface {
	ProductOffers(ctx context.Context, productID string) ([]clients.Offer, error)
}

type CheckoutAPI interface {
	Checkout(ctx context.Context, userID, shippingAddress string) (clients.CheckoutResult, error)
}

// Merger is the once-per-session guest cart reconciliation.
type Merger interface {
	Reconcile(ctx context.Context, userID string) (cart.Cart, error)
	State() reconcile.State
	Reset()
}

type priceKey struct {
	productID  string
	merchantID string
}

type ViewModel struct {
	sess     *session.Session
	guest    *guestcart.Store
	carts    CartAPI
	offers   OffersAPI
	checkout CheckoutAPI
	merger   Merger
	log      zerolog.Logger

	active cart.Cart
	// Guest price cache keyed by (productId, merchantId). Never invalidated
	// within a session: guests see the price from whenever they first saw
	// the item.
	prices map[priceKey]float64
}

func New(sess *session.Session, guest *guestcart.Store, carts CartAPI, offers OffersAPI, checkout CheckoutAPI, merger Merger, log zerolog.Logger) *ViewModel {
	return &ViewModel{
		sess:     sess,
		guest:    guest,
		carts:    carts,
		offers:   offers,
		checkout: checkout,
		merger:   merger,
		log:      log.With().Str("component", "view").Logger(),
		prices:   make(map[priceKey]float64),
	}
}

// Cart returns the active cart snapshot.
func (vm *ViewModel) Cart() cart.Cart { return vm.active }

// Authenticated reports whether the server cart is the active one.
func (vm *ViewModel) Authenticated() bool { return vm.sess.Authenticated() }

// UserID returns the logged-in user id, empty while anonymous.
func (vm *ViewModel) UserID() string { return vm.sess.UserID() }

// Login starts an authenticated session and runs the pending guest cart
// reconciliation before loading the server cart.
func (vm *ViewModel) Login(ctx context.Context, userID string) error {
	if userID == "" {
		return &cart.ValidationError{Field: "userId", Reason: "must not be empty"}
	}
	vm.sess.Login(userID)
	return vm.Resume(ctx)
}

// Resume brings the view model up to date with the current session: it runs
// reconciliation if this session still owes one (a pass interrupted before
// the sync flag was set retries here), then refreshes the active cart.
func (vm *ViewModel) Resume(ctx context.Context) error {
	if vm.sess.Authenticated() && !vm.sess.HasSynced() {
		vm.reconcileGuestCart(ctx)
	}
	return vm.Refresh(ctx)
}

func (vm *ViewModel) reconcileGuestCart(ctx context.Context) {
	_, err := vm.merger.Reconcile(ctx, vm.sess.UserID())
	if err != nil && !errors.Is(err, reconcile.ErrAlreadySynced) {
		// the merge pass may still have completed; only the refetch failed
		vm.log.Warn().Err(err).Msg("guest cart reconciliation")
	}
	if vm.merger.State() == reconcile.StateSynced {
		vm.sess.MarkSynced()
	}
}

// Logout returns to an anonymous session and re-arms reconciliation.
func (vm *ViewModel) Logout() {
	vm.sess.Logout()
	vm.merger.Reset()
	vm.active = cart.Cart{}
	vm.prices = make(map[priceKey]float64)
}

// Refresh reloads the active cart. A missing server cart is the empty state,
// not an error; a network failure leaves the prior snapshot in place and is
// returned for the caller to surface.
func (vm *ViewModel) Refresh(ctx context.Context) error {
	if !vm.sess.Authenticated() {
		vm.active = vm.guest.Load()
		vm.resolvePrices(ctx)
		return nil
	}

	c, err := vm.carts.Fetch(ctx, vm.sess.UserID())
	if err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			vm.active = cart.Cart{}
			return nil
		}
		return fmt.Errorf("fetch cart: %w", err)
	}
	vm.active = c
	return nil
}

// AddItem adds quantity units of a merchant's product to the active cart.
func (vm *ViewModel) AddItem(ctx context.Context, productID, merchantID string, quantity int) error {
	if err := cart.ValidateNewItem(productID, merchantID, quantity); err != nil {
		return err
	}

	if vm.sess.Authenticated() {
		// no price snapshot: the backend resolves the current price
		c, err := vm.carts.AddItem(ctx, vm.sess.UserID(), clients.AddItemRequest{
			ProductID:  productID,
			MerchantID: merchantID,
			Quantity:   quantity,
		})
		if err != nil {
			return fmt.Errorf("add item: %w", err)
		}
		vm.active = c
		return nil
	}

	c := guestcart.AddItem(vm.guest.Load(), guestcart.NewItem{
		ProductID:  productID,
		MerchantID: merchantID,
		Quantity:   quantity,
	})
	vm.guest.Save(c)
	vm.active = c
	vm.resolvePrices(ctx)
	return nil
}

// UpdateQuantity sets an item's quantity; zero or negative removes the item
// in both cart modes.
func (vm *ViewModel) UpdateQuantity(ctx context.Context, cartItemID string, quantity int) error {
	if quantity <= 0 {
		return vm.RemoveItem(ctx, cartItemID)
	}

	if vm.sess.Authenticated() {
		c, err := vm.carts.UpdateItem(ctx, vm.sess.UserID(), cartItemID, quantity)
		if err != nil {
			if errors.Is(err, clients.ErrItemNotFound) {
				// item already gone; resync the snapshot and move on
				return vm.Refresh(ctx)
			}
			return fmt.Errorf("update item: %w", err)
		}
		vm.active = c
		return nil
	}

	c := guestcart.UpdateQuantity(vm.guest.Load(), cartItemID, quantity)
	vm.guest.Save(c)
	vm.active = c
	return nil
}

// RemoveItem removes an item from the active cart. Removing an item the
// server no longer has counts as success: the end state matches intent.
func (vm *ViewModel) RemoveItem(ctx context.Context, cartItemID string) error {
	if vm.sess.Authenticated() {
		c, err := vm.carts.RemoveItem(ctx, vm.sess.UserID(), cartItemID)
		if err != nil {
			if errors.Is(err, clients.ErrItemNotFound) {
				return vm.Refresh(ctx)
			}
			return fmt.Errorf("remove item: %w", err)
		}
		vm.active = c
		return nil
	}

	c := guestcart.RemoveItem(vm.guest.Load(), cartItemID)
	vm.guest.Save(c)
	vm.active = c
	return nil
}

// Checkout submits the authenticated cart and clears the local snapshot on
// success.
func (vm *ViewModel) Checkout(ctx context.Context, shippingAddress string) (clients.CheckoutResult, error) {
	if !vm.sess.Authenticated() {
		return clients.CheckoutResult{}, &cart.ValidationError{Field: "session", Reason: "login required for checkout"}
	}
	if shippingAddress == "" {
		return clients.CheckoutResult{}, &cart.ValidationError{Field: "shippingAddress", Reason: "must not be empty"}
	}

	res, err := vm.checkout.Checkout(ctx, vm.sess.UserID(), shippingAddress)
	if err != nil {
		return clients.CheckoutResult{}, fmt.Errorf("checkout: %w", err)
	}
	vm.active = cart.Cart{}
	return res, nil
}

// ItemCount sums quantities across the active cart.
func (vm *ViewModel) ItemCount() int {
	count := 0
	for _, it := range vm.active.Items {
		count += it.Quantity
	}
	return count
}

// ItemPrice resolves one item's unit price: the server's snapshot when
// authenticated, the cached offer price for guest items, 0 while unresolved.
func (vm *ViewModel) ItemPrice(it cart.Item) float64 {
	if vm.sess.Authenticated() {
		return it.PriceSnapshot
	}
	return vm.prices[priceKey{productID: it.ProductID, merchantID: it.MerchantID}]
}

// CartTotal sums price times quantity across the active cart.
func (vm *ViewModel) CartTotal() float64 {
	total := 0.0
	for _, it := range vm.active.Items {
		total += vm.ItemPrice(it) * float64(it.Quantity)
	}
	return total
}

// resolvePrices fills the guest price cache for any (productId, merchantId)
// pair in the active cart that has none yet. Sequential on purpose: cart
// sizes are small and failure accounting stays simple. Lookup failures are
// logged and skipped; the item just shows 0 until a later attempt.
func (vm *ViewModel) resolvePrices(ctx context.Context) {
	for _, it := range vm.active.Items {
		key := priceKey{productID: it.ProductID, merchantID: it.MerchantID}
		if _, ok := vm.prices[key]; ok {
			continue
		}

		offers, err := vm.offers.ProductOffers(ctx, it.ProductID)
		if err != nil {
			vm.log.Warn().Err(err).Str("productId", it.ProductID).Msg("fetch offers for guest pricing")
			continue
		}
		if len(offers) == 0 {
			continue
		}

		// exact merchant match, else the first offer
		chosen := offers[0]
		for _, o := range offers {
			if o.MerchantID == it.MerchantID {
				chosen = o
				break
			}
		}
		vm.prices[key] = pricing.ExtractPrice(chosen.Raw)
	}
}

// ClearLocal drops local cart state: the guest cart file when anonymous, and
// the in-memory snapshot either way. The server cart is untouched.
func (vm *ViewModel) ClearLocal() {
	if !vm.sess.Authenticated() {
		vm.guest.Clear()
	}
	vm.active = cart.Cart{}
	vm.prices = make(map[priceKey]float64)
}
