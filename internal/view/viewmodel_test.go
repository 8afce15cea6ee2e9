package view

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/guestcart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/reconcile"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/session"
)

type backendMock struct {
	FetchFunc      func(ctx context.Context, userID string) (cart.Cart, error)
	AddItemFunc    func(ctx context.Context, userID string, req clients.AddItemRequest) (cart.Cart, error)
	UpdateItemFunc func(ctx context.Context, userID, cartItemID string, quantity int) (cart.Cart, error)
	RemoveItemFunc func(ctx context.Context, userID, cartItemID string) (cart.Cart, error)

	addCalls []clients.AddItemRequest
}

func (m *backendMock) Fetch(ctx context.Context, userID string) (cart.Cart, error) {
	if m.FetchFunc == nil {
		return cart.Cart{}, nil
	}
	return m.FetchFunc(ctx, userID)
}

func (m *backendMock) AddItem(ctx context.Context, userID string, req clients.AddItemRequest) (cart.Cart, error) {
	m.addCalls = append(m.addCalls, req)
	if m.AddItemFunc == nil {
		return cart.Cart{}, nil
	}
	return m.AddItemFunc(ctx, userID, req)
}

func (m *backendMock) UpdateItem(ctx context.Context, userID, cartItemID string, quantity int) (cart.Cart, error) {
	if m.UpdateItemFunc == nil {
		return cart.Cart{}, nil
	}
	return m.UpdateItemFunc(ctx, userID, cartItemID, quantity)
}

func (m *backendMock) RemoveItem(ctx context.Context, userID, cartItemID string) (cart.Cart, error) {
	if m.RemoveItemFunc == nil {
		return cart.Cart{}, nil
	}
	return m.RemoveItemFunc(ctx, userID, cartItemID)
}

type offersMock struct {
	ProductOffersFunc func(ctx context.Context, productID string) ([]clients.Offer, error)
	calls             int
}

func (m *offersMock) ProductOffers(ctx context.Context, productID string) ([]clients.Offer, error) {
	m.calls++
	if m.ProductOffersFunc == nil {
		return nil, nil
	}
	return m.ProductOffersFunc(ctx, productID)
}

type checkoutMock struct {
	CheckoutFunc func(ctx context.Context, userID, shippingAddress string) (clients.CheckoutResult, error)
}

func (m *checkoutMock) Checkout(ctx context.Context, userID, shippingAddress string) (clients.CheckoutResult, error) {
	if m.CheckoutFunc == nil {
		return clients.CheckoutResult{}, nil
	}
	return m.CheckoutFunc(ctx, userID, shippingAddress)
}

func offer(merchantID, raw string) clients.Offer {
	return clients.Offer{MerchantID: merchantID, Raw: json.RawMessage(raw)}
}

func newVM(t *testing.T, backend *backendMock, offers *offersMock, checkout *checkoutMock) *ViewModel {
	t.Helper()
	dir := t.TempDir()
	store := guestcart.NewStore(dir, zerolog.Nop())
	sess := session.Open(dir, zerolog.Nop())
	merger := reconcile.New(store, backend, zerolog.Nop())
	return New(sess, store, backend, offers, checkout, merger, zerolog.Nop())
}

func TestGuestCartAggregates(t *testing.T) {
	offers := &offersMock{ProductOffersFunc: func(ctx context.Context, productID string) ([]clients.Offer, error) {
		switch productID {
		case "P1":
			return []clients.Offer{
				offer("OTHER", `{"merchantId":"OTHER","price":99}`),
				offer("M1", `{"merchantId":"M1","price":{"amount":19.99}}`),
			}, nil
		case "P2":
			// no exact merchant match: fall back to the first offer
			return []clients.Offer{offer("X", `{"merchantId":"X","priceCents":250}`)}, nil
		default:
			return nil, nil
		}
	}}
	vm := newVM(t, &backendMock{}, offers, &checkoutMock{})

	ctx := context.Background()
	require.NoError(t, vm.AddItem(ctx, "P1", "M1", 2))
	require.NoError(t, vm.AddItem(ctx, "P2", "M9", 1))

	assert.Equal(t, 3, vm.ItemCount())
	assert.InDelta(t, 19.99*2+2.5, vm.CartTotal(), 1e-9)
}

func TestGuestDuplicateAddMerges(t *testing.T) {
	vm := newVM(t, &backendMock{}, &offersMock{}, &checkoutMock{})

	ctx := context.Background()
	require.NoError(t, vm.AddItem(ctx, "P1", "M1", 2))
	require.NoError(t, vm.AddItem(ctx, "P1", "M1", 3))

	require.Len(t, vm.Cart().Items, 1)
	assert.Equal(t, 5, vm.Cart().Items[0].Quantity)
}

func TestGuestPriceCacheIsSessionScoped(t *testing.T) {
	offers := &offersMock{ProductOffersFunc: func(ctx context.Context, productID string) ([]clients.Offer, error) {
		return []clients.Offer{offer("M1", `{"merchantId":"M1","price":10}`)}, nil
	}}
	vm := newVM(t, &backendMock{}, offers, &checkoutMock{})

	ctx := context.Background()
	require.NoError(t, vm.AddItem(ctx, "P1", "M1", 1))
	require.NoError(t, vm.Refresh(ctx))
	require.NoError(t, vm.Refresh(ctx))

	assert.Equal(t, 1, offers.calls, "resolved pairs must not be re-fetched within a session")
}

func TestGuestUnresolvedPriceDefaultsToZero(t *testing.T) {
	offers := &offersMock{ProductOffersFunc: func(ctx context.Context, productID string) ([]clients.Offer, error) {
		return nil, &clients.NetworkError{Op: "offers", StatusCode: 503}
	}}
	vm := newVM(t, &backendMock{}, offers, &checkoutMock{})

	require.NoError(t, vm.AddItem(context.Background(), "P1", "M1", 2))
	assert.Equal(t, 2, vm.ItemCount())
	assert.Zero(t, vm.CartTotal())
}

func TestGuestUpdateQuantityZeroRemoves(t *testing.T) {
	vm := newVM(t, &backendMock{}, &offersMock{}, &checkoutMock{})

	ctx := context.Background()
	require.NoError(t, vm.AddItem(ctx, "P1", "M1", 2))
	id := vm.Cart().Items[0].CartItemID

	require.NoError(t, vm.UpdateQuantity(ctx, id, 0))
	assert.Empty(t, vm.Cart().Items)
}

func TestValidationRejectsBeforeNetwork(t *testing.T) {
	backend := &backendMock{AddItemFunc: func(ctx context.Context, userID string, req clients.AddItemRequest) (cart.Cart, error) {
		t.Fatal("no network call expected for invalid input")
		return cart.Cart{}, nil
	}}
	vm := newVM(t, backend, &offersMock{}, &checkoutMock{})

	var vErr *cart.ValidationError
	err := vm.AddItem(context.Background(), "P1", "M1", 0)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "quantity", vErr.Field)

	err = vm.AddItem(context.Background(), "", "M1", 1)
	assert.Error(t, err)
}

func TestLoginReconcilesGuestCart(t *testing.T) {
	server := cart.Cart{}
	backend := &backendMock{
		AddItemFunc: func(ctx context.Context, userID string, req clients.AddItemRequest) (cart.Cart, error) {
			server.Items = append(server.Items, cart.Item{
				CartItemID:    "srv-1",
				ProductID:     req.ProductID,
				MerchantID:    req.MerchantID,
				Quantity:      req.Quantity,
				PriceSnapshot: 19.99,
			})
			return server, nil
		},
		FetchFunc: func(ctx context.Context, userID string) (cart.Cart, error) {
			return server, nil
		},
	}
	vm := newVM(t, backend, &offersMock{}, &checkoutMock{})

	ctx := context.Background()
	require.NoError(t, vm.AddItem(ctx, "P1", "M1", 2))

	require.NoError(t, vm.Login(ctx, "u1"))

	require.Len(t, backend.addCalls, 1)
	assert.Equal(t, clients.AddItemRequest{ProductID: "P1", MerchantID: "M1", Quantity: 2}, backend.addCalls[0])

	assert.True(t, vm.Authenticated())
	require.Len(t, vm.Cart().Items, 1)
	assert.Equal(t, "srv-1", vm.Cart().Items[0].CartItemID)
	assert.InDelta(t, 39.98, vm.CartTotal(), 1e-9, "authenticated totals use the server snapshot")

	// a later resume in the same session must not merge again
	require.NoError(t, vm.Resume(ctx))
	assert.Len(t, backend.addCalls, 1)
}

func TestLoginWithEmptyGuestCartSkipsMerge(t *testing.T) {
	backend := &backendMock{FetchFunc: func(ctx context.Context, userID string) (cart.Cart, error) {
		return cart.Cart{Items: []cart.Item{{CartItemID: "1", ProductID: "P9", MerchantID: "M1", Quantity: 1, PriceSnapshot: 5}}}, nil
	}}
	vm := newVM(t, backend, &offersMock{}, &checkoutMock{})

	require.NoError(t, vm.Login(context.Background(), "u1"))
	assert.Empty(t, backend.addCalls)
	assert.Equal(t, 1, vm.ItemCount())
}

func TestLogoutReturnsToGuestCart(t *testing.T) {
	vm := newVM(t, &backendMock{}, &offersMock{}, &checkoutMock{})

	ctx := context.Background()
	require.NoError(t, vm.Login(ctx, "u1"))
	vm.Logout()

	assert.False(t, vm.Authenticated())
	assert.Zero(t, vm.ItemCount())

	// guest mutations work again and a fresh login merges them
	require.NoError(t, vm.AddItem(ctx, "P1", "M1", 1))
	assert.Equal(t, 1, vm.ItemCount())
}

func TestRefreshServerCartNotFound(t *testing.T) {
	backend := &backendMock{FetchFunc: func(ctx context.Context, userID string) (cart.Cart, error) {
		return cart.Cart{}, clients.ErrNotFound
	}}
	vm := newVM(t, backend, &offersMock{}, &checkoutMock{})

	ctx := context.Background()
	require.NoError(t, vm.Login(ctx, "u1"))
	require.NoError(t, vm.Refresh(ctx), "a missing cart is the empty state, not an error")
	assert.Zero(t, vm.ItemCount())
}

func TestRefreshNetworkErrorKeepsPriorState(t *testing.T) {
	healthy := true
	backend := &backendMock{FetchFunc: func(ctx context.Context, userID string) (cart.Cart, error) {
		if !healthy {
			return cart.Cart{}, &clients.NetworkError{Op: "cart", StatusCode: 500}
		}
		return cart.Cart{Items: []cart.Item{{CartItemID: "1", ProductID: "P1", MerchantID: "M1", Quantity: 2}}}, nil
	}}
	vm := newVM(t, backend, &offersMock{}, &checkoutMock{})

	ctx := context.Background()
	require.NoError(t, vm.Login(ctx, "u1"))
	require.Equal(t, 2, vm.ItemCount())

	healthy = false
	err := vm.Refresh(ctx)
	require.Error(t, err)
	assert.Equal(t, 2, vm.ItemCount(), "prior snapshot survives a transient failure")
}

func TestRemoveAlreadyRemovedItemIsSuccess(t *testing.T) {
	backend := &backendMock{
		RemoveItemFunc: func(ctx context.Context, userID, cartItemID string) (cart.Cart, error) {
			return cart.Cart{}, clients.ErrItemNotFound
		},
		FetchFunc: func(ctx context.Context, userID string) (cart.Cart, error) {
			return cart.Cart{}, nil
		},
	}
	vm := newVM(t, backend, &offersMock{}, &checkoutMock{})

	ctx := context.Background()
	require.NoError(t, vm.Login(ctx, "u1"))
	assert.NoError(t, vm.RemoveItem(ctx, "42"), "end state already matches intent")
}

func TestCheckout(t *testing.T) {
	t.Run("requires login", func(t *testing.T) {
		vm := newVM(t, &backendMock{}, &offersMock{}, &checkoutMock{})
		_, err := vm.Checkout(context.Background(), "Somewhere 1")

		var vErr *cart.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("clears cart on success", func(t *testing.T) {
		backend := &backendMock{FetchFunc: func(ctx context.Context, userID string) (cart.Cart, error) {
			return cart.Cart{Items: []cart.Item{{CartItemID: "1", ProductID: "P1", MerchantID: "M1", Quantity: 1, PriceSnapshot: 9}}}, nil
		}}
		checkout := &checkoutMock{CheckoutFunc: func(ctx context.Context, userID, shippingAddress string) (clients.CheckoutResult, error) {
			assert.Equal(t, "u1", userID)
			assert.Equal(t, "Somewhere 1", shippingAddress)
			return clients.CheckoutResult{OrderID: "o-1", Status: "CREATED"}, nil
		}}
		vm := newVM(t, backend, &offersMock{}, checkout)

		ctx := context.Background()
		require.NoError(t, vm.Login(ctx, "u1"))
		require.Equal(t, 1, vm.ItemCount())

		res, err := vm.Checkout(ctx, "Somewhere 1")
		require.NoError(t, err)
		assert.Equal(t, "o-1", res.OrderID)
		assert.Zero(t, vm.ItemCount())
	})
}

func TestClearLocalGuest(t *testing.T) {
	vm := newVM(t, &backendMock{}, &offersMock{}, &checkoutMock{})

	ctx := context.Background()
	require.NoError(t, vm.AddItem(ctx, "P1", "M1", 1))
	vm.ClearLocal()

	assert.Zero(t, vm.ItemCount())
	require.NoError(t, vm.Refresh(ctx))
	assert.Zero(t, vm.ItemCount(), "the persisted guest cart is gone too")
}
