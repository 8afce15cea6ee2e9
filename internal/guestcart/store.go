// Package guestcart persists the anonymous shopping cart in local state,
// with no network dependency. The store is the localStorage of the terminal
// storefront: one JSON file under a fixed name in the state directory.
package guestcart

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
)

// storageFile is the fixed storage key for the guest cart.
const storageFile = "guest_cart.json"

type Store struct {
	path string
	log  zerolog.Logger
}

func NewStore(stateDir string, log zerolog.Logger) *Store {
	return &Store{
		path: filepath.Join(stateDir, storageFile),
		log:  log.With().Str("component", "guestcart").Logger(),
	}
}

// Load reads the persisted guest cart. A missing file or undecodable content
// yields an empty cart; Load never fails.
func (s *Store) Load() cart.Cart {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("read guest cart")
		}
		return cart.Cart{}
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("decode guest cart, discarding")
		return cart.Cart{}
	}
	return c
}

// Save persists the cart. Write failures are logged and swallowed: losing a
// guest cart write is a best-effort no-op, never a crash.
func (s *Store) Save(c cart.Cart) {
	data, err := json.Marshal(c)
	if err != nil {
		s.log.Warn().Err(err).Msg("encode guest cart")
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("create state dir")
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("write guest cart")
	}
}

// Clear deletes the persisted entry. Idempotent.
func (s *Store) Clear() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Str("path", s.path).Msg("clear guest cart")
	}
}
