package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/config"
	"github.com/ordena/ordena/pkg/cache"
	"github.com/ordena/ordena/pkg/crypt"
)

// cartTTL matches the session lifetime so a cart never outlives the
// session that owns it.
const cartTTL = 2 * time.Hour

// CartStore persists carts keyed by the opaque session ID. A missing
// cart is not an error; Get returns an empty cart.
type CartStore interface {
	Get(sessionID string) (models.Cart, error)
	Put(sessionID string, cart models.Cart) error
	Clear(sessionID string) error
}

// NewCartStore builds the store selected by CART_DRIVER.
func NewCartStore() CartStore {
	switch config.CartDriver() {
	case "memory":
		return NewMemoryCartStore()
	case "encrypted":
		return &encryptedCartStore{}
	default:
		return &redisCartStore{}
	}
}

func cartKey(sessionID string) string { return "ordena:cart:" + sessionID }

// ------------------- Redis driver -------------------

type redisCartStore struct{}

// Get distinguishes a missing cart (empty cart, nil error) from a Redis
// outage, which must surface as an error so checkout does not mistake an
// unreachable backend for an empty cart.
func (s *redisCartStore) Get(sessionID string) (models.Cart, error) {
	var cart models.Cart
	if _, err := cache.Fetch(cartKey(sessionID), &cart); err != nil {
		return models.Cart{}, fmt.Errorf("cart: load: %w", err)
	}
	return cart, nil
}

func (s *redisCartStore) Put(sessionID string, cart models.Cart) error {
	return cache.Set(cartKey(sessionID), cart, cartTTL)
}

func (s *redisCartStore) Clear(sessionID string) error {
	return cache.Del(cartKey(sessionID))
}

// ------------------- Encrypted driver -------------------

// encryptedCartStore seals the cart JSON with AES-GCM before it reaches
// Redis, for deployments where the cache is shared infrastructure.
type encryptedCartStore struct{}

func (s *encryptedCartStore) Get(sessionID string) (models.Cart, error) {
	var blob string
	found, err := cache.Fetch(cartKey(sessionID), &blob)
	if err != nil {
		return models.Cart{}, fmt.Errorf("cart: load: %w", err)
	}
	if !found {
		return models.Cart{}, nil
	}

	var cart models.Cart
	if err := crypt.DecryptJSON(blob, &cart); err != nil {
		return models.Cart{}, fmt.Errorf("cart: decrypt: %w", err)
	}
	return cart, nil
}

func (s *encryptedCartStore) Put(sessionID string, cart models.Cart) error {
	blob, err := crypt.EncryptJSON(cart)
	if err != nil {
		return fmt.Errorf("cart: encrypt: %w", err)
	}
	return cache.Set(cartKey(sessionID), blob, cartTTL)
}

func (s *encryptedCartStore) Clear(sessionID string) error {
	return cache.Del(cartKey(sessionID))
}

// ------------------- Memory driver -------------------

// MemoryCartStore keeps carts in process memory. Used in tests and when
// running without Redis.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]models.Cart
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: map[string]models.Cart{}}
}

func (s *MemoryCartStore) Get(sessionID string) (models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.carts[sessionID], nil
}

func (s *MemoryCartStore) Put(sessionID string, cart models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = cart
	return nil
}

func (s *MemoryCartStore) Clear(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
