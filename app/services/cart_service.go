package services

import (
	"errors"
	"fmt"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/app/repositories"
	"github.com/ordena/ordena/config"
	"gorm.io/gorm"
)

// CartView is the cart plus the totals the storefront shows next to it.
type CartView struct {
	Lines    []models.CartLine `json:"lines"`
	Subtotal float64           `json:"subtotal"`
	Tax      float64           `json:"tax"`
	Total    float64           `json:"total"`
}

// CartService mediates between the cart store and the product catalog.
// Prices and names are snapshotted from the catalog when a line is added.
type CartService struct {
	products *repositories.ProductRepository
	store    CartStore
}

func NewCartService(store CartStore) *CartService {
	return &CartService{
		products: repositories.NewProductRepository(),
		store:    store,
	}
}

// View returns the cart with subtotal, tax and total.
func (s *CartService) View(sessionID string) (CartView, error) {
	cart, err := s.store.Get(sessionID)
	if err != nil {
		return CartView{}, fmt.Errorf("cart: load: %w", err)
	}
	return s.view(cart), nil
}

// Add puts qty of a product into the cart, merging with an existing line.
// Unknown or inactive products are rejected with ErrNotFound.
func (s *CartService) Add(sessionID string, productID uint, qty int) (CartView, error) {
	product, err := s.products.FindByID(productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CartView{}, ErrNotFound
	}
	if err != nil {
		return CartView{}, fmt.Errorf("cart: load product %d: %w", productID, err)
	}
	if !product.Active {
		return CartView{}, ErrNotFound
	}

	cart, err := s.store.Get(sessionID)
	if err != nil {
		return CartView{}, fmt.Errorf("cart: load: %w", err)
	}

	cart.AddOrMerge(product.ID, product.Name, product.Price, qty)
	if err := s.store.Put(sessionID, cart); err != nil {
		return CartView{}, fmt.Errorf("cart: save: %w", err)
	}
	return s.view(cart), nil
}

// UpdateQuantity replaces a line's quantity; qty below 1 removes the line.
// Returns ErrNotFound when the cart has no line for productID.
func (s *CartService) UpdateQuantity(sessionID string, productID uint, qty int) (CartView, error) {
	cart, err := s.store.Get(sessionID)
	if err != nil {
		return CartView{}, fmt.Errorf("cart: load: %w", err)
	}

	if !cart.SetQuantity(productID, qty) {
		return CartView{}, ErrNotFound
	}
	if err := s.store.Put(sessionID, cart); err != nil {
		return CartView{}, fmt.Errorf("cart: save: %w", err)
	}
	return s.view(cart), nil
}

// Remove deletes a line from the cart.
func (s *CartService) Remove(sessionID string, productID uint) (CartView, error) {
	return s.UpdateQuantity(sessionID, productID, 0)
}

// Clear empties the cart.
func (s *CartService) Clear(sessionID string) error {
	if err := s.store.Clear(sessionID); err != nil {
		return fmt.Errorf("cart: clear: %w", err)
	}
	return nil
}

func (s *CartService) view(cart models.Cart) CartView {
	subtotal := cart.Subtotal()
	tax := subtotal * config.TaxRate()
	lines := cart.Lines
	if lines == nil {
		lines = []models.CartLine{}
	}
	return CartView{
		Lines:    lines,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}
