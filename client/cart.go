package client

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"marketplace/models"
)

// CartState is the single source of truth for the user's cart on the
// client side. When a token is present every mutation goes to the
// server and the response replaces the local state wholesale; without
// a token mutations are applied locally with the same totals math.
//
// All operations serialize behind one mutex, so two overlapping
// mutations can never leave the state reflecting a stale response.
type CartState struct {
	mu      sync.Mutex
	api     *API
	storage Storage
	cart    *models.Cart
}

// NewCartState creates a CartState persisting through storage.
func NewCartState(api *API, storage Storage) *CartState {
	return &CartState{
		api:     api,
		storage: storage,
		cart:    emptyCart(),
	}
}

func emptyCart() *models.Cart {
	return &models.Cart{Items: []models.CartLine{}}
}

// Load initializes the state. Authenticated clients fetch the server
// cart; on failure, and for anonymous clients, the persisted cart is
// used. A corrupt persisted blob resets to an empty cart.
func (s *CartState) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.api.authenticated() {
		cart, err := s.api.GetCart(ctx)
		if err == nil {
			return s.replace(cart)
		}
		log.Printf("Failed to load cart from server: %v", err)
	}
	return s.loadLocal()
}

func (s *CartState) loadLocal() error {
	cart, err := s.storage.Load()
	if errors.Is(err, ErrCorrupt) {
		log.Printf("Discarding corrupt saved cart: %v", err)
		return s.replace(emptyCart())
	}
	if err != nil {
		return err
	}
	if cart == nil {
		return s.replace(emptyCart())
	}
	if cart.Items == nil {
		cart.Items = []models.CartLine{}
	}
	s.cart = cart
	return nil
}

// replace persists cart and installs it as the current state. The
// displayed state only changes once the save succeeds.
func (s *CartState) replace(cart *models.Cart) error {
	if err := s.storage.Save(cart); err != nil {
		return err
	}
	s.cart = cart
	return nil
}

// Cart returns a copy of the current cart.
func (s *CartState) Cart() models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := *s.cart
	out.Items = append([]models.CartLine(nil), s.cart.Items...)
	return out
}

// ItemCount returns the total quantity across all lines.
func (s *CartState) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount
}

// Total returns the current cart total.
func (s *CartState) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total
}

// AddToCart adds quantity units of a product. Quantities below one
// default to one. A failed call leaves the displayed state untouched.
func (s *CartState) AddToCart(ctx context.Context, productID, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.api.authenticated() {
		cart, err := s.api.AddToCart(ctx, productID, quantity)
		if err != nil {
			return err
		}
		return s.replace(cart)
	}

	// Anonymous: snapshot the product so the line can be displayed and
	// priced without a server cart.
	product, err := s.api.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	next := s.localCopy()
	merged := false
	for i := range next.Items {
		if next.Items[i].ProductID == productID {
			next.Items[i].Quantity += quantity
			next.Items[i].Product = models.Snapshot(product)
			merged = true
			break
		}
	}
	if !merged {
		next.Items = append(next.Items, models.CartLine{
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now(),
			Product:   models.Snapshot(product),
		})
	}
	next.Recalculate()
	return s.replace(next)
}

// UpdateQuantity sets the absolute quantity of a line. A quantity of
// zero or less removes the line instead.
func (s *CartState) UpdateQuantity(ctx context.Context, productID, quantity int) error {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.api.authenticated() {
		cart, err := s.api.UpdateCartItem(ctx, productID, quantity)
		if err != nil {
			return err
		}
		return s.replace(cart)
	}

	next := s.localCopy()
	for i := range next.Items {
		if next.Items[i].ProductID == productID {
			next.Items[i].Quantity = quantity
		}
	}
	next.Recalculate()
	return s.replace(next)
}

// RemoveFromCart drops a product's line from the cart.
func (s *CartState) RemoveFromCart(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.api.authenticated() {
		cart, err := s.api.RemoveFromCart(ctx, productID)
		if err != nil {
			return err
		}
		return s.replace(cart)
	}

	next := s.localCopy()
	kept := next.Items[:0]
	for _, line := range next.Items {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	next.Items = kept
	next.Recalculate()
	return s.replace(next)
}

// ClearCart empties the cart, server-side first when authenticated.
func (s *CartState) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.api.authenticated() {
		if err := s.api.ClearCart(ctx); err != nil {
			return err
		}
	}
	return s.replace(emptyCart())
}

// SyncWithServer refetches the server cart and replaces the local
// state. It is a no-op for anonymous clients.
func (s *CartState) SyncWithServer(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.api.authenticated() {
		return nil
	}
	cart, err := s.api.GetCart(ctx)
	if err != nil {
		return err
	}
	return s.replace(cart)
}

// localCopy clones the current cart for a local mutation so a failed
// save never corrupts the displayed state.
func (s *CartState) localCopy() *models.Cart {
	next := *s.cart
	next.Items = append([]models.CartLine(nil), s.cart.Items...)
	return &next
}
