package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"marketplace/models"
)

// CartRepository is the canonical owner of cart line items. It knows
// nothing about products or stock; those rules live in the cart service.
//
// A single mutex serializes every operation so no two mutations to the
// same user's cart can interleave.
type CartRepository struct {
	mu    sync.Mutex
	items []*models.CartItem
}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// Get returns the user's lines in insertion order.
func (r *CartRepository) Get(userID int) []models.CartItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []models.CartItem{}
	for _, item := range r.items {
		if item.UserID == userID {
			result = append(result, *item)
		}
	}
	return result
}

// Add merges into an existing line for (userID, productID), incrementing
// its quantity, or inserts a new line with a fresh ID and timestamp.
// A quantity below 1 is treated as 1.
func (r *CartRepository) Add(userID, productID, quantity int) models.CartItem {
	if quantity < 1 {
		quantity = 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			item.Quantity += quantity
			return *item
		}
	}

	item := &models.CartItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}
	r.items = append(r.items, item)
	return *item
}

// Update sets the line's quantity to the given absolute value. Callers
// must route quantity <= 0 to Remove instead; a stored line never has a
// quantity below 1.
func (r *CartRepository) Update(userID, productID, quantity int) (models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			item.Quantity = quantity
			return *item, nil
		}
	}
	return models.CartItem{}, ErrCartItemNotFound
}

// Remove deletes the line if present and returns it.
func (r *CartRepository) Remove(userID, productID int) (models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			removed := *item
			r.items = append(r.items[:i], r.items[i+1:]...)
			return removed, nil
		}
	}
	return models.CartItem{}, ErrCartItemNotFound
}

// Clear deletes every line for the user. It is a no-op on an empty cart.
func (r *CartRepository) Clear(userID int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, item := range r.items {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	r.items = kept
}
