package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"marketplace/models"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders []*models.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) Create(order *models.Order) models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = uuid.New().String()
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	stored := *order
	r.orders = append(r.orders, &stored)
	return stored
}

func (r *OrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			order := *o
			return &order, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (r *OrderRepository) GetAll() []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		result = append(result, *o)
	}
	return result
}

func (r *OrderRepository) GetByUser(userID int) []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []models.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	return result
}

func (r *OrderRepository) UpdateStatus(id, status string) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.ID == id {
			o.Status = status
			o.UpdatedAt = time.Now()
			return *o, nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}
