package repositories

import (
	"sync"
	"time"

	"marketplace/models"
)

// ProductRepository holds products and categories in memory, standing in
// for a real database.
type ProductRepository struct {
	mu         sync.RWMutex
	seq        int
	catSeq     int
	products   []*models.Product
	categories []*models.Category
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) GetAllCategories() []models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		result = append(result, *c)
	}
	return result
}

func (r *ProductRepository) GetCategoryByID(id int) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.ID == id {
			cat := *c
			return &cat, nil
		}
	}
	return nil, ErrProductNotFound
}

func (r *ProductRepository) CreateCategory(category *models.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.catSeq++
	category.ID = r.catSeq
	category.CreatedAt = time.Now()
	stored := *category
	r.categories = append(r.categories, &stored)
}

// GetAll returns every product in creation order.
func (r *ProductRepository) GetAll() []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, *p)
	}
	return result
}

func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			product := *p
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

func (r *ProductRepository) Create(product *models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	product.ID = r.seq
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	stored := *product
	r.products = append(r.products, &stored)
}

func (r *ProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == product.ID {
			product.UpdatedAt = time.Now()
			stored := *product
			r.products[i] = &stored
			return nil
		}
	}
	return ErrProductNotFound
}

// Delete removes the product outright. Cart lines referencing it are
// left dangling on purpose; enrichment renders them with a nil product.
func (r *ProductRepository) Delete(id int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			removed := *p
			r.products = append(r.products[:i], r.products[i+1:]...)
			return removed, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// AdjustStock decrements the product's stock by delta. It does not guard
// against going negative; callers validate first.
func (r *ProductRepository) AdjustStock(id, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.ID == id {
			p.Stock += delta
			p.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrProductNotFound
}
