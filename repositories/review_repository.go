package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"marketplace/models"
)

type ReviewRepository struct {
	mu      sync.RWMutex
	reviews []*models.Review
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

func (r *ReviewRepository) Create(review *models.Review) models.Review {
	r.mu.Lock()
	defer r.mu.Unlock()

	review.ID = uuid.New().String()
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now
	stored := *review
	r.reviews = append(r.reviews, &stored)
	return stored
}

func (r *ReviewRepository) GetByID(id string) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rev := range r.reviews {
		if rev.ID == id {
			review := *rev
			return &review, nil
		}
	}
	return nil, ErrReviewNotFound
}

func (r *ReviewRepository) GetAll() []models.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.copyFiltered(func(*models.Review) bool { return true })
}

func (r *ReviewRepository) GetByProduct(productID int) []models.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.copyFiltered(func(rev *models.Review) bool { return rev.ProductID == productID })
}

func (r *ReviewRepository) GetByUser(userID int) []models.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.copyFiltered(func(rev *models.Review) bool { return rev.UserID == userID })
}

func (r *ReviewRepository) copyFiltered(keep func(*models.Review) bool) []models.Review {
	result := []models.Review{}
	for _, rev := range r.reviews {
		if keep(rev) {
			result = append(result, *rev)
		}
	}
	return result
}

func (r *ReviewRepository) Update(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rev := range r.reviews {
		if rev.ID == review.ID {
			review.UpdatedAt = time.Now()
			stored := *review
			r.reviews[i] = &stored
			return nil
		}
	}
	return ErrReviewNotFound
}

func (r *ReviewRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rev := range r.reviews {
		if rev.ID == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return ErrReviewNotFound
}
