package services

import (
	"errors"
	"math"

	"marketplace/models"
	"marketplace/repositories"
)

var (
	ErrAlreadyReviewed = errors.New("you have already reviewed this product")
	ErrNotReviewOwner  = errors.New("you do not have permission to modify this review")
)

type ReviewService struct {
	reviewRepo     *repositories.ReviewRepository
	productRepo    *repositories.ProductRepository
	orderRepo      *repositories.OrderRepository
	productService *ProductService
}

func NewReviewService(reviewRepo *repositories.ReviewRepository, productRepo *repositories.ProductRepository,
	orderRepo *repositories.OrderRepository, productService *ProductService) *ReviewService {
	return &ReviewService{
		reviewRepo:     reviewRepo,
		productRepo:    productRepo,
		orderRepo:      orderRepo,
		productService: productService,
	}
}

func (s *ReviewService) GetReviews(productID, userID int) []models.Review {
	if productID > 0 {
		return s.reviewRepo.GetByProduct(productID)
	}
	if userID > 0 {
		return s.reviewRepo.GetByUser(userID)
	}
	return s.reviewRepo.GetAll()
}

func (s *ReviewService) GetReviewByID(id string) (*models.Review, error) {
	return s.reviewRepo.GetByID(id)
}

// CreateReview enforces one review per user per product and flags
// verified purchases: the user must have a delivered order containing
// the product.
func (s *ReviewService) CreateReview(userID int, req models.CreateReviewRequest) (*models.Review, error) {
	if _, err := s.productRepo.GetByID(req.ProductID); err != nil {
		return nil, err
	}

	for _, existing := range s.reviewRepo.GetByProduct(req.ProductID) {
		if existing.UserID == userID {
			return nil, ErrAlreadyReviewed
		}
	}

	review := &models.Review{
		ProductID:        req.ProductID,
		UserID:           userID,
		Rating:           req.Rating,
		Title:            req.Title,
		Comment:          req.Comment,
		VerifiedPurchase: s.hasPurchased(userID, req.ProductID),
	}

	created := s.reviewRepo.Create(review)
	s.recomputeRating(req.ProductID)
	return &created, nil
}

func (s *ReviewService) UpdateReview(userID int, id string, req models.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrNotReviewOwner
	}

	if req.Rating > 0 {
		review.Rating = req.Rating
	}
	if req.Title != "" {
		review.Title = req.Title
	}
	if req.Comment != "" {
		review.Comment = req.Comment
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	if req.Rating > 0 {
		s.recomputeRating(review.ProductID)
	}
	return review, nil
}

func (s *ReviewService) DeleteReview(userID int, role, id string) error {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return err
	}
	if review.UserID != userID && role != models.RoleAdmin {
		return ErrNotReviewOwner
	}

	if err := s.reviewRepo.Delete(id); err != nil {
		return err
	}
	s.recomputeRating(review.ProductID)
	return nil
}

func (s *ReviewService) hasPurchased(userID, productID int) bool {
	for _, order := range s.orderRepo.GetByUser(userID) {
		if order.Status != models.OrderStatusDelivered {
			continue
		}
		for _, item := range order.Items {
			if item.ProductID == productID {
				return true
			}
		}
	}
	return false
}

// recomputeRating rederives the product's average rating (one decimal)
// and review count from all remaining reviews.
func (s *ReviewService) recomputeRating(productID int) {
	reviews := s.reviewRepo.GetByProduct(productID)

	if len(reviews) == 0 {
		s.productService.UpdateRating(productID, 0, 0)
		return
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	average := float64(sum) / float64(len(reviews))
	rounded := math.Round(average*10) / 10

	s.productService.UpdateRating(productID, rounded, len(reviews))
}
