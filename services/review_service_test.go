package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/models"
	"marketplace/repositories"
)

type reviewFixture struct {
	svc       *ReviewService
	products  *repositories.ProductRepository
	orders    *repositories.OrderRepository
	productID int
}

func setupReviewService(t *testing.T) *reviewFixture {
	t.Helper()

	productRepo := repositories.NewProductRepository()
	userRepo := repositories.NewUserRepository()
	reviewRepo := repositories.NewReviewRepository()
	orderRepo := repositories.NewOrderRepository()

	productSvc := NewProductService(productRepo, userRepo)
	svc := NewReviewService(reviewRepo, productRepo, orderRepo, productSvc)

	product := &models.Product{Name: "mug", Description: "a mug", Price: 10, Stock: 5}
	productRepo.Create(product)

	return &reviewFixture{
		svc:       svc,
		products:  productRepo,
		orders:    orderRepo,
		productID: product.ID,
	}
}

func TestCreateReviewRecomputesRating(t *testing.T) {
	f := setupReviewService(t)

	_, err := f.svc.CreateReview(1, models.CreateReviewRequest{
		ProductID: f.productID, Rating: 5, Title: "great",
	})
	require.NoError(t, err)
	_, err = f.svc.CreateReview(2, models.CreateReviewRequest{
		ProductID: f.productID, Rating: 4, Title: "good",
	})
	require.NoError(t, err)

	product, err := f.products.GetByID(f.productID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, product.Rating)
	assert.Equal(t, 2, product.ReviewCount)
}

func TestCreateReviewRoundsToOneDecimal(t *testing.T) {
	f := setupReviewService(t)

	for userID, rating := range map[int]int{1: 5, 2: 4, 3: 4} {
		_, err := f.svc.CreateReview(userID, models.CreateReviewRequest{
			ProductID: f.productID, Rating: rating, Title: "review",
		})
		require.NoError(t, err)
	}

	product, err := f.products.GetByID(f.productID)
	require.NoError(t, err)
	// 13/3 = 4.333..., rounded to one decimal.
	assert.Equal(t, 4.3, product.Rating)
}

func TestCreateReviewOnePerUserPerProduct(t *testing.T) {
	f := setupReviewService(t)

	_, err := f.svc.CreateReview(1, models.CreateReviewRequest{
		ProductID: f.productID, Rating: 5, Title: "great",
	})
	require.NoError(t, err)

	_, err = f.svc.CreateReview(1, models.CreateReviewRequest{
		ProductID: f.productID, Rating: 1, Title: "changed my mind",
	})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestCreateReviewUnknownProduct(t *testing.T) {
	f := setupReviewService(t)

	_, err := f.svc.CreateReview(1, models.CreateReviewRequest{
		ProductID: 42, Rating: 5, Title: "great",
	})
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestCreateReviewVerifiedPurchase(t *testing.T) {
	f := setupReviewService(t)

	f.orders.Create(&models.Order{
		UserID: 1,
		Status: models.OrderStatusDelivered,
		Items:  []models.OrderItem{{ProductID: f.productID, Quantity: 1, Price: 10}},
	})
	f.orders.Create(&models.Order{
		UserID: 2,
		Status: models.OrderStatusPending,
		Items:  []models.OrderItem{{ProductID: f.productID, Quantity: 1, Price: 10}},
	})

	verified, err := f.svc.CreateReview(1, models.CreateReviewRequest{
		ProductID: f.productID, Rating: 5, Title: "delivered",
	})
	require.NoError(t, err)
	assert.True(t, verified.VerifiedPurchase)

	// A pending order does not count as a purchase yet.
	unverified, err := f.svc.CreateReview(2, models.CreateReviewRequest{
		ProductID: f.productID, Rating: 4, Title: "still waiting",
	})
	require.NoError(t, err)
	assert.False(t, unverified.VerifiedPurchase)
}

func TestUpdateReviewOwnerOnly(t *testing.T) {
	f := setupReviewService(t)

	created, err := f.svc.CreateReview(1, models.CreateReviewRequest{
		ProductID: f.productID, Rating: 5, Title: "great",
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateReview(2, created.ID, models.UpdateReviewRequest{Rating: 1})
	assert.ErrorIs(t, err, ErrNotReviewOwner)

	updated, err := f.svc.UpdateReview(1, created.ID, models.UpdateReviewRequest{Rating: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)

	product, err := f.products.GetByID(f.productID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, product.Rating)
}

func TestDeleteReviewRecomputesToZero(t *testing.T) {
	f := setupReviewService(t)

	created, err := f.svc.CreateReview(1, models.CreateReviewRequest{
		ProductID: f.productID, Rating: 5, Title: "great",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteReview(1, models.RoleBuyer, created.ID))

	product, err := f.products.GetByID(f.productID)
	require.NoError(t, err)
	assert.Zero(t, product.Rating)
	assert.Zero(t, product.ReviewCount)
}

func TestDeleteReviewAdminOverride(t *testing.T) {
	f := setupReviewService(t)

	created, err := f.svc.CreateReview(1, models.CreateReviewRequest{
		ProductID: f.productID, Rating: 5, Title: "great",
	})
	require.NoError(t, err)

	err = f.svc.DeleteReview(2, models.RoleBuyer, created.ID)
	assert.ErrorIs(t, err, ErrNotReviewOwner)

	require.NoError(t, f.svc.DeleteReview(2, models.RoleAdmin, created.ID))
}
