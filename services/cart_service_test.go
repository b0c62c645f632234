package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/models"
	"marketplace/repositories"
)

func setupCartService(t *testing.T) (*CartService, *repositories.ProductRepository) {
	t.Helper()

	productRepo := repositories.NewProductRepository()
	cartRepo := repositories.NewCartRepository()
	return NewCartService(cartRepo, productRepo), productRepo
}

func addProduct(t *testing.T, repo *repositories.ProductRepository, name string, price float64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Images:      []string{"https://example.com/" + name + ".jpg"},
		Stock:       stock,
	}
	repo.Create(product)
	return product
}

func TestAddToCartNewLine(t *testing.T) {
	svc, products := setupCartService(t)
	p := addProduct(t, products, "mug", 9.99, 10)

	cart, err := svc.AddToCart(1, p.ID, 2)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, p.ID, cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, "mug", cart.Items[0].Product.Name)
	assert.Equal(t, 19.98, cart.Total)
	assert.Equal(t, 2, cart.ItemCount)
}

func TestAddToCartDefaultsQuantityToOne(t *testing.T) {
	svc, products := setupCartService(t)
	p := addProduct(t, products, "mug", 5, 10)

	cart, err := svc.AddToCart(1, p.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	svc, _ := setupCartService(t)

	_, err := svc.AddToCart(1, 42, 1)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestAddToCartStockCoversCartPlusRequest(t *testing.T) {
	svc, products := setupCartService(t)
	p := addProduct(t, products, "mug", 10, 5)

	_, err := svc.AddToCart(1, p.ID, 3)
	require.NoError(t, err)

	// 3 already held, 3 more would need 6 of 5.
	_, err = svc.AddToCart(1, p.ID, 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// 2 more exactly exhausts stock.
	cart, err := svc.AddToCart(1, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestUpdateQuantityIsAbsolute(t *testing.T) {
	svc, products := setupCartService(t)
	p := addProduct(t, products, "mug", 10, 5)

	_, err := svc.AddToCart(1, p.ID, 3)
	require.NoError(t, err)

	// The absolute check ignores the current quantity: 5 of 5 is fine.
	cart, err := svc.UpdateQuantity(1, p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	_, err = svc.UpdateQuantity(1, p.ID, 6)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestUpdateQuantityRejectsNonPositive(t *testing.T) {
	svc, products := setupCartService(t)
	p := addProduct(t, products, "mug", 10, 5)

	_, err := svc.AddToCart(1, p.ID, 1)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(1, p.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = svc.UpdateQuantity(1, p.ID, -2)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	// The line is untouched.
	cart := svc.GetCart(1)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestUpdateQuantityChecksProductBeforeLine(t *testing.T) {
	svc, _ := setupCartService(t)

	_, err := svc.UpdateQuantity(1, 42, 2)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	svc, products := setupCartService(t)
	p := addProduct(t, products, "mug", 10, 5)

	_, err := svc.UpdateQuantity(1, p.ID, 2)
	assert.ErrorIs(t, err, repositories.ErrCartItemNotFound)
}

func TestRemoveFromCart(t *testing.T) {
	svc, products := setupCartService(t)
	p1 := addProduct(t, products, "mug", 10, 5)
	p2 := addProduct(t, products, "plate", 4, 5)

	_, err := svc.AddToCart(1, p1.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(1, p2.ID, 2)
	require.NoError(t, err)

	cart, err := svc.RemoveFromCart(1, p1.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, p2.ID, cart.Items[0].ProductID)
	assert.Equal(t, 8.0, cart.Total)

	_, err = svc.RemoveFromCart(1, p1.ID)
	assert.ErrorIs(t, err, repositories.ErrCartItemNotFound)
}

func TestClearCart(t *testing.T) {
	svc, products := setupCartService(t)
	p := addProduct(t, products, "mug", 10, 5)

	_, err := svc.AddToCart(1, p.ID, 2)
	require.NoError(t, err)

	cart := svc.ClearCart(1)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
	assert.Zero(t, cart.ItemCount)

	// Clearing an empty cart stays empty.
	cart = svc.ClearCart(1)
	assert.Empty(t, cart.Items)
}

func TestDeletedProductLineEnrichesToNil(t *testing.T) {
	svc, products := setupCartService(t)
	p1 := addProduct(t, products, "mug", 10, 5)
	p2 := addProduct(t, products, "plate", 4, 5)

	_, err := svc.AddToCart(1, p1.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(1, p2.ID, 3)
	require.NoError(t, err)

	_, err = products.Delete(p1.ID)
	require.NoError(t, err)

	cart := svc.GetCart(1)
	require.Len(t, cart.Items, 2, "the dangling line survives")
	assert.Nil(t, cart.Items[0].Product)
	require.NotNil(t, cart.Items[1].Product)

	// Null lines count toward itemCount but not total.
	assert.Equal(t, 5, cart.ItemCount)
	assert.Equal(t, 12.0, cart.Total)
}

func TestCartTotalIsRounded(t *testing.T) {
	svc, products := setupCartService(t)
	p := addProduct(t, products, "gum", 0.1, 10)

	cart, err := svc.AddToCart(1, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.3, cart.Total)
}

func TestSnapshotFallsBackToPlaceholderImage(t *testing.T) {
	svc, products := setupCartService(t)

	product := &models.Product{Name: "bare", Description: "no images", Price: 1, Stock: 1}
	products.Create(product)

	cart, err := svc.AddToCart(1, product.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, models.PlaceholderImage, cart.Items[0].Product.Image)
}
