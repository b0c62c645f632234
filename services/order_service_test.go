package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/models"
	"marketplace/repositories"
)

type orderFixture struct {
	svc      *OrderService
	cartSvc  *CartService
	products *repositories.ProductRepository
	carts    *repositories.CartRepository
}

func setupOrderService(t *testing.T) *orderFixture {
	t.Helper()

	orderRepo := repositories.NewOrderRepository()
	cartRepo := repositories.NewCartRepository()
	productRepo := repositories.NewProductRepository()
	userRepo := repositories.NewUserRepository()

	require.NoError(t, userRepo.Create(&models.User{
		Email:     "buyer@example.com",
		FirstName: "Bea",
		LastName:  "Buyer",
		Role:      models.RoleBuyer,
	}))

	return &orderFixture{
		svc:      NewOrderService(orderRepo, cartRepo, productRepo, userRepo, nil),
		cartSvc:  NewCartService(cartRepo, productRepo),
		products: productRepo,
		carts:    cartRepo,
	}
}

func TestCheckoutSnapshotsCartAndDecrementsStock(t *testing.T) {
	f := setupOrderService(t)
	mug := addProduct(t, f.products, "mug", 9.99, 5)
	plate := addProduct(t, f.products, "plate", 4.5, 10)

	_, err := f.cartSvc.AddToCart(1, mug.ID, 2)
	require.NoError(t, err)
	_, err = f.cartSvc.AddToCart(1, plate.ID, 4)
	require.NoError(t, err)

	order, err := f.svc.Checkout(1, models.CreateOrderRequest{PaymentMethod: "card"})
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "card", order.PaymentMethod)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "mug", order.Items[0].ProductName)
	assert.Equal(t, 9.99, order.Items[0].Price)
	assert.Equal(t, 37.98, order.Total)

	// Stock is decremented and the cart is cleared.
	left, err := f.products.GetByID(mug.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, left.Stock)
	assert.Empty(t, f.carts.Get(1))
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := setupOrderService(t)

	_, err := f.svc.Checkout(1, models.CreateOrderRequest{PaymentMethod: "card"})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	f := setupOrderService(t)
	mug := addProduct(t, f.products, "mug", 9.99, 5)

	_, err := f.cartSvc.AddToCart(1, mug.ID, 5)
	require.NoError(t, err)

	// Stock dropped after the item went into the cart.
	p, err := f.products.GetByID(mug.ID)
	require.NoError(t, err)
	p.Stock = 2
	require.NoError(t, f.products.Update(p))

	_, err = f.svc.Checkout(1, models.CreateOrderRequest{PaymentMethod: "card"})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing was decremented and the cart is intact.
	p, err = f.products.GetByID(mug.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)
	assert.Len(t, f.carts.Get(1), 1)
}

func TestCheckoutSkipsDeletedProductLines(t *testing.T) {
	f := setupOrderService(t)
	mug := addProduct(t, f.products, "mug", 10, 5)
	plate := addProduct(t, f.products, "plate", 4, 10)

	_, err := f.cartSvc.AddToCart(1, mug.ID, 1)
	require.NoError(t, err)
	_, err = f.cartSvc.AddToCart(1, plate.ID, 2)
	require.NoError(t, err)

	_, err = f.products.Delete(mug.ID)
	require.NoError(t, err)

	order, err := f.svc.Checkout(1, models.CreateOrderRequest{PaymentMethod: "card"})
	require.NoError(t, err)
	require.Len(t, order.Items, 1, "the deleted product cannot be fulfilled")
	assert.Equal(t, plate.ID, order.Items[0].ProductID)
	assert.Equal(t, 8.0, order.Total)
}

func TestCheckoutOnlyDeletedProductLines(t *testing.T) {
	f := setupOrderService(t)
	mug := addProduct(t, f.products, "mug", 10, 5)

	_, err := f.cartSvc.AddToCart(1, mug.ID, 1)
	require.NoError(t, err)
	_, err = f.products.Delete(mug.ID)
	require.NoError(t, err)

	_, err = f.svc.Checkout(1, models.CreateOrderRequest{PaymentMethod: "card"})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestGetOrderOwnership(t *testing.T) {
	f := setupOrderService(t)
	mug := addProduct(t, f.products, "mug", 10, 5)

	_, err := f.cartSvc.AddToCart(1, mug.ID, 1)
	require.NoError(t, err)
	created, err := f.svc.Checkout(1, models.CreateOrderRequest{PaymentMethod: "card"})
	require.NoError(t, err)

	got, err := f.svc.GetOrder(1, models.RoleBuyer, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = f.svc.GetOrder(2, models.RoleBuyer, created.ID)
	assert.ErrorIs(t, err, ErrNotOrderOwner)

	_, err = f.svc.GetOrder(2, models.RoleAdmin, created.ID)
	assert.NoError(t, err, "admins can read any order")
}

func TestUpdateStatus(t *testing.T) {
	f := setupOrderService(t)
	mug := addProduct(t, f.products, "mug", 10, 5)

	_, err := f.cartSvc.AddToCart(1, mug.ID, 1)
	require.NoError(t, err)
	created, err := f.svc.Checkout(1, models.CreateOrderRequest{PaymentMethod: "card"})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(created.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	_, err = f.svc.UpdateStatus(created.ID, "teleported")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.svc.UpdateStatus("no-such-order", models.OrderStatusShipped)
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
}
