package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/config"
	"marketplace/middleware"
	"marketplace/models"
	"marketplace/repositories"
	"marketplace/services"
	"marketplace/utils"
)

type cartTestEnv struct {
	router   *gin.Engine
	token    string
	products *repositories.ProductRepository
}

func setupCartRouter(t *testing.T) *cartTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: "1h",
	}

	productRepo := repositories.NewProductRepository()
	cartRepo := repositories.NewCartRepository()
	cartService := services.NewCartService(cartRepo, productRepo)
	ctrl := NewCartController(cartService)

	router := gin.New()
	cart := router.Group("/cart")
	cart.Use(middleware.AuthMiddleware())
	{
		cart.GET("", ctrl.GetCart)
		cart.POST("", ctrl.AddToCart)
		cart.PUT("/:productId", ctrl.UpdateCartItem)
		cart.DELETE("/:productId", ctrl.RemoveFromCart)
		cart.DELETE("", ctrl.ClearCart)
	}

	token, err := utils.GenerateToken(1, "buyer@example.com", models.RoleBuyer)
	require.NoError(t, err)

	return &cartTestEnv{router: router, token: token, products: productRepo}
}

func (e *cartTestEnv) seedProduct(price float64, stock int) *models.Product {
	product := &models.Product{
		Name:        "mug",
		Description: "a mug",
		Price:       price,
		Stock:       stock,
	}
	e.products.Create(product)
	return product
}

func (e *cartTestEnv) request(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeCartResponse(t *testing.T, w *httptest.ResponseRecorder) models.Cart {
	t.Helper()

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Cart models.Cart `json:"cart"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	return resp.Data.Cart
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	return resp
}

func TestCartRequiresAuth(t *testing.T) {
	env := setupCartRouter(t)

	w := env.request(t, http.MethodGet, "/cart", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetCartEmpty(t *testing.T) {
	env := setupCartRouter(t)

	w := env.request(t, http.MethodGet, "/cart", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	cart := decodeCartResponse(t, w)
	assert.Equal(t, 1, cart.UserID)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestAddToCartReturnsFullCart(t *testing.T) {
	env := setupCartRouter(t)
	p := env.seedProduct(9.99, 10)

	w := env.request(t, http.MethodPost, "/cart", models.AddToCartRequest{
		ProductID: p.ID,
		Quantity:  2,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	cart := decodeCartResponse(t, w)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, 19.98, cart.Total)
	assert.Equal(t, 2, cart.ItemCount)
}

func TestAddToCartValidation(t *testing.T) {
	env := setupCartRouter(t)

	// Missing productId fails binding.
	w := env.request(t, http.MethodPost, "/cart", gin.H{"quantity": 2}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "Invalid request body", resp.Message)
}

func TestAddToCartUnknownProductReturns404(t *testing.T) {
	env := setupCartRouter(t)

	w := env.request(t, http.MethodPost, "/cart", models.AddToCartRequest{ProductID: 42}, true)
	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "Product not found", resp.Message)
}

func TestAddToCartInsufficientStockReturns400(t *testing.T) {
	env := setupCartRouter(t)
	p := env.seedProduct(10, 5)

	w := env.request(t, http.MethodPost, "/cart", models.AddToCartRequest{
		ProductID: p.ID,
		Quantity:  3,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/cart", models.AddToCartRequest{
		ProductID: p.ID,
		Quantity:  3,
	}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "Insufficient stock", resp.Message)
}

func TestUpdateCartItem(t *testing.T) {
	env := setupCartRouter(t)
	p := env.seedProduct(10, 5)

	env.request(t, http.MethodPost, "/cart", models.AddToCartRequest{ProductID: p.ID, Quantity: 1}, true)

	w := env.request(t, http.MethodPut, "/cart/1", models.UpdateCartItemRequest{Quantity: 5}, true)
	require.Equal(t, http.StatusOK, w.Code)
	cart := decodeCartResponse(t, w)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	w = env.request(t, http.MethodPut, "/cart/1", models.UpdateCartItemRequest{Quantity: 6}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPut, "/cart/abc", models.UpdateCartItemRequest{Quantity: 2}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMissingCartItemReturns404(t *testing.T) {
	env := setupCartRouter(t)
	p := env.seedProduct(10, 5)

	w := env.request(t, http.MethodPut, "/cart/"+strconv.Itoa(p.ID), models.UpdateCartItemRequest{Quantity: 2}, true)
	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "Cart item not found", resp.Message)
}

func TestRemoveAndClearCart(t *testing.T) {
	env := setupCartRouter(t)
	p := env.seedProduct(10, 5)

	env.request(t, http.MethodPost, "/cart", models.AddToCartRequest{ProductID: p.ID, Quantity: 2}, true)

	w := env.request(t, http.MethodDelete, "/cart/"+strconv.Itoa(p.ID), nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	cart := decodeCartResponse(t, w)
	assert.Empty(t, cart.Items)

	w = env.request(t, http.MethodDelete, "/cart/"+strconv.Itoa(p.ID), nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodDelete, "/cart", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	cart = decodeCartResponse(t, w)
	assert.Empty(t, cart.Items)
}
