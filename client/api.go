// Package client provides a Go client for the marketplace API and a
// local cart state that keeps working when the user is not logged in.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"marketplace/models"
)

var (
	// ErrNotFound is returned when the requested product or cart item
	// does not exist on the server.
	ErrNotFound = errors.New("client: not found")
	// ErrInsufficientStock is returned when the server rejects a cart
	// mutation because the requested quantity exceeds available stock.
	ErrInsufficientStock = errors.New("client: insufficient stock")
	// ErrUnauthorized is returned when the server rejects the request
	// token.
	ErrUnauthorized = errors.New("client: unauthorized")
)

// TokenSource supplies the current bearer token. An empty token means
// the user is not authenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource backed by a fixed string.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// API is a thin HTTP client for the marketplace backend.
type API struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

// NewAPI creates an API client against baseURL. Requests time out
// after 10 seconds.
func NewAPI(baseURL string, tokens TokenSource) *API {
	if tokens == nil {
		tokens = StaticToken("")
	}
	return &API{
		baseURL: baseURL,
		tokens:  tokens,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (a *API) authenticated() bool {
	return a.tokens.Token() != ""
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// do performs a request and decodes the envelope. Non-2xx responses
// are mapped onto the client error taxonomy.
func (a *API) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := a.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &env, nil
	}
	return nil, a.mapError(resp.StatusCode, &env)
}

func (a *API) mapError(status int, env *envelope) error {
	msg := env.Message
	if msg == "" {
		msg = env.Error
	}
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusBadRequest:
		if msg == "Insufficient stock" {
			return ErrInsufficientStock
		}
	}
	return fmt.Errorf("server error (%d): %s", status, msg)
}

// cartEnvelope is the payload shape of every cart endpoint.
type cartEnvelope struct {
	Cart *models.Cart `json:"cart"`
}

func (a *API) decodeCart(env *envelope) (*models.Cart, error) {
	var payload cartEnvelope
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if payload.Cart == nil {
		return nil, errors.New("client: response missing cart")
	}
	return payload.Cart, nil
}

// GetCart fetches the authenticated user's cart.
func (a *API) GetCart(ctx context.Context) (*models.Cart, error) {
	env, err := a.do(ctx, http.MethodGet, "/cart", nil)
	if err != nil {
		return nil, err
	}
	return a.decodeCart(env)
}

// AddToCart adds quantity units of a product and returns the updated
// cart.
func (a *API) AddToCart(ctx context.Context, productID, quantity int) (*models.Cart, error) {
	env, err := a.do(ctx, http.MethodPost, "/cart", models.AddToCartRequest{
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		return nil, err
	}
	return a.decodeCart(env)
}

// UpdateCartItem sets the absolute quantity of a cart line and returns
// the updated cart.
func (a *API) UpdateCartItem(ctx context.Context, productID, quantity int) (*models.Cart, error) {
	env, err := a.do(ctx, http.MethodPut, "/cart/"+strconv.Itoa(productID), models.UpdateCartItemRequest{
		Quantity: quantity,
	})
	if err != nil {
		return nil, err
	}
	return a.decodeCart(env)
}

// RemoveFromCart removes a product's line and returns the updated cart.
func (a *API) RemoveFromCart(ctx context.Context, productID int) (*models.Cart, error) {
	env, err := a.do(ctx, http.MethodDelete, "/cart/"+strconv.Itoa(productID), nil)
	if err != nil {
		return nil, err
	}
	return a.decodeCart(env)
}

// ClearCart removes every line from the server cart.
func (a *API) ClearCart(ctx context.Context) error {
	_, err := a.do(ctx, http.MethodDelete, "/cart", nil)
	return err
}

// GetProduct fetches a single product. It is a public endpoint, used
// by the local cart to snapshot product details.
func (a *API) GetProduct(ctx context.Context, productID int) (*models.Product, error) {
	env, err := a.do(ctx, http.MethodGet, "/products/"+strconv.Itoa(productID), nil)
	if err != nil {
		return nil, err
	}
	var product models.Product
	if err := json.Unmarshal(env.Data, &product); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &product, nil
}
