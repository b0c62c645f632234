package services

import (
	"errors"

	"marketplace/models"
	"marketplace/repositories"
)

var (
	// ErrInsufficientStock is returned when a requested cart quantity
	// would exceed the product's remaining stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidQuantity rejects absolute updates below 1; a stored line
	// never has a quantity under 1, removal is a separate operation.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// CartService joins canonical cart lines with live product data and
// enforces the two cart business rules: the product must exist, and the
// target quantity must fit within remaining stock. Every mutation
// returns the entire recomputed cart so callers never merge deltas.
type CartService struct {
	cartRepo    *repositories.CartRepository
	productRepo *repositories.ProductRepository
}

func NewCartService(cartRepo *repositories.CartRepository, productRepo *repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart builds the enriched cart view. Lines whose product has been
// deleted are kept with a nil product: they count toward itemCount but
// contribute nothing to total.
func (s *CartService) GetCart(userID int) models.Cart {
	items := s.cartRepo.Get(userID)

	cart := models.Cart{
		UserID: userID,
		Items:  make([]models.CartLine, 0, len(items)),
	}

	for _, item := range items {
		line := models.CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			AddedAt:   item.AddedAt,
		}
		if product, err := s.productRepo.GetByID(item.ProductID); err == nil {
			line.Product = models.Snapshot(product)
		}
		cart.Items = append(cart.Items, line)
	}

	cart.Recalculate()
	return cart
}

// AddToCart merges quantity into the user's line for the product after
// checking that stock covers the existing cart quantity plus the
// requested amount. Quantity defaults to 1.
func (s *CartService) AddToCart(userID, productID, quantity int) (models.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return models.Cart{}, err
	}

	currentQuantity := 0
	for _, item := range s.cartRepo.Get(userID) {
		if item.ProductID == productID {
			currentQuantity = item.Quantity
			break
		}
	}

	if product.Stock < currentQuantity+quantity {
		return models.Cart{}, ErrInsufficientStock
	}

	s.cartRepo.Add(userID, productID, quantity)
	return s.GetCart(userID), nil
}

// UpdateQuantity sets the line to an absolute quantity. The stock check
// compares against the new value alone; quantities <= 0 are rejected
// here because removal is a separate operation.
func (s *CartService) UpdateQuantity(userID, productID, quantity int) (models.Cart, error) {
	if quantity < 1 {
		return models.Cart{}, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return models.Cart{}, err
	}

	if product.Stock < quantity {
		return models.Cart{}, ErrInsufficientStock
	}

	if _, err := s.cartRepo.Update(userID, productID, quantity); err != nil {
		return models.Cart{}, err
	}
	return s.GetCart(userID), nil
}

func (s *CartService) RemoveFromCart(userID, productID int) (models.Cart, error) {
	if _, err := s.cartRepo.Remove(userID, productID); err != nil {
		return models.Cart{}, err
	}
	return s.GetCart(userID), nil
}

func (s *CartService) ClearCart(userID int) models.Cart {
	s.cartRepo.Clear(userID)
	return s.GetCart(userID)
}
