package services

import (
	"errors"
	"log"

	"marketplace/models"
	"marketplace/repositories"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrNotOrderOwner  = errors.New("you do not have permission to view this order")
	ErrInvalidStatus  = errors.New("invalid order status")
)

type OrderService struct {
	orderRepo   *repositories.OrderRepository
	cartRepo    *repositories.CartRepository
	productRepo *repositories.ProductRepository
	userRepo    *repositories.UserRepository
	email       *models.EmailService // nil when SMTP is not configured
}

func NewOrderService(orderRepo *repositories.OrderRepository, cartRepo *repositories.CartRepository,
	productRepo *repositories.ProductRepository, userRepo *repositories.UserRepository,
	email *models.EmailService) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		email:       email,
	}
}

// Checkout turns the user's current cart into an order: validates stock
// for every resolvable line, snapshots name and price into order items,
// decrements stock and clears the cart. Lines whose product was deleted
// are skipped; they cannot be priced or fulfilled.
func (s *OrderService) Checkout(userID int, req models.CreateOrderRequest) (*models.Order, error) {
	lines := s.cartRepo.Get(userID)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := []models.OrderItem{}
	var total float64

	for _, line := range lines {
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			continue
		}
		if product.Stock < line.Quantity {
			return nil, ErrInsufficientStock
		}
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       product.Price,
		})
		total += product.Price * float64(line.Quantity)
	}

	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	for _, item := range items {
		if err := s.productRepo.AdjustStock(item.ProductID, -item.Quantity); err != nil {
			return nil, err
		}
	}

	order := &models.Order{
		UserID:        userID,
		Items:         items,
		Total:         models.Round2(total),
		Status:        models.OrderStatusPending,
		PaymentMethod: req.PaymentMethod,
	}
	created := s.orderRepo.Create(order)

	s.cartRepo.Clear(userID)

	if s.email != nil {
		if user, err := s.userRepo.FindByID(userID); err == nil {
			if err := s.email.SendOrderConfirmationEmail(user.Email, created.ID, created.Total); err != nil {
				log.Printf("order confirmation email failed: %v", err)
			}
		}
	}

	return &created, nil
}

func (s *OrderService) GetUserOrders(userID int) []models.Order {
	return s.orderRepo.GetByUser(userID)
}

func (s *OrderService) GetOrder(userID int, role, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID && role != models.RoleAdmin {
		return nil, ErrNotOrderOwner
	}
	return order, nil
}

func (s *OrderService) GetAllOrders() []models.Order {
	return s.orderRepo.GetAll()
}

func (s *OrderService) UpdateStatus(id, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}
	order, err := s.orderRepo.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
