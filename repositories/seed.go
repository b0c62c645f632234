package repositories

import (
	"log"

	"marketplace/models"
	"marketplace/utils"
)

// Seed loads the demo dataset that stands in for the mock database. It
// is deterministic so tests and local runs see the same catalog.
func Seed(userRepo *UserRepository, productRepo *ProductRepository) {
	for _, name := range []string{"Electronics", "Clothing", "Home & Garden", "Books", "Sports"} {
		productRepo.CreateCategory(&models.Category{Name: name})
	}

	password, err := utils.HashPassword("password123")
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	users := []models.User{
		{Email: "admin@marketplace.dev", FirstName: "Ada", LastName: "Admin", Role: models.RoleAdmin},
		{Email: "seller@marketplace.dev", FirstName: "Sam", LastName: "Seller", Role: models.RoleSeller},
		{Email: "buyer@marketplace.dev", FirstName: "Bea", LastName: "Buyer", Role: models.RoleBuyer},
	}
	for i := range users {
		users[i].Password = password
		if err := userRepo.Create(&users[i]); err != nil {
			log.Printf("Seed user %s skipped: %v", users[i].Email, err)
		}
	}

	sellerID := users[1].ID

	products := []models.Product{
		{Name: "Wireless Headphones", Description: "Over-ear Bluetooth headphones with noise cancelling", Price: 129.99, CategoryID: 1, Stock: 25, Featured: true, Images: []string{"https://images.marketplace.dev/headphones-1.jpg", "https://images.marketplace.dev/headphones-2.jpg"}},
		{Name: "Mechanical Keyboard", Description: "Tenkeyless keyboard with hot-swappable switches", Price: 89.5, CategoryID: 1, Stock: 40, Images: []string{"https://images.marketplace.dev/keyboard-1.jpg"}},
		{Name: "Smart Watch", Description: "Fitness tracking watch with a week of battery life", Price: 199.0, CategoryID: 1, Stock: 15, Featured: true, Images: []string{"https://images.marketplace.dev/watch-1.jpg"}},
		{Name: "Denim Jacket", Description: "Classic fit denim jacket", Price: 59.99, CategoryID: 2, Stock: 30, Images: []string{"https://images.marketplace.dev/jacket-1.jpg"}},
		{Name: "Running Shoes", Description: "Lightweight road running shoes", Price: 119.95, CategoryID: 5, Stock: 22, Featured: true, Images: []string{"https://images.marketplace.dev/shoes-1.jpg"}},
		{Name: "Ceramic Planter", Description: "Hand-glazed indoor planter, 8 inch", Price: 24.0, CategoryID: 3, Stock: 60, Images: []string{"https://images.marketplace.dev/planter-1.jpg"}},
		{Name: "Cookbook: Weeknight Meals", Description: "80 recipes under 30 minutes", Price: 18.75, CategoryID: 4, Stock: 50, Images: nil},
		{Name: "Yoga Mat", Description: "Non-slip 6mm yoga mat", Price: 32.5, CategoryID: 5, Stock: 45, Images: []string{"https://images.marketplace.dev/mat-1.jpg"}},
	}
	for i := range products {
		products[i].SellerID = sellerID
		products[i].SellerName = "Sam Seller"
		productRepo.Create(&products[i])
	}

	log.Printf("Seeded %d users, %d products", len(users), len(products))
}
