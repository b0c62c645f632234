package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"marketplace/config"
	"marketplace/controllers"
	_ "marketplace/docs"
	"marketplace/middleware"
	"marketplace/models"
	"marketplace/repositories"
	"marketplace/routes"
	"marketplace/services"
)

func main() {
	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	models.InitRedis()
	defer models.CloseRedis()

	if err := os.MkdirAll(config.AppConfig.UploadDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	userRepo := repositories.NewUserRepository()
	productRepo := repositories.NewProductRepository()
	cartRepo := repositories.NewCartRepository()
	reviewRepo := repositories.NewReviewRepository()
	orderRepo := repositories.NewOrderRepository()
	repositories.Seed(userRepo, productRepo)

	emailService, err := models.NewEmailService()
	if err != nil {
		log.Println("Email disabled:", err)
		emailService = nil
	}

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo, userRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, productRepo, userRepo, emailService)
	reviewService := services.NewReviewService(reviewRepo, productRepo, orderRepo, productService)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router, routes.Controllers{
		Auth:    controllers.NewAuthController(authService),
		User:    controllers.NewUserController(userService),
		Product: controllers.NewProductController(productService),
		Cart:    controllers.NewCartController(cartService),
		Review:  controllers.NewReviewController(reviewService),
		Order:   controllers.NewOrderController(orderService),
	})

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Environment: %s", config.AppConfig.AppEnv)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
