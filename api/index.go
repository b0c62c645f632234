// Package api exposes the application as a single serverless handler.
package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"marketplace/config"
	"marketplace/controllers"
	"marketplace/middleware"
	"marketplace/models"
	"marketplace/repositories"
	"marketplace/routes"
	"marketplace/services"
)

var (
	router *gin.Engine
	once   sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.LoadConfig()
		models.InitRedis()

		userRepo := repositories.NewUserRepository()
		productRepo := repositories.NewProductRepository()
		cartRepo := repositories.NewCartRepository()
		reviewRepo := repositories.NewReviewRepository()
		orderRepo := repositories.NewOrderRepository()
		repositories.Seed(userRepo, productRepo)

		emailService, err := models.NewEmailService()
		if err != nil {
			emailService = nil
		}

		authService := services.NewAuthService(userRepo)
		userService := services.NewUserService(userRepo)
		productService := services.NewProductService(productRepo, userRepo)
		cartService := services.NewCartService(cartRepo, productRepo)
		orderService := services.NewOrderService(orderRepo, cartRepo, productRepo, userRepo, emailService)
		reviewService := services.NewReviewService(reviewRepo, productRepo, orderRepo, productService)

		router = gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.CORSMiddleware())

		routes.SetupRoutes(router, routes.Controllers{
			Auth:    controllers.NewAuthController(authService),
			User:    controllers.NewUserController(userService),
			Product: controllers.NewProductController(productService),
			Cart:    controllers.NewCartController(cartService),
			Review:  controllers.NewReviewController(reviewService),
			Order:   controllers.NewOrderController(orderService),
		})
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
