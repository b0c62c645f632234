package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"marketplace/controllers"
	"marketplace/middleware"
)

type Controllers struct {
	Auth    *controllers.AuthController
	User    *controllers.UserController
	Product *controllers.ProductController
	Cart    *controllers.CartController
	Review  *controllers.ReviewController
	Order   *controllers.OrderController
}

func SetupRoutes(router *gin.Engine, ctrl Controllers) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", ctrl.Auth.Register)
	router.POST("/auth/login", ctrl.Auth.Login)

	router.GET("/categories", ctrl.Product.GetAllCategories)
	router.GET("/products", ctrl.Product.GetAllProducts)
	router.GET("/products/:id", ctrl.Product.GetProductByID)

	router.GET("/reviews", ctrl.Review.GetReviews)
	router.GET("/reviews/:id", ctrl.Review.GetReviewByID)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", ctrl.Auth.GetProfile)
		auth.PATCH("/auth/profile", ctrl.Auth.UpdateProfile)
		auth.POST("/auth/profile/photo", ctrl.Auth.UpdateProfilePhoto)

		auth.GET("/cart", ctrl.Cart.GetCart)
		auth.POST("/cart", ctrl.Cart.AddToCart)
		auth.PUT("/cart/:productId", ctrl.Cart.UpdateCartItem)
		auth.DELETE("/cart/:productId", ctrl.Cart.RemoveFromCart)
		auth.DELETE("/cart", ctrl.Cart.ClearCart)

		auth.POST("/reviews", ctrl.Review.CreateReview)
		auth.PUT("/reviews/:id", ctrl.Review.UpdateReview)
		auth.DELETE("/reviews/:id", ctrl.Review.DeleteReview)

		auth.POST("/orders", ctrl.Order.CreateOrder)
		auth.GET("/orders", ctrl.Order.GetMyOrders)
		auth.GET("/orders/:id", ctrl.Order.GetOrderByID)
	}

	seller := router.Group("/")
	seller.Use(middleware.AuthMiddleware(), middleware.SellerMiddleware())
	{
		seller.POST("/products", ctrl.Product.CreateProduct)
		seller.PATCH("/products/:id", ctrl.Product.UpdateProduct)
		seller.DELETE("/products/:id", ctrl.Product.DeleteProduct)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/users", ctrl.User.GetAllUsers)
		admin.GET("/users/:id", ctrl.User.GetUserByID)
		admin.POST("/users", ctrl.User.CreateUser)
		admin.PATCH("/users/:id", ctrl.User.UpdateUser)
		admin.DELETE("/users/:id", ctrl.User.DeleteUser)

		admin.GET("/orders", ctrl.Order.GetAllOrders)
		admin.PATCH("/orders/:id/status", ctrl.Order.UpdateOrderStatus)
	}

	router.Static("/uploads", "./uploads")
}
