package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/webshoplabs/webshop-backend/services/cart-service/cache"
	"github.com/webshoplabs/webshop-backend/services/cart-service/config"
	"github.com/webshoplabs/webshop-backend/services/cart-service/controllers"
	"github.com/webshoplabs/webshop-backend/services/cart-service/repository"
	"github.com/webshoplabs/webshop-backend/services/cart-service/services"
	"github.com/webshoplabs/webshop-backend/services/common/audit"
	"github.com/webshoplabs/webshop-backend/services/common/middleware"
)

func RegisterCartRoutes(
	r *gin.Engine,
	db *mongo.Database,
	redisClient *redis.Client,
	publisher *audit.Publisher,
	cfg config.Config,
) {
	cartRepo := repository.NewCartRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	cartCache := cache.NewRedisCartCache(redisClient, cfg.CartCacheTTL)

	settlement := services.NewSettlementService(cartRepo, paymentRepo, cartCache)

	cartController := controllers.NewCartController(settlement)
	paymentController := controllers.NewPaymentController(paymentRepo, settlement)

	api := r.Group("/")
	api.Use(middleware.AuthMiddleware())
	api.Use(audit.Middleware(publisher))
	api.Use(middleware.StatsMiddleware(middleware.NewStatsReporter(cfg.StatsURL)))
	{
		cart := api.Group("/cart")
		{
			cart.POST("/create/:userId", cartController.CreateCart)
			cart.GET("/user/:userId", cartController.GetCartByUser)
			cart.GET("/:cartId", cartController.GetCartByID)
			cart.PUT("/edit/:cartId", cartController.EditCart)
			cart.POST("/:cartId/items", cartController.AddItem)
			cart.DELETE("/:cartId/items/:itemId", cartController.RemoveItem)
			cart.DELETE("/:cartId", cartController.DeleteCart)
			cart.POST("/:cartId/checkout", cartController.Checkout)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", paymentController.GetAllPayments)
			payments.GET("/user/:userId", paymentController.GetPaymentsByUser)
			payments.POST("", paymentController.SubmitPayment)
			payments.DELETE("/:paymentId", paymentController.DeletePayment)
		}
	}
}
