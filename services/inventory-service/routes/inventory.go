package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/webshoplabs/webshop-backend/services/common/audit"
	"github.com/webshoplabs/webshop-backend/services/common/middleware"
	"github.com/webshoplabs/webshop-backend/services/inventory-service/config"
	"github.com/webshoplabs/webshop-backend/services/inventory-service/controllers"
	"github.com/webshoplabs/webshop-backend/services/inventory-service/repository"
)

func RegisterInventoryRoutes(r *gin.Engine, db *mongo.Database, publisher *audit.Publisher, cfg config.Config) {
	repo := repository.NewInventoryRepository(db)
	controller := controllers.NewInventoryController(repo)

	api := r.Group("/")
	api.Use(audit.Middleware(publisher))
	api.Use(middleware.StatsMiddleware(middleware.NewStatsReporter(cfg.StatsURL)))
	{
		inventory := api.Group("/inventory")
		{
			inventory.GET("", controller.GetAllItems)
			inventory.GET("/:itemId", controller.GetItem)
			inventory.GET("/:itemId/comments", controller.GetComments)
			inventory.GET("/:itemId/ratings", controller.GetRatings)
		}

		protected := api.Group("/inventory")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("", controller.AddItem)
			protected.PUT("/:itemId", controller.EditItem)
			protected.DELETE("/:itemId", controller.DeleteItem)
			protected.POST("/:itemId/quantity/add", controller.AddQuantity)
			protected.POST("/:itemId/quantity/subtract", controller.SubtractQuantity)
			protected.POST("/:itemId/price", controller.ChangePrice)
		}
	}
}
