package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/webshoplabs/webshop-backend/services/common/audit"
	"github.com/webshoplabs/webshop-backend/services/common/middleware"
	"github.com/webshoplabs/webshop-backend/services/delivery-service/config"
	"github.com/webshoplabs/webshop-backend/services/delivery-service/controllers"
	"github.com/webshoplabs/webshop-backend/services/delivery-service/repository"
)

func RegisterDeliveryRoutes(r *gin.Engine, db *mongo.Database, publisher *audit.Publisher, cfg config.Config) {
	repo := repository.NewDeliveryRepository(db)
	controller := controllers.NewDeliveryController(repo)

	api := r.Group("/")
	api.Use(middleware.AuthMiddleware())
	api.Use(audit.Middleware(publisher))
	api.Use(middleware.StatsMiddleware(middleware.NewStatsReporter(cfg.StatsURL)))
	{
		deliveries := api.Group("/deliveries")
		{
			deliveries.POST("", controller.CreateDelivery)
			deliveries.GET("", controller.ListDeliveries)
			deliveries.GET("/:deliveryId", controller.GetDelivery)
			deliveries.GET("/user/:userId", controller.GetDeliveriesByUser)
			deliveries.PUT("/:deliveryId", controller.UpdateDelivery)
			deliveries.DELETE("/:deliveryId", controller.DeleteDelivery)
		}
	}
}
