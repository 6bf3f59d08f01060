package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/webshoplabs/webshop-backend/services/stats-service/controllers"
	"github.com/webshoplabs/webshop-backend/services/stats-service/repository"
)

func RegisterStatRoutes(r *gin.Engine, db *mongo.Database) {
	repo := repository.NewStatRepository(db)
	controller := controllers.NewStatController(repo)

	stats := r.Group("/stats")
	{
		stats.POST("/update", controller.UpdateStat)
		stats.GET("", controller.GetAllStats)
		stats.GET("/most-called", controller.GetMostCalled)
		stats.GET("/last-called", controller.GetLastCalled)
	}
}
