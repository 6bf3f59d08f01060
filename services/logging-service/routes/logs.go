package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/webshoplabs/webshop-backend/services/common/middleware"
	"github.com/webshoplabs/webshop-backend/services/logging-service/controllers"
	"github.com/webshoplabs/webshop-backend/services/logging-service/repository"
)

func RegisterLogRoutes(r *gin.Engine, db *mongo.Database) {
	repo := repository.NewLogRepository(db)
	controller := controllers.NewLogController(repo)

	logs := r.Group("/logs")
	logs.Use(middleware.AuthMiddleware())
	{
		logs.POST("", controller.CreateLog)
		logs.GET("", controller.GetLogs)
		logs.DELETE("", controller.DeleteLogs)
	}
}
