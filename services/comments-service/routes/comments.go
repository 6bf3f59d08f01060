package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/webshoplabs/webshop-backend/services/comments-service/config"
	"github.com/webshoplabs/webshop-backend/services/comments-service/controllers"
	"github.com/webshoplabs/webshop-backend/services/comments-service/repository"
	"github.com/webshoplabs/webshop-backend/services/common/audit"
	"github.com/webshoplabs/webshop-backend/services/common/middleware"
)

func RegisterCommentRoutes(r *gin.Engine, db *mongo.Database, publisher *audit.Publisher, cfg config.Config) {
	commentRepo := repository.NewCommentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	controller := controllers.NewCommentController(commentRepo, ratingRepo)

	api := r.Group("/")
	api.Use(audit.Middleware(publisher))
	api.Use(middleware.StatsMiddleware(middleware.NewStatsReporter(cfg.StatsURL)))
	{
		comments := api.Group("/comments")
		{
			comments.GET("/item/:itemId", controller.GetCommentsByItem)
			comments.GET("/user/:userId", controller.GetCommentsByUser)
		}

		ratings := api.Group("/ratings")
		{
			ratings.GET("/item/:itemId", controller.GetRatingsByItem)
		}

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/comments", controller.AddComment)
			protected.PUT("/comments/:commentId", controller.UpdateComment)
			protected.DELETE("/comments/:commentId", controller.DeleteComment)
			protected.POST("/ratings", controller.AddRating)
			protected.DELETE("/ratings/:ratingId", controller.DeleteRating)
		}
	}
}
