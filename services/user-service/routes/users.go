package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/webshoplabs/webshop-backend/services/common/audit"
	"github.com/webshoplabs/webshop-backend/services/common/auth"
	"github.com/webshoplabs/webshop-backend/services/common/middleware"
	"github.com/webshoplabs/webshop-backend/services/user-service/config"
	"github.com/webshoplabs/webshop-backend/services/user-service/controllers"
	"github.com/webshoplabs/webshop-backend/services/user-service/repository"
)

func RegisterUserRoutes(r *gin.Engine, db *gorm.DB, publisher *audit.Publisher, cfg config.Config) {
	repo := repository.NewUserRepository(db)
	controller := controllers.NewUserController(repo, auth.SignAccessToken, cfg.TokenTTL)

	api := r.Group("/")
	api.Use(audit.Middleware(publisher))
	api.Use(middleware.StatsMiddleware(middleware.NewStatsReporter(cfg.StatsURL)))
	api.Use(middleware.RateLimitMiddleware())
	{
		api.POST("/users/register", controller.Register)
		api.POST("/users/login", controller.Login)

		users := api.Group("/users")
		users.Use(middleware.AuthMiddleware())
		{
			users.GET("", controller.ListUsers)
			users.GET("/:userId", controller.GetUser)
			users.GET("/by-username/:username", controller.GetUserByUsername)
			users.PUT("/:userId", controller.UpdateUser)
			users.DELETE("/:userId", controller.DeleteUser)
			users.POST("/password", controller.ChangePassword)
		}
	}
}
