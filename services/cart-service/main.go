package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/webshoplabs/webshop-backend/services/cart-service/config"
	"github.com/webshoplabs/webshop-backend/services/cart-service/database"
	"github.com/webshoplabs/webshop-backend/services/cart-service/repository"
	"github.com/webshoplabs/webshop-backend/services/cart-service/routes"
	apperrors "github.com/webshoplabs/webshop-backend/services/common/errors"

	"github.com/webshoplabs/webshop-backend/services/common/audit"
	"github.com/webshoplabs/webshop-backend/services/common/logger"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	mongoClient, db, err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())

	if err := repository.EnsureIndexes(context.Background(), db); err != nil {
		logger.Log.Fatal("failed to create indexes", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		logger.Log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	publisher := audit.NewPublisher(cfg.KafkaBrokers, cfg.AuditTopic, "cart-service")
	defer publisher.Close()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(cors.Default())
	router.Use(apperrors.ErrorMiddleware())

	routes.RegisterCartRoutes(router, db, redisClient, publisher, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("Cart service is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("shutdown error", zap.Error(err))
	}
	logger.Log.Info("Server shutdown complete")
}
