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

	apperrors "github.com/webshoplabs/webshop-backend/services/common/errors"
	"github.com/webshoplabs/webshop-backend/services/common/logger"
	"github.com/webshoplabs/webshop-backend/services/logging-service/config"
	"github.com/webshoplabs/webshop-backend/services/logging-service/consumer"
	"github.com/webshoplabs/webshop-backend/services/logging-service/database"
	"github.com/webshoplabs/webshop-backend/services/logging-service/repository"
	"github.com/webshoplabs/webshop-backend/services/logging-service/routes"
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

	repo := repository.NewLogRepository(db)

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	auditConsumer := consumer.NewAuditConsumer(cfg.KafkaBrokers, cfg.AuditTopic, cfg.ConsumerGroup, repo)
	go auditConsumer.Start(consumerCtx)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(cors.Default())
	router.Use(apperrors.ErrorMiddleware())

	routes.RegisterLogRoutes(router, db)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("Logging service is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down gracefully...")
	stopConsumer()
	auditConsumer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("shutdown error", zap.Error(err))
	}
	logger.Log.Info("Server shutdown complete")
}
