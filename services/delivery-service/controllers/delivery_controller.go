package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/webshoplabs/webshop-backend/services/common/logger"
	"github.com/webshoplabs/webshop-backend/services/delivery-service/models"
	"github.com/webshoplabs/webshop-backend/services/delivery-service/repository"
)

type DeliveryController struct {
	Repo repository.DeliveryRepository
	now  func() time.Time
}

func NewDeliveryController(repo repository.DeliveryRepository) *DeliveryController {
	return &DeliveryController{Repo: repo, now: time.Now}
}

func (dc *DeliveryController) CreateDelivery(c *gin.Context) {
	var req models.CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid delivery payload"})
		return
	}

	delivery := models.Delivery{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		PaymentID:    req.PaymentID,
		Address:      req.Address,
		DeliveryTime: req.DeliveryTime,
		GeoX:         req.GeoX,
		GeoY:         req.GeoY,
	}
	if delivery.DeliveryTime.IsZero() {
		// Default window: two days out.
		delivery.DeliveryTime = dc.now().Add(48 * time.Hour)
	}

	if err := dc.Repo.CreateDelivery(c.Request.Context(), &delivery); err != nil {
		logger.Error(c, "failed to create delivery", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create delivery"})
		return
	}
	c.JSON(http.StatusCreated, delivery)
}

func (dc *DeliveryController) GetDelivery(c *gin.Context) {
	delivery, err := dc.Repo.GetDeliveryByID(c.Request.Context(), c.Param("deliveryId"))
	if err != nil {
		if errors.Is(err, repository.ErrDeliveryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "delivery not found"})
			return
		}
		logger.Error(c, "failed to fetch delivery", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch delivery"})
		return
	}
	c.JSON(http.StatusOK, delivery)
}

func (dc *DeliveryController) GetDeliveriesByUser(c *gin.Context) {
	deliveries, err := dc.Repo.GetDeliveriesByUserID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		logger.Error(c, "failed to fetch deliveries", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch deliveries"})
		return
	}
	if deliveries == nil {
		deliveries = []models.Delivery{}
	}
	c.JSON(http.StatusOK, deliveries)
}

func (dc *DeliveryController) ListDeliveries(c *gin.Context) {
	deliveries, err := dc.Repo.ListDeliveries(c.Request.Context())
	if err != nil {
		logger.Error(c, "failed to list deliveries", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list deliveries"})
		return
	}
	if deliveries == nil {
		deliveries = []models.Delivery{}
	}
	c.JSON(http.StatusOK, deliveries)
}

func (dc *DeliveryController) UpdateDelivery(c *gin.Context) {
	deliveryID := c.Param("deliveryId")

	var req models.UpdateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid delivery payload"})
		return
	}

	delivery, err := dc.Repo.GetDeliveryByID(c.Request.Context(), deliveryID)
	if err != nil {
		if errors.Is(err, repository.ErrDeliveryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "delivery not found"})
			return
		}
		logger.Error(c, "failed to load delivery", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update delivery"})
		return
	}

	if req.Address != nil {
		delivery.Address = *req.Address
	}
	if req.DeliveryTime != nil {
		delivery.DeliveryTime = *req.DeliveryTime
	}
	if req.GeoX != nil {
		delivery.GeoX = *req.GeoX
	}
	if req.GeoY != nil {
		delivery.GeoY = *req.GeoY
	}

	matched, err := dc.Repo.ReplaceDelivery(c.Request.Context(), deliveryID, delivery)
	if err != nil {
		logger.Error(c, "failed to replace delivery", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update delivery"})
		return
	}
	if !matched {
		c.JSON(http.StatusNotFound, gin.H{"error": "delivery not found"})
		return
	}
	c.JSON(http.StatusOK, delivery)
}

func (dc *DeliveryController) DeleteDelivery(c *gin.Context) {
	if err := dc.Repo.DeleteDelivery(c.Request.Context(), c.Param("deliveryId")); err != nil {
		logger.Error(c, "failed to delete delivery", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete delivery"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "delivery deleted"})
}
