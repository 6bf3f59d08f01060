package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/webshoplabs/webshop-backend/services/common/logger"
	"github.com/webshoplabs/webshop-backend/services/stats-service/models"
	"github.com/webshoplabs/webshop-backend/services/stats-service/repository"
)

type StatController struct {
	Repo repository.StatRepository
	now  func() time.Time
}

func NewStatController(repo repository.StatRepository) *StatController {
	return &StatController{Repo: repo, now: time.Now}
}

type updateStatRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

func (sc *StatController) UpdateStat(c *gin.Context) {
	var req updateStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endpoint is required"})
		return
	}

	if err := sc.Repo.RecordCall(c.Request.Context(), req.Endpoint, sc.now()); err != nil {
		logger.Error(c, "failed to record api call", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record api call"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "stat recorded"})
}

func (sc *StatController) GetAllStats(c *gin.Context) {
	stats, err := sc.Repo.GetAllStats(c.Request.Context())
	if err != nil {
		logger.Error(c, "failed to fetch stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
		return
	}
	if stats == nil {
		stats = []models.ApiCallStat{}
	}
	c.JSON(http.StatusOK, stats)
}

func (sc *StatController) GetMostCalled(c *gin.Context) {
	stat, err := sc.Repo.GetMostCalled(c.Request.Context())
	sc.respondSingle(c, stat, err)
}

func (sc *StatController) GetLastCalled(c *gin.Context) {
	stat, err := sc.Repo.GetLastCalled(c.Request.Context())
	sc.respondSingle(c, stat, err)
}

func (sc *StatController) respondSingle(c *gin.Context, stat *models.ApiCallStat, err error) {
	if err != nil {
		if errors.Is(err, repository.ErrNoStats) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no stats recorded"})
			return
		}
		logger.Error(c, "failed to fetch stat", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stat"})
		return
	}
	c.JSON(http.StatusOK, stat)
}
