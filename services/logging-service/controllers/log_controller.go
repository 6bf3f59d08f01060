package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/webshoplabs/webshop-backend/services/common/logger"
	"github.com/webshoplabs/webshop-backend/services/logging-service/models"
	"github.com/webshoplabs/webshop-backend/services/logging-service/repository"
)

type LogController struct {
	Repo repository.LogRepository
	now  func() time.Time
}

func NewLogController(repo repository.LogRepository) *LogController {
	return &LogController{Repo: repo, now: time.Now}
}

// CreateLog accepts a log entry over HTTP for producers that cannot
// reach the queue.
func (lc *LogController) CreateLog(c *gin.Context) {
	var entry models.LoggingEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log payload"})
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = lc.now()
	}
	if entry.LogType == "" {
		entry.LogType = "Info"
	}

	if err := lc.Repo.InsertLog(c.Request.Context(), &entry); err != nil {
		logger.Error(c, "failed to store log entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store log entry"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetLogs returns entries in [from, to]; both bounds are RFC 3339 and
// default to the last 24 hours.
func (lc *LogController) GetLogs(c *gin.Context) {
	to := lc.now()
	from := to.Add(-24 * time.Hour)

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be an RFC 3339 timestamp"})
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be an RFC 3339 timestamp"})
			return
		}
		to = parsed
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not precede from"})
		return
	}

	entries, err := lc.Repo.GetLogsInRange(c.Request.Context(), from, to)
	if err != nil {
		logger.Error(c, "failed to fetch logs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch logs"})
		return
	}
	if entries == nil {
		entries = []models.LoggingEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (lc *LogController) DeleteLogs(c *gin.Context) {
	deleted, err := lc.Repo.DeleteAllLogs(c.Request.Context())
	if err != nil {
		logger.Error(c, "failed to delete logs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
