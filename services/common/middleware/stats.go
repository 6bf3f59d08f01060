package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/webshoplabs/webshop-backend/services/common/logger"
)

// StatsReporter posts endpoint hit counts to the stats service after each
// request. Reporting is fire-and-forget; the stats service being down must
// never affect request handling.
type StatsReporter struct {
	client  *http.Client
	baseURL string
}

func NewStatsReporter(baseURL string) *StatsReporter {
	return &StatsReporter{
		client:  &http.Client{Timeout: 2 * time.Second},
		baseURL: baseURL,
	}
}

func (s *StatsReporter) report(endpoint string) {
	payload, err := json.Marshal(map[string]string{"endpoint": endpoint})
	if err != nil {
		return
	}

	resp, err := s.client.Post(s.baseURL+"/stats/update", "application/json", bytes.NewReader(payload))
	if err != nil {
		logger.Log.Debug("stats update failed", zap.Error(err))
		return
	}
	resp.Body.Close()
}

// StatsMiddleware records one hit per handled route.
func StatsMiddleware(reporter *StatsReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if reporter == nil || reporter.baseURL == "" {
			return
		}
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}
		go reporter.report(endpoint)
	}
}
