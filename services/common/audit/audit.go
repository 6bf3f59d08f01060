package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/webshoplabs/webshop-backend/services/common/logger"
)

// Entry is the audit record every service ships to the logging sidecar.
type Entry struct {
	Timestamp       time.Time `json:"timestamp"`
	LogType         string    `json:"log_type"`
	URL             string    `json:"url"`
	CorrelationID   string    `json:"correlation_id"`
	ApplicationName string    `json:"application_name"`
	Message         string    `json:"message"`
}

// Publisher ships audit entries to the logging queue.
type Publisher struct {
	writer *kafka.Writer
	app    string
}

func NewPublisher(brokers []string, topic, applicationName string) *Publisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Publisher{
		writer: writer,
		app:    applicationName,
	}
}

// Publish sends an entry to the audit topic. Delivery is best-effort; a failed
// publish is logged and dropped so request handling never blocks on the queue.
func (p *Publisher) Publish(entry Entry) {
	if p == nil {
		return
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.CorrelationID == "" {
		entry.CorrelationID = uuid.NewString()
	}
	if entry.ApplicationName == "" {
		entry.ApplicationName = p.app
	}
	if entry.LogType == "" {
		entry.LogType = "Info"
	}

	data, err := json.Marshal(entry)
	if err != nil {
		logger.Log.Warn("failed to marshal audit entry", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(entry.CorrelationID),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Warn("failed to publish audit entry", zap.Error(err))
	}
}

// Info publishes an informational entry for the given endpoint.
func (p *Publisher) Info(url, message string) {
	p.Publish(Entry{LogType: "Info", URL: url, Message: message})
}

// ErrorEntry publishes an error-level entry for the given endpoint.
func (p *Publisher) ErrorEntry(url, message string) {
	p.Publish(Entry{LogType: "Error", URL: url, Message: message})
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	_ = p.writer.Close()
}

// Middleware emits one audit entry per handled request, carrying the caller's
// correlation id forward or minting a new one.
func Middleware(p *Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader("X-Correlation-ID")
		if correlationID == "" {
			correlationID = uuid.NewString()
			c.Request.Header.Set("X-Correlation-ID", correlationID)
		}

		c.Next()

		logType := "Info"
		if c.Writer.Status() >= 500 {
			logType = "Error"
		}

		go p.Publish(Entry{
			Timestamp:     time.Now().UTC(),
			LogType:       logType,
			URL:           c.FullPath(),
			CorrelationID: correlationID,
			Message:       c.Request.Method + " " + c.Request.URL.Path,
		})
	}
}
