package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/webshoplabs/webshop-backend/services/common/logger"
	"github.com/webshoplabs/webshop-backend/services/logging-service/models"
	"github.com/webshoplabs/webshop-backend/services/logging-service/repository"
)

// AuditConsumer drains the audit topic into the log store.
type AuditConsumer struct {
	reader *kafka.Reader
	repo   repository.LogRepository
}

func NewAuditConsumer(brokers []string, topic, groupID string, repo repository.LogRepository) *AuditConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0, // explicit commits only
	})
	return &AuditConsumer{reader: reader, repo: repo}
}

func (c *AuditConsumer) Start(ctx context.Context) {
	logger.Log.Info("audit consumer started", zap.String("topic", c.reader.Config().Topic))
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				logger.Log.Info("audit consumer shutting down")
				return
			}
			logger.Log.Error("kafka fetch error", zap.Error(err))
			time.Sleep(5 * time.Second)
			continue
		}

		commit := c.processMessage(ctx, msg.Value)
		if !commit {
			// Leave the offset uncommitted so the entry is retried.
			continue
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			logger.Log.Error("kafka commit error", zap.Error(err))
		}
	}
}

// processMessage stores one audit entry. It reports whether the offset
// may be committed: malformed payloads are dropped to avoid an
// infinite redelivery loop, store failures are retried.
func (c *AuditConsumer) processMessage(ctx context.Context, value []byte) bool {
	var entry models.LoggingEntry
	if err := json.Unmarshal(value, &entry); err != nil {
		logger.Log.Error("failed to unmarshal audit entry", zap.Error(err))
		return true
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	if err := c.repo.InsertLog(ctx, &entry); err != nil {
		logger.Log.Error("failed to store audit entry", zap.Error(err))
		return false
	}
	return true
}

func (c *AuditConsumer) Close() error {
	return c.reader.Close()
}
