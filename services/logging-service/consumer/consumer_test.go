package consumer

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webshoplabs/webshop-backend/services/common/logger"
	"github.com/webshoplabs/webshop-backend/services/logging-service/models"
)

func TestMain(m *testing.M) {
	logger.Initialize("test")
	os.Exit(m.Run())
}

type mockLogRepo struct {
	mu        sync.Mutex
	entries   []models.LoggingEntry
	insertErr error
}

func (m *mockLogRepo) InsertLog(_ context.Context, entry *models.LoggingEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockLogRepo) GetLogsInRange(_ context.Context, from, to time.Time) ([]models.LoggingEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.LoggingEntry
	for _, e := range m.entries {
		if !e.Timestamp.Before(from) && !e.Timestamp.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockLogRepo) DeleteAllLogs(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.entries))
	m.entries = nil
	return n, nil
}

func TestProcessMessage_StoresEntryAndCommits(t *testing.T) {
	repo := &mockLogRepo{}
	c := &AuditConsumer{repo: repo}

	payload := `{"log_type":"Error","url":"/cart/C1/checkout","correlation_id":"abc","application_name":"cart-service","message":"checkout failed"}`
	commit := c.processMessage(context.Background(), []byte(payload))

	assert.True(t, commit)
	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, "Error", entry.LogType)
	assert.Equal(t, "cart-service", entry.ApplicationName)
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.Timestamp.IsZero())
}

func TestProcessMessage_MalformedPayloadIsDropped(t *testing.T) {
	repo := &mockLogRepo{}
	c := &AuditConsumer{repo: repo}

	commit := c.processMessage(context.Background(), []byte("not json"))

	// Committing an unparseable message keeps it from looping forever.
	assert.True(t, commit)
	assert.Empty(t, repo.entries)
}

func TestProcessMessage_StoreFailureIsRetried(t *testing.T) {
	repo := &mockLogRepo{insertErr: errors.New("mongo down")}
	c := &AuditConsumer{repo: repo}

	commit := c.processMessage(context.Background(), []byte(`{"message":"hello"}`))

	assert.False(t, commit)
}

func TestProcessMessage_PreservesProvidedTimestamp(t *testing.T) {
	repo := &mockLogRepo{}
	c := &AuditConsumer{repo: repo}

	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	payload := `{"timestamp":"2025-03-01T12:00:00Z","message":"hello"}`
	commit := c.processMessage(context.Background(), []byte(payload))

	assert.True(t, commit)
	require.Len(t, repo.entries, 1)
	assert.True(t, repo.entries[0].Timestamp.Equal(ts))
}
