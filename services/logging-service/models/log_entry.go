package models

import "time"

// LoggingEntry is the persisted form of an audit log record. The wire
// format matches what the audit publisher emits on Kafka.
type LoggingEntry struct {
	ID              string    `bson:"_id" json:"id"`
	Timestamp       time.Time `bson:"timestamp" json:"timestamp"`
	LogType         string    `bson:"log_type" json:"log_type"`
	URL             string    `bson:"url" json:"url"`
	CorrelationID   string    `bson:"correlation_id" json:"correlation_id"`
	ApplicationName string    `bson:"application_name" json:"application_name"`
	Message         string    `bson:"message" json:"message"`
}
