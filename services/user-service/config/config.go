package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	Env          string
	KafkaBrokers []string
	AuditTopic   string
	StatsURL     string
	TokenTTL     time.Duration
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:         getEnv("PORT", "8083"),
		Env:          getEnv("APP_ENV", "development"),
		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		AuditTopic:   getEnv("AUDIT_TOPIC", "audit.logs"),
		StatsURL:     getEnv("STATS_SERVICE_URL", "http://localhost:8087"),
		TokenTTL:     getDuration("TOKEN_TTL", 24*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
