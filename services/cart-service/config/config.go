package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	MongoURI      string
	MongoDatabase string
	RedisURL      string
	CartCacheTTL  time.Duration
	KafkaBrokers  []string
	AuditTopic    string
	StatsURL      string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          getEnv("PORT", "8081"),
		Env:           getEnv("APP_ENV", "development"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "cartpayment"),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379"),
		CartCacheTTL:  time.Hour * 24 * 7,
		KafkaBrokers:  strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		AuditTopic:    getEnv("AUDIT_TOPIC", "audit.logs"),
		StatsURL:      getEnv("STATS_URL", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
