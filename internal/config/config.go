// internal/config/config.go
package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	AMQPURL       string
	ScheduleTopic string
	LogLevel      string
	LogFormat     string
}

// Load reads .env when present and falls back to the OS environment.
// The returned bool reports whether a .env file was loaded.
func Load() (*Config, bool) {
	loaded := godotenv.Load() == nil

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		AMQPURL:       getEnv("AMQP_URL", ""),
		ScheduleTopic: getEnv("SCHEDULE_TOPIC", "campaign_scheduled"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
	}, loaded
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
