package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds environment-based settings
type Config struct {
	Environment   string `envconfig:"APP_ENV" default:"development"`
	ServerAddress string `envconfig:"SERVER_ADDRESS" default:":8080"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`

	StoreDriver    string `envconfig:"STORE_DRIVER" default:"postgres"`
	DatabaseURL    string `envconfig:"DATABASE_URL"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"./migrations"`

	RedisAddress   string        `envconfig:"REDIS_ADDRESS"`
	RedisUsername  string        `envconfig:"REDIS_USERNAME"`
	RedisPassword  string        `envconfig:"REDIS_PASSWORD"`
	CourseCacheTTL time.Duration `envconfig:"COURSE_CACHE_TTL" default:"30s"`

	MQTTBrokerURL string `envconfig:"MQTT_BROKER_URL"`
	MQTTClientID  string `envconfig:"MQTT_CLIENT_ID" default:"course-catalog"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env vars: %w", err)
	}

	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required")
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	return &cfg, nil
}
