package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	App struct {
		Port            string
		DataPath        string
		DeliveryFee     float64
		ProcessingDelay time.Duration
		SnowflakeNode   int64
		PurgeSchedule   string
		AllowedOrigins  []string
	}
	Redis struct {
		Addr string
		TTL  time.Duration
	}
	Kafka struct {
		Brokers []string
		Topic   string
	}
}

// Load reads the optional .env file at path, then the environment.
// Everything has a default: with no configuration at all the service
// runs on :8080 with an in-memory store.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}

	cfg.App.Port = os.Getenv("APP_PORT")
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}

	cfg.App.DataPath = os.Getenv("APP_DATA_PATH")

	cfg.App.DeliveryFee = 5.99
	if v := os.Getenv("APP_DELIVERY_FEE"); v != "" {
		cfg.App.DeliveryFee = cast.ToFloat64(v)
	}

	cfg.App.ProcessingDelay = 1500 * time.Millisecond
	if v := os.Getenv("APP_PROCESSING_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid APP_PROCESSING_DELAY: %w", err)
		}
		cfg.App.ProcessingDelay = d
	}

	cfg.App.SnowflakeNode = cast.ToInt64(os.Getenv("APP_NODE_ID"))

	cfg.App.PurgeSchedule = os.Getenv("APP_DEMO_PURGE_SCHEDULE")
	if cfg.App.PurgeSchedule == "" {
		cfg.App.PurgeSchedule = "0 3 * * *"
	}

	cfg.App.AllowedOrigins = []string{"*"}
	if v := os.Getenv("APP_ALLOWED_ORIGINS"); v != "" {
		cfg.App.AllowedOrigins = strings.Split(v, ",")
	}

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.TTL = 30 * 24 * time.Hour
	if v := os.Getenv("REDIS_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_TTL: %w", err)
		}
		cfg.Redis.TTL = d
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "storefront.orders"
	}

	return cfg, nil
}
