package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/medify/storefront/internal/checkout"
	"github.com/medify/storefront/internal/events"
	"github.com/medify/storefront/internal/janitor"
	"github.com/medify/storefront/internal/storage"
	"github.com/medify/storefront/internal/transport"
	"github.com/medify/storefront/pkg/config"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "storefront").Logger()

	log.Info().Msg("Storefront service starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer store.Close()

	numbers, err := checkout.NewNumberGenerator("ORD", cfg.App.SnowflakeNode)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create order number generator")
	}

	var publisher events.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		writer := &kafka.Writer{
			Addr:     kafka.TCP(cfg.Kafka.Brokers...),
			Topic:    cfg.Kafka.Topic,
			Balancer: &kafka.LeastBytes{},
		}
		defer writer.Close()
		publisher = events.NewKafkaPublisher(writer)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("Order events enabled")
	}

	j := janitor.New(store, cfg.App.PurgeSchedule)
	if err := j.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start janitor")
	}
	defer j.Stop()

	router := transport.NewRouter(transport.RouterOptions{
		Store:          store,
		Numbers:        numbers,
		Publisher:      publisher,
		DeliveryFee:    cfg.App.DeliveryFee,
		Delay:          cfg.App.ProcessingDelay,
		AllowedOrigins: cfg.App.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Server stopped")
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Using redis store")
		return storage.NewRedisStore(client, cfg.Redis.TTL), nil
	}

	if cfg.App.DataPath != "" {
		log.Info().Str("path", cfg.App.DataPath).Msg("Using bolt store")
		return storage.OpenBolt(cfg.App.DataPath)
	}

	log.Warn().Msg("No APP_DATA_PATH or REDIS_ADDR set, state will not survive restarts")
	return storage.NewMemoryStore(), nil
}
