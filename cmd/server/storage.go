package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/coursecatalog/internal/config"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/db"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/mqtt"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/redis"
)

// InitStore selects and returns the configured store backend
func InitStore(cfg *config.Config) (db.Store, func()) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return db.NewMemoryStore(), func() {}
	}

	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	log.Info().Str("migrations", cfg.MigrationsPath).Msg("using postgres store")
	return db.NewStore(db.DB), func() {
		if err := db.DB.Close(); err != nil {
			log.Error().Err(err).Msg("closing database")
		}
	}
}

// InitCache returns the Redis course cache, or a no-op cache when Redis is not
// configured or unreachable.
func InitCache(cfg *config.Config) (redis.Cache, func()) {
	if cfg.RedisAddress == "" {
		return redis.Noop{}, func() {}
	}

	client := redis.InitRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("address", cfg.RedisAddress).Msg("redis unreachable, course cache disabled")
		_ = client.Close()
		return redis.Noop{}, func() {}
	}

	log.Info().Str("address", cfg.RedisAddress).Dur("ttl", cfg.CourseCacheTTL).Msg("course cache enabled")
	return client, func() { _ = client.Close() }
}

// InitEvents returns the MQTT course event publisher, or a no-op publisher when
// no broker is configured or the broker refuses the connection.
func InitEvents(cfg *config.Config) (mqtt.Publisher, func()) {
	if cfg.MQTTBrokerURL == "" {
		return mqtt.Noop{}, func() {}
	}

	client, err := mqtt.Connect(cfg.MQTTBrokerURL, cfg.MQTTClientID)
	if err != nil {
		log.Warn().Err(err).Msg("course events disabled")
		return mqtt.Noop{}, func() {}
	}
	return client, client.Close
}
