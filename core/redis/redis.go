package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Config holds configuration for the Redis connection.
type Config struct {
	// Host is the Redis host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the Redis port.
	Port int `mapstructure:"port" default:"6379"`
	// Password is the Redis password, empty when auth is disabled.
	Password string `mapstructure:"password" default:""`
	// DB is the Redis logical database index.
	DB int `mapstructure:"db" default:"0"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}

// Connect establishes a Redis connection and verifies it with a ping.
// The same connection backs the invalidation bus, the leaderboards and the
// shared (stateless-mode) caches.
func Connect(cfg Config) (*goredis.Client, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
