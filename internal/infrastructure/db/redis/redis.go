// Package redis backs the verification-mail resend throttle. It is the only
// optional store in the AltarMaker API: without it the server still runs,
// resends are just unthrottled.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/altarmaker/altarmaker-api/internal/infrastructure/config"
)

const pingTimeout = 5 * time.Second

// Connect initialises the client from REDIS_ADDR/REDIS_DB and validates
// connectivity with a ping. Callers downgrade a failure to a warning and run
// without throttling.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
