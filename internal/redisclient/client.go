// Клиент Redis: используется для кэша маркетплейса, идемпотентности, rate limit и push-канала.
package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/senyabanana/freight-service/internal/router/config"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

// New создаёт клиент Redis и проверяет соединение через Ping.
func New(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	cli := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := cli.Ping(pingCtx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return cli, nil
}
