// Кэш выдачи маркетплейса в Redis. Инвалидация - через счётчик версии: старые ключи
// перестают читаться и истекают сами по TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	versionKey = "freight:marketplace:version"
	pageKeyFmt = "freight:marketplace:v%d:%s:%s:%d:%d"
)

// RedisMarketplaceCache кэширует страницы маркетплейса по ключу фильтра.
type RedisMarketplaceCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisMarketplaceCache(rdb *redis.Client, ttl time.Duration) *RedisMarketplaceCache {
	return &RedisMarketplaceCache{rdb: rdb, ttl: ttl}
}

func (c *RedisMarketplaceCache) version(ctx context.Context) (int64, error) {
	v, err := c.rdb.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func pageKey(version int64, f models.MarketplaceFilter) string {
	return fmt.Sprintf(pageKeyFmt, version, f.CargoType, f.Sort, f.Limit, f.Offset)
}

// Get возвращает страницу из кэша и версию, под которой её можно сохранить после промаха.
func (c *RedisMarketplaceCache) Get(ctx context.Context, f models.MarketplaceFilter) ([]models.Shipment, int64, bool, error) {
	v, err := c.version(ctx)
	if err != nil {
		return nil, 0, false, fmt.Errorf("read marketplace version: %w", err)
	}
	raw, err := c.rdb.Get(ctx, pageKey(v, f)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, v, false, nil
	}
	if err != nil {
		return nil, v, false, fmt.Errorf("read marketplace page: %w", err)
	}
	var shipments []models.Shipment
	if err := json.Unmarshal(raw, &shipments); err != nil {
		return nil, v, false, fmt.Errorf("decode marketplace page: %w", err)
	}
	return shipments, v, true, nil
}

// Set сохраняет страницу под версией, прочитанной в Get. Если версия успела смениться,
// страница уже устарела и не пишется.
func (c *RedisMarketplaceCache) Set(ctx context.Context, f models.MarketplaceFilter, version int64, shipments []models.Shipment) error {
	current, err := c.version(ctx)
	if err != nil {
		return fmt.Errorf("read marketplace version: %w", err)
	}
	if current != version {
		return nil
	}
	raw, err := json.Marshal(shipments)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, pageKey(version, f), raw, c.ttl).Err()
}

// Invalidate делает все закэшированные страницы недействительными.
func (c *RedisMarketplaceCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, versionKey).Err()
}
