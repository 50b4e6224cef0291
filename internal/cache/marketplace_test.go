package cache

import (
	"context"
	"testing"
	"time"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisMarketplaceCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisMarketplaceCache(rdb, time.Minute), mr
}

func TestRedisMarketplaceCache_GetSet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	filter := models.MarketplaceFilter{CargoType: models.FragileCargo, Sort: "price", Limit: 10}

	_, version, ok, err := c.Get(ctx, filter)
	require.NoError(t, err)
	assert.False(t, ok)

	page := []models.Shipment{{ID: "s1", Status: models.PendingShipment}}
	require.NoError(t, c.Set(ctx, filter, version, page))

	got, _, ok, err := c.Get(ctx, filter)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "s1", got[0].ID)

	_, _, ok, err = c.Get(ctx, models.MarketplaceFilter{Sort: "price", Limit: 10})
	require.NoError(t, err)
	assert.False(t, ok, "other filter is a separate page")
}

func TestRedisMarketplaceCache_InvalidateDropsPages(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	filter := models.MarketplaceFilter{Limit: 50}

	_, version, _, err := c.Get(ctx, filter)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, filter, version, []models.Shipment{{ID: "s1"}}))
	require.NoError(t, c.Invalidate(ctx))

	_, _, ok, err := c.Get(ctx, filter)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisMarketplaceCache_StaleFillIsDropped(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	filter := models.MarketplaceFilter{Limit: 50}

	_, version, ok, err := c.Get(ctx, filter)
	require.NoError(t, err)
	require.False(t, ok)

	// Между промахом и записью предложение по s1 приняли.
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Set(ctx, filter, version, []models.Shipment{{ID: "s1", Status: models.PendingShipment}}))

	got, _, ok, err := c.Get(ctx, filter)
	require.NoError(t, err)
	assert.False(t, ok, "page read before invalidation must not be served: %v", got)
}

func TestRedisMarketplaceCache_PagesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	filter := models.MarketplaceFilter{Limit: 50}

	_, version, _, err := c.Get(ctx, filter)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, filter, version, []models.Shipment{{ID: "s1"}}))

	mr.FastForward(2 * time.Minute)

	_, _, ok, err := c.Get(ctx, filter)
	require.NoError(t, err)
	assert.False(t, ok)
}
