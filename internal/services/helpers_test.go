package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/models"

	"github.com/stretchr/testify/require"
)

var (
	client      = auth.Actor{ID: "11111111-1111-1111-1111-111111111111", Role: models.ClientRole}
	otherClient = auth.Actor{ID: "22222222-2222-2222-2222-222222222222", Role: models.ClientRole}
	transporter = auth.Actor{ID: "33333333-3333-3333-3333-333333333333", Role: models.TransporterRole}
	admin       = auth.Actor{ID: "44444444-4444-4444-4444-444444444444", Role: models.AdminRole}
)

// requireStatus проверяет, что err - ErrorResponse с нужным кодом.
func requireStatus(t *testing.T, err error, code int) {
	t.Helper()
	var resp *models.ErrorResponse
	require.True(t, errors.As(err, &resp), "expected ErrorResponse, got %v", err)
	require.Equal(t, code, resp.StatusCode, resp.Message)
}

// countingCache повторяет версионную схему Redis-кэша в памяти.
type countingCache struct {
	mu          sync.Mutex
	invalidated int
	version     int64
	pages       map[models.MarketplaceFilter][]models.Shipment
}

func newCountingCache() *countingCache {
	return &countingCache{pages: map[models.MarketplaceFilter][]models.Shipment{}}
}

func (c *countingCache) Get(_ context.Context, f models.MarketplaceFilter) ([]models.Shipment, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.pages[f]
	return s, c.version, ok, nil
}

func (c *countingCache) Set(_ context.Context, f models.MarketplaceFilter, version int64, s []models.Shipment) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if version == c.version {
		c.pages[f] = s
	}
	return nil
}

func (c *countingCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	c.version++
	c.pages = map[models.MarketplaceFilter][]models.Shipment{}
	return nil
}
