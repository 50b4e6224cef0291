package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/metrics"
	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"

	"go.uber.org/zap"
)

// MarketplaceCache - кэш выдачи маркетплейса.
type MarketplaceCache interface {
	Get(ctx context.Context, filter models.MarketplaceFilter) (page []models.Shipment, version int64, ok bool, err error)
	Set(ctx context.Context, filter models.MarketplaceFilter, version int64, shipments []models.Shipment) error
	Invalidate(ctx context.Context) error
}

// noopCache используется, когда Redis не настроен.
type noopCache struct{}

func (noopCache) Get(context.Context, models.MarketplaceFilter) ([]models.Shipment, int64, bool, error) {
	return nil, 0, false, nil
}
func (noopCache) Set(context.Context, models.MarketplaceFilter, int64, []models.Shipment) error {
	return nil
}
func (noopCache) Invalidate(context.Context) error { return nil }

func cacheOrNoop(c MarketplaceCache) MarketplaceCache {
	if c == nil {
		return noopCache{}
	}
	return c
}

// invalidate сбрасывает кэш маркетплейса; ошибка только логируется, записи истекут по TTL.
func invalidate(ctx context.Context, cache MarketplaceCache, logger *zap.Logger) {
	if err := cache.Invalidate(ctx); err != nil {
		logger.Warn("failed to invalidate marketplace cache", zap.Error(err))
	}
}

// repoError переводит ошибку репозитория в ответ для клиента.
func repoError(op string, err error, notFound, conflict string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return models.NotFound(notFound)
	case errors.Is(err, repository.ErrConflict), errors.Is(err, repository.ErrDuplicate):
		return models.Conflict(conflict)
	case errors.Is(err, context.DeadlineExceeded):
		metrics.OperationErrorsTotal.WithLabelValues(op).Inc()
		return models.NewErrorResponse(http.StatusServiceUnavailable, "request timed out")
	}
	metrics.OperationErrorsTotal.WithLabelValues(op).Inc()
	return err
}

func requireRole(actor auth.Actor, roles ...models.Role) error {
	for _, r := range roles {
		if actor.Role == r {
			return nil
		}
	}
	return models.Forbidden("role is not allowed to perform this action")
}

func clock(now func() time.Time) func() time.Time {
	if now == nil {
		return func() time.Time { return time.Now().UTC() }
	}
	return now
}
