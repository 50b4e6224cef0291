package services

import (
	"context"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"
	"github.com/senyabanana/freight-service/internal/utils"

	"go.uber.org/zap"
)

var marketplaceSorts = []string{"", "newest", "price", "weight"}

type MarketplaceService struct {
	Repo   repository.ShipmentRepository
	Cache  MarketplaceCache
	Logger *zap.Logger
}

// NewMarketplaceService создает новый экземпляр MarketplaceService.
func NewMarketplaceService(repo repository.ShipmentRepository, cache MarketplaceCache, logger *zap.Logger) *MarketplaceService {
	return &MarketplaceService{Repo: repo, Cache: cacheOrNoop(cache), Logger: logger}
}

// List возвращает открытые отправки; страницы кэшируются до ближайшего изменения.
func (s *MarketplaceService) List(ctx context.Context, actor auth.Actor, cargoType, sort, limitStr, offsetStr string) ([]models.Shipment, error) {
	if err := requireRole(actor, models.TransporterRole, models.AdminRole); err != nil {
		return nil, err
	}
	// Маркетплейс по умолчанию отдаёт максимальную страницу.
	limit, offset, err := utils.ParseLimitOffsetDefault(limitStr, offsetStr, utils.MaxLimit)
	if err != nil {
		return nil, models.BadRequest(err.Error())
	}
	if !utils.Contains(marketplaceSorts, sort) {
		return nil, models.BadRequest("invalid sort. Must be one of newest, price, weight")
	}
	cargo := models.CargoType(cargoType)
	if cargo != "" && !utils.Contains(cargoTypes, cargo) {
		return nil, models.BadRequest("invalid cargo type")
	}

	filter := models.MarketplaceFilter{CargoType: cargo, Sort: sort, Limit: limit, Offset: offset}

	// Страница сохраняется только под версией, прочитанной до запроса в БД:
	// инвалидация между чтением и записью делает её недоступной.
	cached, version, ok, cacheErr := s.Cache.Get(ctx, filter)
	if cacheErr != nil {
		s.Logger.Warn("marketplace cache read failed", zap.Error(cacheErr))
	}
	if ok {
		return cached, nil
	}

	shipments, err := s.Repo.ListMarketplace(ctx, filter)
	if err != nil {
		return nil, repoError("marketplace", err, "shipments not found", "marketplace conflict")
	}
	if cacheErr == nil {
		if err := s.Cache.Set(ctx, filter, version, shipments); err != nil {
			s.Logger.Warn("marketplace cache write failed", zap.Error(err))
		}
	}
	return shipments, nil
}
