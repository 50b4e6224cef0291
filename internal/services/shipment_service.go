package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/metrics"
	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/pricing"
	"github.com/senyabanana/freight-service/internal/repository"
	"github.com/senyabanana/freight-service/internal/utils"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

var cargoTypes = []models.CargoType{
	models.GeneralCargo, models.FragileCargo, models.PerishableCargo, models.HazardousCargo,
}

type ShipmentService struct {
	Repo   repository.ShipmentRepository
	Offers repository.OfferRepository
	Cache  MarketplaceCache
	Logger *zap.Logger
}

// NewShipmentService создает новый экземпляр ShipmentService.
func NewShipmentService(repo repository.ShipmentRepository, offers repository.OfferRepository, cache MarketplaceCache, logger *zap.Logger) *ShipmentService {
	return &ShipmentService{Repo: repo, Offers: offers, Cache: cacheOrNoop(cache), Logger: logger}
}

// CreateShipment проверяет заявку, считает цену и сохраняет отправку.
func (s *ShipmentService) CreateShipment(ctx context.Context, actor auth.Actor, req models.ShipmentRequest) (*models.Shipment, error) {
	if err := requireRole(actor, models.ClientRole); err != nil {
		return nil, err
	}

	shipment := models.Shipment{
		ClientID:            actor.ID,
		Title:               strings.TrimSpace(req.Title),
		Description:         req.Description,
		PickupAddress:       strings.TrimSpace(req.PickupAddress),
		PickupLat:           req.PickupLat,
		PickupLng:           req.PickupLng,
		DeliveryAddress:     strings.TrimSpace(req.DeliveryAddress),
		DeliveryLat:         req.DeliveryLat,
		DeliveryLng:         req.DeliveryLng,
		WeightKg:            req.WeightKg,
		VolumeM3:            req.VolumeM3,
		LengthCm:            req.LengthCm,
		WidthCm:             req.WidthCm,
		HeightCm:            req.HeightCm,
		Pieces:              req.Pieces,
		CargoType:           req.CargoType,
		Packaging:           req.Packaging,
		PickupTime:          req.PickupTime,
		DeliveryTime:        req.DeliveryTime,
		SpecialRequirements: req.SpecialRequirements,
		InsuranceValue:      req.InsuranceValue,
	}

	var err error
	if shipment.PickupDate, err = parseDate(req.PickupDate, "pickupDate"); err != nil {
		return nil, err
	}
	if shipment.DeliveryDate, err = parseDate(req.DeliveryDate, "deliveryDate"); err != nil {
		return nil, err
	}
	if err := normalizeShipment(&shipment); err != nil {
		return nil, err
	}

	created, err := s.Repo.CreateShipment(ctx, shipment)
	if err != nil {
		return nil, repoError("create_shipment", err, "shipment not found", "shipment already exists")
	}
	metrics.ShipmentsCreatedTotal.Inc()
	invalidate(ctx, s.Cache, s.Logger)
	return created, nil
}

// normalizeShipment проверяет обязательные поля и пересчитывает цену.
func normalizeShipment(sh *models.Shipment) error {
	if sh.Title == "" || sh.PickupAddress == "" || sh.DeliveryAddress == "" {
		return models.BadRequest("missing required fields: title, pickupAddress, deliveryAddress")
	}
	if !validPoint(sh.PickupLat, sh.PickupLng) || !validPoint(sh.DeliveryLat, sh.DeliveryLng) {
		return models.BadRequest("coordinates are out of range")
	}
	if sh.WeightKg <= 0 {
		return models.BadRequest("weightKg must be positive")
	}
	if sh.VolumeM3 < 0 || sh.LengthCm < 0 || sh.WidthCm < 0 || sh.HeightCm < 0 || sh.InsuranceValue < 0 {
		return models.BadRequest("dimensions and insurance value must not be negative")
	}
	if sh.CargoType == "" {
		sh.CargoType = models.GeneralCargo
	}
	if !utils.Contains(cargoTypes, sh.CargoType) {
		return models.BadRequest("invalid cargo type. Must be one of general, fragile, perishable, hazardous")
	}
	if sh.Pieces <= 0 {
		sh.Pieces = 1
	}
	if sh.PickupDate != nil && sh.DeliveryDate != nil && sh.PickupDate.After(*sh.DeliveryDate) {
		return models.BadRequest("pickupDate must not be after deliveryDate")
	}

	est := pricing.ForShipment(sh)
	sh.EstimatedPrice = est.Price
	sh.PriceFormula = est.FormulaVersion
	return nil
}

// validPoint отбрасывает и (0, 0): так приходят незаполненные координаты.
func validPoint(lat, lng float64) bool {
	return pricing.Point{Lat: lat, Lng: lng}.Valid() && !(lat == 0 && lng == 0)
}

func parseDate(raw, field string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, models.BadRequest("invalid " + field + ", expected YYYY-MM-DD")
	}
	return &t, nil
}

// GetClientShipments возвращает отправки клиента.
func (s *ShipmentService) GetClientShipments(ctx context.Context, actor auth.Actor, status, limitStr, offsetStr string) ([]models.Shipment, error) {
	if err := requireRole(actor, models.ClientRole); err != nil {
		return nil, err
	}
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.BadRequest(err.Error())
	}
	st := models.ShipmentStatus(status)
	if !validShipmentStatus(st) {
		return nil, models.BadRequest("invalid status")
	}
	shipments, err := s.Repo.GetClientShipments(ctx, actor.ID, st, limit, offset)
	if err != nil {
		return nil, repoError("list_shipments", err, "shipments not found", "shipments conflict")
	}
	return shipments, nil
}

// GetShipment возвращает отправку, если пользователь имеет к ней доступ.
func (s *ShipmentService) GetShipment(ctx context.Context, actor auth.Actor, shipmentId string) (*models.Shipment, error) {
	shipment, err := s.Repo.GetShipment(ctx, shipmentId)
	if err != nil {
		return nil, repoError("get_shipment", err, "shipment not found", "shipment conflict")
	}

	switch actor.Role {
	case models.AdminRole:
		return shipment, nil
	case models.ClientRole:
		if shipment.ClientID == actor.ID {
			return shipment, nil
		}
	case models.TransporterRole:
		holder, err := s.Offers.GetHolder(ctx, shipment.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if holder == nil && shipment.Status == models.PendingShipment {
			return shipment, nil
		}
		if holder != nil && holder.TransporterID == actor.ID {
			return shipment, nil
		}
	}
	return nil, models.Forbidden("shipment is not available to this user")
}

// ownedPending загружает отправку владельца и проверяет, что она ещё ждёт перевозчика.
func (s *ShipmentService) ownedPending(ctx context.Context, actor auth.Actor, shipmentId string) (*models.Shipment, error) {
	if err := requireRole(actor, models.ClientRole); err != nil {
		return nil, err
	}
	shipment, err := s.Repo.GetShipment(ctx, shipmentId)
	if err != nil {
		return nil, repoError("get_shipment", err, "shipment not found", "shipment conflict")
	}
	if shipment.ClientID != actor.ID {
		return nil, models.Forbidden("user is not the owner of the shipment")
	}
	if shipment.Status != models.PendingShipment {
		return nil, models.Conflict("shipment can only be changed while pending")
	}
	return shipment, nil
}

// EditShipment применяет частичное изменение к ожидающей отправке.
func (s *ShipmentService) EditShipment(ctx context.Context, actor auth.Actor, shipmentId string, patch models.ShipmentPatch) (*models.Shipment, error) {
	current, err := s.ownedPending(ctx, actor, shipmentId)
	if err != nil {
		return nil, err
	}

	next, err := applyPatch(*current, patch)
	if err != nil {
		return nil, err
	}
	if err := normalizeShipment(&next); err != nil {
		return nil, err
	}

	updated, err := s.Repo.EditShipment(ctx, next, current.Version)
	if err != nil {
		return nil, repoError("edit_shipment", err, "shipment not found", "shipment was changed concurrently or is no longer pending")
	}
	invalidate(ctx, s.Cache, s.Logger)
	return updated, nil
}

// applyPatch возвращает копию отправки с заполненными полями патча.
func applyPatch(sh models.Shipment, p models.ShipmentPatch) (models.Shipment, error) {
	var err error
	if p.Title != nil {
		sh.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		sh.Description = *p.Description
	}
	if p.PickupAddress != nil {
		sh.PickupAddress = strings.TrimSpace(*p.PickupAddress)
	}
	if p.PickupLat != nil {
		sh.PickupLat = *p.PickupLat
	}
	if p.PickupLng != nil {
		sh.PickupLng = *p.PickupLng
	}
	if p.DeliveryAddress != nil {
		sh.DeliveryAddress = strings.TrimSpace(*p.DeliveryAddress)
	}
	if p.DeliveryLat != nil {
		sh.DeliveryLat = *p.DeliveryLat
	}
	if p.DeliveryLng != nil {
		sh.DeliveryLng = *p.DeliveryLng
	}
	if p.WeightKg != nil {
		sh.WeightKg = *p.WeightKg
	}
	if p.VolumeM3 != nil {
		sh.VolumeM3 = *p.VolumeM3
	}
	if p.LengthCm != nil {
		sh.LengthCm = *p.LengthCm
	}
	if p.WidthCm != nil {
		sh.WidthCm = *p.WidthCm
	}
	if p.HeightCm != nil {
		sh.HeightCm = *p.HeightCm
	}
	if p.PickupDate != nil {
		if sh.PickupDate, err = parseDate(*p.PickupDate, "pickupDate"); err != nil {
			return sh, err
		}
	}
	if p.PickupTime != nil {
		sh.PickupTime = *p.PickupTime
	}
	if p.DeliveryDate != nil {
		if sh.DeliveryDate, err = parseDate(*p.DeliveryDate, "deliveryDate"); err != nil {
			return sh, err
		}
	}
	if p.DeliveryTime != nil {
		sh.DeliveryTime = *p.DeliveryTime
	}
	if p.Pieces != nil {
		sh.Pieces = *p.Pieces
	}
	if p.CargoType != nil {
		sh.CargoType = models.CargoType(*p.CargoType)
	}
	if p.Packaging != nil {
		sh.Packaging = *p.Packaging
	}
	if p.SpecialRequirements != nil {
		sh.SpecialRequirements = *p.SpecialRequirements
	}
	if p.InsuranceValue != nil {
		sh.InsuranceValue = *p.InsuranceValue
	}
	return sh, nil
}

// RollbackShipment возвращает отправку к сохранённой версии.
func (s *ShipmentService) RollbackShipment(ctx context.Context, actor auth.Actor, shipmentId, versionStr string) (*models.Shipment, error) {
	version, err := strconv.Atoi(versionStr)
	if err != nil || version <= 0 {
		return nil, models.BadRequest("invalid version, must be a positive integer")
	}
	current, err := s.ownedPending(ctx, actor, shipmentId)
	if err != nil {
		return nil, err
	}
	if version >= current.Version {
		return nil, models.BadRequest("version must be lower than the current one")
	}

	updated, err := s.Repo.RollbackShipment(ctx, shipmentId, version)
	if err != nil {
		return nil, repoError("rollback_shipment", err, "shipment version not found", "shipment is no longer pending")
	}
	invalidate(ctx, s.Cache, s.Logger)
	return updated, nil
}

// CancelShipment отменяет ожидающую отправку вместе с открытыми предложениями и запросами.
func (s *ShipmentService) CancelShipment(ctx context.Context, actor auth.Actor, shipmentId string) (*models.Shipment, error) {
	current, err := s.ownedPending(ctx, actor, shipmentId)
	if err != nil {
		return nil, err
	}
	if !CanMoveShipment(current.Status, models.CancelledShipment) {
		return nil, models.Conflict("shipment cannot be cancelled")
	}

	cancelled, err := s.Repo.CancelShipment(ctx, shipmentId)
	if err != nil {
		return nil, repoError("cancel_shipment", err, "shipment not found", "shipment is no longer pending")
	}
	invalidate(ctx, s.Cache, s.Logger)
	return cancelled, nil
}

// SetTracking включает или выключает отслеживание; доступно перевозчику с принятым предложением.
func (s *ShipmentService) SetTracking(ctx context.Context, actor auth.Actor, shipmentId, enabledStr string) (*models.TrackingState, error) {
	if err := requireRole(actor, models.TransporterRole); err != nil {
		return nil, err
	}
	enabled, err := strconv.ParseBool(enabledStr)
	if err != nil {
		return nil, models.BadRequest("enabled must be true or false")
	}

	holder, err := s.Offers.GetHolder(ctx, shipmentId)
	if err != nil {
		return nil, repoError("set_tracking", err, "shipment has no accepted offer", "tracking conflict")
	}
	if holder.TransporterID != actor.ID {
		return nil, models.Forbidden("user does not hold the accepted offer")
	}
	if holder.Status != models.AcceptedOffer && holder.Status != models.PaidOffer {
		return nil, models.Conflict("tracking can only be changed for an active job")
	}

	state, err := s.Repo.SetTracking(ctx, shipmentId, enabled)
	if err != nil {
		return nil, repoError("set_tracking", err, "shipment not found", "shipment is not booked")
	}
	return state, nil
}

// GetTracking возвращает флаги отслеживания только для видимых пользователю отправок.
func (s *ShipmentService) GetTracking(ctx context.Context, actor auth.Actor, rawIds string) ([]models.TrackingState, error) {
	ids := utils.SplitIDs(rawIds)
	if len(ids) == 0 {
		return nil, models.BadRequest("ids query parameter is required")
	}
	if len(ids) > utils.MaxLimit {
		return nil, models.BadRequest("too many ids")
	}

	states, err := s.Repo.GetTracking(ctx, ids)
	if err != nil {
		return nil, repoError("get_tracking", err, "shipments not found", "tracking conflict")
	}
	return FilterVisibleTracking(actor, states), nil
}

// FilterVisibleTracking оставляет записи, которые пользователь вправе видеть.
func FilterVisibleTracking(actor auth.Actor, states []models.TrackingState) []models.TrackingState {
	visible := make([]models.TrackingState, 0, len(states))
	for _, st := range states {
		switch {
		case actor.Is(models.AdminRole):
		case actor.Is(models.ClientRole) && st.ClientID == actor.ID:
		case actor.Is(models.TransporterRole) && st.TransporterID != nil && *st.TransporterID == actor.ID:
		default:
			continue
		}
		visible = append(visible, st)
	}
	return visible
}
