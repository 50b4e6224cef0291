package services

import (
	"context"
	"errors"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/completion"
	"github.com/senyabanana/freight-service/internal/metrics"
	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"
	"github.com/senyabanana/freight-service/internal/utils"

	"go.uber.org/zap"
)

type OfferService struct {
	Repo      repository.OfferRepository
	Shipments repository.ShipmentRepository
	Fleet     repository.FleetRepository
	Cache     MarketplaceCache
	Logger    *zap.Logger
}

// NewOfferService создает новый экземпляр OfferService.
func NewOfferService(repo repository.OfferRepository, shipments repository.ShipmentRepository, fleet repository.FleetRepository,
	cache MarketplaceCache, logger *zap.Logger) *OfferService {
	return &OfferService{Repo: repo, Shipments: shipments, Fleet: fleet, Cache: cacheOrNoop(cache), Logger: logger}
}

func withLabel(o *models.Offer) *models.Offer {
	if o != nil {
		o.CompletionLabel = completion.LabelFor(o.Status == models.CompletedOffer, o.CompletedAt, o.Comments)
	}
	return o
}

func withLabels(offers []models.Offer) []models.Offer {
	for i := range offers {
		withLabel(&offers[i])
	}
	return offers
}

// CreateOffer создает предложение перевозчика по открытой отправке.
func (s *OfferService) CreateOffer(ctx context.Context, actor auth.Actor, req models.OfferRequest) (*models.Offer, error) {
	if err := requireRole(actor, models.TransporterRole); err != nil {
		return nil, err
	}
	if req.ShipmentID == "" {
		return nil, models.BadRequest("missing required field: shipmentId")
	}
	if req.Amount <= 0 {
		return nil, models.BadRequest("amount must be positive")
	}
	if completion.HasMarker(req.Comments) {
		return nil, models.BadRequest("comments must not start with a completion marker")
	}

	offer := models.Offer{
		ShipmentID:        req.ShipmentID,
		TransporterID:     actor.ID,
		Amount:            req.Amount,
		EstimatedDuration: req.EstimatedDuration,
		Comments:          req.Comments,
	}

	if req.VehicleID != "" {
		vehicle, err := s.Fleet.GetVehicle(ctx, req.VehicleID)
		if err != nil {
			return nil, repoError("create_offer", err, "vehicle not found", "vehicle conflict")
		}
		if vehicle.TransporterID != actor.ID {
			return nil, models.Forbidden("vehicle does not belong to the transporter")
		}
		offer.VehicleID = &vehicle.ID
	}

	created, err := s.Repo.CreateOffer(ctx, offer)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, models.Conflict("transporter already has a pending offer for this shipment")
	case err != nil:
		return nil, repoError("create_offer", err, "shipment not found", "shipment is not open for offers")
	}
	metrics.OffersCreatedTotal.Inc()
	return withLabel(created), nil
}

// GetMyOffers возвращает предложения перевозчика.
func (s *OfferService) GetMyOffers(ctx context.Context, actor auth.Actor, status, limitStr, offsetStr string) ([]models.Offer, error) {
	if err := requireRole(actor, models.TransporterRole); err != nil {
		return nil, err
	}
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.BadRequest(err.Error())
	}
	st := models.OfferStatus(status)
	if !validOfferStatus(st) {
		return nil, models.BadRequest("invalid status")
	}
	offers, err := s.Repo.GetTransporterOffers(ctx, actor.ID, st, limit, offset)
	if err != nil {
		return nil, repoError("list_offers", err, "offers not found", "offers conflict")
	}
	return withLabels(offers), nil
}

// GetShipmentOffers возвращает предложения по отправке её владельцу.
func (s *OfferService) GetShipmentOffers(ctx context.Context, actor auth.Actor, shipmentId string) ([]models.Offer, error) {
	if _, err := s.ownedShipment(ctx, actor, shipmentId); err != nil {
		return nil, err
	}
	offers, err := s.Repo.GetShipmentOffers(ctx, shipmentId)
	if err != nil {
		return nil, repoError("list_offers", err, "offers not found", "offers conflict")
	}
	return withLabels(offers), nil
}

func (s *OfferService) ownedShipment(ctx context.Context, actor auth.Actor, shipmentId string) (*models.Shipment, error) {
	shipment, err := s.Shipments.GetShipment(ctx, shipmentId)
	if err != nil {
		return nil, repoError("get_shipment", err, "shipment not found", "shipment conflict")
	}
	if actor.Is(models.AdminRole) {
		return shipment, nil
	}
	if !actor.Is(models.ClientRole) || shipment.ClientID != actor.ID {
		return nil, models.Forbidden("user is not the owner of the shipment")
	}
	return shipment, nil
}

// offerForOwner загружает предложение и проверяет, что пользователь - владелец отправки.
func (s *OfferService) offerForOwner(ctx context.Context, actor auth.Actor, offerId string) (*models.Offer, *models.Shipment, error) {
	if err := requireRole(actor, models.ClientRole); err != nil {
		return nil, nil, err
	}
	offer, err := s.Repo.GetOffer(ctx, offerId)
	if err != nil {
		return nil, nil, repoError("get_offer", err, "offer not found", "offer conflict")
	}
	shipment, err := s.ownedShipment(ctx, actor, offer.ShipmentID)
	if err != nil {
		return nil, nil, err
	}
	return offer, shipment, nil
}

// AcceptOffer принимает предложение и бронирует отправку. Повторное принятие того же
// предложения возвращает его без изменений; принятие второго предложения - 409.
func (s *OfferService) AcceptOffer(ctx context.Context, actor auth.Actor, offerId string) (*models.Offer, error) {
	offer, _, err := s.offerForOwner(ctx, actor, offerId)
	if err != nil {
		return nil, err
	}
	if offer.Status.Holds() {
		return withLabel(offer), nil
	}
	if !CanMoveOffer(offer.Status, models.AcceptedOffer) {
		return nil, models.Conflict("offer is " + string(offer.Status) + " and cannot be accepted")
	}

	accepted, err := s.Repo.AcceptOffer(ctx, offerId)
	if err != nil {
		return nil, repoError("accept_offer", err, "offer not found", "shipment already has an accepted offer or is not pending")
	}
	metrics.OffersAcceptedTotal.Inc()
	invalidate(ctx, s.Cache, s.Logger)
	s.Logger.Info("offer accepted", zap.String("offer_id", accepted.ID), zap.String("shipment_id", accepted.ShipmentID))
	return withLabel(accepted), nil
}

// RejectOffer отклоняет ожидающее предложение.
func (s *OfferService) RejectOffer(ctx context.Context, actor auth.Actor, offerId string) (*models.Offer, error) {
	return s.move(ctx, actor, offerId, models.RejectedOffer, "reject_offer")
}

// PayOffer отмечает принятое предложение оплаченным.
func (s *OfferService) PayOffer(ctx context.Context, actor auth.Actor, offerId string) (*models.Offer, error) {
	return s.move(ctx, actor, offerId, models.PaidOffer, "pay_offer")
}

func (s *OfferService) move(ctx context.Context, actor auth.Actor, offerId string, to models.OfferStatus, op string) (*models.Offer, error) {
	offer, _, err := s.offerForOwner(ctx, actor, offerId)
	if err != nil {
		return nil, err
	}
	if offer.Status == to {
		return withLabel(offer), nil
	}
	if !CanMoveOffer(offer.Status, to) {
		return nil, models.Conflict("offer is " + string(offer.Status) + " and cannot become " + string(to))
	}
	updated, err := s.Repo.UpdateOfferStatus(ctx, offerId, offer.Status, to)
	if err != nil {
		return nil, repoError(op, err, "offer not found", "offer status was changed concurrently")
	}
	return withLabel(updated), nil
}

// CompleteOffer завершает оплаченную перевозку; доступно владельцу отправки и перевозчику.
func (s *OfferService) CompleteOffer(ctx context.Context, actor auth.Actor, offerId string) (*models.Offer, error) {
	offer, err := s.Repo.GetOffer(ctx, offerId)
	if err != nil {
		return nil, repoError("complete_offer", err, "offer not found", "offer conflict")
	}

	switch actor.Role {
	case models.TransporterRole:
		if offer.TransporterID != actor.ID {
			return nil, models.Forbidden("user is not the transporter of the offer")
		}
	case models.ClientRole, models.AdminRole:
		if _, err := s.ownedShipment(ctx, actor, offer.ShipmentID); err != nil {
			return nil, err
		}
	default:
		return nil, models.Forbidden("role is not allowed to perform this action")
	}

	if offer.Status == models.CompletedOffer {
		return withLabel(offer), nil
	}
	if !CanMoveOffer(offer.Status, models.CompletedOffer) {
		return nil, models.Conflict("only a paid offer can be completed")
	}

	completed, err := s.Repo.CompleteOffer(ctx, offerId)
	if err != nil {
		return nil, repoError("complete_offer", err, "offer not found", "offer status was changed concurrently")
	}
	return withLabel(completed), nil
}
