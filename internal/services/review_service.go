package services

import (
	"context"
	"strings"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/metrics"
	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"
	"github.com/senyabanana/freight-service/internal/utils"
)

type ReviewService struct {
	Repo      repository.ReviewRepository
	Shipments repository.ShipmentRepository
	Offers    repository.OfferRepository
}

// NewReviewService создает новый экземпляр ReviewService.
func NewReviewService(repo repository.ReviewRepository, shipments repository.ShipmentRepository, offers repository.OfferRepository) *ReviewService {
	return &ReviewService{Repo: repo, Shipments: shipments, Offers: offers}
}

// CreateReview сохраняет отзыв клиента о перевозчике по завершённой отправке.
func (s *ReviewService) CreateReview(ctx context.Context, actor auth.Actor, req models.ReviewRequest) (*models.Review, error) {
	if err := requireRole(actor, models.ClientRole); err != nil {
		return nil, err
	}
	if req.ShipmentID == "" {
		return nil, models.BadRequest("missing required field: shipmentId")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, models.BadRequest("rating must be between 1 and 5")
	}

	shipment, err := s.Shipments.GetShipment(ctx, req.ShipmentID)
	if err != nil {
		return nil, repoError("create_review", err, "shipment not found", "shipment conflict")
	}
	if shipment.ClientID != actor.ID {
		return nil, models.Forbidden("user is not the owner of the shipment")
	}
	if shipment.Status != models.CompletedShipment {
		return nil, models.Conflict("only a completed shipment can be reviewed")
	}

	holder, err := s.Offers.GetHolder(ctx, shipment.ID)
	if err != nil {
		return nil, repoError("create_review", err, "shipment has no completed offer", "offer conflict")
	}
	if holder.Status != models.CompletedOffer {
		return nil, models.Conflict("only a completed shipment can be reviewed")
	}

	review, err := s.Repo.CreateReview(ctx, models.Review{
		ShipmentID:    shipment.ID,
		TransporterID: holder.TransporterID,
		ClientID:      actor.ID,
		Rating:        req.Rating,
		Comment:       strings.TrimSpace(req.Comment),
	})
	if err != nil {
		return nil, repoError("create_review", err, "shipment not found", "shipment has already been reviewed")
	}
	metrics.ReviewsCreatedTotal.Inc()
	return review, nil
}

// GetTransporterReviews возвращает отзывы перевозчика и среднюю оценку.
func (s *ReviewService) GetTransporterReviews(ctx context.Context, transporterId, limitStr, offsetStr string) (*models.TransporterReviews, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.BadRequest(err.Error())
	}
	reviews, err := s.Repo.GetTransporterReviews(ctx, transporterId, limit, offset)
	if err != nil {
		return nil, repoError("list_reviews", err, "transporter not found", "reviews conflict")
	}
	summary, err := s.Repo.GetRatingSummary(ctx, transporterId)
	if err != nil {
		return nil, repoError("list_reviews", err, "transporter not found", "reviews conflict")
	}
	return &models.TransporterReviews{Summary: summary, Reviews: reviews}, nil
}
