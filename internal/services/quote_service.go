package services

import (
	"context"
	"time"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/completion"
	"github.com/senyabanana/freight-service/internal/metrics"
	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"
	"github.com/senyabanana/freight-service/internal/utils"

	"go.uber.org/zap"
)

const DefaultQuoteTTL = 72 * time.Hour

type QuoteService struct {
	Repo      repository.QuoteRepository
	Shipments repository.ShipmentRepository
	Users     repository.UserRepository
	Cache     MarketplaceCache
	Logger    *zap.Logger
	TTL       time.Duration
	Now       func() time.Time
}

// NewQuoteService создает новый экземпляр QuoteService.
func NewQuoteService(repo repository.QuoteRepository, shipments repository.ShipmentRepository, users repository.UserRepository,
	cache MarketplaceCache, ttl time.Duration, logger *zap.Logger) *QuoteService {
	if ttl <= 0 {
		ttl = DefaultQuoteTTL
	}
	return &QuoteService{
		Repo:      repo,
		Shipments: shipments,
		Users:     users,
		Cache:     cacheOrNoop(cache),
		Logger:    logger,
		TTL:       ttl,
		Now:       clock(nil),
	}
}

// RequestQuote отправляет перевозчику запрос цены по своей отправке.
func (s *QuoteService) RequestQuote(ctx context.Context, actor auth.Actor, req models.QuoteRequestBody) (*models.QuoteRequest, error) {
	if err := requireRole(actor, models.ClientRole); err != nil {
		return nil, err
	}
	if req.ShipmentID == "" || req.TransporterID == "" {
		return nil, models.BadRequest("missing required fields: shipmentId, transporterId")
	}

	shipment, err := s.Shipments.GetShipment(ctx, req.ShipmentID)
	if err != nil {
		return nil, repoError("request_quote", err, "shipment not found", "shipment conflict")
	}
	if shipment.ClientID != actor.ID {
		return nil, models.Forbidden("user is not the owner of the shipment")
	}
	if shipment.Status != models.PendingShipment {
		return nil, models.Conflict("quotes can only be requested for a pending shipment")
	}

	transporter, err := s.Users.GetUserByID(ctx, req.TransporterID)
	if err != nil {
		return nil, repoError("request_quote", err, "transporter not found", "transporter conflict")
	}
	if transporter.Role != models.TransporterRole {
		return nil, models.BadRequest("quotes can only be requested from a transporter")
	}

	quote, err := s.Repo.CreateQuote(ctx, models.QuoteRequest{
		ShipmentID:    shipment.ID,
		ClientID:      actor.ID,
		TransporterID: transporter.ID,
		Message:       req.Message,
		ExpiresAt:     s.Now().Add(s.TTL),
	})
	if err != nil {
		return nil, repoError("request_quote", err, "shipment not found", "an open quote request to this transporter already exists")
	}
	metrics.QuotesRequestedTotal.Inc()
	return quote, nil
}

// GetMyQuotes возвращает отправленные (клиент) или полученные (перевозчик) запросы.
func (s *QuoteService) GetMyQuotes(ctx context.Context, actor auth.Actor, status, limitStr, offsetStr string) ([]models.QuoteRequest, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.BadRequest(err.Error())
	}
	st := models.QuoteStatus(status)
	if !validQuoteStatus(st) {
		return nil, models.BadRequest("invalid status")
	}

	var quotes []models.QuoteRequest
	switch actor.Role {
	case models.ClientRole:
		quotes, err = s.Repo.ListClientQuotes(ctx, actor.ID, st, limit, offset)
	case models.TransporterRole:
		quotes, err = s.Repo.ListTransporterQuotes(ctx, actor.ID, st, limit, offset)
	default:
		return nil, models.Forbidden("role is not allowed to perform this action")
	}
	if err != nil {
		return nil, repoError("list_quotes", err, "quotes not found", "quotes conflict")
	}
	return quotes, nil
}

// RespondQuote записывает цену перевозчика в ожидающий запрос.
func (s *QuoteService) RespondQuote(ctx context.Context, actor auth.Actor, quoteId string, resp models.QuoteResponse) (*models.QuoteRequest, error) {
	if err := requireRole(actor, models.TransporterRole); err != nil {
		return nil, err
	}
	if resp.Amount <= 0 {
		return nil, models.BadRequest("amount must be positive")
	}
	// Сообщение ответа становится комментарием предложения при принятии.
	if completion.HasMarker(resp.Message) {
		return nil, models.BadRequest("message must not start with a completion marker")
	}

	quote, err := s.Repo.GetQuote(ctx, quoteId)
	if err != nil {
		return nil, repoError("respond_quote", err, "quote request not found", "quote conflict")
	}
	if quote.TransporterID != actor.ID {
		return nil, models.Forbidden("quote request is addressed to another transporter")
	}
	if !CanMoveQuote(quote.Status, models.RespondedQuote) {
		return nil, models.Conflict("quote request is " + string(quote.Status))
	}
	now := s.Now()
	if !quote.ExpiresAt.After(now) {
		return nil, models.Conflict("quote request has expired")
	}

	updated, err := s.Repo.RespondQuote(ctx, quoteId, resp, now)
	if err != nil {
		return nil, repoError("respond_quote", err, "quote request not found", "quote request is no longer pending")
	}
	return updated, nil
}

func (s *QuoteService) ownedQuote(ctx context.Context, actor auth.Actor, quoteId string) (*models.QuoteRequest, error) {
	if err := requireRole(actor, models.ClientRole); err != nil {
		return nil, err
	}
	quote, err := s.Repo.GetQuote(ctx, quoteId)
	if err != nil {
		return nil, repoError("get_quote", err, "quote request not found", "quote conflict")
	}
	if quote.ClientID != actor.ID {
		return nil, models.Forbidden("user is not the owner of the quote request")
	}
	return quote, nil
}

// AcceptQuote принимает цену перевозчика: создаётся принятое предложение, отправка бронируется.
// Повторный вызов возвращает то же предложение.
func (s *QuoteService) AcceptQuote(ctx context.Context, actor auth.Actor, quoteId string) (*models.Offer, error) {
	quote, err := s.ownedQuote(ctx, actor, quoteId)
	if err != nil {
		return nil, err
	}
	if quote.Status == models.PendingQuote {
		return nil, models.Conflict("transporter has not responded yet")
	}
	if quote.Status != models.AcceptedQuote && !CanMoveQuote(quote.Status, models.AcceptedQuote) {
		return nil, models.Conflict("quote request is " + string(quote.Status))
	}

	offer, err := s.Repo.AcceptQuote(ctx, quoteId, s.Now())
	if err != nil {
		return nil, repoError("accept_quote", err, "quote request not found", "quote expired or shipment is no longer pending")
	}
	if quote.Status != models.AcceptedQuote {
		metrics.OffersAcceptedTotal.Inc()
		invalidate(ctx, s.Cache, s.Logger)
		s.Logger.Info("quote accepted", zap.String("quote_id", quoteId), zap.String("offer_id", offer.ID))
	}
	return withLabel(offer), nil
}

// RejectQuote отклоняет открытый запрос.
func (s *QuoteService) RejectQuote(ctx context.Context, actor auth.Actor, quoteId string) (*models.QuoteRequest, error) {
	quote, err := s.ownedQuote(ctx, actor, quoteId)
	if err != nil {
		return nil, err
	}
	if quote.Status == models.RejectedQuote {
		return quote, nil
	}
	if !CanMoveQuote(quote.Status, models.RejectedQuote) {
		return nil, models.Conflict("quote request is " + string(quote.Status))
	}
	rejected, err := s.Repo.RejectQuote(ctx, quoteId)
	if err != nil {
		return nil, repoError("reject_quote", err, "quote request not found", "quote request is no longer open")
	}
	return rejected, nil
}
