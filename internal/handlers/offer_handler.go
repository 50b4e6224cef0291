package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/services"
	"github.com/senyabanana/freight-service/internal/utils"

	"go.uber.org/zap"
)

// OfferHandler - структура для обработки HTTP-запросов по предложениям.
type OfferHandler struct {
	Service *services.OfferService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewOfferHandler создаёт новый экземпляр OfferHandler.
func NewOfferHandler(service *services.OfferService, logger *zap.Logger, timeout time.Duration) *OfferHandler {
	return &OfferHandler{Service: service, Logger: logger, Timeout: timeout}
}

// CreateOffer обрабатывает запросы для создания предложения.
func (h *OfferHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.OfferRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	offer, err := h.Service.CreateOffer(ctx, actorFrom(r), req)
	if err != nil {
		fail(h.Logger, w, r, err, "failed to create offer")
		return
	}
	h.Logger.Info("offer created", zap.String("offer_id", offer.ID), zap.String("shipment_id", offer.ShipmentID))
	utils.SendJSON(w, http.StatusOK, offer)
}

// GetMyOffers обрабатывает запросы для получения предложений перевозчика.
func (h *OfferHandler) GetMyOffers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	q := r.URL.Query()
	offers, err := h.Service.GetMyOffers(ctx, actorFrom(r), q.Get("status"), q.Get("limit"), q.Get("offset"))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to fetch offers")
		return
	}
	utils.SendJSON(w, http.StatusOK, offers)
}

// GetShipmentOffers обрабатывает запросы для получения предложений по отправке.
func (h *OfferHandler) GetShipmentOffers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	offers, err := h.Service.GetShipmentOffers(ctx, actorFrom(r), r.PathValue("shipmentId"))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to fetch shipment offers")
		return
	}
	utils.SendJSON(w, http.StatusOK, offers)
}

type offerAction func(ctx context.Context, actor auth.Actor, offerId string) (*models.Offer, error)

func (h *OfferHandler) transition(action offerAction, fallback string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
		defer cancel()

		offer, err := action(ctx, actorFrom(r), r.PathValue("offerId"))
		if err != nil {
			fail(h.Logger, w, r, err, fallback)
			return
		}
		utils.SendJSON(w, http.StatusOK, offer)
	}
}

// AcceptOffer обрабатывает принятие предложения клиентом.
func (h *OfferHandler) AcceptOffer(w http.ResponseWriter, r *http.Request) {
	h.transition(h.Service.AcceptOffer, "failed to accept offer")(w, r)
}

// RejectOffer обрабатывает отклонение предложения.
func (h *OfferHandler) RejectOffer(w http.ResponseWriter, r *http.Request) {
	h.transition(h.Service.RejectOffer, "failed to reject offer")(w, r)
}

// PayOffer обрабатывает отметку об оплате.
func (h *OfferHandler) PayOffer(w http.ResponseWriter, r *http.Request) {
	h.transition(h.Service.PayOffer, "failed to mark offer as paid")(w, r)
}

// CompleteOffer обрабатывает завершение перевозки.
func (h *OfferHandler) CompleteOffer(w http.ResponseWriter, r *http.Request) {
	h.transition(h.Service.CompleteOffer, "failed to complete offer")(w, r)
}
