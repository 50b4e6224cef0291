package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/services"
	"github.com/senyabanana/freight-service/internal/utils"

	"go.uber.org/zap"
)

// QuoteHandler - структура для обработки HTTP-запросов котировок.
type QuoteHandler struct {
	Service *services.QuoteService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewQuoteHandler создаёт новый экземпляр QuoteHandler.
func NewQuoteHandler(service *services.QuoteService, logger *zap.Logger, timeout time.Duration) *QuoteHandler {
	return &QuoteHandler{Service: service, Logger: logger, Timeout: timeout}
}

// RequestQuote обрабатывает запросы клиента на котировку.
func (h *QuoteHandler) RequestQuote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.QuoteRequestBody
	if !decodeJSON(w, r, &req) {
		return
	}

	quote, err := h.Service.RequestQuote(ctx, actorFrom(r), req)
	if err != nil {
		fail(h.Logger, w, r, err, "failed to request quote")
		return
	}
	h.Logger.Info("quote requested", zap.String("quote_id", quote.ID), zap.String("shipment_id", quote.ShipmentID))
	utils.SendJSON(w, http.StatusOK, quote)
}

// GetMyQuotes обрабатывает запросы списка котировок пользователя.
func (h *QuoteHandler) GetMyQuotes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	q := r.URL.Query()
	quotes, err := h.Service.GetMyQuotes(ctx, actorFrom(r), q.Get("status"), q.Get("limit"), q.Get("offset"))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to fetch quotes")
		return
	}
	utils.SendJSON(w, http.StatusOK, quotes)
}

// RespondQuote обрабатывает ответ перевозчика на запрос.
func (h *QuoteHandler) RespondQuote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var resp models.QuoteResponse
	if !decodeJSON(w, r, &resp) {
		return
	}

	quote, err := h.Service.RespondQuote(ctx, actorFrom(r), r.PathValue("quoteId"), resp)
	if err != nil {
		fail(h.Logger, w, r, err, "failed to respond to quote")
		return
	}
	utils.SendJSON(w, http.StatusOK, quote)
}

// AcceptQuote обрабатывает принятие котировки; в ответе - созданное предложение.
func (h *QuoteHandler) AcceptQuote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	offer, err := h.Service.AcceptQuote(ctx, actorFrom(r), r.PathValue("quoteId"))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to accept quote")
		return
	}
	utils.SendJSON(w, http.StatusOK, offer)
}

// RejectQuote обрабатывает отказ клиента от котировки.
func (h *QuoteHandler) RejectQuote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	quote, err := h.Service.RejectQuote(ctx, actorFrom(r), r.PathValue("quoteId"))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to reject quote")
		return
	}
	utils.SendJSON(w, http.StatusOK, quote)
}
