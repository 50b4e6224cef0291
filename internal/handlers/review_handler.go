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

type ReviewHandler struct {
	Service *services.ReviewService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewReviewHandler создаёт новый экземпляр ReviewHandler.
func NewReviewHandler(service *services.ReviewService, logger *zap.Logger, timeout time.Duration) *ReviewHandler {
	return &ReviewHandler{Service: service, Logger: logger, Timeout: timeout}
}

// CreateReview обрабатывает запросы на создание отзыва.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.ReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.Service.CreateReview(ctx, actorFrom(r), req)
	if err != nil {
		fail(h.Logger, w, r, err, "failed to create review")
		return
	}
	utils.SendJSON(w, http.StatusOK, review)
}

// GetTransporterReviews обрабатывает запросы отзывов о перевозчике.
func (h *ReviewHandler) GetTransporterReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	q := r.URL.Query()
	reviews, err := h.Service.GetTransporterReviews(ctx, r.PathValue("transporterId"), q.Get("limit"), q.Get("offset"))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to fetch reviews")
		return
	}
	utils.SendJSON(w, http.StatusOK, reviews)
}
