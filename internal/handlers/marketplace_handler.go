package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/senyabanana/freight-service/internal/services"
	"github.com/senyabanana/freight-service/internal/utils"

	"go.uber.org/zap"
)

type MarketplaceHandler struct {
	Service *services.MarketplaceService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewMarketplaceHandler создаёт новый экземпляр MarketplaceHandler.
func NewMarketplaceHandler(service *services.MarketplaceService, logger *zap.Logger, timeout time.Duration) *MarketplaceHandler {
	return &MarketplaceHandler{Service: service, Logger: logger, Timeout: timeout}
}

// List обрабатывает запросы выдачи маркетплейса.
func (h *MarketplaceHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	q := r.URL.Query()
	shipments, err := h.Service.List(ctx, actorFrom(r), q.Get("cargoType"), q.Get("sort"), q.Get("limit"), q.Get("offset"))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to fetch marketplace")
		return
	}
	utils.SendJSON(w, http.StatusOK, shipments)
}
