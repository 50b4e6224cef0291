package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/senyabanana/freight-service/internal/services"
	"github.com/senyabanana/freight-service/internal/utils"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	Service *services.DashboardService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewDashboardHandler создаёт новый экземпляр DashboardHandler.
func NewDashboardHandler(service *services.DashboardService, logger *zap.Logger, timeout time.Duration) *DashboardHandler {
	return &DashboardHandler{Service: service, Logger: logger, Timeout: timeout}
}

// Client возвращает сводку клиента.
func (h *DashboardHandler) Client(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	dashboard, err := h.Service.ClientDashboard(ctx, actorFrom(r))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to build dashboard")
		return
	}
	utils.SendJSON(w, http.StatusOK, dashboard)
}

// Transporter возвращает сводку перевозчика.
func (h *DashboardHandler) Transporter(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	dashboard, err := h.Service.TransporterDashboard(ctx, actorFrom(r))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to build dashboard")
		return
	}
	utils.SendJSON(w, http.StatusOK, dashboard)
}
