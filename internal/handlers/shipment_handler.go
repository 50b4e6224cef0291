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

// ShipmentHandler - структура для обработки HTTP-запросов по отправкам.
type ShipmentHandler struct {
	Service *services.ShipmentService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewShipmentHandler создаёт новый экземпляр ShipmentHandler.
func NewShipmentHandler(service *services.ShipmentService, logger *zap.Logger, timeout time.Duration) *ShipmentHandler {
	return &ShipmentHandler{Service: service, Logger: logger, Timeout: timeout}
}

// CreateShipment обрабатывает запросы для создания отправки.
func (h *ShipmentHandler) CreateShipment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.ShipmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	shipment, err := h.Service.CreateShipment(ctx, actorFrom(r), req)
	if err != nil {
		fail(h.Logger, w, r, err, "failed to create shipment")
		return
	}
	h.Logger.Info("shipment created", zap.String("shipment_id", shipment.ID), zap.String("user_id", shipment.ClientID))
	utils.SendJSON(w, http.StatusOK, shipment)
}

// GetMyShipments обрабатывает запросы для получения отправок клиента.
func (h *ShipmentHandler) GetMyShipments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	q := r.URL.Query()
	shipments, err := h.Service.GetClientShipments(ctx, actorFrom(r), q.Get("status"), q.Get("limit"), q.Get("offset"))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to fetch shipments")
		return
	}
	utils.SendJSON(w, http.StatusOK, shipments)
}

// GetShipment обрабатывает запросы для получения одной отправки.
func (h *ShipmentHandler) GetShipment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	shipment, err := h.Service.GetShipment(ctx, actorFrom(r), r.PathValue("shipmentId"))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to fetch shipment")
		return
	}
	utils.SendJSON(w, http.StatusOK, shipment)
}

// EditShipment обрабатывает запросы для редактирования отправки.
func (h *ShipmentHandler) EditShipment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var patch models.ShipmentPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	shipment, err := h.Service.EditShipment(ctx, actorFrom(r), r.PathValue("shipmentId"), patch)
	if err != nil {
		fail(h.Logger, w, r, err, "failed to edit shipment")
		return
	}
	utils.SendJSON(w, http.StatusOK, shipment)
}

// RollbackShipment обрабатывает запросы для отката отправки к версии.
func (h *ShipmentHandler) RollbackShipment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	shipment, err := h.Service.RollbackShipment(ctx, actorFrom(r), r.PathValue("shipmentId"), r.PathValue("version"))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to rollback shipment")
		return
	}
	utils.SendJSON(w, http.StatusOK, shipment)
}

// CancelShipment обрабатывает запросы для отмены отправки.
func (h *ShipmentHandler) CancelShipment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	shipment, err := h.Service.CancelShipment(ctx, actorFrom(r), r.PathValue("shipmentId"))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to cancel shipment")
		return
	}
	h.Logger.Info("shipment cancelled", zap.String("shipment_id", shipment.ID))
	utils.SendJSON(w, http.StatusOK, shipment)
}

// SetTracking обрабатывает запросы на включение и выключение отслеживания.
func (h *ShipmentHandler) SetTracking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	state, err := h.Service.SetTracking(ctx, actorFrom(r), r.PathValue("shipmentId"), r.URL.Query().Get("enabled"))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to update tracking")
		return
	}
	utils.SendJSON(w, http.StatusOK, state)
}

// GetTracking обрабатывает запросы флагов отслеживания по списку отправок.
func (h *ShipmentHandler) GetTracking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	states, err := h.Service.GetTracking(ctx, actorFrom(r), r.URL.Query().Get("ids"))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to fetch tracking")
		return
	}
	utils.SendJSON(w, http.StatusOK, states)
}
