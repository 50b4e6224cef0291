package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/utils"

	"go.uber.org/zap"
)

const keepAliveInterval = 25 * time.Second

// HintSubscriber подписывает на подсказки об обновлениях для пользователя.
type HintSubscriber interface {
	Subscribe(ctx context.Context, userId string) (<-chan models.RefreshHint, error)
}

// EventsHandler отдаёт подсказки об обновлениях через server-sent events.
type EventsHandler struct {
	Subscriber HintSubscriber
	Logger     *zap.Logger
}

// NewEventsHandler создаёт новый экземпляр EventsHandler.
func NewEventsHandler(subscriber HintSubscriber, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{Subscriber: subscriber, Logger: logger}
}

// Stream держит соединение открытым до отключения клиента.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "streaming is not supported")
		return
	}

	actor := actorFrom(r)
	hints, err := h.Subscriber.Subscribe(r.Context(), actor.ID)
	if err != nil {
		h.Logger.Error("failed to subscribe to refresh hints", zap.String("user_id", actor.ID), zap.Error(err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, "event stream is unavailable")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case hint, ok := <-hints:
			if !ok {
				return
			}
			data, err := json.Marshal(hint)
			if err != nil {
				h.Logger.Warn("failed to encode refresh hint", zap.Error(err))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: refresh\ndata: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
