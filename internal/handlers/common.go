package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/middleware"
	"github.com/senyabanana/freight-service/internal/utils"

	"go.uber.org/zap"
)

// actorFrom возвращает участника запроса; маршруты с RequireRole гарантируют его наличие.
func actorFrom(r *http.Request) auth.Actor {
	actor, _ := auth.ActorFrom(r.Context())
	return actor
}

// decodeJSON разбирает тело запроса; при ошибке сам отвечает 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// fail отвечает ошибкой сервиса и пишет её в лог один раз.
func fail(logger *zap.Logger, w http.ResponseWriter, r *http.Request, err error, fallback string) {
	code := utils.WriteServiceError(w, err, fallback)
	fields := []zap.Field{
		zap.String("request_id", middleware.RequestIDFrom(r.Context())),
		zap.String("user_id", actorFrom(r).ID),
		zap.Int("status", code),
		zap.Error(err),
	}
	if code >= http.StatusInternalServerError {
		logger.Error(fallback, fields...)
		return
	}
	logger.Debug(fallback, fields...)
}
