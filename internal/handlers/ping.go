package handlers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// PingHandler обрабатывает GET запрос к /api/ping
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, "ok"); err != nil {
		zap.L().Warn("failed to write ping response", zap.Error(err))
	}
}
