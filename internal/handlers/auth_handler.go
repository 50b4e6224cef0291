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

// AuthHandler - регистрация, вход и профиль.
type AuthHandler struct {
	Service *services.AuthService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewAuthHandler создаёт новый экземпляр AuthHandler.
func NewAuthHandler(service *services.AuthService, logger *zap.Logger, timeout time.Duration) *AuthHandler {
	return &AuthHandler{Service: service, Logger: logger, Timeout: timeout}
}

// Register обрабатывает запросы на регистрацию.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.Service.Register(ctx, req)
	if err != nil {
		fail(h.Logger, w, r, err, "failed to register user")
		return
	}
	utils.SendJSON(w, http.StatusCreated, user)
}

// Login обрабатывает запросы на вход.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.Service.Login(ctx, req)
	if err != nil {
		fail(h.Logger, w, r, err, "failed to log in")
		return
	}
	utils.SendJSON(w, http.StatusOK, resp)
}

// Me возвращает профиль текущего пользователя.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := h.Service.Me(ctx, actorFrom(r))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to fetch profile")
		return
	}
	utils.SendJSON(w, http.StatusOK, user)
}
