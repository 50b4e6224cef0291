package idempotency

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/metrics"
	"github.com/senyabanana/freight-service/internal/utils"

	"go.uber.org/zap"
)

const (
	HeaderKey      = "Idempotency-Key"
	HeaderReplayed = "Idempotent-Replayed"
	DefaultTTL     = 24 * time.Hour
	maxKeyLength   = 128
)

// Guard оборачивает мутирующие обработчики.
type Guard struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

func NewGuard(store Store, ttl time.Duration, logger *zap.Logger) *Guard {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Guard{store: store, ttl: ttl, logger: logger}
}

// Wrap: без заголовка запрос проходит как есть. Первый ответ (кроме 5xx) сохраняется,
// дубликат во время обработки получает 409, последующие - сохранённый ответ.
// При недоступном хранилище запрос выполняется без защиты: последней гарантией остаются ограничения БД.
func (g *Guard) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientKey := strings.TrimSpace(r.Header.Get(HeaderKey))
		if clientKey == "" {
			next(w, r)
			return
		}
		if len(clientKey) > maxKeyLength {
			utils.SendErrorResponse(w, http.StatusBadRequest, "Idempotency-Key is too long")
			return
		}

		owner := "anonymous"
		if actor, ok := auth.ActorFrom(r.Context()); ok {
			owner = actor.ID
		}
		key := "idem:" + owner + ":" + r.Method + ":" + r.URL.Path + ":" + clientKey

		reserved, err := g.store.Reserve(r.Context(), key, g.ttl)
		if err != nil {
			g.logger.Warn("idempotency store unavailable", zap.Error(err))
			next(w, r)
			return
		}
		if !reserved {
			g.replay(w, r, key)
			return
		}

		rec := &responseRecorder{ResponseWriter: w}
		next(rec, r)

		// запрос мог быть отменён клиентом, а ответ сохранить всё равно нужно
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 2*time.Second)
		defer cancel()
		if rec.status == 0 || rec.status >= http.StatusInternalServerError {
			if err := g.store.Release(ctx, key); err != nil {
				g.logger.Warn("failed to release idempotency key", zap.Error(err))
			}
			return
		}
		resp := Response{StatusCode: rec.status, ContentType: rec.Header().Get("Content-Type"), Body: rec.body}
		if err := g.store.Save(ctx, key, resp, g.ttl); err != nil {
			g.logger.Warn("failed to save idempotent response", zap.Error(err))
		}
	}
}

func (g *Guard) replay(w http.ResponseWriter, r *http.Request, key string) {
	stored, err := g.store.Get(r.Context(), key)
	if err != nil {
		g.logger.Warn("failed to read idempotent response", zap.Error(err))
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, "idempotency store unavailable")
		return
	}
	if stored == nil || !stored.Done {
		utils.SendErrorResponse(w, http.StatusConflict, "request already in progress")
		return
	}

	metrics.IdempotentReplaysTotal.Inc()
	if stored.ContentType != "" {
		w.Header().Set("Content-Type", stored.ContentType)
	}
	w.Header().Set(HeaderReplayed, "true")
	w.WriteHeader(stored.StatusCode)
	if _, err := w.Write(stored.Body); err != nil {
		g.logger.Warn("failed to write replayed response", zap.Error(err))
	}
}
