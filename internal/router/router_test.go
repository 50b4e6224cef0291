package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/middleware"
	"github.com/senyabanana/freight-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type unlimited struct{}

func (unlimited) Incr(context.Context, string, time.Duration) (int64, error) { return 1, nil }

func newTestRoutes(t *testing.T) (http.Handler, *auth.JWTManager) {
	t.Helper()
	tokens := auth.NewJWTManager("router-test-secret", time.Hour)
	routes := InitRoutes(Handlers{}, Deps{
		Logger:       zap.NewNop(),
		Tokens:       tokens,
		Counter:      unlimited{},
		RateLimitRPS: 100,
	})
	return routes, tokens
}

func TestInitRoutes(t *testing.T) {
	routes, tokens := newTestRoutes(t)
	clientToken, _, err := tokens.Issue("c1", models.ClientRole)
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{name: "ping is public", method: http.MethodGet, path: "/api/ping", status: http.StatusOK},
		{name: "metrics are exposed", method: http.MethodGet, path: "/metrics", status: http.StatusOK},
		{name: "me requires token", method: http.MethodGet, path: "/api/auth/me", status: http.StatusUnauthorized},
		{name: "marketplace is for transporters", method: http.MethodGet, path: "/api/marketplace", token: clientToken, status: http.StatusForbidden},
		{name: "admin review is for admins", method: http.MethodPut, path: "/api/documents/d1/review", token: clientToken, status: http.StatusForbidden},
		{name: "wrong method", method: http.MethodGet, path: "/api/auth/login", status: http.StatusMethodNotAllowed},
		{name: "unknown route", method: http.MethodGet, path: "/api/tenders", status: http.StatusNotFound},
		{name: "bad token", method: http.MethodGet, path: "/api/ping", token: "garbage", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set(middleware.HeaderAuthorization, middleware.BearerPrefix+tt.token)
			}
			rec := httptest.NewRecorder()
			routes.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(middleware.HeaderXRequestID))
		})
	}
}
