package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"
	mock_repository "github.com/senyabanana/freight-service/internal/repository/mocks"
	"github.com/senyabanana/freight-service/internal/services"
	"github.com/senyabanana/freight-service/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var (
	clientActor      = auth.Actor{ID: "11111111-1111-1111-1111-111111111111", Role: models.ClientRole}
	transporterActor = auth.Actor{ID: "33333333-3333-3333-3333-333333333333", Role: models.TransporterRole}
)

func withActor(r *http.Request, a auth.Actor) *http.Request {
	return r.WithContext(auth.WithActor(r.Context(), a))
}

func decodeReason(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["reason"]
}

func TestPingHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	PingHandler(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestEstimatePrice(t *testing.T) {
	body := `{"pickup":{"lat":14.6349,"lng":-90.5069},"delivery":{"lat":14.5586,"lng":-90.7339},
		"weightKg":500,"pieces":10,"cargoType":"fragile"}`
	rec := httptest.NewRecorder()
	EstimatePrice(rec, httptest.NewRequest(http.MethodPost, "/api/pricing/estimate", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var est struct {
		Price      float64 `json:"price"`
		Multiplier float64 `json:"multiplier"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &est))
	assert.Equal(t, 1690.0, est.Price)
	assert.Equal(t, 1.3, est.Multiplier)

	rec = httptest.NewRecorder()
	EstimatePrice(rec, httptest.NewRequest(http.MethodPost, "/api/pricing/estimate", strings.NewReader(`{"weightKg":0}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	EstimatePrice(rec, httptest.NewRequest(http.MethodPost, "/api/pricing/estimate", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", decodeReason(t, rec))
}

func TestShipmentHandler_CreateShipment(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_repository.NewMockShipmentRepository(ctrl)
	svc := services.NewShipmentService(repo, mock_repository.NewMockOfferRepository(ctrl), nil, zap.NewNop())
	h := NewShipmentHandler(svc, zap.NewNop(), time.Second)

	repo.EXPECT().CreateShipment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s models.Shipment) (*models.Shipment, error) {
			s.ID = "ship-1"
			return &s, nil
		})

	body := `{"title":"Muebles","pickupAddress":"Zona 10","pickupLat":14.6,"pickupLng":-90.5,
		"deliveryAddress":"Quetzaltenango","deliveryLat":14.83,"deliveryLng":-91.52,"weightKg":200}`
	req := withActor(httptest.NewRequest(http.MethodPost, "/api/shipments/new", strings.NewReader(body)), clientActor)
	rec := httptest.NewRecorder()
	h.CreateShipment(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Shipment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ship-1", got.ID)
	assert.Equal(t, models.GeneralCargo, got.CargoType)
	assert.Positive(t, got.EstimatedPrice)
}

func TestShipmentHandler_GetShipment_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_repository.NewMockShipmentRepository(ctrl)
	svc := services.NewShipmentService(repo, mock_repository.NewMockOfferRepository(ctrl), nil, zap.NewNop())
	h := NewShipmentHandler(svc, zap.NewNop(), time.Second)

	repo.EXPECT().GetShipment(gomock.Any(), "missing").Return(nil, repository.ErrNotFound)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/shipments/{shipmentId}", h.GetShipment)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, withActor(httptest.NewRequest(http.MethodGet, "/api/shipments/missing", nil), clientActor))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "shipment not found", decodeReason(t, rec))
}

func TestOfferHandler_AcceptOffer_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	offers := mock_repository.NewMockOfferRepository(ctrl)
	shipments := mock_repository.NewMockShipmentRepository(ctrl)
	svc := services.NewOfferService(offers, shipments, mock_repository.NewMockFleetRepository(ctrl), nil, zap.NewNop())
	h := NewOfferHandler(svc, zap.NewNop(), time.Second)

	offers.EXPECT().GetOffer(gomock.Any(), "offer-2").
		Return(&models.Offer{ID: "offer-2", ShipmentID: "ship-1", Status: models.PendingOffer}, nil)
	shipments.EXPECT().GetShipment(gomock.Any(), "ship-1").
		Return(&models.Shipment{ID: "ship-1", ClientID: clientActor.ID, Status: models.BookedShipment}, nil)
	offers.EXPECT().AcceptOffer(gomock.Any(), "offer-2").Return(nil, repository.ErrConflict)

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/offers/{offerId}/accept", h.AcceptOffer)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, withActor(httptest.NewRequest(http.MethodPut, "/api/offers/offer-2/accept", nil), clientActor))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestFleetHandler_DownloadFile_BadToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := services.NewFleetService(mock_repository.NewMockFleetRepository(ctrl), nil,
		storage.NewSigner("secret", time.Minute), "http://localhost", zap.NewNop())
	h := NewFleetHandler(svc, zap.NewNop(), time.Second)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/files/{token}", h.DownloadFile)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/files/not-a-token", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

type chanSubscriber struct {
	hints chan models.RefreshHint
	users chan string
}

func (s *chanSubscriber) Subscribe(_ context.Context, userId string) (<-chan models.RefreshHint, error) {
	s.users <- userId
	return s.hints, nil
}

func TestEventsHandler_Stream(t *testing.T) {
	sub := &chanSubscriber{hints: make(chan models.RefreshHint, 1), users: make(chan string, 1)}
	h := NewEventsHandler(sub, zap.NewNop())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Stream(w, withActor(r, transporterActor))
	}))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	sub.hints <- models.RefreshHint{Type: models.OfferAccepted, AggregateID: "offer-1"}
	close(sub.hints)

	var lines []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	assert.Equal(t, transporterActor.ID, <-sub.users)
	assert.Contains(t, lines, "event: refresh")
	assert.Contains(t, lines, `data: {"type":"offer.accepted","aggregateId":"offer-1"}`)
}
