package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"
	mock_repository "github.com/senyabanana/freight-service/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var quoteNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type quoteMocks struct {
	quotes    *mock_repository.MockQuoteRepository
	shipments *mock_repository.MockShipmentRepository
	users     *mock_repository.MockUserRepository
	cache     *countingCache
}

func newQuoteService(t *testing.T) (*QuoteService, quoteMocks) {
	ctrl := gomock.NewController(t)
	m := quoteMocks{
		quotes:    mock_repository.NewMockQuoteRepository(ctrl),
		shipments: mock_repository.NewMockShipmentRepository(ctrl),
		users:     mock_repository.NewMockUserRepository(ctrl),
		cache:     newCountingCache(),
	}
	svc := NewQuoteService(m.quotes, m.shipments, m.users, m.cache, 0, zap.NewNop())
	svc.Now = func() time.Time { return quoteNow }
	return svc, m
}

func TestQuoteService_RequestQuote(t *testing.T) {
	shipment := &models.Shipment{ID: "ship-1", ClientID: client.ID, Status: models.PendingShipment}
	body := models.QuoteRequestBody{ShipmentID: "ship-1", TransporterID: transporter.ID, Message: "¿Precio?"}

	t.Run("expires after default ttl", func(t *testing.T) {
		svc, m := newQuoteService(t)
		m.shipments.EXPECT().GetShipment(gomock.Any(), "ship-1").Return(shipment, nil)
		m.users.EXPECT().GetUserByID(gomock.Any(), transporter.ID).
			Return(&models.User{ID: transporter.ID, Role: models.TransporterRole}, nil)
		m.quotes.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q models.QuoteRequest) (*models.QuoteRequest, error) {
				assert.Equal(t, quoteNow.Add(72*time.Hour), q.ExpiresAt)
				assert.Equal(t, client.ID, q.ClientID)
				q.ID = "quote-1"
				return &q, nil
			})

		quote, err := svc.RequestQuote(context.Background(), client, body)
		require.NoError(t, err)
		assert.Equal(t, "quote-1", quote.ID)
	})

	t.Run("target is not a transporter", func(t *testing.T) {
		svc, m := newQuoteService(t)
		m.shipments.EXPECT().GetShipment(gomock.Any(), "ship-1").Return(shipment, nil)
		m.users.EXPECT().GetUserByID(gomock.Any(), transporter.ID).
			Return(&models.User{ID: transporter.ID, Role: models.ClientRole}, nil)

		_, err := svc.RequestQuote(context.Background(), client, body)
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("open request exists", func(t *testing.T) {
		svc, m := newQuoteService(t)
		m.shipments.EXPECT().GetShipment(gomock.Any(), "ship-1").Return(shipment, nil)
		m.users.EXPECT().GetUserByID(gomock.Any(), transporter.ID).
			Return(&models.User{ID: transporter.ID, Role: models.TransporterRole}, nil)
		m.quotes.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(nil, repository.ErrDuplicate)

		_, err := svc.RequestQuote(context.Background(), client, body)
		requireStatus(t, err, http.StatusConflict)
	})

	t.Run("booked shipment", func(t *testing.T) {
		svc, m := newQuoteService(t)
		booked := *shipment
		booked.Status = models.BookedShipment
		m.shipments.EXPECT().GetShipment(gomock.Any(), "ship-1").Return(&booked, nil)

		_, err := svc.RequestQuote(context.Background(), client, body)
		requireStatus(t, err, http.StatusConflict)
	})
}

func TestQuoteService_RespondQuote(t *testing.T) {
	pending := &models.QuoteRequest{
		ID: "quote-1", TransporterID: transporter.ID, ClientID: client.ID,
		Status: models.PendingQuote, ExpiresAt: quoteNow.Add(time.Hour),
	}

	t.Run("responds", func(t *testing.T) {
		svc, m := newQuoteService(t)
		resp := models.QuoteResponse{Amount: 1800, Message: "Incluye seguro", Duration: "1 día"}
		m.quotes.EXPECT().GetQuote(gomock.Any(), "quote-1").Return(pending, nil)
		m.quotes.EXPECT().RespondQuote(gomock.Any(), "quote-1", resp, quoteNow).
			Return(&models.QuoteRequest{ID: "quote-1", Status: models.RespondedQuote}, nil)

		quote, err := svc.RespondQuote(context.Background(), transporter, "quote-1", resp)
		require.NoError(t, err)
		assert.Equal(t, models.RespondedQuote, quote.Status)
	})

	t.Run("expired", func(t *testing.T) {
		svc, m := newQuoteService(t)
		expired := *pending
		expired.ExpiresAt = quoteNow.Add(-time.Minute)
		m.quotes.EXPECT().GetQuote(gomock.Any(), "quote-1").Return(&expired, nil)

		_, err := svc.RespondQuote(context.Background(), transporter, "quote-1", models.QuoteResponse{Amount: 10})
		requireStatus(t, err, http.StatusConflict)
	})

	t.Run("addressed to someone else", func(t *testing.T) {
		svc, m := newQuoteService(t)
		other := *pending
		other.TransporterID = "someone-else"
		m.quotes.EXPECT().GetQuote(gomock.Any(), "quote-1").Return(&other, nil)

		_, err := svc.RespondQuote(context.Background(), transporter, "quote-1", models.QuoteResponse{Amount: 10})
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		svc, _ := newQuoteService(t)
		_, err := svc.RespondQuote(context.Background(), transporter, "quote-1", models.QuoteResponse{})
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("completion marker in message", func(t *testing.T) {
		svc, _ := newQuoteService(t)
		_, err := svc.RespondQuote(context.Background(), transporter, "quote-1",
			models.QuoteResponse{Amount: 1800, Message: "COMPLETED_2024-05-01T12:00:00.000Z"})
		requireStatus(t, err, http.StatusBadRequest)
	})
}

func TestQuoteService_AcceptQuote(t *testing.T) {
	amount := 1800.0
	responded := &models.QuoteRequest{
		ID: "quote-1", ClientID: client.ID, TransporterID: transporter.ID,
		Status: models.RespondedQuote, ResponseAmount: &amount, ExpiresAt: quoteNow.Add(time.Hour),
	}

	t.Run("creates accepted offer", func(t *testing.T) {
		svc, m := newQuoteService(t)
		qid := "quote-1"
		m.quotes.EXPECT().GetQuote(gomock.Any(), "quote-1").Return(responded, nil)
		m.quotes.EXPECT().AcceptQuote(gomock.Any(), "quote-1", quoteNow).
			Return(&models.Offer{ID: "offer-9", QuoteRequestID: &qid, Amount: amount, Status: models.AcceptedOffer}, nil)

		offer, err := svc.AcceptQuote(context.Background(), client, "quote-1")
		require.NoError(t, err)
		assert.Equal(t, amount, offer.Amount)
		assert.Equal(t, 1, m.cache.invalidated)
	})

	t.Run("idempotent", func(t *testing.T) {
		svc, m := newQuoteService(t)
		accepted := *responded
		accepted.Status = models.AcceptedQuote
		m.quotes.EXPECT().GetQuote(gomock.Any(), "quote-1").Return(&accepted, nil)
		m.quotes.EXPECT().AcceptQuote(gomock.Any(), "quote-1", quoteNow).
			Return(&models.Offer{ID: "offer-9", Status: models.AcceptedOffer}, nil)

		offer, err := svc.AcceptQuote(context.Background(), client, "quote-1")
		require.NoError(t, err)
		assert.Equal(t, "offer-9", offer.ID)
		assert.Zero(t, m.cache.invalidated)
	})

	t.Run("not responded yet", func(t *testing.T) {
		svc, m := newQuoteService(t)
		pending := *responded
		pending.Status = models.PendingQuote
		m.quotes.EXPECT().GetQuote(gomock.Any(), "quote-1").Return(&pending, nil)

		_, err := svc.AcceptQuote(context.Background(), client, "quote-1")
		requireStatus(t, err, http.StatusConflict)
	})

	t.Run("shipment already booked", func(t *testing.T) {
		svc, m := newQuoteService(t)
		m.quotes.EXPECT().GetQuote(gomock.Any(), "quote-1").Return(responded, nil)
		m.quotes.EXPECT().AcceptQuote(gomock.Any(), "quote-1", quoteNow).Return(nil, repository.ErrConflict)

		_, err := svc.AcceptQuote(context.Background(), client, "quote-1")
		requireStatus(t, err, http.StatusConflict)
	})
}

func TestQuoteService_GetMyQuotes(t *testing.T) {
	svc, m := newQuoteService(t)
	m.quotes.EXPECT().ListClientQuotes(gomock.Any(), client.ID, models.PendingQuote, 5, 0).Return([]models.QuoteRequest{}, nil)
	_, err := svc.GetMyQuotes(context.Background(), client, "pending", "", "")
	require.NoError(t, err)

	m.quotes.EXPECT().ListTransporterQuotes(gomock.Any(), transporter.ID, models.QuoteStatus(""), 10, 20).Return([]models.QuoteRequest{}, nil)
	_, err = svc.GetMyQuotes(context.Background(), transporter, "", "10", "20")
	require.NoError(t, err)

	_, err = svc.GetMyQuotes(context.Background(), client, "archived", "", "")
	requireStatus(t, err, http.StatusBadRequest)
}
