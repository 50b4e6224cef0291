package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"
	mock_repository "github.com/senyabanana/freight-service/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func validShipmentRequest() models.ShipmentRequest {
	return models.ShipmentRequest{
		Title:           "Cajas de cerámica",
		PickupAddress:   "Zona 1, Ciudad de Guatemala",
		PickupLat:       14.6349,
		PickupLng:       -90.5069,
		DeliveryAddress: "Antigua Guatemala",
		DeliveryLat:     14.5586,
		DeliveryLng:     -90.7339,
		WeightKg:        500,
		Pieces:          10,
		CargoType:       models.FragileCargo,
		PickupDate:      "2024-06-01",
		DeliveryDate:    "2024-06-02",
	}
}

func newShipmentService(t *testing.T) (*ShipmentService, *mock_repository.MockShipmentRepository, *mock_repository.MockOfferRepository, *countingCache) {
	ctrl := gomock.NewController(t)
	repo := mock_repository.NewMockShipmentRepository(ctrl)
	offers := mock_repository.NewMockOfferRepository(ctrl)
	cache := newCountingCache()
	return NewShipmentService(repo, offers, cache, zap.NewNop()), repo, offers, cache
}

func TestShipmentService_CreateShipment(t *testing.T) {
	svc, repo, _, cache := newShipmentService(t)

	repo.EXPECT().CreateShipment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s models.Shipment) (*models.Shipment, error) {
			assert.Equal(t, client.ID, s.ClientID)
			assert.Equal(t, 1690.0, s.EstimatedPrice)
			assert.Equal(t, "v1", s.PriceFormula)
			require.NotNil(t, s.PickupDate)
			s.ID = "ship-1"
			s.Status = models.PendingShipment
			return &s, nil
		})

	created, err := svc.CreateShipment(context.Background(), client, validShipmentRequest())
	require.NoError(t, err)
	assert.Equal(t, "ship-1", created.ID)
	assert.Equal(t, 1, cache.invalidated)
}

func TestShipmentService_CreateShipment_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.ShipmentRequest)
	}{
		{"missing title", func(r *models.ShipmentRequest) { r.Title = " " }},
		{"latitude out of range", func(r *models.ShipmentRequest) { r.PickupLat = 91 }},
		{"zero weight", func(r *models.ShipmentRequest) { r.WeightKg = 0 }},
		{"unknown cargo", func(r *models.ShipmentRequest) { r.CargoType = "livestock" }},
		{"pickup after delivery", func(r *models.ShipmentRequest) { r.PickupDate = "2024-06-05" }},
		{"bad date", func(r *models.ShipmentRequest) { r.DeliveryDate = "02/06/2024" }},
		{"negative insurance", func(r *models.ShipmentRequest) { r.InsuranceValue = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := newShipmentService(t)
			req := validShipmentRequest()
			tt.mutate(&req)
			_, err := svc.CreateShipment(context.Background(), client, req)
			requireStatus(t, err, http.StatusBadRequest)
		})
	}
}

func TestShipmentService_CreateShipment_WrongRole(t *testing.T) {
	svc, _, _, _ := newShipmentService(t)
	_, err := svc.CreateShipment(context.Background(), transporter, validShipmentRequest())
	requireStatus(t, err, http.StatusForbidden)
}

func TestShipmentService_GetShipment_Access(t *testing.T) {
	pending := &models.Shipment{ID: "ship-1", ClientID: client.ID, Status: models.PendingShipment}
	booked := &models.Shipment{ID: "ship-2", ClientID: client.ID, Status: models.BookedShipment}

	t.Run("owner", func(t *testing.T) {
		svc, repo, _, _ := newShipmentService(t)
		repo.EXPECT().GetShipment(gomock.Any(), "ship-1").Return(pending, nil)
		_, err := svc.GetShipment(context.Background(), client, "ship-1")
		assert.NoError(t, err)
	})

	t.Run("other client", func(t *testing.T) {
		svc, repo, _, _ := newShipmentService(t)
		repo.EXPECT().GetShipment(gomock.Any(), "ship-1").Return(pending, nil)
		_, err := svc.GetShipment(context.Background(), otherClient, "ship-1")
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("transporter on open shipment", func(t *testing.T) {
		svc, repo, offers, _ := newShipmentService(t)
		repo.EXPECT().GetShipment(gomock.Any(), "ship-1").Return(pending, nil)
		offers.EXPECT().GetHolder(gomock.Any(), "ship-1").Return(nil, repository.ErrNotFound)
		_, err := svc.GetShipment(context.Background(), transporter, "ship-1")
		assert.NoError(t, err)
	})

	t.Run("transporter on someone else's booking", func(t *testing.T) {
		svc, repo, offers, _ := newShipmentService(t)
		repo.EXPECT().GetShipment(gomock.Any(), "ship-2").Return(booked, nil)
		offers.EXPECT().GetHolder(gomock.Any(), "ship-2").
			Return(&models.Offer{TransporterID: "someone-else", Status: models.AcceptedOffer}, nil)
		_, err := svc.GetShipment(context.Background(), transporter, "ship-2")
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("missing", func(t *testing.T) {
		svc, repo, _, _ := newShipmentService(t)
		repo.EXPECT().GetShipment(gomock.Any(), "nope").Return(nil, repository.ErrNotFound)
		_, err := svc.GetShipment(context.Background(), admin, "nope")
		requireStatus(t, err, http.StatusNotFound)
	})
}

func TestShipmentService_EditShipment(t *testing.T) {
	current := &models.Shipment{
		ID: "ship-1", ClientID: client.ID, Status: models.PendingShipment, Version: 3,
		Title: "Old", PickupAddress: "A", DeliveryAddress: "B",
		PickupLat: 14.6349, PickupLng: -90.5069, DeliveryLat: 14.5586, DeliveryLng: -90.7339,
		WeightKg: 100, Pieces: 1, CargoType: models.GeneralCargo,
	}

	t.Run("reprices and passes expected version", func(t *testing.T) {
		svc, repo, _, cache := newShipmentService(t)
		weight := 500.0
		pieces := 10
		cargo := "fragile"

		repo.EXPECT().GetShipment(gomock.Any(), "ship-1").Return(current, nil)
		repo.EXPECT().EditShipment(gomock.Any(), gomock.Any(), 3).
			DoAndReturn(func(_ context.Context, next models.Shipment, _ int) (*models.Shipment, error) {
				assert.Equal(t, 1690.0, next.EstimatedPrice)
				assert.Equal(t, "Old", next.Title)
				next.Version = 4
				return &next, nil
			})

		updated, err := svc.EditShipment(context.Background(), client, "ship-1",
			models.ShipmentPatch{WeightKg: &weight, Pieces: &pieces, CargoType: &cargo})
		require.NoError(t, err)
		assert.Equal(t, 4, updated.Version)
		assert.Equal(t, 1, cache.invalidated)
	})

	t.Run("dimensions and schedule", func(t *testing.T) {
		svc, repo, _, _ := newShipmentService(t)
		volume, length, width, height := 2.5, 120.0, 80.0, 100.0
		pickupDate, deliveryDate := "2024-06-03", "2024-06-05"
		pickupTime, deliveryTime := "08:00", "17:30"

		dated := *current
		dated.PickupTime = "07:00"

		repo.EXPECT().GetShipment(gomock.Any(), "ship-1").Return(&dated, nil)
		repo.EXPECT().EditShipment(gomock.Any(), gomock.Any(), 3).
			DoAndReturn(func(_ context.Context, next models.Shipment, _ int) (*models.Shipment, error) {
				assert.Equal(t, 2.5, next.VolumeM3)
				assert.Equal(t, 120.0, next.LengthCm)
				assert.Equal(t, 80.0, next.WidthCm)
				assert.Equal(t, 100.0, next.HeightCm)
				require.NotNil(t, next.PickupDate)
				require.NotNil(t, next.DeliveryDate)
				assert.Equal(t, "2024-06-03", next.PickupDate.Format("2006-01-02"))
				assert.Equal(t, "2024-06-05", next.DeliveryDate.Format("2006-01-02"))
				assert.Equal(t, "08:00", next.PickupTime)
				assert.Equal(t, "17:30", next.DeliveryTime)
				return &next, nil
			})

		_, err := svc.EditShipment(context.Background(), client, "ship-1", models.ShipmentPatch{
			VolumeM3: &volume, LengthCm: &length, WidthCm: &width, HeightCm: &height,
			PickupDate: &pickupDate, PickupTime: &pickupTime,
			DeliveryDate: &deliveryDate, DeliveryTime: &deliveryTime,
		})
		require.NoError(t, err)
	})

	t.Run("empty date clears it", func(t *testing.T) {
		svc, repo, _, _ := newShipmentService(t)
		empty := ""
		pickupDate := "2024-06-03"
		withDate, err := applyPatch(*current, models.ShipmentPatch{PickupDate: &pickupDate})
		require.NoError(t, err)
		require.NotNil(t, withDate.PickupDate)

		repo.EXPECT().GetShipment(gomock.Any(), "ship-1").Return(&withDate, nil)
		repo.EXPECT().EditShipment(gomock.Any(), gomock.Any(), 3).
			DoAndReturn(func(_ context.Context, next models.Shipment, _ int) (*models.Shipment, error) {
				assert.Nil(t, next.PickupDate)
				return &next, nil
			})

		_, err = svc.EditShipment(context.Background(), client, "ship-1", models.ShipmentPatch{PickupDate: &empty})
		require.NoError(t, err)
	})

	t.Run("bad date", func(t *testing.T) {
		svc, repo, _, _ := newShipmentService(t)
		bad := "03/06/2024"
		repo.EXPECT().GetShipment(gomock.Any(), "ship-1").Return(current, nil)

		_, err := svc.EditShipment(context.Background(), client, "ship-1", models.ShipmentPatch{DeliveryDate: &bad})
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("pickup after delivery", func(t *testing.T) {
		svc, repo, _, _ := newShipmentService(t)
		pickupDate, deliveryDate := "2024-06-09", "2024-06-05"
		repo.EXPECT().GetShipment(gomock.Any(), "ship-1").Return(current, nil)

		_, err := svc.EditShipment(context.Background(), client, "ship-1",
			models.ShipmentPatch{PickupDate: &pickupDate, DeliveryDate: &deliveryDate})
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("concurrent edit", func(t *testing.T) {
		svc, repo, _, _ := newShipmentService(t)
		title := "New"
		repo.EXPECT().GetShipment(gomock.Any(), "ship-1").Return(current, nil)
		repo.EXPECT().EditShipment(gomock.Any(), gomock.Any(), 3).Return(nil, repository.ErrConflict)

		_, err := svc.EditShipment(context.Background(), client, "ship-1", models.ShipmentPatch{Title: &title})
		requireStatus(t, err, http.StatusConflict)
	})

	t.Run("booked shipment is frozen", func(t *testing.T) {
		svc, repo, _, _ := newShipmentService(t)
		booked := *current
		booked.Status = models.BookedShipment
		title := "New"
		repo.EXPECT().GetShipment(gomock.Any(), "ship-1").Return(&booked, nil)

		_, err := svc.EditShipment(context.Background(), client, "ship-1", models.ShipmentPatch{Title: &title})
		requireStatus(t, err, http.StatusConflict)
	})
}

func TestShipmentService_RollbackShipment(t *testing.T) {
	current := &models.Shipment{ID: "ship-1", ClientID: client.ID, Status: models.PendingShipment, Version: 2}

	svc, repo, _, _ := newShipmentService(t)
	_, err := svc.RollbackShipment(context.Background(), client, "ship-1", "zero")
	requireStatus(t, err, http.StatusBadRequest)

	repo.EXPECT().GetShipment(gomock.Any(), "ship-1").Return(current, nil)
	_, err = svc.RollbackShipment(context.Background(), client, "ship-1", "2")
	requireStatus(t, err, http.StatusBadRequest)

	repo.EXPECT().GetShipment(gomock.Any(), "ship-1").Return(current, nil)
	repo.EXPECT().RollbackShipment(gomock.Any(), "ship-1", 1).Return(&models.Shipment{ID: "ship-1", Version: 3}, nil)
	rolled, err := svc.RollbackShipment(context.Background(), client, "ship-1", "1")
	require.NoError(t, err)
	assert.Equal(t, 3, rolled.Version)
}

func TestShipmentService_SetTracking(t *testing.T) {
	t.Run("holder toggles", func(t *testing.T) {
		svc, repo, offers, _ := newShipmentService(t)
		offers.EXPECT().GetHolder(gomock.Any(), "ship-1").
			Return(&models.Offer{TransporterID: transporter.ID, Status: models.PaidOffer}, nil)
		repo.EXPECT().SetTracking(gomock.Any(), "ship-1", true).
			Return(&models.TrackingState{ShipmentID: "ship-1", TrackingEnabled: true}, nil)

		state, err := svc.SetTracking(context.Background(), transporter, "ship-1", "true")
		require.NoError(t, err)
		assert.True(t, state.TrackingEnabled)
	})

	t.Run("other transporter", func(t *testing.T) {
		svc, _, offers, _ := newShipmentService(t)
		offers.EXPECT().GetHolder(gomock.Any(), "ship-1").
			Return(&models.Offer{TransporterID: "someone-else", Status: models.AcceptedOffer}, nil)
		_, err := svc.SetTracking(context.Background(), transporter, "ship-1", "false")
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("bad flag", func(t *testing.T) {
		svc, _, _, _ := newShipmentService(t)
		_, err := svc.SetTracking(context.Background(), transporter, "ship-1", "maybe")
		requireStatus(t, err, http.StatusBadRequest)
	})
}

func TestFilterVisibleTracking(t *testing.T) {
	tid := transporter.ID
	states := []models.TrackingState{
		{ShipmentID: "a", ClientID: client.ID},
		{ShipmentID: "b", ClientID: otherClient.ID, TransporterID: &tid},
		{ShipmentID: "c", ClientID: otherClient.ID},
	}

	ids := func(in []models.TrackingState) []string {
		var out []string
		for _, s := range in {
			out = append(out, s.ShipmentID)
		}
		return out
	}

	assert.Equal(t, []string{"a"}, ids(FilterVisibleTracking(client, states)))
	assert.Equal(t, []string{"b"}, ids(FilterVisibleTracking(transporter, states)))
	assert.Equal(t, []string{"a", "b", "c"}, ids(FilterVisibleTracking(admin, states)))
}
