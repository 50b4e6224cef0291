package services

import (
	"context"
	"errors"
	"testing"

	"github.com/senyabanana/freight-service/internal/models"
	mock_repository "github.com/senyabanana/freight-service/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSummarizeOffers(t *testing.T) {
	sum := SummarizeOffers([]models.OfferTotal{
		{Status: models.PendingOffer, Count: 3, Amount: 900},
		{Status: models.AcceptedOffer, Count: 1, Amount: 500},
		{Status: models.PaidOffer, Count: 2, Amount: 1200},
		{Status: models.CompletedOffer, Count: 4, Amount: 4000},
		{Status: models.RejectedOffer, Count: 5, Amount: 100},
	})
	assert.Equal(t, models.OfferSummary{Pending: 3, Active: 3, Completed: 4, Rejected: 5, Total: 5200}, sum)
}

func newDashboardService(t *testing.T) (*DashboardService, *mock_repository.MockDashboardRepository, *mock_repository.MockShipmentRepository, *mock_repository.MockReviewRepository) {
	ctrl := gomock.NewController(t)
	repo := mock_repository.NewMockDashboardRepository(ctrl)
	shipments := mock_repository.NewMockShipmentRepository(ctrl)
	reviews := mock_repository.NewMockReviewRepository(ctrl)
	return NewDashboardService(repo, shipments, reviews), repo, shipments, reviews
}

func TestDashboardService_ClientDashboard(t *testing.T) {
	svc, repo, shipments, _ := newDashboardService(t)

	repo.EXPECT().ShipmentCounts(gomock.Any(), client.ID).Return([]models.StatusCount{
		{Status: "pending", Count: 2}, {Status: "booked", Count: 1},
		{Status: "completed", Count: 4}, {Status: "cancelled", Count: 1},
	}, nil)
	repo.EXPECT().ClientOfferTotals(gomock.Any(), client.ID).Return([]models.OfferTotal{
		{Status: models.PaidOffer, Count: 1, Amount: 1500},
		{Status: models.CompletedOffer, Count: 4, Amount: 6000},
		{Status: models.PendingOffer, Count: 7, Amount: 9999},
	}, nil)
	repo.EXPECT().OpenQuotes(gomock.Any(), models.ClientRole, client.ID).Return(2, nil)
	shipments.EXPECT().GetClientShipments(gomock.Any(), client.ID, models.ShipmentStatus(""), 5, 0).
		Return([]models.Shipment{{ID: "a"}, {ID: "b"}}, nil)

	d, err := svc.ClientDashboard(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, 3, d.ActiveShipments)
	assert.Equal(t, 4, d.CompletedShipments)
	assert.Equal(t, 1, d.CancelledShipments)
	assert.Equal(t, 7500.0, d.TotalSpent)
	assert.Equal(t, 2, d.OpenQuotes)
	assert.Len(t, d.RecentShipments, 2)
}

func TestDashboardService_TransporterDashboard(t *testing.T) {
	svc, repo, _, reviews := newDashboardService(t)

	repo.EXPECT().TransporterOfferTotals(gomock.Any(), transporter.ID).Return([]models.OfferTotal{
		{Status: models.AcceptedOffer, Count: 1, Amount: 800},
		{Status: models.PaidOffer, Count: 1, Amount: 1000},
		{Status: models.CompletedOffer, Count: 2, Amount: 3000},
		{Status: models.PendingOffer, Count: 4, Amount: 2000},
	}, nil)
	reviews.EXPECT().GetRatingSummary(gomock.Any(), transporter.ID).Return(models.RatingSummary{Average: 4.5, Count: 2}, nil)
	repo.EXPECT().VehicleCount(gomock.Any(), transporter.ID).Return(3, nil)
	repo.EXPECT().DocumentCounts(gomock.Any(), transporter.ID).Return([]models.StatusCount{
		{Status: "approved", Count: 2}, {Status: "pending", Count: 1},
	}, nil)
	repo.EXPECT().OpenQuotes(gomock.Any(), models.TransporterRole, transporter.ID).Return(1, nil)

	d, err := svc.TransporterDashboard(context.Background(), transporter)
	require.NoError(t, err)
	assert.Equal(t, 2, d.ActiveJobs)
	assert.Equal(t, 2, d.CompletedJobs)
	assert.Equal(t, 4, d.PendingOffers)
	assert.Equal(t, 4000.0, d.TotalEarned)
	assert.Equal(t, 4.5, d.Rating.Average)
	assert.Equal(t, 3, d.Vehicles)
	assert.Equal(t, 2, d.Documents[models.ApprovedDocument])
	assert.Equal(t, 1, d.OpenQuotes)
}

func TestDashboardService_PropagatesErrors(t *testing.T) {
	svc, repo, shipments, _ := newDashboardService(t)

	repo.EXPECT().ShipmentCounts(gomock.Any(), client.ID).Return(nil, errors.New("db down"))
	repo.EXPECT().ClientOfferTotals(gomock.Any(), client.ID).Return(nil, nil).AnyTimes()
	repo.EXPECT().OpenQuotes(gomock.Any(), models.ClientRole, client.ID).Return(0, nil).AnyTimes()
	shipments.EXPECT().GetClientShipments(gomock.Any(), client.ID, models.ShipmentStatus(""), 5, 0).Return(nil, nil).AnyTimes()

	_, err := svc.ClientDashboard(context.Background(), client)
	assert.Error(t, err)
}
