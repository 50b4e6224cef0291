package services

import (
	"context"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"

	"golang.org/x/sync/errgroup"
)

const recentShipments = 5

type DashboardService struct {
	Repo      repository.DashboardRepository
	Shipments repository.ShipmentRepository
	Reviews   repository.ReviewRepository
}

// NewDashboardService создает новый экземпляр DashboardService.
func NewDashboardService(repo repository.DashboardRepository, shipments repository.ShipmentRepository, reviews repository.ReviewRepository) *DashboardService {
	return &DashboardService{Repo: repo, Shipments: shipments, Reviews: reviews}
}

// ClientDashboard собирает сводку клиента; запросы выполняются параллельно.
func (s *DashboardService) ClientDashboard(ctx context.Context, actor auth.Actor) (*models.ClientDashboard, error) {
	if err := requireRole(actor, models.ClientRole); err != nil {
		return nil, err
	}

	var (
		counts  []models.StatusCount
		totals  []models.OfferTotal
		quotes  int
		recents []models.Shipment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = s.Repo.ShipmentCounts(gctx, actor.ID)
		return err
	})
	g.Go(func() (err error) {
		totals, err = s.Repo.ClientOfferTotals(gctx, actor.ID)
		return err
	})
	g.Go(func() (err error) {
		quotes, err = s.Repo.OpenQuotes(gctx, actor.Role, actor.ID)
		return err
	})
	g.Go(func() (err error) {
		recents, err = s.Shipments.GetClientShipments(gctx, actor.ID, "", recentShipments, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, repoError("client_dashboard", err, "dashboard not found", "dashboard conflict")
	}

	byStatus := CountByStatus(counts)
	summary := SummarizeOffers(totals)
	return &models.ClientDashboard{
		ActiveShipments:    byStatus[string(models.PendingShipment)] + byStatus[string(models.BookedShipment)],
		CompletedShipments: byStatus[string(models.CompletedShipment)],
		CancelledShipments: byStatus[string(models.CancelledShipment)],
		TotalSpent:         summary.Total,
		OpenQuotes:         quotes,
		RecentShipments:    recents,
	}, nil
}

// TransporterDashboard собирает сводку перевозчика.
func (s *DashboardService) TransporterDashboard(ctx context.Context, actor auth.Actor) (*models.TransporterDashboard, error) {
	if err := requireRole(actor, models.TransporterRole); err != nil {
		return nil, err
	}

	var (
		totals   []models.OfferTotal
		rating   models.RatingSummary
		vehicles int
		docs     []models.StatusCount
		quotes   int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totals, err = s.Repo.TransporterOfferTotals(gctx, actor.ID)
		return err
	})
	g.Go(func() (err error) {
		rating, err = s.Reviews.GetRatingSummary(gctx, actor.ID)
		return err
	})
	g.Go(func() (err error) {
		vehicles, err = s.Repo.VehicleCount(gctx, actor.ID)
		return err
	})
	g.Go(func() (err error) {
		docs, err = s.Repo.DocumentCounts(gctx, actor.ID)
		return err
	})
	g.Go(func() (err error) {
		quotes, err = s.Repo.OpenQuotes(gctx, actor.Role, actor.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, repoError("transporter_dashboard", err, "dashboard not found", "dashboard conflict")
	}

	summary := SummarizeOffers(totals)
	documents := make(map[models.DocumentStatus]int)
	for status, n := range CountByStatus(docs) {
		documents[models.DocumentStatus(status)] = n
	}
	return &models.TransporterDashboard{
		ActiveJobs:    summary.Active,
		CompletedJobs: summary.Completed,
		PendingOffers: summary.Pending,
		TotalEarned:   summary.Total,
		Rating:        rating,
		Vehicles:      vehicles,
		Documents:     documents,
		OpenQuotes:    quotes,
	}, nil
}

// SummarizeOffers сворачивает итоги по статусам: active = accepted+paid,
// сумма - по оплаченным и завершённым.
func SummarizeOffers(totals []models.OfferTotal) models.OfferSummary {
	var sum models.OfferSummary
	for _, t := range totals {
		switch t.Status {
		case models.PendingOffer:
			sum.Pending += t.Count
		case models.AcceptedOffer:
			sum.Active += t.Count
		case models.PaidOffer:
			sum.Active += t.Count
			sum.Total += t.Amount
		case models.CompletedOffer:
			sum.Completed += t.Count
			sum.Total += t.Amount
		case models.RejectedOffer:
			sum.Rejected += t.Count
		}
	}
	return sum
}

// CountByStatus превращает список счётчиков в словарь.
func CountByStatus(counts []models.StatusCount) map[string]int {
	m := make(map[string]int, len(counts))
	for _, c := range counts {
		m[c.Status] += c.Count
	}
	return m
}
