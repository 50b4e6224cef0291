//go:generate mockgen -source=dashboard_repo.go -destination=mocks/dashboard_repo.go -package=mock_repository

package repository

import (
	"context"
	"fmt"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardRepository - агрегаты для кабинетов клиента и перевозчика.
type DashboardRepository interface {
	ShipmentCounts(ctx context.Context, clientId string) ([]models.StatusCount, error)
	ClientOfferTotals(ctx context.Context, clientId string) ([]models.OfferTotal, error)
	TransporterOfferTotals(ctx context.Context, transporterId string) ([]models.OfferTotal, error)
	OpenQuotes(ctx context.Context, role models.Role, userId string) (int, error)
	VehicleCount(ctx context.Context, transporterId string) (int, error)
	DocumentCounts(ctx context.Context, transporterId string) ([]models.StatusCount, error)
}

// PostgresDashboardRepository - реализация DashboardRepository для базы данных.
type PostgresDashboardRepository struct {
	DB *pgxpool.Pool
}

func NewPostgresDashboardRepository(db *pgxpool.Pool) *PostgresDashboardRepository {
	return &PostgresDashboardRepository{DB: db}
}

func (r *PostgresDashboardRepository) ShipmentCounts(ctx context.Context, clientId string) ([]models.StatusCount, error) {
	query := `SELECT status, count(*) AS count FROM shipments WHERE client_id = $1 GROUP BY status`
	counts := []models.StatusCount{}
	if err := pgxscan.Select(ctx, r.DB, &counts, query, clientId); err != nil {
		return nil, mapErr(err)
	}
	return counts, nil
}

// ClientOfferTotals - предложения по отправкам клиента в разрезе статусов.
func (r *PostgresDashboardRepository) ClientOfferTotals(ctx context.Context, clientId string) ([]models.OfferTotal, error) {
	query := `
		SELECT o.status, count(*) AS count, COALESCE(SUM(o.amount), 0)::float8 AS amount
		FROM offers o
		JOIN shipments s ON s.id = o.shipment_id
		WHERE s.client_id = $1
		GROUP BY o.status`
	totals := []models.OfferTotal{}
	if err := pgxscan.Select(ctx, r.DB, &totals, query, clientId); err != nil {
		return nil, mapErr(err)
	}
	return totals, nil
}

// TransporterOfferTotals - предложения перевозчика в разрезе статусов.
func (r *PostgresDashboardRepository) TransporterOfferTotals(ctx context.Context, transporterId string) ([]models.OfferTotal, error) {
	query := `
		SELECT status, count(*) AS count, COALESCE(SUM(amount), 0)::float8 AS amount
		FROM offers
		WHERE transporter_id = $1
		GROUP BY status`
	totals := []models.OfferTotal{}
	if err := pgxscan.Select(ctx, r.DB, &totals, query, transporterId); err != nil {
		return nil, mapErr(err)
	}
	return totals, nil
}

// OpenQuotes - число открытых запросов котировок: отправленных клиентом или полученных перевозчиком.
func (r *PostgresDashboardRepository) OpenQuotes(ctx context.Context, role models.Role, userId string) (int, error) {
	column := "client_id"
	if role == models.TransporterRole {
		column = "transporter_id"
	}
	query := fmt.Sprintf(`SELECT count(*) FROM quote_requests WHERE %s = $1 AND status = ANY($2::text[])`, column)
	var n int
	if err := r.DB.QueryRow(ctx, query, userId, openQuoteStatuses).Scan(&n); err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}

func (r *PostgresDashboardRepository) VehicleCount(ctx context.Context, transporterId string) (int, error) {
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT count(*) FROM vehicles WHERE transporter_id = $1`, transporterId).Scan(&n); err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}

func (r *PostgresDashboardRepository) DocumentCounts(ctx context.Context, transporterId string) ([]models.StatusCount, error) {
	query := `SELECT status, count(*) AS count FROM transporter_documents WHERE transporter_id = $1 GROUP BY status`
	counts := []models.StatusCount{}
	if err := pgxscan.Select(ctx, r.DB, &counts, query, transporterId); err != nil {
		return nil, mapErr(err)
	}
	return counts, nil
}
