//go:generate mockgen -source=review_repo.go -destination=mocks/review_repo.go -package=mock_repository

package repository

import (
	"context"

	"github.com/senyabanana/freight-service/internal/db"
	"github.com/senyabanana/freight-service/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reviewColumns = `id, shipment_id, transporter_id, client_id, rating, comment, created_at`

// ReviewRepository - интерфейс для работы с отзывами о перевозчиках.
type ReviewRepository interface {
	CreateReview(ctx context.Context, review models.Review) (*models.Review, error)
	GetTransporterReviews(ctx context.Context, transporterId string, limit, offset int) ([]models.Review, error)
	GetRatingSummary(ctx context.Context, transporterId string) (models.RatingSummary, error)
}

// PostgresReviewRepository - реализация ReviewRepository для базы данных.
type PostgresReviewRepository struct {
	DB *pgxpool.Pool
}

func NewPostgresReviewRepository(db *pgxpool.Pool) *PostgresReviewRepository {
	return &PostgresReviewRepository{DB: db}
}

// CreateReview сохраняет отзыв; второй отзыв по той же отправке - ErrDuplicate.
func (r *PostgresReviewRepository) CreateReview(ctx context.Context, review models.Review) (*models.Review, error) {
	review.ID = uuid.New().String()

	var created models.Review
	err := db.WithTx(ctx, r.DB, func(tx pgx.Tx) error {
		query := `
			INSERT INTO reviews (id, shipment_id, transporter_id, client_id, rating, comment)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING ` + reviewColumns
		err := pgxscan.Get(ctx, tx, &created, query,
			review.ID, review.ShipmentID, review.TransporterID, review.ClientID, review.Rating, review.Comment)
		if err != nil {
			return mapErr(err)
		}
		return emit(ctx, tx, models.ReviewCreated, created.ID, created, created.TransporterID)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetTransporterReviews возвращает отзывы о перевозчике, новые сначала.
func (r *PostgresReviewRepository) GetTransporterReviews(ctx context.Context, transporterId string, limit, offset int) ([]models.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE transporter_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`
	reviews := []models.Review{}
	if err := pgxscan.Select(ctx, r.DB, &reviews, query, transporterId, limit, offset); err != nil {
		return nil, mapErr(err)
	}
	return reviews, nil
}

// GetRatingSummary возвращает среднюю оценку (0 без отзывов) и число отзывов.
func (r *PostgresReviewRepository) GetRatingSummary(ctx context.Context, transporterId string) (models.RatingSummary, error) {
	var summary models.RatingSummary
	query := `SELECT COALESCE(ROUND(AVG(rating)::numeric, 1), 0)::float8 AS average, count(*) AS count FROM reviews WHERE transporter_id = $1`
	if err := pgxscan.Get(ctx, r.DB, &summary, query, transporterId); err != nil {
		return models.RatingSummary{}, mapErr(err)
	}
	return summary, nil
}
