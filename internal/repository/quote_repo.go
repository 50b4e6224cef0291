//go:generate mockgen -source=quote_repo.go -destination=mocks/quote_repo.go -package=mock_repository

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/senyabanana/freight-service/internal/db"
	"github.com/senyabanana/freight-service/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const quoteColumns = `id, shipment_id, client_id, transporter_id, message, status, response_amount,
	response_message, response_duration, responded_at, expires_at, created_at`

var openQuoteStatuses = []string{string(models.PendingQuote), string(models.RespondedQuote)}

// QuoteRepository - интерфейс для работы с запросами котировок.
type QuoteRepository interface {
	CreateQuote(ctx context.Context, quote models.QuoteRequest) (*models.QuoteRequest, error)
	GetQuote(ctx context.Context, quoteId string) (*models.QuoteRequest, error)
	ListClientQuotes(ctx context.Context, clientId string, status models.QuoteStatus, limit, offset int) ([]models.QuoteRequest, error)
	ListTransporterQuotes(ctx context.Context, transporterId string, status models.QuoteStatus, limit, offset int) ([]models.QuoteRequest, error)
	RespondQuote(ctx context.Context, quoteId string, resp models.QuoteResponse, now time.Time) (*models.QuoteRequest, error)
	AcceptQuote(ctx context.Context, quoteId string, now time.Time) (*models.Offer, error)
	RejectQuote(ctx context.Context, quoteId string) (*models.QuoteRequest, error)
	ExpireQuotes(ctx context.Context, now time.Time) ([]models.QuoteRequest, error)
}

// PostgresQuoteRepository - реализация QuoteRepository для базы данных.
type PostgresQuoteRepository struct {
	DB *pgxpool.Pool
}

func NewPostgresQuoteRepository(db *pgxpool.Pool) *PostgresQuoteRepository {
	return &PostgresQuoteRepository{DB: db}
}

// CreateQuote создаёт запрос котировки к перевозчику по открытой отправке.
func (r *PostgresQuoteRepository) CreateQuote(ctx context.Context, quote models.QuoteRequest) (*models.QuoteRequest, error) {
	quote.ID = uuid.New().String()
	quote.Status = models.PendingQuote

	var created models.QuoteRequest
	err := db.WithTx(ctx, r.DB, func(tx pgx.Tx) error {
		shipment, err := getShipment(ctx, tx, quote.ShipmentID, true)
		if err != nil {
			return err
		}
		if shipment.Status != models.PendingShipment {
			return ErrConflict
		}

		query := `
			INSERT INTO quote_requests (id, shipment_id, client_id, transporter_id, message, status, expires_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING ` + quoteColumns
		err = pgxscan.Get(ctx, tx, &created, query,
			quote.ID, quote.ShipmentID, quote.ClientID, quote.TransporterID, quote.Message, quote.Status, quote.ExpiresAt)
		if err != nil {
			return mapErr(err)
		}
		return emit(ctx, tx, models.QuoteRequested, created.ID, created, created.TransporterID)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetQuote возвращает запрос котировки по id.
func (r *PostgresQuoteRepository) GetQuote(ctx context.Context, quoteId string) (*models.QuoteRequest, error) {
	return getQuote(ctx, r.DB, quoteId, false)
}

func getQuote(ctx context.Context, q querier, quoteId string, forUpdate bool) (*models.QuoteRequest, error) {
	query := `SELECT ` + quoteColumns + ` FROM quote_requests WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var quote models.QuoteRequest
	if err := pgxscan.Get(ctx, q, &quote, query, quoteId); err != nil {
		return nil, mapErr(err)
	}
	return &quote, nil
}

func (r *PostgresQuoteRepository) ListClientQuotes(ctx context.Context, clientId string, status models.QuoteStatus, limit, offset int) ([]models.QuoteRequest, error) {
	return r.listQuotes(ctx, "client_id", clientId, status, limit, offset)
}

func (r *PostgresQuoteRepository) ListTransporterQuotes(ctx context.Context, transporterId string, status models.QuoteStatus, limit, offset int) ([]models.QuoteRequest, error) {
	return r.listQuotes(ctx, "transporter_id", transporterId, status, limit, offset)
}

// listQuotes: column - только константа из этого файла.
func (r *PostgresQuoteRepository) listQuotes(ctx context.Context, column, userId string, status models.QuoteStatus, limit, offset int) ([]models.QuoteRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM quote_requests
		WHERE %s = $1 AND ($2::text = '' OR status = $2::text)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`, quoteColumns, column)
	quotes := []models.QuoteRequest{}
	if err := pgxscan.Select(ctx, r.DB, &quotes, query, userId, string(status), limit, offset); err != nil {
		return nil, mapErr(err)
	}
	return quotes, nil
}

// RespondQuote сохраняет ответ перевозчика на ожидающий и не истёкший запрос.
func (r *PostgresQuoteRepository) RespondQuote(ctx context.Context, quoteId string, resp models.QuoteResponse, now time.Time) (*models.QuoteRequest, error) {
	var updated models.QuoteRequest
	err := db.WithTx(ctx, r.DB, func(tx pgx.Tx) error {
		query := `
			UPDATE quote_requests
			SET status = $2, response_amount = $3, response_message = $4, response_duration = $5, responded_at = $6
			WHERE id = $1 AND status = $7 AND expires_at > $6
			RETURNING ` + quoteColumns
		err := pgxscan.Get(ctx, tx, &updated, query,
			quoteId, models.RespondedQuote, resp.Amount, resp.Message, resp.Duration, now, models.PendingQuote)
		if err != nil {
			return conflictIfExists(ctx, tx, quoteId, err)
		}
		return emit(ctx, tx, models.QuoteResponded, updated.ID, updated, updated.ClientID)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// AcceptQuote принимает цену перевозчика: создаёт принятое предложение, бронирует отправку
// и отклоняет конкурентов в одной транзакции. Повторный вызов возвращает то же предложение.
func (r *PostgresQuoteRepository) AcceptQuote(ctx context.Context, quoteId string, now time.Time) (*models.Offer, error) {
	var offer models.Offer
	err := db.WithTx(ctx, r.DB, func(tx pgx.Tx) error {
		var shipmentId string
		if err := tx.QueryRow(ctx, `SELECT shipment_id FROM quote_requests WHERE id = $1`, quoteId).Scan(&shipmentId); err != nil {
			return mapErr(err)
		}
		shipment, err := getShipment(ctx, tx, shipmentId, true)
		if err != nil {
			return err
		}
		quote, err := getQuote(ctx, tx, quoteId, true)
		if err != nil {
			return err
		}

		if quote.Status == models.AcceptedQuote {
			query := `SELECT ` + offerColumns + ` FROM offers WHERE quote_request_id = $1`
			return mapErr(pgxscan.Get(ctx, tx, &offer, query, quoteId))
		}
		if quote.Status != models.RespondedQuote || quote.ResponseAmount == nil ||
			!quote.ExpiresAt.After(now) || shipment.Status != models.PendingShipment {
			return ErrConflict
		}

		if _, err := tx.Exec(ctx, `UPDATE quote_requests SET status = $2 WHERE id = $1`, quoteId, models.AcceptedQuote); err != nil {
			return fmt.Errorf("failed to accept quote: %w", err)
		}
		events, err := book(ctx, tx, shipment, "")
		if err != nil {
			return err
		}

		query := `
			INSERT INTO offers (id, shipment_id, transporter_id, quote_request_id, amount, estimated_duration,
				comments, status, accepted_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
			RETURNING ` + offerColumns
		err = pgxscan.Get(ctx, tx, &offer, query,
			uuid.New().String(), shipment.ID, quote.TransporterID, quote.ID, *quote.ResponseAmount,
			quote.ResponseDuration, quote.ResponseMessage, models.AcceptedOffer)
		if err != nil {
			return mapErr(err)
		}

		quote.Status = models.AcceptedQuote
		quoteEvent, err := newEvent(models.QuoteAccepted, quote.ID, quote, quote.TransporterID, quote.ClientID)
		if err != nil {
			return err
		}
		offerEvent, err := newEvent(models.OfferAccepted, offer.ID, offer, offer.TransporterID, quote.ClientID)
		if err != nil {
			return err
		}
		return insertOutbox(ctx, tx, append([]models.OutboxEvent{quoteEvent, offerEvent}, events...)...)
	})
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// RejectQuote отклоняет открытый запрос котировки.
func (r *PostgresQuoteRepository) RejectQuote(ctx context.Context, quoteId string) (*models.QuoteRequest, error) {
	var updated models.QuoteRequest
	err := db.WithTx(ctx, r.DB, func(tx pgx.Tx) error {
		query := `UPDATE quote_requests SET status = $2 WHERE id = $1 AND status = ANY($3::text[]) RETURNING ` + quoteColumns
		if err := pgxscan.Get(ctx, tx, &updated, query, quoteId, models.RejectedQuote, openQuoteStatuses); err != nil {
			return conflictIfExists(ctx, tx, quoteId, err)
		}
		return emit(ctx, tx, models.QuoteRejected, updated.ID, updated, updated.TransporterID)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ExpireQuotes переводит просроченные открытые запросы в expired.
func (r *PostgresQuoteRepository) ExpireQuotes(ctx context.Context, now time.Time) ([]models.QuoteRequest, error) {
	expired := []models.QuoteRequest{}
	err := db.WithTx(ctx, r.DB, func(tx pgx.Tx) error {
		query := `
			UPDATE quote_requests SET status = $1
			WHERE status = ANY($2::text[]) AND expires_at <= $3
			RETURNING ` + quoteColumns
		if err := pgxscan.Select(ctx, tx, &expired, query, models.ExpiredQuote, openQuoteStatuses, now); err != nil {
			return fmt.Errorf("failed to expire quotes: %w", err)
		}
		for _, q := range expired {
			if err := emit(ctx, tx, models.QuoteExpired, q.ID, q, q.ClientID, q.TransporterID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expired, nil
}

func rejectOpenQuotes(ctx context.Context, tx pgx.Tx, shipmentId, exceptId string) ([]models.QuoteRequest, error) {
	query := `
		UPDATE quote_requests SET status = $2
		WHERE shipment_id = $1 AND status = ANY($3::text[]) AND ($4::text = '' OR id::text <> $4::text)
		RETURNING ` + quoteColumns
	rejected := []models.QuoteRequest{}
	if err := pgxscan.Select(ctx, tx, &rejected, query, shipmentId, models.RejectedQuote, openQuoteStatuses, exceptId); err != nil {
		return nil, fmt.Errorf("failed to reject open quotes: %w", err)
	}
	return rejected, nil
}

// conflictIfExists отличает отсутствующий запрос от запроса в неподходящем статусе.
func conflictIfExists(ctx context.Context, tx pgx.Tx, quoteId string, err error) error {
	if err = mapErr(err); !errors.Is(err, ErrNotFound) {
		return err
	}
	if _, getErr := getQuote(ctx, tx, quoteId, false); getErr != nil {
		return getErr
	}
	return ErrConflict
}
