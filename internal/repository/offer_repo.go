//go:generate mockgen -source=offer_repo.go -destination=mocks/offer_repo.go -package=mock_repository

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/senyabanana/freight-service/internal/db"
	"github.com/senyabanana/freight-service/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const offerColumns = `id, shipment_id, transporter_id, vehicle_id, quote_request_id, amount, estimated_duration,
	comments, status, accepted_at, paid_at, completed_at, created_at, updated_at`

// OfferRepository - интерфейс для работы с предложениями перевозчиков.
type OfferRepository interface {
	CreateOffer(ctx context.Context, offer models.Offer) (*models.Offer, error)
	GetOffer(ctx context.Context, offerId string) (*models.Offer, error)
	GetTransporterOffers(ctx context.Context, transporterId string, status models.OfferStatus, limit, offset int) ([]models.Offer, error)
	GetShipmentOffers(ctx context.Context, shipmentId string) ([]models.Offer, error)
	GetHolder(ctx context.Context, shipmentId string) (*models.Offer, error)
	AcceptOffer(ctx context.Context, offerId string) (*models.Offer, error)
	UpdateOfferStatus(ctx context.Context, offerId string, from, to models.OfferStatus) (*models.Offer, error)
	CompleteOffer(ctx context.Context, offerId string) (*models.Offer, error)
}

// PostgresOfferRepository - реализация OfferRepository для базы данных.
type PostgresOfferRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresOfferRepository создает новый экземпляр PostgresOfferRepository.
func NewPostgresOfferRepository(db *pgxpool.Pool) *PostgresOfferRepository {
	return &PostgresOfferRepository{DB: db}
}

// CreateOffer создаёт предложение, если отправка ещё открыта.
// Повторное ожидающее предложение того же перевозчика - ErrDuplicate.
func (r *PostgresOfferRepository) CreateOffer(ctx context.Context, offer models.Offer) (*models.Offer, error) {
	offer.ID = uuid.New().String()
	offer.Status = models.PendingOffer

	var created models.Offer
	err := db.WithTx(ctx, r.DB, func(tx pgx.Tx) error {
		shipment, err := getShipment(ctx, tx, offer.ShipmentID, true)
		if err != nil {
			return err
		}
		if shipment.Status != models.PendingShipment {
			return ErrConflict
		}
		taken, err := hasHolder(ctx, tx, shipment.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrConflict
		}

		query := `
			INSERT INTO offers (id, shipment_id, transporter_id, vehicle_id, quote_request_id, amount,
				estimated_duration, comments, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING ` + offerColumns
		err = pgxscan.Get(ctx, tx, &created, query,
			offer.ID, offer.ShipmentID, offer.TransporterID, offer.VehicleID, offer.QuoteRequestID, offer.Amount,
			offer.EstimatedDuration, offer.Comments, offer.Status)
		if err != nil {
			return mapErr(err)
		}
		return emit(ctx, tx, models.OfferCreated, created.ID, created, shipment.ClientID)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetOffer возвращает предложение по id.
func (r *PostgresOfferRepository) GetOffer(ctx context.Context, offerId string) (*models.Offer, error) {
	return getOffer(ctx, r.DB, offerId, false)
}

func getOffer(ctx context.Context, q querier, offerId string, forUpdate bool) (*models.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o models.Offer
	if err := pgxscan.Get(ctx, q, &o, query, offerId); err != nil {
		return nil, mapErr(err)
	}
	return &o, nil
}

// GetTransporterOffers возвращает предложения перевозчика, новые сначала.
func (r *PostgresOfferRepository) GetTransporterOffers(ctx context.Context, transporterId string, status models.OfferStatus, limit, offset int) ([]models.Offer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM offers
		WHERE transporter_id = $1 AND ($2::text = '' OR status = $2::text)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`
	offers := []models.Offer{}
	if err := pgxscan.Select(ctx, r.DB, &offers, query, transporterId, string(status), limit, offset); err != nil {
		return nil, mapErr(err)
	}
	return offers, nil
}

// GetShipmentOffers возвращает все предложения по отправке: дешёвые сначала.
func (r *PostgresOfferRepository) GetShipmentOffers(ctx context.Context, shipmentId string) ([]models.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE shipment_id = $1 ORDER BY amount, created_at`
	offers := []models.Offer{}
	if err := pgxscan.Select(ctx, r.DB, &offers, query, shipmentId); err != nil {
		return nil, mapErr(err)
	}
	return offers, nil
}

// GetHolder возвращает предложение, закрепившее отправку (accepted, paid или completed).
func (r *PostgresOfferRepository) GetHolder(ctx context.Context, shipmentId string) (*models.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE shipment_id = $1 AND status = ANY($2::text[])`
	var o models.Offer
	if err := pgxscan.Get(ctx, r.DB, &o, query, shipmentId, holdingStatuses); err != nil {
		return nil, mapErr(err)
	}
	return &o, nil
}

func hasHolder(ctx context.Context, q querier, shipmentId string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM offers WHERE shipment_id = $1 AND status = ANY($2::text[]))`
	if err := q.QueryRow(ctx, query, shipmentId, holdingStatuses).Scan(&exists); err != nil {
		return false, mapErr(err)
	}
	return exists, nil
}

// lockOfferWithShipment блокирует сначала отправку, затем предложение: тот же порядок, что и в CreateOffer.
func lockOfferWithShipment(ctx context.Context, tx pgx.Tx, offerId string) (*models.Offer, *models.Shipment, error) {
	var shipmentId string
	if err := tx.QueryRow(ctx, `SELECT shipment_id FROM offers WHERE id = $1`, offerId).Scan(&shipmentId); err != nil {
		return nil, nil, mapErr(err)
	}
	shipment, err := getShipment(ctx, tx, shipmentId, true)
	if err != nil {
		return nil, nil, err
	}
	offer, err := getOffer(ctx, tx, offerId, true)
	if err != nil {
		return nil, nil, err
	}
	return offer, shipment, nil
}

// AcceptOffer атомарно принимает предложение: остальные ожидающие предложения и открытые
// запросы котировок отклоняются, отправка переходит в booked.
// Повторный вызов для уже принятого предложения возвращает его без изменений.
func (r *PostgresOfferRepository) AcceptOffer(ctx context.Context, offerId string) (*models.Offer, error) {
	var accepted models.Offer
	err := db.WithTx(ctx, r.DB, func(tx pgx.Tx) error {
		offer, shipment, err := lockOfferWithShipment(ctx, tx, offerId)
		if err != nil {
			return err
		}
		if offer.Status.Holds() {
			accepted = *offer
			return nil
		}
		if offer.Status != models.PendingOffer || shipment.Status != models.PendingShipment {
			return ErrConflict
		}

		query := `UPDATE offers SET status = $2, accepted_at = now(), updated_at = now()
		          WHERE id = $1 RETURNING ` + offerColumns
		if err := pgxscan.Get(ctx, tx, &accepted, query, offerId, models.AcceptedOffer); err != nil {
			return mapErr(err)
		}

		events, err := book(ctx, tx, shipment, accepted.ID)
		if err != nil {
			return err
		}
		accEvent, err := newEvent(models.OfferAccepted, accepted.ID, accepted, accepted.TransporterID, shipment.ClientID)
		if err != nil {
			return err
		}
		return insertOutbox(ctx, tx, append([]models.OutboxEvent{accEvent}, events...)...)
	})
	if err != nil {
		return nil, err
	}
	return &accepted, nil
}

// book переводит отправку в booked и отклоняет конкурирующие предложения и запросы котировок.
// Возвращает события для отклонённых участников.
func book(ctx context.Context, tx pgx.Tx, shipment *models.Shipment, keepOfferId string) ([]models.OutboxEvent, error) {
	tag, err := tx.Exec(ctx, `UPDATE shipments SET status = $2, updated_at = now() WHERE id = $1 AND status = $3`,
		shipment.ID, models.BookedShipment, models.PendingShipment)
	if err != nil {
		return nil, fmt.Errorf("failed to book shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrConflict
	}

	rejectedOffers, err := rejectPendingOffers(ctx, tx, shipment.ID, keepOfferId)
	if err != nil {
		return nil, err
	}
	rejectedQuotes, err := rejectOpenQuotes(ctx, tx, shipment.ID, "")
	if err != nil {
		return nil, err
	}

	var events []models.OutboxEvent
	for _, o := range rejectedOffers {
		e, err := newEvent(models.OfferRejected, o.ID, o, o.TransporterID)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	for _, q := range rejectedQuotes {
		e, err := newEvent(models.QuoteRejected, q.ID, q, q.TransporterID)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func rejectPendingOffers(ctx context.Context, tx pgx.Tx, shipmentId, exceptId string) ([]models.Offer, error) {
	query := `
		UPDATE offers SET status = $2, updated_at = now()
		WHERE shipment_id = $1 AND status = $3 AND ($4::text = '' OR id::text <> $4::text)
		RETURNING ` + offerColumns
	rejected := []models.Offer{}
	err := pgxscan.Select(ctx, tx, &rejected, query, shipmentId, models.RejectedOffer, models.PendingOffer, exceptId)
	if err != nil {
		return nil, fmt.Errorf("failed to reject pending offers: %w", err)
	}
	return rejected, nil
}

// UpdateOfferStatus выполняет простой переход from -> to (отклонение или оплата).
func (r *PostgresOfferRepository) UpdateOfferStatus(ctx context.Context, offerId string, from, to models.OfferStatus) (*models.Offer, error) {
	var eventType models.EventType
	switch to {
	case models.RejectedOffer:
		eventType = models.OfferRejected
	case models.PaidOffer:
		eventType = models.OfferPaid
	default:
		return nil, fmt.Errorf("unsupported offer transition to %s", to)
	}

	var updated models.Offer
	err := db.WithTx(ctx, r.DB, func(tx pgx.Tx) error {
		query := `
			UPDATE offers
			SET status = $3::text,
			    paid_at = CASE WHEN $3::text = 'paid' THEN now() ELSE paid_at END,
			    updated_at = now()
			WHERE id = $1 AND status = $2::text
			RETURNING ` + offerColumns
		if err := pgxscan.Get(ctx, tx, &updated, query, offerId, from, to); err != nil {
			if err = mapErr(err); errors.Is(err, ErrNotFound) {
				if _, getErr := getOffer(ctx, tx, offerId, false); getErr != nil {
					return getErr
				}
				return ErrConflict
			}
			return err
		}

		var clientId string
		if err := tx.QueryRow(ctx, `SELECT client_id FROM shipments WHERE id = $1`, updated.ShipmentID).Scan(&clientId); err != nil {
			return mapErr(err)
		}
		return emit(ctx, tx, eventType, updated.ID, updated, updated.TransporterID, clientId)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// CompleteOffer завершает оплаченную перевозку: предложение и отправка переходят в completed.
func (r *PostgresOfferRepository) CompleteOffer(ctx context.Context, offerId string) (*models.Offer, error) {
	var completed models.Offer
	err := db.WithTx(ctx, r.DB, func(tx pgx.Tx) error {
		offer, shipment, err := lockOfferWithShipment(ctx, tx, offerId)
		if err != nil {
			return err
		}
		if offer.Status == models.CompletedOffer {
			completed = *offer
			return nil
		}
		if offer.Status != models.PaidOffer || shipment.Status != models.BookedShipment {
			return ErrConflict
		}

		query := `UPDATE offers SET status = $2, completed_at = now(), updated_at = now()
		          WHERE id = $1 RETURNING ` + offerColumns
		if err := pgxscan.Get(ctx, tx, &completed, query, offerId, models.CompletedOffer); err != nil {
			return mapErr(err)
		}
		_, err = tx.Exec(ctx, `UPDATE shipments SET status = $2, updated_at = now() WHERE id = $1`,
			shipment.ID, models.CompletedShipment)
		if err != nil {
			return fmt.Errorf("failed to complete shipment: %w", err)
		}
		return emit(ctx, tx, models.OfferCompleted, completed.ID, completed, completed.TransporterID, shipment.ClientID)
	})
	if err != nil {
		return nil, err
	}
	return &completed, nil
}
