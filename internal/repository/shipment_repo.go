//go:generate mockgen -source=shipment_repo.go -destination=mocks/shipment_repo.go -package=mock_repository

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

const shipmentColumns = `id, client_id, title, description, pickup_address, pickup_lat, pickup_lng,
	delivery_address, delivery_lat, delivery_lng, weight_kg, volume_m3, length_cm, width_cm, height_cm,
	pieces, cargo_type, packaging, pickup_date, pickup_time, delivery_date, delivery_time,
	special_requirements, insurance_value, status, estimated_price, price_formula, tracking_enabled,
	version, created_at, updated_at`

// holdingStatuses - статусы предложения, закрепляющие отправку за перевозчиком.
var holdingStatuses = []string{string(models.AcceptedOffer), string(models.PaidOffer), string(models.CompletedOffer)}

var marketplaceOrder = map[string]string{
	"":       "created_at DESC, id",
	"newest": "created_at DESC, id",
	"price":  "estimated_price DESC, created_at DESC, id",
	"weight": "weight_kg ASC, created_at DESC, id",
}

// ShipmentRepository - интерфейс для работы с отправками.
type ShipmentRepository interface {
	CreateShipment(ctx context.Context, shipment models.Shipment) (*models.Shipment, error)
	GetShipment(ctx context.Context, shipmentId string) (*models.Shipment, error)
	GetClientShipments(ctx context.Context, clientId string, status models.ShipmentStatus, limit, offset int) ([]models.Shipment, error)
	EditShipment(ctx context.Context, next models.Shipment, expectedVersion int) (*models.Shipment, error)
	RollbackShipment(ctx context.Context, shipmentId string, version int) (*models.Shipment, error)
	CancelShipment(ctx context.Context, shipmentId string) (*models.Shipment, error)
	SetTracking(ctx context.Context, shipmentId string, enabled bool) (*models.TrackingState, error)
	GetTracking(ctx context.Context, shipmentIds []string) ([]models.TrackingState, error)
	ListMarketplace(ctx context.Context, filter models.MarketplaceFilter) ([]models.Shipment, error)
}

// PostgresShipmentRepository - реализация ShipmentRepository для базы данных.
type PostgresShipmentRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresShipmentRepository создает новый экземпляр PostgresShipmentRepository.
func NewPostgresShipmentRepository(db *pgxpool.Pool) *PostgresShipmentRepository {
	return &PostgresShipmentRepository{DB: db}
}

// CreateShipment сохраняет новую отправку и событие shipment.created.
func (r *PostgresShipmentRepository) CreateShipment(ctx context.Context, s models.Shipment) (*models.Shipment, error) {
	s.ID = uuid.New().String()
	s.Status = models.PendingShipment
	s.Version = 1

	var created models.Shipment
	err := db.WithTx(ctx, r.DB, func(tx pgx.Tx) error {
		query := `
			INSERT INTO shipments (id, client_id, title, description, pickup_address, pickup_lat, pickup_lng,
				delivery_address, delivery_lat, delivery_lng, weight_kg, volume_m3, length_cm, width_cm, height_cm,
				pieces, cargo_type, packaging, pickup_date, pickup_time, delivery_date, delivery_time,
				special_requirements, insurance_value, status, estimated_price, price_formula, version)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
				$21, $22, $23, $24, $25, $26, $27, $28)
			RETURNING ` + shipmentColumns
		err := pgxscan.Get(ctx, tx, &created, query,
			s.ID, s.ClientID, s.Title, s.Description, s.PickupAddress, s.PickupLat, s.PickupLng,
			s.DeliveryAddress, s.DeliveryLat, s.DeliveryLng, s.WeightKg, s.VolumeM3, s.LengthCm, s.WidthCm, s.HeightCm,
			s.Pieces, s.CargoType, s.Packaging, s.PickupDate, s.PickupTime, s.DeliveryDate, s.DeliveryTime,
			s.SpecialRequirements, s.InsuranceValue, s.Status, s.EstimatedPrice, s.PriceFormula, s.Version)
		if err != nil {
			return mapErr(err)
		}
		return emit(ctx, tx, models.ShipmentCreated, created.ID, created, created.ClientID)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetShipment возвращает отправку по id.
func (r *PostgresShipmentRepository) GetShipment(ctx context.Context, shipmentId string) (*models.Shipment, error) {
	return getShipment(ctx, r.DB, shipmentId, false)
}

func getShipment(ctx context.Context, q querier, shipmentId string, forUpdate bool) (*models.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var s models.Shipment
	if err := pgxscan.Get(ctx, q, &s, query, shipmentId); err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

// GetClientShipments возвращает отправки клиента, новые сначала.
func (r *PostgresShipmentRepository) GetClientShipments(ctx context.Context, clientId string, status models.ShipmentStatus, limit, offset int) ([]models.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments
		WHERE client_id = $1 AND ($2::text = '' OR status = $2::text)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`
	shipments := []models.Shipment{}
	if err := pgxscan.Select(ctx, r.DB, &shipments, query, clientId, string(status), limit, offset); err != nil {
		return nil, mapErr(err)
	}
	return shipments, nil
}

// EditShipment сохраняет текущую версию в историю и применяет изменения с version+1.
// Отправка должна быть в статусе pending и иметь версию expectedVersion.
func (r *PostgresShipmentRepository) EditShipment(ctx context.Context, next models.Shipment, expectedVersion int) (*models.Shipment, error) {
	var updated *models.Shipment
	err := db.WithTx(ctx, r.DB, func(tx pgx.Tx) error {
		current, err := getShipment(ctx, tx, next.ID, true)
		if err != nil {
			return err
		}
		if current.Status != models.PendingShipment || current.Version != expectedVersion {
			return ErrConflict
		}
		if err := insertHistory(ctx, tx, current); err != nil {
			return err
		}
		updated, err = applyEditable(ctx, tx, next)
		if err != nil {
			return err
		}
		return emit(ctx, tx, models.ShipmentUpdated, updated.ID, updated, updated.ClientID)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RollbackShipment восстанавливает редактируемые поля из версии version как новую версию.
func (r *PostgresShipmentRepository) RollbackShipment(ctx context.Context, shipmentId string, version int) (*models.Shipment, error) {
	var updated *models.Shipment
	err := db.WithTx(ctx, r.DB, func(tx pgx.Tx) error {
		current, err := getShipment(ctx, tx, shipmentId, true)
		if err != nil {
			return err
		}
		if current.Status != models.PendingShipment {
			return ErrConflict
		}

		snapshot := *current
		query := `
			SELECT title, description, pickup_address, pickup_lat, pickup_lng, delivery_address, delivery_lat,
				delivery_lng, weight_kg, volume_m3, length_cm, width_cm, height_cm, pieces, cargo_type, packaging,
				pickup_date, pickup_time, delivery_date, delivery_time, special_requirements, insurance_value,
				estimated_price, price_formula
			FROM shipment_history WHERE shipment_id = $1 AND version = $2`
		err = tx.QueryRow(ctx, query, shipmentId, version).Scan(
			&snapshot.Title,
			&snapshot.Description,
			&snapshot.PickupAddress,
			&snapshot.PickupLat,
			&snapshot.PickupLng,
			&snapshot.DeliveryAddress,
			&snapshot.DeliveryLat,
			&snapshot.DeliveryLng,
			&snapshot.WeightKg,
			&snapshot.VolumeM3,
			&snapshot.LengthCm,
			&snapshot.WidthCm,
			&snapshot.HeightCm,
			&snapshot.Pieces,
			&snapshot.CargoType,
			&snapshot.Packaging,
			&snapshot.PickupDate,
			&snapshot.PickupTime,
			&snapshot.DeliveryDate,
			&snapshot.DeliveryTime,
			&snapshot.SpecialRequirements,
			&snapshot.InsuranceValue,
			&snapshot.EstimatedPrice,
			&snapshot.PriceFormula,
		)
		if err != nil {
			return mapErr(err)
		}

		if err := insertHistory(ctx, tx, current); err != nil {
			return err
		}
		updated, err = applyEditable(ctx, tx, snapshot)
		if err != nil {
			return err
		}
		return emit(ctx, tx, models.ShipmentUpdated, updated.ID, updated, updated.ClientID)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func insertHistory(ctx context.Context, tx pgx.Tx, s *models.Shipment) error {
	query := `
		INSERT INTO shipment_history (shipment_id, version, title, description, pickup_address, pickup_lat,
			pickup_lng, delivery_address, delivery_lat, delivery_lng, weight_kg, volume_m3, length_cm, width_cm,
			height_cm, pieces, cargo_type, packaging, pickup_date, pickup_time, delivery_date, delivery_time,
			special_requirements, insurance_value, estimated_price, price_formula)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26)
		ON CONFLICT (shipment_id, version) DO NOTHING`
	_, err := tx.Exec(ctx, query,
		s.ID, s.Version, s.Title, s.Description, s.PickupAddress, s.PickupLat,
		s.PickupLng, s.DeliveryAddress, s.DeliveryLat, s.DeliveryLng, s.WeightKg, s.VolumeM3, s.LengthCm, s.WidthCm,
		s.HeightCm, s.Pieces, s.CargoType, s.Packaging, s.PickupDate, s.PickupTime, s.DeliveryDate, s.DeliveryTime,
		s.SpecialRequirements, s.InsuranceValue, s.EstimatedPrice, s.PriceFormula)
	if err != nil {
		return fmt.Errorf("failed to save shipment history: %w", err)
	}
	return nil
}

func applyEditable(ctx context.Context, tx pgx.Tx, s models.Shipment) (*models.Shipment, error) {
	query := `
		UPDATE shipments SET title = $2, description = $3, pickup_address = $4, pickup_lat = $5, pickup_lng = $6,
			delivery_address = $7, delivery_lat = $8, delivery_lng = $9, weight_kg = $10, volume_m3 = $11,
			length_cm = $12, width_cm = $13, height_cm = $14, pieces = $15, cargo_type = $16, packaging = $17,
			pickup_date = $18, pickup_time = $19, delivery_date = $20, delivery_time = $21,
			special_requirements = $22, insurance_value = $23, estimated_price = $24, price_formula = $25,
			version = version + 1, updated_at = now()
		WHERE id = $1
		RETURNING ` + shipmentColumns
	var updated models.Shipment
	err := pgxscan.Get(ctx, tx, &updated, query,
		s.ID, s.Title, s.Description, s.PickupAddress, s.PickupLat, s.PickupLng,
		s.DeliveryAddress, s.DeliveryLat, s.DeliveryLng, s.WeightKg, s.VolumeM3,
		s.LengthCm, s.WidthCm, s.HeightCm, s.Pieces, s.CargoType, s.Packaging,
		s.PickupDate, s.PickupTime, s.DeliveryDate, s.DeliveryTime,
		s.SpecialRequirements, s.InsuranceValue, s.EstimatedPrice, s.PriceFormula)
	if err != nil {
		return nil, mapErr(err)
	}
	return &updated, nil
}

// CancelShipment отменяет отправку в статусе pending и в той же транзакции
// отклоняет ожидающие предложения и открытые запросы котировок.
func (r *PostgresShipmentRepository) CancelShipment(ctx context.Context, shipmentId string) (*models.Shipment, error) {
	var cancelled models.Shipment
	err := db.WithTx(ctx, r.DB, func(tx pgx.Tx) error {
		current, err := getShipment(ctx, tx, shipmentId, true)
		if err != nil {
			return err
		}
		if current.Status != models.PendingShipment {
			return ErrConflict
		}

		query := `UPDATE shipments SET status = $2, updated_at = now() WHERE id = $1 RETURNING ` + shipmentColumns
		if err := pgxscan.Get(ctx, tx, &cancelled, query, shipmentId, models.CancelledShipment); err != nil {
			return mapErr(err)
		}

		rejectedOffers, err := rejectPendingOffers(ctx, tx, shipmentId, "")
		if err != nil {
			return err
		}
		rejectedQuotes, err := rejectOpenQuotes(ctx, tx, shipmentId, "")
		if err != nil {
			return err
		}

		recipients := []string{cancelled.ClientID}
		for _, o := range rejectedOffers {
			recipients = append(recipients, o.TransporterID)
		}
		for _, q := range rejectedQuotes {
			recipients = append(recipients, q.TransporterID)
		}
		return emit(ctx, tx, models.ShipmentCancelled, cancelled.ID, cancelled, recipients...)
	})
	if err != nil {
		return nil, err
	}
	return &cancelled, nil
}

// SetTracking включает или выключает отслеживание забронированной отправки.
func (r *PostgresShipmentRepository) SetTracking(ctx context.Context, shipmentId string, enabled bool) (*models.TrackingState, error) {
	var state models.TrackingState
	err := db.WithTx(ctx, r.DB, func(tx pgx.Tx) error {
		query := `
			WITH upd AS (
				UPDATE shipments SET tracking_enabled = $2, updated_at = now()
				WHERE id = $1 AND status = $3
				RETURNING id, client_id, status, tracking_enabled
			)
			SELECT upd.id, upd.client_id, o.transporter_id, upd.status, upd.tracking_enabled
			FROM upd
			LEFT JOIN offers o ON o.shipment_id = upd.id AND o.status = ANY($4::text[])`
		err := pgxscan.Get(ctx, tx, &state, query, shipmentId, enabled, models.BookedShipment, holdingStatuses)
		if err != nil {
			if err = mapErr(err); errors.Is(err, ErrNotFound) {
				return ErrConflict
			}
			return err
		}
		recipients := []string{state.ClientID}
		if state.TransporterID != nil {
			recipients = append(recipients, *state.TransporterID)
		}
		return emit(ctx, tx, models.TrackingChanged, state.ShipmentID, state, recipients...)
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// GetTracking возвращает флаги отслеживания для списка отправок вместе с владельцем и перевозчиком.
func (r *PostgresShipmentRepository) GetTracking(ctx context.Context, shipmentIds []string) ([]models.TrackingState, error) {
	query := `
		SELECT s.id, s.client_id, o.transporter_id, s.status, s.tracking_enabled
		FROM shipments s
		LEFT JOIN offers o ON o.shipment_id = s.id AND o.status = ANY($2::text[])
		WHERE s.id = ANY($1::uuid[])
		ORDER BY s.id`
	states := []models.TrackingState{}
	if err := pgxscan.Select(ctx, r.DB, &states, query, shipmentIds, holdingStatuses); err != nil {
		return nil, mapErr(err)
	}
	return states, nil
}

// ListMarketplace возвращает отправки в статусе pending без закреплённого предложения.
func (r *PostgresShipmentRepository) ListMarketplace(ctx context.Context, filter models.MarketplaceFilter) ([]models.Shipment, error) {
	order, ok := marketplaceOrder[filter.Sort]
	if !ok {
		return nil, fmt.Errorf("unknown marketplace sort %q", filter.Sort)
	}
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments s
		WHERE s.status = $1
		  AND ($2::text = '' OR s.cargo_type = $2::text)
		  AND NOT EXISTS (
			SELECT 1 FROM offers o
			WHERE o.shipment_id = s.id AND o.status = ANY($3::text[])
		  )
		ORDER BY ` + order + `
		LIMIT $4 OFFSET $5`
	shipments := []models.Shipment{}
	err := pgxscan.Select(ctx, r.DB, &shipments, query,
		models.PendingShipment, string(filter.CargoType), holdingStatuses, filter.Limit, filter.Offset)
	if err != nil {
		return nil, mapErr(err)
	}
	return shipments, nil
}
