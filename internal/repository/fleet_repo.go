//go:generate mockgen -source=fleet_repo.go -destination=mocks/fleet_repo.go -package=mock_repository

package repository

import (
	"context"
	"time"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	vehicleColumns  = `id, transporter_id, plate, vehicle_type, brand, model, year, capacity_kg, volume_m3, created_at`
	documentColumns = `id, transporter_id, doc_type, file_name, file_path, content_type, size_bytes, status,
	review_note, uploaded_at, reviewed_at`
)

// FleetRepository - интерфейс для работы с транспортом и документами перевозчиков.
type FleetRepository interface {
	CreateVehicle(ctx context.Context, vehicle models.Vehicle) (*models.Vehicle, error)
	GetVehicle(ctx context.Context, vehicleId string) (*models.Vehicle, error)
	GetTransporterVehicles(ctx context.Context, transporterId string) ([]models.Vehicle, error)
	DeleteVehicle(ctx context.Context, vehicleId string) error

	CreateDocument(ctx context.Context, doc models.TransporterDocument) (*models.TransporterDocument, error)
	GetDocument(ctx context.Context, documentId string) (*models.TransporterDocument, error)
	GetTransporterDocuments(ctx context.Context, transporterId string) ([]models.TransporterDocument, error)
	DeleteDocument(ctx context.Context, documentId string) error
	ReviewDocument(ctx context.Context, documentId string, status models.DocumentStatus, note string, at time.Time) (*models.TransporterDocument, error)
}

// PostgresFleetRepository - реализация FleetRepository для базы данных.
type PostgresFleetRepository struct {
	DB *pgxpool.Pool
}

func NewPostgresFleetRepository(db *pgxpool.Pool) *PostgresFleetRepository {
	return &PostgresFleetRepository{DB: db}
}

// CreateVehicle добавляет транспорт; занятый номер - ErrDuplicate.
func (r *PostgresFleetRepository) CreateVehicle(ctx context.Context, v models.Vehicle) (*models.Vehicle, error) {
	query := `
		INSERT INTO vehicles (id, transporter_id, plate, vehicle_type, brand, model, year, capacity_kg, volume_m3)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + vehicleColumns
	var created models.Vehicle
	err := pgxscan.Get(ctx, r.DB, &created, query,
		v.ID, v.TransporterID, v.Plate, v.VehicleType, v.Brand, v.Model, v.Year, v.CapacityKg, v.VolumeM3)
	if err != nil {
		return nil, mapErr(err)
	}
	return &created, nil
}

func (r *PostgresFleetRepository) GetVehicle(ctx context.Context, vehicleId string) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := pgxscan.Get(ctx, r.DB, &v, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, vehicleId); err != nil {
		return nil, mapErr(err)
	}
	return &v, nil
}

func (r *PostgresFleetRepository) GetTransporterVehicles(ctx context.Context, transporterId string) ([]models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE transporter_id = $1 ORDER BY created_at DESC, id`
	vehicles := []models.Vehicle{}
	if err := pgxscan.Select(ctx, r.DB, &vehicles, query, transporterId); err != nil {
		return nil, mapErr(err)
	}
	return vehicles, nil
}

func (r *PostgresFleetRepository) DeleteVehicle(ctx context.Context, vehicleId string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, vehicleId)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateDocument сохраняет метаданные загруженного документа.
func (r *PostgresFleetRepository) CreateDocument(ctx context.Context, d models.TransporterDocument) (*models.TransporterDocument, error) {
	query := `
		INSERT INTO transporter_documents (id, transporter_id, doc_type, file_name, file_path, content_type, size_bytes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + documentColumns
	var created models.TransporterDocument
	err := pgxscan.Get(ctx, r.DB, &created, query,
		d.ID, d.TransporterID, d.DocType, d.FileName, d.FilePath, d.ContentType, d.SizeBytes, models.PendingDocument)
	if err != nil {
		return nil, mapErr(err)
	}
	return &created, nil
}

func (r *PostgresFleetRepository) GetDocument(ctx context.Context, documentId string) (*models.TransporterDocument, error) {
	var d models.TransporterDocument
	query := `SELECT ` + documentColumns + ` FROM transporter_documents WHERE id = $1`
	if err := pgxscan.Get(ctx, r.DB, &d, query, documentId); err != nil {
		return nil, mapErr(err)
	}
	return &d, nil
}

func (r *PostgresFleetRepository) GetTransporterDocuments(ctx context.Context, transporterId string) ([]models.TransporterDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM transporter_documents WHERE transporter_id = $1 ORDER BY uploaded_at DESC, id`
	docs := []models.TransporterDocument{}
	if err := pgxscan.Select(ctx, r.DB, &docs, query, transporterId); err != nil {
		return nil, mapErr(err)
	}
	return docs, nil
}

func (r *PostgresFleetRepository) DeleteDocument(ctx context.Context, documentId string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM transporter_documents WHERE id = $1`, documentId)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReviewDocument фиксирует решение администратора по документу.
func (r *PostgresFleetRepository) ReviewDocument(ctx context.Context, documentId string, status models.DocumentStatus, note string, at time.Time) (*models.TransporterDocument, error) {
	query := `
		UPDATE transporter_documents SET status = $2, review_note = $3, reviewed_at = $4
		WHERE id = $1
		RETURNING ` + documentColumns
	var d models.TransporterDocument
	if err := pgxscan.Get(ctx, r.DB, &d, query, documentId, status, note, at); err != nil {
		return nil, mapErr(err)
	}
	return &d, nil
}
