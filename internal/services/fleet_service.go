package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"
	"github.com/senyabanana/freight-service/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentStore - файловое хранилище документов перевозчиков.
type DocumentStore interface {
	SaveDocument(transporterId, documentId, ext string, src io.Reader) (string, int64, error)
	Open(relPath string) (*os.File, error)
	Remove(relPath string) error
}

// LinkSigner выдаёт и проверяет временные ссылки на документы.
type LinkSigner interface {
	Sign(documentId string) (string, time.Time, error)
	Verify(token string) (string, error)
}

type FleetService struct {
	Repo    repository.FleetRepository
	Files   DocumentStore
	Signer  LinkSigner
	BaseURL string
	Logger  *zap.Logger
	Now     func() time.Time
}

// NewFleetService создает новый экземпляр FleetService.
func NewFleetService(repo repository.FleetRepository, files DocumentStore, signer LinkSigner, baseURL string, logger *zap.Logger) *FleetService {
	return &FleetService{
		Repo:    repo,
		Files:   files,
		Signer:  signer,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Logger:  logger,
		Now:     clock(nil),
	}
}

// CreateVehicle добавляет транспорт перевозчика.
func (s *FleetService) CreateVehicle(ctx context.Context, actor auth.Actor, req models.VehicleRequest) (*models.Vehicle, error) {
	if err := requireRole(actor, models.TransporterRole); err != nil {
		return nil, err
	}
	plate := strings.ToUpper(strings.TrimSpace(req.Plate))
	if plate == "" || strings.TrimSpace(req.VehicleType) == "" {
		return nil, models.BadRequest("missing required fields: plate, vehicleType")
	}
	if req.CapacityKg <= 0 {
		return nil, models.BadRequest("capacityKg must be positive")
	}
	if req.Year != 0 && (req.Year < 1950 || req.Year > s.Now().Year()+1) {
		return nil, models.BadRequest("invalid year")
	}

	vehicle, err := s.Repo.CreateVehicle(ctx, models.Vehicle{
		ID:            uuid.New().String(),
		TransporterID: actor.ID,
		Plate:         plate,
		VehicleType:   strings.TrimSpace(req.VehicleType),
		Brand:         req.Brand,
		Model:         req.Model,
		Year:          req.Year,
		CapacityKg:    req.CapacityKg,
		VolumeM3:      req.VolumeM3,
	})
	if err != nil {
		return nil, repoError("create_vehicle", err, "vehicle not found", "vehicle with this plate already exists")
	}
	return vehicle, nil
}

// GetMyVehicles возвращает транспорт перевозчика.
func (s *FleetService) GetMyVehicles(ctx context.Context, actor auth.Actor) ([]models.Vehicle, error) {
	if err := requireRole(actor, models.TransporterRole); err != nil {
		return nil, err
	}
	vehicles, err := s.Repo.GetTransporterVehicles(ctx, actor.ID)
	if err != nil {
		return nil, repoError("list_vehicles", err, "vehicles not found", "vehicles conflict")
	}
	return vehicles, nil
}

// DeleteVehicle удаляет транспорт владельца.
func (s *FleetService) DeleteVehicle(ctx context.Context, actor auth.Actor, vehicleId string) error {
	if err := requireRole(actor, models.TransporterRole); err != nil {
		return err
	}
	vehicle, err := s.Repo.GetVehicle(ctx, vehicleId)
	if err != nil {
		return repoError("delete_vehicle", err, "vehicle not found", "vehicle conflict")
	}
	if vehicle.TransporterID != actor.ID {
		return models.Forbidden("vehicle does not belong to the transporter")
	}
	if err := s.Repo.DeleteVehicle(ctx, vehicleId); err != nil {
		return repoError("delete_vehicle", err, "vehicle not found", "vehicle conflict")
	}
	return nil
}

// UploadDocument сохраняет файл и запись о документе; при ошибке записи файл удаляется.
func (s *FleetService) UploadDocument(ctx context.Context, actor auth.Actor, docType, fileName string, src io.Reader) (*models.TransporterDocument, error) {
	if err := requireRole(actor, models.TransporterRole); err != nil {
		return nil, err
	}
	docType = strings.TrimSpace(docType)
	if docType == "" {
		return nil, models.BadRequest("missing required field: docType")
	}
	ext, contentType, err := storage.DocumentType(fileName)
	if err != nil {
		return nil, models.BadRequest(err.Error())
	}

	docId := uuid.New().String()
	relPath, size, err := s.Files.SaveDocument(actor.ID, docId, ext, src)
	switch {
	case errors.Is(err, storage.ErrFileTooLarge):
		return nil, models.NewErrorResponse(http.StatusRequestEntityTooLarge, err.Error())
	case err != nil:
		return nil, err
	}

	doc, err := s.Repo.CreateDocument(ctx, models.TransporterDocument{
		ID:            docId,
		TransporterID: actor.ID,
		DocType:       docType,
		FileName:      fileName,
		FilePath:      relPath,
		ContentType:   contentType,
		SizeBytes:     size,
		Status:        models.PendingDocument,
	})
	if err != nil {
		if rmErr := s.Files.Remove(relPath); rmErr != nil {
			s.Logger.Warn("failed to remove orphaned document file", zap.String("path", relPath), zap.Error(rmErr))
		}
		return nil, repoError("upload_document", err, "document not found", "document already exists")
	}
	return doc, nil
}

// GetMyDocuments возвращает документы перевозчика.
func (s *FleetService) GetMyDocuments(ctx context.Context, actor auth.Actor) ([]models.TransporterDocument, error) {
	if err := requireRole(actor, models.TransporterRole); err != nil {
		return nil, err
	}
	docs, err := s.Repo.GetTransporterDocuments(ctx, actor.ID)
	if err != nil {
		return nil, repoError("list_documents", err, "documents not found", "documents conflict")
	}
	return docs, nil
}

// visibleDocument загружает документ владельца или любой документ для администратора.
func (s *FleetService) visibleDocument(ctx context.Context, actor auth.Actor, documentId string) (*models.TransporterDocument, error) {
	doc, err := s.Repo.GetDocument(ctx, documentId)
	if err != nil {
		return nil, repoError("get_document", err, "document not found", "document conflict")
	}
	if actor.Is(models.AdminRole) || (actor.Is(models.TransporterRole) && doc.TransporterID == actor.ID) {
		return doc, nil
	}
	return nil, models.Forbidden("document is not available to this user")
}

// DeleteDocument удаляет запись и файл документа.
func (s *FleetService) DeleteDocument(ctx context.Context, actor auth.Actor, documentId string) error {
	if err := requireRole(actor, models.TransporterRole); err != nil {
		return err
	}
	doc, err := s.visibleDocument(ctx, actor, documentId)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteDocument(ctx, documentId); err != nil {
		return repoError("delete_document", err, "document not found", "document conflict")
	}
	if err := s.Files.Remove(doc.FilePath); err != nil {
		s.Logger.Warn("failed to remove document file", zap.String("document_id", documentId), zap.Error(err))
	}
	return nil
}

// DocumentURL выдаёт временную ссылку на скачивание.
func (s *FleetService) DocumentURL(ctx context.Context, actor auth.Actor, documentId string) (*models.SignedURL, error) {
	doc, err := s.visibleDocument(ctx, actor, documentId)
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := s.Signer.Sign(doc.ID)
	if err != nil {
		return nil, err
	}
	return &models.SignedURL{URL: s.BaseURL + "/api/files/" + token, ExpiresAt: expiresAt}, nil
}

// OpenSignedFile проверяет ссылку и открывает файл документа. Файл закрывает вызывающий.
func (s *FleetService) OpenSignedFile(ctx context.Context, token string) (*models.TransporterDocument, *os.File, error) {
	documentId, err := s.Signer.Verify(token)
	if err != nil {
		return nil, nil, models.Forbidden(err.Error())
	}
	doc, err := s.Repo.GetDocument(ctx, documentId)
	if err != nil {
		return nil, nil, repoError("download_document", err, "document not found", "document conflict")
	}
	f, err := s.Files.Open(doc.FilePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, models.NotFound("document file not found")
	}
	if err != nil {
		return nil, nil, err
	}
	return doc, f, nil
}

// ReviewDocument принимает или отклоняет документ (администратор).
func (s *FleetService) ReviewDocument(ctx context.Context, actor auth.Actor, documentId, status, note string) (*models.TransporterDocument, error) {
	if err := requireRole(actor, models.AdminRole); err != nil {
		return nil, err
	}
	st := models.DocumentStatus(status)
	if st != models.ApprovedDocument && st != models.RejectedDocument {
		return nil, models.BadRequest("invalid status. Must be 'approved' or 'rejected'")
	}
	doc, err := s.Repo.ReviewDocument(ctx, documentId, st, note, s.Now())
	if err != nil {
		return nil, repoError("review_document", err, "document not found", "document conflict")
	}
	return doc, nil
}
