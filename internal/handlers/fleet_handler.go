package handlers

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/services"
	"github.com/senyabanana/freight-service/internal/storage"
	"github.com/senyabanana/freight-service/internal/utils"

	"go.uber.org/zap"
)

// multipartOverhead - запас на заголовки и поля формы сверх размера файла.
const multipartOverhead = 1 << 20

// FleetHandler - транспорт и документы перевозчика.
type FleetHandler struct {
	Service *services.FleetService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewFleetHandler создаёт новый экземпляр FleetHandler.
func NewFleetHandler(service *services.FleetService, logger *zap.Logger, timeout time.Duration) *FleetHandler {
	return &FleetHandler{Service: service, Logger: logger, Timeout: timeout}
}

// CreateVehicle обрабатывает добавление транспорта.
func (h *FleetHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.VehicleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vehicle, err := h.Service.CreateVehicle(ctx, actorFrom(r), req)
	if err != nil {
		fail(h.Logger, w, r, err, "failed to create vehicle")
		return
	}
	utils.SendJSON(w, http.StatusOK, vehicle)
}

// GetMyVehicles обрабатывает запрос списка транспорта.
func (h *FleetHandler) GetMyVehicles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	vehicles, err := h.Service.GetMyVehicles(ctx, actorFrom(r))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to fetch vehicles")
		return
	}
	utils.SendJSON(w, http.StatusOK, vehicles)
}

// DeleteVehicle обрабатывает удаление транспорта.
func (h *FleetHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	if err := h.Service.DeleteVehicle(ctx, actorFrom(r), r.PathValue("vehicleId")); err != nil {
		fail(h.Logger, w, r, err, "failed to delete vehicle")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadDocument принимает multipart-форму с полями docType и file.
func (h *FleetHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxDocumentSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.SendErrorResponse(w, http.StatusRequestEntityTooLarge, storage.ErrFileTooLarge.Error())
			return
		}
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.Logger.Warn("failed to remove multipart temp files", zap.Error(err))
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	doc, err := h.Service.UploadDocument(ctx, actorFrom(r), r.FormValue("docType"), header.Filename, file)
	if err != nil {
		fail(h.Logger, w, r, err, "failed to upload document")
		return
	}
	h.Logger.Info("document uploaded", zap.String("document_id", doc.ID), zap.Int64("size", doc.SizeBytes))
	utils.SendJSON(w, http.StatusOK, doc)
}

// GetMyDocuments обрабатывает запрос списка документов.
func (h *FleetHandler) GetMyDocuments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	docs, err := h.Service.GetMyDocuments(ctx, actorFrom(r))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to fetch documents")
		return
	}
	utils.SendJSON(w, http.StatusOK, docs)
}

// DeleteDocument обрабатывает удаление документа.
func (h *FleetHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	if err := h.Service.DeleteDocument(ctx, actorFrom(r), r.PathValue("documentId")); err != nil {
		fail(h.Logger, w, r, err, "failed to delete document")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DocumentURL выдаёт временную ссылку на документ.
func (h *FleetHandler) DocumentURL(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	link, err := h.Service.DocumentURL(ctx, actorFrom(r), r.PathValue("documentId"))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to sign document url")
		return
	}
	utils.SendJSON(w, http.StatusOK, link)
}

// DownloadFile отдаёт файл по подписанной ссылке.
func (h *FleetHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	doc, file, err := h.Service.OpenSignedFile(ctx, r.PathValue("token"))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to open document")
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}))
	http.ServeContent(w, r, doc.FileName, doc.UploadedAt, file)
}

// ReviewDocument обрабатывает решение администратора по документу.
func (h *FleetHandler) ReviewDocument(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	q := r.URL.Query()
	doc, err := h.Service.ReviewDocument(ctx, actorFrom(r), r.PathValue("documentId"), q.Get("status"), q.Get("note"))
	if err != nil {
		fail(h.Logger, w, r, err, "failed to review document")
		return
	}
	utils.SendJSON(w, http.StatusOK, doc)
}
