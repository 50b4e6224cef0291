package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/senyabanana/freight-service/internal/models"
	mock_repository "github.com/senyabanana/freight-service/internal/repository/mocks"
	"github.com/senyabanana/freight-service/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type memFiles struct {
	saved   map[string]string
	removed []string
}

func (m *memFiles) SaveDocument(transporterId, documentId, ext string, src io.Reader) (string, int64, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return "", 0, err
	}
	rel := "transporters/" + transporterId + "/" + documentId + "." + ext
	m.saved[rel] = string(b)
	return rel, int64(len(b)), nil
}

func (m *memFiles) Open(string) (*os.File, error) { return nil, os.ErrNotExist }

func (m *memFiles) Remove(rel string) error {
	m.removed = append(m.removed, rel)
	delete(m.saved, rel)
	return nil
}

func newFleetService(t *testing.T) (*FleetService, *mock_repository.MockFleetRepository, *memFiles) {
	ctrl := gomock.NewController(t)
	repo := mock_repository.NewMockFleetRepository(ctrl)
	files := &memFiles{saved: map[string]string{}}
	signer := storage.NewSigner("test-secret", time.Minute)
	svc := NewFleetService(repo, files, signer, "https://fletes.example.gt/", zap.NewNop())
	return svc, repo, files
}

func TestFleetService_CreateVehicle(t *testing.T) {
	svc, repo, _ := newFleetService(t)

	_, err := svc.CreateVehicle(context.Background(), transporter, models.VehicleRequest{VehicleType: "camión", CapacityKg: 1000})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.CreateVehicle(context.Background(), transporter, models.VehicleRequest{Plate: "C123ABC", VehicleType: "camión", CapacityKg: 1000, Year: 1900})
	requireStatus(t, err, http.StatusBadRequest)

	repo.EXPECT().CreateVehicle(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, v models.Vehicle) (*models.Vehicle, error) {
			assert.NotEmpty(t, v.ID)
			assert.Equal(t, "C123ABC", v.Plate)
			return &v, nil
		})
	v, err := svc.CreateVehicle(context.Background(), transporter, models.VehicleRequest{Plate: " c123abc ", VehicleType: "camión", CapacityKg: 1000})
	require.NoError(t, err)
	assert.Equal(t, transporter.ID, v.TransporterID)
}

func TestFleetService_UploadDocument(t *testing.T) {
	t.Run("rejects unsupported type", func(t *testing.T) {
		svc, _, _ := newFleetService(t)
		_, err := svc.UploadDocument(context.Background(), transporter, "licencia", "licencia.exe", strings.NewReader("x"))
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("removes file when row insert fails", func(t *testing.T) {
		svc, repo, files := newFleetService(t)
		repo.EXPECT().CreateDocument(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := svc.UploadDocument(context.Background(), transporter, "licencia", "licencia.pdf", strings.NewReader("%PDF"))
		assert.Error(t, err)
		assert.Len(t, files.removed, 1)
		assert.Empty(t, files.saved)
	})

	t.Run("stores document", func(t *testing.T) {
		svc, repo, files := newFleetService(t)
		repo.EXPECT().CreateDocument(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, d models.TransporterDocument) (*models.TransporterDocument, error) {
				assert.Equal(t, "application/pdf", d.ContentType)
				assert.Equal(t, int64(4), d.SizeBytes)
				assert.Equal(t, models.PendingDocument, d.Status)
				return &d, nil
			})

		doc, err := svc.UploadDocument(context.Background(), transporter, "licencia", "licencia.pdf", strings.NewReader("%PDF"))
		require.NoError(t, err)
		assert.Contains(t, files.saved, doc.FilePath)
	})
}

func TestFleetService_DocumentURL(t *testing.T) {
	svc, repo, _ := newFleetService(t)
	doc := &models.TransporterDocument{ID: "doc-1", TransporterID: transporter.ID, FilePath: "transporters/x/doc-1.pdf"}

	repo.EXPECT().GetDocument(gomock.Any(), "doc-1").Return(doc, nil)
	link, err := svc.DocumentURL(context.Background(), transporter, "doc-1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link.URL, "https://fletes.example.gt/api/files/"))

	token := strings.TrimPrefix(link.URL, "https://fletes.example.gt/api/files/")
	repo.EXPECT().GetDocument(gomock.Any(), "doc-1").Return(doc, nil)
	_, _, err = svc.OpenSignedFile(context.Background(), token)
	requireStatus(t, err, http.StatusNotFound)

	_, _, err = svc.OpenSignedFile(context.Background(), "garbage")
	requireStatus(t, err, http.StatusForbidden)

	repo.EXPECT().GetDocument(gomock.Any(), "doc-1").Return(doc, nil)
	_, err = svc.DocumentURL(context.Background(), otherClient, "doc-1")
	requireStatus(t, err, http.StatusForbidden)
}

func TestFleetService_ReviewDocument(t *testing.T) {
	svc, repo, _ := newFleetService(t)

	_, err := svc.ReviewDocument(context.Background(), transporter, "doc-1", "approved", "")
	requireStatus(t, err, http.StatusForbidden)

	_, err = svc.ReviewDocument(context.Background(), admin, "doc-1", "pending", "")
	requireStatus(t, err, http.StatusBadRequest)

	repo.EXPECT().ReviewDocument(gomock.Any(), "doc-1", models.ApprovedDocument, "ok", gomock.Any()).
		Return(&models.TransporterDocument{ID: "doc-1", Status: models.ApprovedDocument}, nil)
	doc, err := svc.ReviewDocument(context.Background(), admin, "doc-1", "approved", "ok")
	require.NoError(t, err)
	assert.Equal(t, models.ApprovedDocument, doc.Status)
}
