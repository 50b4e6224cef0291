// Хранение документов перевозчиков на диске: STORAGE_PATH/transporters/{id}/{docId}.{ext}.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const MaxDocumentSize = 10 << 20 // 10 MB

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrOutsideRoot     = errors.New("path outside storage root")
)

var contentTypes = map[string]string{
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
}

// FileStore сохраняет файлы под корневым каталогом.
type FileStore struct {
	root string
}

func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &FileStore{root: root}, nil
}

// DocumentType возвращает расширение и Content-Type по имени файла; только pdf, jpg, jpeg, png.
func DocumentType(filename string) (ext, contentType string, err error) {
	ext = strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	contentType, ok := contentTypes[ext]
	if !ok {
		return "", "", ErrInvalidFileType
	}
	return ext, contentType, nil
}

// SaveDocument пишет файл и возвращает относительный путь и размер.
// Файл больше MaxDocumentSize не сохраняется.
func (s *FileStore) SaveDocument(transporterId, documentId, ext string, src io.Reader) (string, int64, error) {
	relPath := filepath.Join("transporters", transporterId, documentId+"."+ext)
	absPath, err := s.abs(relPath)
	if err != nil {
		return "", 0, err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", 0, err
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return "", 0, err
	}
	n, err := io.Copy(dst, io.LimitReader(src, MaxDocumentSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && n > MaxDocumentSize {
		err = ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(absPath)
		return "", 0, err
	}
	return relPath, n, nil
}

// Open открывает файл по относительному пути.
func (s *FileStore) Open(relPath string) (*os.File, error) {
	absPath, err := s.abs(relPath)
	if err != nil {
		return nil, err
	}
	return os.Open(absPath)
}

// Remove удаляет файл; отсутствие файла не ошибка.
func (s *FileStore) Remove(relPath string) error {
	absPath, err := s.abs(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(absPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileStore) abs(relPath string) (string, error) {
	cleanRoot := filepath.Clean(s.root)
	absPath := filepath.Clean(filepath.Join(cleanRoot, relPath))
	if absPath != cleanRoot && !strings.HasPrefix(absPath, cleanRoot+string(os.PathSeparator)) {
		return "", ErrOutsideRoot
	}
	return absPath, nil
}
