package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/senyabanana/freight-service/internal/models"

	"go.uber.org/zap"
)

const (
	DefaultLimit = 5
	MaxLimit     = 50
)

// SendErrorResponse отправляет ошибку в формате JSON
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		zap.L().Warn("failed to encode error response", zap.Error(err))
	}
}

// SendJSON отправляет значение v в формате JSON с указанным кодом.
func SendJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

// WriteServiceError пишет ответ по ошибке сервиса: ErrorResponse как есть, остальное - 500 с fallback.
// Возвращает код, с которым ответили.
func WriteServiceError(w http.ResponseWriter, err error, fallback string) int {
	var errorResponse *models.ErrorResponse
	if errors.As(err, &errorResponse) {
		SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
		return errorResponse.StatusCode
	}
	SendErrorResponse(w, http.StatusInternalServerError, fallback)
	return http.StatusInternalServerError
}

// ParseLimitOffset обрабатывает limit и offset
func ParseLimitOffset(limitStr, offsetStr string) (int, int, error) {
	return ParseLimitOffsetDefault(limitStr, offsetStr, DefaultLimit)
}

// ParseLimitOffsetDefault - то же, но с заданным limit по умолчанию.
func ParseLimitOffsetDefault(limitStr, offsetStr string, defaultLimit int) (int, int, error) {
	var limit, offset int
	var err error

	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > MaxLimit {
			return 0, 0, fmt.Errorf("invalid limit parameter, must be a positive integer [0:%d]", MaxLimit)
		}
	} else {
		limit = defaultLimit
	}

	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter, must be a non-negative integer")
		}
	} else {
		offset = 0
	}

	return limit, offset, nil
}

// Contains - функция для проверки допустимости перехода статуса
func Contains[T comparable](valid []T, v T) bool {
	for _, item := range valid {
		if item == v {
			return true
		}
	}
	return false
}

// SplitIDs разбирает список идентификаторов через запятую, отбрасывая пустые и повторы.
func SplitIDs(raw string) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
