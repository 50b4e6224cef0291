package models

import "net/http"

// ErrorResponse описывает ошибку с кодом и сообщением.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Message    string `json:"reason"`
}

// NewErrorResponse создает новую ошибку с кодом и сообщением.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Message:    message}
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}

func BadRequest(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusBadRequest, message)
}

func Unauthorized(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusUnauthorized, message)
}

func Forbidden(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusForbidden, message)
}

func NotFound(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusNotFound, message)
}

func Conflict(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusConflict, message)
}

func Internal(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusInternalServerError, message)
}
