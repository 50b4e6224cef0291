package middleware

import "context"

type ctxKey string

const ContextKeyRequestID ctxKey = "request_id"

// RequestIDFrom возвращает request id из контекста запроса.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyRequestID).(string)
	return id
}
