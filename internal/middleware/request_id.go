// Middleware: X-Request-ID в формате UUID; если заголовка нет или он не UUID - генерируется новый.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const HeaderXRequestID = "X-Request-ID"

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := uuid.NewString()
		if id, err := uuid.Parse(r.Header.Get(HeaderXRequestID)); err == nil {
			rid = id.String()
		}
		w.Header().Set(HeaderXRequestID, rid)
		ctx := context.WithValue(r.Context(), ContextKeyRequestID, rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
