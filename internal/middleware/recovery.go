// Middleware: перехват panic, ответ 500 без утечки стека клиенту, лог с request_id.
package middleware

import (
	"fmt"
	"net/http"

	"github.com/senyabanana/freight-service/internal/utils"

	"go.uber.org/zap"
)

func Recovery(logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("panic recovered",
						zap.String("request_id", RequestIDFrom(r.Context())),
						zap.String("path", r.URL.Path),
						zap.String("panic", fmt.Sprint(rec)),
						zap.StackSkip("stack", 2))
					utils.SendErrorResponse(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
