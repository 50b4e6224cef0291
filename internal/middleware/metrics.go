package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/senyabanana/freight-service/internal/metrics"
)

// Metrics снимает длительность запроса по шаблону маршрута.
// Должен оборачивать ServeMux напрямую: mux заполняет r.Pattern у того же *http.Request.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := newStatusWriter(w)
		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(sw.status)).
			Observe(time.Since(start).Seconds())
	})
}
