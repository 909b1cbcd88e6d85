package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/infra/metrics"
	"github.com/go-chi/chi/v5"
)

// MetricsMiddleware 以 chi 的 route pattern 當 label, 避免 id 造成 label 爆量
func MetricsMiddleware(m *metrics.ServerMetrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recoder := NewStatusRecoder(w)
			next.ServeHTTP(recoder, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			m.Requests.WithLabelValues(route, r.Method, strconv.Itoa(recoder.Status())).Inc()
			m.LatencyMS.WithLabelValues(route, r.Method).Observe(float64(time.Since(start).Milliseconds()))
		})
	}
}
